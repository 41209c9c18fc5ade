package handlers

import (
	"context"

	"github.com/fasthttp/router"
	"github.com/shopspring/decimal"

	"github.com/aminrz/transfer-registry/internal/model"
	xhttp "github.com/aminrz/transfer-registry/pkg/http"
)

type AccountService interface {
	Create(ctx context.Context, p model.AccountCreateRequest) (*model.Account, error)
	Get(ctx context.Context, id int64) (*model.Account, error)
	List(ctx context.Context) ([]*model.Account, error)
	Update(ctx context.Context, id int64, patch model.AccountPatch) (*model.Account, error)
	Delete(ctx context.Context, id int64) error
}

type AccountHandler struct {
	svc AccountService
}

func RegisterAccountRoutes(e *router.Group, h *AccountHandler) {
	e.POST("/accounts", h.CreateAccount)
	e.GET("/accounts", h.ListAccounts)
	e.GET("/accounts/{id}", h.GetAccount)
	e.PUT("/accounts/{id}", h.UpdateAccount)
	e.DELETE("/accounts/{id}", h.DeleteAccount)
}

func NewAccountHandler(accountService AccountService) *AccountHandler {
	return &AccountHandler{
		svc: accountService,
	}
}

type createAccountRequest struct {
	UserID   int64           `json:"user_id"`
	Balance  decimal.Decimal `json:"balance"`
	Type     string          `json:"account_type"`
	Currency string          `json:"currency"`
}

type updateAccountRequest struct {
	Balance  *decimal.Decimal `json:"balance"`
	Type     *string          `json:"account_type"`
	Currency *string          `json:"currency"`
}

type accountListResponse struct {
	Accounts []*model.Account `json:"accounts"`
}

type accountDeleteResponse struct {
	Deleted bool   `json:"deleted"`
	Message string `json:"message"`
}

func (h *AccountHandler) CreateAccount(ctx *xhttp.RequestCtx) {
	var req createAccountRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	a, err := h.svc.Create(ctx, model.AccountCreateRequest{
		UserID:   req.UserID,
		Balance:  req.Balance,
		Type:     model.AccountType(req.Type),
		Currency: model.Currency(req.Currency),
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, a)
}

func (h *AccountHandler) GetAccount(ctx *xhttp.RequestCtx) {
	id, err := pathID(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid account id")
		return
	}

	a, err := h.svc.Get(ctx, id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, a)
}

func (h *AccountHandler) ListAccounts(ctx *xhttp.RequestCtx) {
	accounts, err := h.svc.List(ctx)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	if accounts == nil {
		accounts = []*model.Account{}
	}
	writeJSON(ctx, xhttp.StatusOK, accountListResponse{Accounts: accounts})
}

func (h *AccountHandler) UpdateAccount(ctx *xhttp.RequestCtx) {
	id, err := pathID(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid account id")
		return
	}

	var req updateAccountRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	patch := model.AccountPatch{
		Balance: req.Balance,
	}
	if req.Type != nil {
		typ := model.AccountType(*req.Type)
		patch.Type = &typ
	}
	if req.Currency != nil {
		cur := model.Currency(*req.Currency)
		patch.Currency = &cur
	}

	a, err := h.svc.Update(ctx, id, patch)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, a)
}

func (h *AccountHandler) DeleteAccount(ctx *xhttp.RequestCtx) {
	id, err := pathID(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid account id")
		return
	}

	if err := h.svc.Delete(ctx, id); err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, accountDeleteResponse{
		Deleted: true,
		Message: "account and its transactions deleted",
	})
}
