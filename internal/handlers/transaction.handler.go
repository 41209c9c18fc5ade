package handlers

import (
	"context"

	"github.com/fasthttp/router"
	"github.com/shopspring/decimal"

	"github.com/aminrz/transfer-registry/internal/model"
	xhttp "github.com/aminrz/transfer-registry/pkg/http"
)

type TransactionService interface {
	Create(ctx context.Context, p model.TransactionCreateRequest) (*model.Transaction, error)
	Get(ctx context.Context, id int64) (*model.Transaction, error)
	List(ctx context.Context) ([]*model.Transaction, error)
	Update(ctx context.Context, id int64, patch model.TransactionPatch) (*model.Transaction, error)
	Delete(ctx context.Context, id int64) error
}

type TransactionHandler struct {
	svc TransactionService
}

func RegisterTransactionRoutes(e *router.Group, h *TransactionHandler) {
	e.POST("/transactions", h.CreateTransaction)
	e.GET("/transactions", h.ListTransactions)
	e.GET("/transactions/{id}", h.GetTransaction)
	e.PUT("/transactions/{id}", h.UpdateTransaction)
	e.DELETE("/transactions/{id}", h.DeleteTransaction)
}

func NewTransactionHandler(transactionService TransactionService) *TransactionHandler {
	return &TransactionHandler{
		svc: transactionService,
	}
}

type createTransactionRequest struct {
	SenderAccountID    int64           `json:"sender_account_id"`
	RecipientAccountID int64           `json:"recipient_account_id"`
	Amount             decimal.Decimal `json:"amount"`
	Currency           string          `json:"currency"`
	Status             string          `json:"status"`
	Type               string          `json:"transaction_type"`
	Description        string          `json:"description"`
}

type updateTransactionRequest struct {
	SenderAccountID    *int64           `json:"sender_account_id"`
	RecipientAccountID *int64           `json:"recipient_account_id"`
	Amount             *decimal.Decimal `json:"amount"`
	Currency           *string          `json:"currency"`
	Status             *string          `json:"status"`
	Type               *string          `json:"transaction_type"`
	Description        *string          `json:"description"`
}

type transactionListResponse struct {
	Transactions []*model.Transaction `json:"transactions"`
}

func (h *TransactionHandler) CreateTransaction(ctx *xhttp.RequestCtx) {
	var req createTransactionRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	txn, err := h.svc.Create(ctx, model.TransactionCreateRequest{
		SenderAccountID:    req.SenderAccountID,
		RecipientAccountID: req.RecipientAccountID,
		Amount:             req.Amount,
		Currency:           req.Currency,
		Status:             req.Status,
		Type:               req.Type,
		Description:        req.Description,
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, txn)
}

func (h *TransactionHandler) GetTransaction(ctx *xhttp.RequestCtx) {
	id, err := pathID(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid transaction id")
		return
	}

	txn, err := h.svc.Get(ctx, id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, txn)
}

func (h *TransactionHandler) ListTransactions(ctx *xhttp.RequestCtx) {
	transactions, err := h.svc.List(ctx)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	if transactions == nil {
		transactions = []*model.Transaction{}
	}
	writeJSON(ctx, xhttp.StatusOK, transactionListResponse{Transactions: transactions})
}

func (h *TransactionHandler) UpdateTransaction(ctx *xhttp.RequestCtx) {
	id, err := pathID(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid transaction id")
		return
	}

	var req updateTransactionRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	txn, err := h.svc.Update(ctx, id, model.TransactionPatch{
		SenderAccountID:    req.SenderAccountID,
		RecipientAccountID: req.RecipientAccountID,
		Amount:             req.Amount,
		Currency:           req.Currency,
		Status:             req.Status,
		Type:               req.Type,
		Description:        req.Description,
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, txn)
}

func (h *TransactionHandler) DeleteTransaction(ctx *xhttp.RequestCtx) {
	id, err := pathID(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid transaction id")
		return
	}

	if err := h.svc.Delete(ctx, id); err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]string{"message": "transaction deleted"})
}
