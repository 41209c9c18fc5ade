package handlers

import (
	"context"

	"github.com/fasthttp/router"

	"github.com/aminrz/transfer-registry/internal/model"
	xhttp "github.com/aminrz/transfer-registry/pkg/http"
)

type RecipientService interface {
	Create(ctx context.Context, p model.RecipientCreateRequest) (*model.Recipient, error)
	Get(ctx context.Context, id int64) (*model.Recipient, error)
	Update(ctx context.Context, id int64, patch model.RecipientPatch) (*model.Recipient, error)
	Delete(ctx context.Context, id int64) error
	ListForUser(ctx context.Context, userID int64) ([]*model.Recipient, error)
	ListFavoritesForUser(ctx context.Context, userID int64) ([]*model.Recipient, error)
	ToggleFavorite(ctx context.Context, id int64) (bool, error)
}

type RecipientHandler struct {
	svc RecipientService
}

func RegisterRecipientRoutes(e *router.Group, h *RecipientHandler) {
	e.POST("/recipients", h.CreateRecipient)
	e.GET("/recipients/{id}", h.GetRecipient)
	e.PUT("/recipients/{id}", h.UpdateRecipient)
	e.DELETE("/recipients/{id}", h.DeleteRecipient)
	e.POST("/recipients/{id}/toggle-favorite", h.ToggleFavorite)
	e.GET("/users/{id}/recipients", h.ListRecipientsForUser)
	e.GET("/users/{id}/recipients/favorites", h.ListFavoriteRecipientsForUser)
}

func NewRecipientHandler(recipientService RecipientService) *RecipientHandler {
	return &RecipientHandler{
		svc: recipientService,
	}
}

type createRecipientRequest struct {
	UserID       int64  `json:"user_id"`
	Name         string `json:"name"`
	AccountInfo  string `json:"account_info"`
	BankName     string `json:"bank_name"`
	SwiftCode    string `json:"swift_code"`
	Relationship string `json:"relationship"`
	IsFavorite   bool   `json:"is_favorite"`
}

type updateRecipientRequest struct {
	Name         *string `json:"name"`
	AccountInfo  *string `json:"account_info"`
	BankName     *string `json:"bank_name"`
	SwiftCode    *string `json:"swift_code"`
	Relationship *string `json:"relationship"`
	IsFavorite   *bool   `json:"is_favorite"`
}

type recipientListResponse struct {
	Recipients []*model.Recipient `json:"recipients"`
}

type favoriteToggleResponse struct {
	RecipientID int64 `json:"recipient_id"`
	IsFavorite  bool  `json:"is_favorite"`
}

func (h *RecipientHandler) CreateRecipient(ctx *xhttp.RequestCtx) {
	var req createRecipientRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	rec, err := h.svc.Create(ctx, model.RecipientCreateRequest{
		UserID:       req.UserID,
		Name:         req.Name,
		AccountInfo:  req.AccountInfo,
		BankName:     req.BankName,
		SwiftCode:    req.SwiftCode,
		Relationship: model.Relationship(req.Relationship),
		IsFavorite:   req.IsFavorite,
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, rec)
}

func (h *RecipientHandler) GetRecipient(ctx *xhttp.RequestCtx) {
	id, err := pathID(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid recipient id")
		return
	}

	rec, err := h.svc.Get(ctx, id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, rec)
}

func (h *RecipientHandler) UpdateRecipient(ctx *xhttp.RequestCtx) {
	id, err := pathID(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid recipient id")
		return
	}

	var req updateRecipientRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	patch := model.RecipientPatch{
		Name:        req.Name,
		AccountInfo: req.AccountInfo,
		BankName:    req.BankName,
		SwiftCode:   req.SwiftCode,
		IsFavorite:  req.IsFavorite,
	}
	if req.Relationship != nil {
		rel := model.Relationship(*req.Relationship)
		patch.Relationship = &rel
	}

	rec, err := h.svc.Update(ctx, id, patch)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, rec)
}

func (h *RecipientHandler) DeleteRecipient(ctx *xhttp.RequestCtx) {
	id, err := pathID(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid recipient id")
		return
	}

	if err := h.svc.Delete(ctx, id); err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]string{"message": "recipient deleted"})
}

func (h *RecipientHandler) ToggleFavorite(ctx *xhttp.RequestCtx) {
	id, err := pathID(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid recipient id")
		return
	}

	fav, err := h.svc.ToggleFavorite(ctx, id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, favoriteToggleResponse{
		RecipientID: id,
		IsFavorite:  fav,
	})
}

func (h *RecipientHandler) ListRecipientsForUser(ctx *xhttp.RequestCtx) {
	userID, err := pathID(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid user id")
		return
	}

	recipients, err := h.svc.ListForUser(ctx, userID)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	if recipients == nil {
		recipients = []*model.Recipient{}
	}
	writeJSON(ctx, xhttp.StatusOK, recipientListResponse{Recipients: recipients})
}

func (h *RecipientHandler) ListFavoriteRecipientsForUser(ctx *xhttp.RequestCtx) {
	userID, err := pathID(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid user id")
		return
	}

	recipients, err := h.svc.ListFavoritesForUser(ctx, userID)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	if recipients == nil {
		recipients = []*model.Recipient{}
	}
	writeJSON(ctx, xhttp.StatusOK, recipientListResponse{Recipients: recipients})
}
