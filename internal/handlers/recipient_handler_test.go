package handlers

import (
	"encoding/json"
	"testing"

	"github.com/aminrz/transfer-registry/internal/model"
	"github.com/aminrz/transfer-registry/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRecipientHandler_CreateRecipient(t *testing.T) {
	t.Run("successful creation", func(t *testing.T) {
		svc := new(MockRecipientService)
		handler := NewRecipientHandler(svc)

		body, _ := json.Marshal(createRecipientRequest{
			UserID:       1,
			Name:         "Alice",
			AccountInfo:  "ACC-1",
			BankName:     "First Bank",
			SwiftCode:    "FIRSUS33",
			Relationship: "friend",
		})

		svc.On("Create", mock.Anything, mock.MatchedBy(func(p model.RecipientCreateRequest) bool {
			return p.UserID == 1 && p.Relationship == model.RelationshipFriend
		})).Return(&model.Recipient{ID: 1, Name: "Alice"}, nil)

		ctx := setupTestContext("POST", "/api/v1/recipients", body)
		handler.CreateRecipient(ctx)

		assert.Equal(t, 201, ctx.Response.StatusCode())
		svc.AssertExpectations(t)
	})

	t.Run("validation failure is a 400", func(t *testing.T) {
		svc := new(MockRecipientService)
		handler := NewRecipientHandler(svc)

		body := []byte(`{"user_id":1,"name":"Alice","swift_code":"X"}`)
		svc.On("Create", mock.Anything, mock.Anything).Return(nil, services.ErrInvalidInput)

		ctx := setupTestContext("POST", "/api/v1/recipients", body)
		handler.CreateRecipient(ctx)

		assert.Equal(t, 400, ctx.Response.StatusCode())
	})
}

func TestRecipientHandler_ToggleFavorite(t *testing.T) {
	t.Run("reports the new value", func(t *testing.T) {
		svc := new(MockRecipientService)
		handler := NewRecipientHandler(svc)

		svc.On("ToggleFavorite", mock.Anything, int64(3)).Return(true, nil)

		ctx := setupTestContext("POST", "/api/v1/recipients/3/toggle-favorite", nil)
		ctx.SetUserValue("id", "3")
		handler.ToggleFavorite(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())

		var response favoriteToggleResponse
		require.NoError(t, json.Unmarshal(ctx.Response.Body(), &response))
		assert.Equal(t, int64(3), response.RecipientID)
		assert.True(t, response.IsFavorite)
	})

	t.Run("missing recipient is a 404", func(t *testing.T) {
		svc := new(MockRecipientService)
		handler := NewRecipientHandler(svc)

		svc.On("ToggleFavorite", mock.Anything, int64(999)).Return(false, services.ErrNotFound)

		ctx := setupTestContext("POST", "/api/v1/recipients/999/toggle-favorite", nil)
		ctx.SetUserValue("id", "999")
		handler.ToggleFavorite(ctx)

		assert.Equal(t, 404, ctx.Response.StatusCode())
	})
}

func TestRecipientHandler_Lists(t *testing.T) {
	t.Run("all recipients for a user", func(t *testing.T) {
		svc := new(MockRecipientService)
		handler := NewRecipientHandler(svc)

		svc.On("ListForUser", mock.Anything, int64(1)).
			Return([]*model.Recipient{{ID: 1}, {ID: 2}}, nil)

		ctx := setupTestContext("GET", "/api/v1/users/1/recipients", nil)
		ctx.SetUserValue("id", "1")
		handler.ListRecipientsForUser(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())

		var response recipientListResponse
		require.NoError(t, json.Unmarshal(ctx.Response.Body(), &response))
		assert.Len(t, response.Recipients, 2)
	})

	t.Run("favorites only", func(t *testing.T) {
		svc := new(MockRecipientService)
		handler := NewRecipientHandler(svc)

		svc.On("ListFavoritesForUser", mock.Anything, int64(1)).
			Return([]*model.Recipient{{ID: 2, IsFavorite: true}}, nil)

		ctx := setupTestContext("GET", "/api/v1/users/1/recipients/favorites", nil)
		ctx.SetUserValue("id", "1")
		handler.ListFavoriteRecipientsForUser(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())

		var response recipientListResponse
		require.NoError(t, json.Unmarshal(ctx.Response.Body(), &response))
		require.Len(t, response.Recipients, 1)
		assert.True(t, response.Recipients[0].IsFavorite)
	})

	t.Run("no recipients yields an empty list", func(t *testing.T) {
		svc := new(MockRecipientService)
		handler := NewRecipientHandler(svc)

		svc.On("ListForUser", mock.Anything, int64(5)).Return([]*model.Recipient(nil), nil)

		ctx := setupTestContext("GET", "/api/v1/users/5/recipients", nil)
		ctx.SetUserValue("id", "5")
		handler.ListRecipientsForUser(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())
		assert.JSONEq(t, `{"recipients":[]}`, string(ctx.Response.Body()))
	})
}

func TestRecipientHandler_UpdateRecipient(t *testing.T) {
	svc := new(MockRecipientService)
	handler := NewRecipientHandler(svc)

	body := []byte(`{"bank_name":"Second Bank","relationship":"family"}`)
	svc.On("Update", mock.Anything, int64(1), mock.MatchedBy(func(p model.RecipientPatch) bool {
		return p.BankName != nil && *p.BankName == "Second Bank" &&
			p.Relationship != nil && *p.Relationship == model.RelationshipFamily &&
			p.Name == nil
	})).Return(&model.Recipient{ID: 1, BankName: "Second Bank"}, nil)

	ctx := setupTestContext("PUT", "/api/v1/recipients/1", body)
	ctx.SetUserValue("id", "1")
	handler.UpdateRecipient(ctx)

	assert.Equal(t, 200, ctx.Response.StatusCode())
	svc.AssertExpectations(t)
}
