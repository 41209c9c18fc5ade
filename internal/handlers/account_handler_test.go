package handlers

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/aminrz/transfer-registry/internal/model"
	"github.com/aminrz/transfer-registry/internal/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAccountHandler_CreateAccount(t *testing.T) {
	t.Run("successful creation", func(t *testing.T) {
		svc := new(MockAccountService)
		handler := NewAccountHandler(svc)

		body := []byte(`{"user_id":1,"balance":"1000.50","account_type":"savings","currency":"USD"}`)

		svc.On("Create", mock.Anything, mock.MatchedBy(func(p model.AccountCreateRequest) bool {
			return p.UserID == 1 &&
				p.Balance.Equal(decimal.RequireFromString("1000.50")) &&
				p.Type == model.AccountTypeSavings
		})).Return(&model.Account{ID: 1, UserID: 1}, nil)

		ctx := setupTestContext("POST", "/api/v1/accounts", body)
		handler.CreateAccount(ctx)

		assert.Equal(t, 201, ctx.Response.StatusCode())
		svc.AssertExpectations(t)
	})

	t.Run("unknown owner is a 400", func(t *testing.T) {
		svc := new(MockAccountService)
		handler := NewAccountHandler(svc)

		body := []byte(`{"user_id":999,"balance":"10","account_type":"checking","currency":"USD"}`)
		svc.On("Create", mock.Anything, mock.Anything).Return(nil, services.ErrInvalidReference)

		ctx := setupTestContext("POST", "/api/v1/accounts", body)
		handler.CreateAccount(ctx)

		assert.Equal(t, 400, ctx.Response.StatusCode())
	})

	t.Run("storage failure is a 500 without detail", func(t *testing.T) {
		svc := new(MockAccountService)
		handler := NewAccountHandler(svc)

		body := []byte(`{"user_id":1,"balance":"10","account_type":"checking","currency":"USD"}`)
		svc.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))

		ctx := setupTestContext("POST", "/api/v1/accounts", body)
		handler.CreateAccount(ctx)

		assert.Equal(t, 500, ctx.Response.StatusCode())

		var response map[string]string
		require.NoError(t, json.Unmarshal(ctx.Response.Body(), &response))
		assert.Equal(t, "internal error", response["error"])
	})
}

func TestAccountHandler_UpdateAccount(t *testing.T) {
	svc := new(MockAccountService)
	handler := NewAccountHandler(svc)

	body := []byte(`{"balance":"0"}`)
	svc.On("Update", mock.Anything, int64(1), mock.MatchedBy(func(p model.AccountPatch) bool {
		return p.Balance != nil && p.Balance.IsZero() && p.Type == nil && p.Currency == nil
	})).Return(&model.Account{ID: 1, Balance: decimal.Zero}, nil)

	ctx := setupTestContext("PUT", "/api/v1/accounts/1", body)
	ctx.SetUserValue("id", "1")
	handler.UpdateAccount(ctx)

	assert.Equal(t, 200, ctx.Response.StatusCode())
	svc.AssertExpectations(t)
}

func TestAccountHandler_DeleteAccount(t *testing.T) {
	t.Run("success reports the cascade", func(t *testing.T) {
		svc := new(MockAccountService)
		handler := NewAccountHandler(svc)

		svc.On("Delete", mock.Anything, int64(1)).Return(nil)

		ctx := setupTestContext("DELETE", "/api/v1/accounts/1", nil)
		ctx.SetUserValue("id", "1")
		handler.DeleteAccount(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())

		var response accountDeleteResponse
		require.NoError(t, json.Unmarshal(ctx.Response.Body(), &response))
		assert.True(t, response.Deleted)
	})

	t.Run("missing account is a 404", func(t *testing.T) {
		svc := new(MockAccountService)
		handler := NewAccountHandler(svc)

		svc.On("Delete", mock.Anything, int64(999)).Return(services.ErrNotFound)

		ctx := setupTestContext("DELETE", "/api/v1/accounts/999", nil)
		ctx.SetUserValue("id", "999")
		handler.DeleteAccount(ctx)

		assert.Equal(t, 404, ctx.Response.StatusCode())
	})
}
