package repository

import (
	"context"
	"testing"

	"github.com/aminrz/transfer-registry/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t).DB
	users := NewUserRepository(db)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	owner, err := users.Create(ctx, newTestUser("owner", "owner@example.com"))
	require.NoError(t, err)

	created, err := repo.Create(ctx, &model.Account{
		UserID:   owner.ID,
		Balance:  decimal.RequireFromString("1000.50"),
		Type:     model.AccountTypeSavings,
		Currency: model.CurrencyUSD,
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, owner.ID, got.UserID)
	assert.True(t, got.Balance.Equal(decimal.RequireFromString("1000.50")), "balance = %s", got.Balance)
	assert.Equal(t, model.AccountTypeSavings, got.Type)
	assert.Equal(t, model.CurrencyUSD, got.Currency)
}

func TestAccountRepository_Create_UnknownOwner(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewAccountRepository(db)

	_, err := repo.Create(context.Background(), &model.Account{
		UserID:   999,
		Balance:  decimal.NewFromInt(10),
		Type:     model.AccountTypeChecking,
		Currency: model.CurrencyUSD,
	})
	assert.ErrorIs(t, err, ErrForeignKeyViolation)
}

func TestAccountRepository_Update(t *testing.T) {
	db := setupTestDB(t).DB
	users := NewUserRepository(db)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	owner, err := users.Create(ctx, newTestUser("owner", "owner@example.com"))
	require.NoError(t, err)
	acc, err := repo.Create(ctx, &model.Account{UserID: owner.ID, Balance: decimal.NewFromInt(100), Type: model.AccountTypeChecking, Currency: model.CurrencyUSD})
	require.NoError(t, err)

	t.Run("balance can go to exactly zero", func(t *testing.T) {
		zero := decimal.Zero
		count, err := repo.Update(ctx, acc.ID, model.AccountPatch{Balance: &zero})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		got, err := repo.Get(ctx, acc.ID)
		require.NoError(t, err)
		assert.True(t, got.Balance.IsZero())
	})

	t.Run("sparse patch keeps other columns", func(t *testing.T) {
		typ := model.AccountTypeSavings
		count, err := repo.Update(ctx, acc.ID, model.AccountPatch{Type: &typ})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		got, err := repo.Get(ctx, acc.ID)
		require.NoError(t, err)
		assert.Equal(t, model.AccountTypeSavings, got.Type)
		assert.Equal(t, model.CurrencyUSD, got.Currency)
	})

	t.Run("empty patch is a no-op reporting existence", func(t *testing.T) {
		count, err := repo.Update(ctx, acc.ID, model.AccountPatch{})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		count, err = repo.Update(ctx, 999, model.AccountPatch{})
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})
}

func TestAccountRepository_Delete_CascadesOwnTransactionsOnly(t *testing.T) {
	db := setupTestDB(t).DB
	users := NewUserRepository(db)
	repo := NewAccountRepository(db)
	transactions := NewTransactionRepository(db)
	ctx := context.Background()

	owner, err := users.Create(ctx, newTestUser("owner", "owner@example.com"))
	require.NoError(t, err)

	doomed, err := repo.Create(ctx, &model.Account{UserID: owner.ID, Balance: decimal.NewFromInt(100), Type: model.AccountTypeChecking, Currency: model.CurrencyUSD})
	require.NoError(t, err)
	survivor, err := repo.Create(ctx, &model.Account{UserID: owner.ID, Balance: decimal.NewFromInt(200), Type: model.AccountTypeSavings, Currency: model.CurrencyUSD})
	require.NoError(t, err)
	third, err := repo.Create(ctx, &model.Account{UserID: owner.ID, Balance: decimal.NewFromInt(300), Type: model.AccountTypeSavings, Currency: model.CurrencyUSD})
	require.NoError(t, err)

	asSender, err := transactions.Create(ctx, &model.Transaction{SenderAccountID: doomed.ID, RecipientAccountID: survivor.ID, Amount: decimal.NewFromInt(5), Currency: "USD", Status: "completed", Type: "transfer"})
	require.NoError(t, err)
	asRecipient, err := transactions.Create(ctx, &model.Transaction{SenderAccountID: survivor.ID, RecipientAccountID: doomed.ID, Amount: decimal.NewFromInt(6), Currency: "USD", Status: "completed", Type: "transfer"})
	require.NoError(t, err)
	unrelated, err := transactions.Create(ctx, &model.Transaction{SenderAccountID: survivor.ID, RecipientAccountID: third.ID, Amount: decimal.NewFromInt(7), Currency: "USD", Status: "pending", Type: "transfer"})
	require.NoError(t, err)

	count, err := repo.Delete(ctx, doomed.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	_, err = repo.Get(ctx, doomed.ID)
	assert.ErrorIs(t, err, ErrAccountNotFound)
	_, err = transactions.Get(ctx, asSender.ID)
	assert.ErrorIs(t, err, ErrTransactionNotFound)
	_, err = transactions.Get(ctx, asRecipient.ID)
	assert.ErrorIs(t, err, ErrTransactionNotFound)

	_, err = repo.Get(ctx, survivor.ID)
	assert.NoError(t, err)
	_, err = transactions.Get(ctx, unrelated.ID)
	assert.NoError(t, err)
}

func TestAccountRepository_Delete_NotFound(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewAccountRepository(db)

	count, err := repo.Delete(context.Background(), 999)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
