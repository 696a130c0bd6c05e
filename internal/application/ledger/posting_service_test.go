package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mms/backend/internal/domain/ledger"
	"github.com/mms/backend/internal/domain/shared"
	"github.com/mms/backend/internal/infrastructure/config"
	"github.com/mms/backend/internal/infrastructure/persistence"
	"github.com/mms/backend/tests/testutil"
)

func setupPostingService(t *testing.T) (*PostingService, *persistence.GormTransactionRepository, *persistence.GormAccountRepository) {
	db := testutil.SetupTestDB(t)
	accountRepo := persistence.NewGormAccountRepository(db)
	categoryRepo := persistence.NewGormAccountCategoryRepository(db)
	txRepo := persistence.NewGormTransactionRepository(db)
	return NewPostingService(accountRepo, categoryRepo, txRepo), txRepo, accountRepo
}

func TestPostingService_GetOrCreateAccount(t *testing.T) {
	service, _, accountRepo := setupPostingService(t)
	ctx := context.Background()

	t.Run("creates account and category on first use", func(t *testing.T) {
		account, err := service.GetOrCreateAccount(ctx, "1001", "Main Cash", ledger.CategoryTypeAsset)
		require.NoError(t, err)
		assert.Equal(t, "1001", account.Code)
		assert.Equal(t, ledger.CategoryTypeAsset, account.CategoryType)
		assert.True(t, account.IsActive)
	})

	t.Run("returns the same account on repeat calls", func(t *testing.T) {
		first, err := service.GetOrCreateAccount(ctx, "4001", "Donations Revenue", ledger.CategoryTypeRevenue)
		require.NoError(t, err)
		second, err := service.GetOrCreateAccount(ctx, "4001", "Donations Revenue", ledger.CategoryTypeRevenue)
		require.NoError(t, err)
		assert.Equal(t, first.GetID(), second.GetID())

		count, err := accountRepo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("reuses an existing category of the same type", func(t *testing.T) {
		a, err := service.GetOrCreateAccount(ctx, "4002", "Membership Dues Revenue", ledger.CategoryTypeRevenue)
		require.NoError(t, err)
		b, err := service.GetOrCreateAccount(ctx, "4003", "Asset Rental Revenue", ledger.CategoryTypeRevenue)
		require.NoError(t, err)
		assert.Equal(t, a.CategoryID, b.CategoryID)
	})
}

func TestPostingService_PostBalancedEntry(t *testing.T) {
	service, txRepo, _ := setupPostingService(t)
	ctx := context.Background()

	input := PostEntryInput{
		Date:        time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Description: "Donation DON-202603-00001",
		Reference:   "DON-202603-00001",
		Debit:       config.AccountEntry{Code: "1001", Name: "Main Cash"},
		DebitType:   ledger.CategoryTypeAsset,
		Credit:      config.AccountEntry{Code: "4001", Name: "Donations Revenue"},
		CreditType:  ledger.CategoryTypeRevenue,
		Amount:      decimal.NewFromInt(250),
	}

	t.Run("writes one balanced transaction", func(t *testing.T) {
		tx, err := service.PostBalancedEntry(ctx, input)
		require.NoError(t, err)
		require.Len(t, tx.Entries, 2)
		assert.True(t, tx.IsBalanced())

		stored, err := txRepo.FindByID(ctx, tx.GetID())
		require.NoError(t, err)
		assert.Len(t, stored.Entries, 2)
		assert.True(t, stored.TotalDebit().Equal(decimal.NewFromInt(250)))
		assert.True(t, stored.TotalCredit().Equal(decimal.NewFromInt(250)))
	})

	t.Run("keeps the ledger in trial balance", func(t *testing.T) {
		_, err := service.PostBalancedEntry(ctx, PostEntryInput{
			Description: "Expense EXP-202603-00001",
			Reference:   "EXP-202603-00001",
			Debit:       config.AccountEntry{Code: "5001", Name: "General Expenses"},
			DebitType:   ledger.CategoryTypeExpense,
			Credit:      config.AccountEntry{Code: "1001", Name: "Main Cash"},
			CreditType:  ledger.CategoryTypeAsset,
			Amount:      decimal.NewFromInt(90),
		})
		require.NoError(t, err)

		debits, err := txRepo.SumDebits(ctx)
		require.NoError(t, err)
		credits, err := txRepo.SumCredits(ctx)
		require.NoError(t, err)
		assert.True(t, debits.Equal(credits))
	})

	t.Run("rejects a non-positive amount", func(t *testing.T) {
		bad := input
		bad.Amount = decimal.Zero
		_, err := service.PostBalancedEntry(ctx, bad)
		assert.Error(t, err)
	})

	t.Run("finds postings by reference", func(t *testing.T) {
		txs, err := txRepo.FindByReference(ctx, "DON-202603-00001")
		require.NoError(t, err)
		assert.Len(t, txs, 1)
	})
}

func TestPostingService_AccountBalance(t *testing.T) {
	service, _, _ := setupPostingService(t)
	ctx := context.Background()

	post := func(debit, credit config.AccountEntry, debitType, creditType ledger.CategoryType, amount int64) {
		_, err := service.PostBalancedEntry(ctx, PostEntryInput{
			Description: "posting",
			Debit:       debit,
			DebitType:   debitType,
			Credit:      credit,
			CreditType:  creditType,
			Amount:      decimal.NewFromInt(amount),
		})
		require.NoError(t, err)
	}

	cash := config.AccountEntry{Code: "1001", Name: "Main Cash"}
	revenue := config.AccountEntry{Code: "4001", Name: "Donations Revenue"}
	expense := config.AccountEntry{Code: "5001", Name: "General Expenses"}

	post(cash, revenue, ledger.CategoryTypeAsset, ledger.CategoryTypeRevenue, 500)
	post(expense, cash, ledger.CategoryTypeExpense, ledger.CategoryTypeAsset, 120)

	t.Run("asset balance is debit minus credit", func(t *testing.T) {
		balance, err := service.AccountBalance(ctx, "1001")
		require.NoError(t, err)
		assert.True(t, balance.Equal(decimal.NewFromInt(380)))
	})

	t.Run("revenue balance is credit minus debit", func(t *testing.T) {
		balance, err := service.AccountBalance(ctx, "4001")
		require.NoError(t, err)
		assert.True(t, balance.Equal(decimal.NewFromInt(500)))
	})

	t.Run("unknown code returns not found", func(t *testing.T) {
		_, err := service.AccountBalance(ctx, "9999")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
