package ledger

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mms/backend/internal/domain/ledger"
	"github.com/mms/backend/internal/domain/shared"
	"github.com/mms/backend/internal/infrastructure/config"
	"github.com/mms/backend/internal/infrastructure/persistence"
	"github.com/mms/backend/tests/testutil"
)

func testAccountsConfig() config.AccountsConfig {
	return config.AccountsConfig{
		Cash:             config.AccountEntry{Code: "1001", Name: "Main Cash"},
		Bank:             config.AccountEntry{Code: "1002", Name: "Bank Account"},
		DonationRevenue:  config.AccountEntry{Code: "4001", Name: "Donations Revenue"},
		DuesRevenue:      config.AccountEntry{Code: "4002", Name: "Membership Dues Revenue"},
		RentalRevenue:    config.AccountEntry{Code: "4003", Name: "Asset Rental Revenue"},
		EducationRevenue: config.AccountEntry{Code: "4004", Name: "Education Fees Revenue"},
		GeneralExpense:   config.AccountEntry{Code: "5001", Name: "General Expenses"},
	}
}

func setupChartService(t *testing.T) (*ChartOfAccountsService, *PostingService, *persistence.GormAccountRepository) {
	db := testutil.SetupTestDB(t)
	accountRepo := persistence.NewGormAccountRepository(db)
	categoryRepo := persistence.NewGormAccountCategoryRepository(db)
	txRepo := persistence.NewGormTransactionRepository(db)
	posting := NewPostingService(accountRepo, categoryRepo, txRepo)
	return NewChartOfAccountsService(accountRepo, txRepo, posting, testAccountsConfig()), posting, accountRepo
}

func TestChartOfAccountsService_Setup(t *testing.T) {
	service, _, accountRepo := setupChartService(t)
	ctx := context.Background()

	require.NoError(t, service.Setup(ctx))

	count, err := accountRepo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(7), count)

	t.Run("is idempotent", func(t *testing.T) {
		require.NoError(t, service.Setup(ctx))
		count, err := accountRepo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(7), count)
	})

	t.Run("seeds accounts under the right category types", func(t *testing.T) {
		account, err := accountRepo.FindByCode(ctx, "4004")
		require.NoError(t, err)
		assert.Equal(t, ledger.CategoryTypeRevenue, account.CategoryType)

		account, err = accountRepo.FindByCode(ctx, "5001")
		require.NoError(t, err)
		assert.Equal(t, ledger.CategoryTypeExpense, account.CategoryType)
	})
}

func TestChartOfAccountsService_Report(t *testing.T) {
	service, posting, _ := setupChartService(t)
	ctx := context.Background()
	require.NoError(t, service.Setup(ctx))

	accounts := testAccountsConfig()
	_, err := posting.PostBalancedEntry(ctx, PostEntryInput{
		Description: "donation",
		Debit:       accounts.Cash,
		DebitType:   ledger.CategoryTypeAsset,
		Credit:      accounts.DonationRevenue,
		CreditType:  ledger.CategoryTypeRevenue,
		Amount:      decimal.NewFromInt(300),
	})
	require.NoError(t, err)
	_, err = posting.PostBalancedEntry(ctx, PostEntryInput{
		Description: "expense",
		Debit:       accounts.GeneralExpense,
		DebitType:   ledger.CategoryTypeExpense,
		Credit:      accounts.Cash,
		CreditType:  ledger.CategoryTypeAsset,
		Amount:      decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	report, err := service.Report(ctx, shared.Filter{PageSize: 50, Page: 1})
	require.NoError(t, err)
	require.Len(t, report, 7)

	byCode := make(map[string]AccountBalanceResponse, len(report))
	for _, line := range report {
		byCode[line.Code] = line
	}

	assert.True(t, byCode["1001"].Balance.Equal(decimal.NewFromInt(200)))
	assert.True(t, byCode["4001"].Balance.Equal(decimal.NewFromInt(300)))
	assert.True(t, byCode["5001"].Balance.Equal(decimal.NewFromInt(100)))
	assert.True(t, byCode["1002"].Balance.IsZero())

	t.Run("trial balance stays level", func(t *testing.T) {
		tb, err := service.TrialBalance(ctx)
		require.NoError(t, err)
		assert.True(t, tb.Balanced)
		assert.True(t, tb.TotalDebit.Equal(decimal.NewFromInt(400)))
	})
}
