package finance

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	appledger "github.com/mms/backend/internal/application/ledger"
	"github.com/mms/backend/internal/infrastructure/config"
	"github.com/mms/backend/internal/infrastructure/persistence"
	"github.com/mms/backend/tests/testutil"
)

type financeFixture struct {
	db              *gorm.DB
	donationService *DonationService
	expenseService  *ExpenseService
	posting         *appledger.PostingService
	txRepo          *persistence.GormTransactionRepository
	accounts        config.AccountsConfig
}

func setupFinance(t *testing.T) *financeFixture {
	db := testutil.SetupTestDB(t)
	accountRepo := persistence.NewGormAccountRepository(db)
	categoryRepo := persistence.NewGormAccountCategoryRepository(db)
	txRepo := persistence.NewGormTransactionRepository(db)
	posting := appledger.NewPostingService(accountRepo, categoryRepo, txRepo)
	txManager := persistence.NewTxManager(db)
	accounts := config.AccountsConfig{
		Cash:             config.AccountEntry{Code: "1001", Name: "Main Cash"},
		Bank:             config.AccountEntry{Code: "1002", Name: "Bank Account"},
		DonationRevenue:  config.AccountEntry{Code: "4001", Name: "Donations Revenue"},
		DuesRevenue:      config.AccountEntry{Code: "4002", Name: "Membership Dues Revenue"},
		RentalRevenue:    config.AccountEntry{Code: "4003", Name: "Asset Rental Revenue"},
		EducationRevenue: config.AccountEntry{Code: "4004", Name: "Education Fees Revenue"},
		GeneralExpense:   config.AccountEntry{Code: "5001", Name: "General Expenses"},
	}

	return &financeFixture{
		db: db,
		donationService: NewDonationService(
			persistence.NewGormDonationRepository(db),
			persistence.NewGormDonationCategoryRepository(db),
			posting, txManager, accounts,
		),
		expenseService: NewExpenseService(
			persistence.NewGormExpenseRepository(db),
			persistence.NewGormExpenseCategoryRepository(db),
			posting, txManager, accounts,
		),
		posting:  posting,
		txRepo:   txRepo,
		accounts: accounts,
	}
}

func TestDonationService_RecordDonation(t *testing.T) {
	f := setupFinance(t)
	ctx := context.Background()

	t.Run("saves donation with sequential receipt numbers", func(t *testing.T) {
		date := time.Date(2026, 4, 5, 0, 0, 0, 0, time.UTC)
		first, err := f.donationService.RecordDonation(ctx, RecordDonationRequest{
			DonorName:    "Abdul Rahman",
			Amount:       decimal.NewFromInt(500),
			DonationType: "cash",
			Date:         date,
		})
		require.NoError(t, err)
		assert.Equal(t, "DON-202604-00001", first.ReceiptNumber)

		second, err := f.donationService.RecordDonation(ctx, RecordDonationRequest{
			DonorName:    "Fatima Beevi",
			Amount:       decimal.NewFromInt(250),
			DonationType: "online",
			Date:         date,
		})
		require.NoError(t, err)
		assert.Equal(t, "DON-202604-00002", second.ReceiptNumber)
	})

	t.Run("posts cash donations to the cash account", func(t *testing.T) {
		balance, err := f.posting.AccountBalance(ctx, f.accounts.Cash.Code)
		require.NoError(t, err)
		assert.True(t, balance.Equal(decimal.NewFromInt(500)))
	})

	t.Run("posts online donations to the bank account", func(t *testing.T) {
		balance, err := f.posting.AccountBalance(ctx, f.accounts.Bank.Code)
		require.NoError(t, err)
		assert.True(t, balance.Equal(decimal.NewFromInt(250)))
	})

	t.Run("ledger reflects both donations as revenue", func(t *testing.T) {
		balance, err := f.posting.AccountBalance(ctx, f.accounts.DonationRevenue.Code)
		require.NoError(t, err)
		assert.True(t, balance.Equal(decimal.NewFromInt(750)))
	})

	t.Run("rejects an invalid donation type without posting", func(t *testing.T) {
		before, err := f.txRepo.SumDebits(ctx)
		require.NoError(t, err)

		_, err = f.donationService.RecordDonation(ctx, RecordDonationRequest{
			DonorName:    "Nobody",
			Amount:       decimal.NewFromInt(10),
			DonationType: "barter",
		})
		require.Error(t, err)

		after, err := f.txRepo.SumDebits(ctx)
		require.NoError(t, err)
		assert.True(t, before.Equal(after))
	})
}

func TestExpenseService_RecordExpense(t *testing.T) {
	f := setupFinance(t)
	ctx := context.Background()

	t.Run("saves expense and posts against cash", func(t *testing.T) {
		date := time.Date(2026, 4, 8, 0, 0, 0, 0, time.UTC)
		expense, err := f.expenseService.RecordExpense(ctx, RecordExpenseRequest{
			Amount:      decimal.NewFromInt(175),
			Date:        date,
			Description: "Electricity bill",
			Vendor:      "KSEB",
		})
		require.NoError(t, err)
		assert.Equal(t, "EXP-202604-00001", expense.ReceiptNumber)

		balance, err := f.posting.AccountBalance(ctx, f.accounts.GeneralExpense.Code)
		require.NoError(t, err)
		assert.True(t, balance.Equal(decimal.NewFromInt(175)))

		cash, err := f.posting.AccountBalance(ctx, f.accounts.Cash.Code)
		require.NoError(t, err)
		assert.True(t, cash.Equal(decimal.NewFromInt(-175)))
	})

	t.Run("rejects empty description", func(t *testing.T) {
		_, err := f.expenseService.RecordExpense(ctx, RecordExpenseRequest{
			Amount: decimal.NewFromInt(20),
		})
		assert.Error(t, err)
	})
}

func TestSummaryService_FinancialSummary(t *testing.T) {
	f := setupFinance(t)
	ctx := context.Background()

	date := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	_, err := f.donationService.RecordDonation(ctx, RecordDonationRequest{
		DonorName: "Donor", Amount: decimal.NewFromInt(1000), DonationType: "cash", Date: date,
	})
	require.NoError(t, err)
	_, err = f.expenseService.RecordExpense(ctx, RecordExpenseRequest{
		Amount: decimal.NewFromInt(400), Date: date, Description: "Repairs",
	})
	require.NoError(t, err)

	summaryService := NewSummaryService(
		persistence.NewGormDonationRepository(f.db),
		persistence.NewGormExpenseRepository(f.db),
		nil,
		config.CacheConfig{Enabled: false},
		nil,
	)

	from := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 5, 31, 23, 59, 59, 0, time.UTC)

	summary, err := summaryService.FinancialSummary(ctx, from, to)
	require.NoError(t, err)
	assert.True(t, summary.TotalDonations.Equal(decimal.NewFromInt(1000)))
	assert.True(t, summary.TotalExpenses.Equal(decimal.NewFromInt(400)))
	assert.True(t, summary.NetBalance.Equal(decimal.NewFromInt(600)))

	t.Run("excludes records outside the range", func(t *testing.T) {
		june := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
		summary, err := summaryService.FinancialSummary(ctx, june, june.AddDate(0, 1, 0))
		require.NoError(t, err)
		assert.True(t, summary.TotalDonations.IsZero())
		assert.True(t, summary.NetBalance.IsZero())
	})
}
