package billing

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	appledger "github.com/mms/backend/internal/application/ledger"
	"github.com/mms/backend/internal/domain/billing"
	"github.com/mms/backend/internal/infrastructure/config"
	"github.com/mms/backend/internal/infrastructure/persistence"
	"github.com/mms/backend/tests/testutil"
)

type billingFixture struct {
	db       *gorm.DB
	service  *InvoiceService
	posting  *appledger.PostingService
	txRepo   *persistence.GormTransactionRepository
	accounts config.AccountsConfig
}

func setupBilling(t *testing.T) *billingFixture {
	db := testutil.SetupTestDB(t)
	accountRepo := persistence.NewGormAccountRepository(db)
	categoryRepo := persistence.NewGormAccountCategoryRepository(db)
	txRepo := persistence.NewGormTransactionRepository(db)
	posting := appledger.NewPostingService(accountRepo, categoryRepo, txRepo)
	accounts := config.AccountsConfig{
		Cash:             config.AccountEntry{Code: "1001", Name: "Main Cash"},
		Bank:             config.AccountEntry{Code: "1002", Name: "Bank Account"},
		DonationRevenue:  config.AccountEntry{Code: "4001", Name: "Donations Revenue"},
		DuesRevenue:      config.AccountEntry{Code: "4002", Name: "Membership Dues Revenue"},
		RentalRevenue:    config.AccountEntry{Code: "4003", Name: "Asset Rental Revenue"},
		EducationRevenue: config.AccountEntry{Code: "4004", Name: "Education Fees Revenue"},
		GeneralExpense:   config.AccountEntry{Code: "5001", Name: "General Expenses"},
	}

	return &billingFixture{
		db: db,
		service: NewInvoiceService(
			persistence.NewGormInvoiceRepository(db),
			persistence.NewGormBillingPaymentRepository(db),
			persistence.NewGormShopRepository(db),
			posting,
			persistence.NewTxManager(db),
			accounts,
		),
		posting:  posting,
		txRepo:   txRepo,
		accounts: accounts,
	}
}

func (f *billingFixture) createInvoice(t *testing.T, amount int64, houseID, shopID *uuid.UUID) *InvoiceResponse {
	t.Helper()
	invoice, err := f.service.CreateInvoice(context.Background(), CreateInvoiceRequest{
		HouseID:    houseID,
		ShopID:     shopID,
		DateIssued: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		Lines: []InvoiceLineInput{
			{Description: "Monthly charge", Amount: decimal.NewFromInt(amount)},
		},
	})
	require.NoError(t, err)
	return invoice
}

func TestInvoiceService_CreateInvoice(t *testing.T) {
	f := setupBilling(t)

	first := f.createInvoice(t, 100, nil, nil)
	assert.Equal(t, "INV-202602-00001", first.InvoiceNumber)
	assert.Equal(t, "draft", first.Status)
	assert.True(t, first.TotalAmount.Equal(decimal.NewFromInt(100)))
	assert.True(t, first.BalanceDue.Equal(decimal.NewFromInt(100)))

	second := f.createInvoice(t, 50, nil, nil)
	assert.Equal(t, "INV-202602-00002", second.InvoiceNumber)

	t.Run("rejects an invoice without lines", func(t *testing.T) {
		_, err := f.service.CreateInvoice(context.Background(), CreateInvoiceRequest{})
		assert.Error(t, err)
	})
}

func TestInvoiceService_RecordPayment(t *testing.T) {
	f := setupBilling(t)
	ctx := context.Background()

	houseID := uuid.New()
	invoice := f.createInvoice(t, 100, &houseID, nil)

	t.Run("partial payment", func(t *testing.T) {
		updated, err := f.service.RecordPayment(ctx, invoice.ID, RecordInvoicePaymentRequest{
			Amount:        decimal.NewFromInt(40),
			PaymentMethod: "cash",
		})
		require.NoError(t, err)
		assert.Equal(t, "partially_paid", updated.Status)
		assert.True(t, updated.AmountPaid.Equal(decimal.NewFromInt(40)))
		assert.True(t, updated.BalanceDue.Equal(decimal.NewFromInt(60)))
	})

	t.Run("second payment settles the invoice", func(t *testing.T) {
		updated, err := f.service.RecordPayment(ctx, invoice.ID, RecordInvoicePaymentRequest{
			Amount:        decimal.NewFromInt(60),
			PaymentMethod: "upi",
		})
		require.NoError(t, err)
		assert.Equal(t, "paid", updated.Status)
		assert.True(t, updated.BalanceDue.IsZero())
	})

	t.Run("house invoices credit dues revenue", func(t *testing.T) {
		balance, err := f.posting.AccountBalance(ctx, f.accounts.DuesRevenue.Code)
		require.NoError(t, err)
		assert.True(t, balance.Equal(decimal.NewFromInt(100)))
	})

	t.Run("payment rows are kept per payment", func(t *testing.T) {
		payments, err := f.service.ListPayments(ctx, invoice.ID)
		require.NoError(t, err)
		assert.Len(t, payments, 2)
	})
}

func TestInvoiceService_Overpayment(t *testing.T) {
	f := setupBilling(t)
	ctx := context.Background()

	shopID := uuid.New()
	invoice := f.createInvoice(t, 100, nil, &shopID)

	updated, err := f.service.RecordPayment(ctx, invoice.ID, RecordInvoicePaymentRequest{
		Amount:        decimal.NewFromInt(130),
		PaymentMethod: "bank",
	})
	require.NoError(t, err)
	assert.Equal(t, "paid", updated.Status)
	assert.True(t, updated.BalanceDue.Equal(decimal.NewFromInt(-30)))

	t.Run("shop invoices credit rental revenue for the full amount", func(t *testing.T) {
		balance, err := f.posting.AccountBalance(ctx, f.accounts.RentalRevenue.Code)
		require.NoError(t, err)
		assert.True(t, balance.Equal(decimal.NewFromInt(130)))
	})
}

func TestInvoiceService_CancelledInvoice(t *testing.T) {
	f := setupBilling(t)
	ctx := context.Background()

	invoice := f.createInvoice(t, 80, nil, nil)
	_, err := f.service.CancelInvoice(ctx, invoice.ID)
	require.NoError(t, err)

	t.Run("payment on a cancelled invoice fails and posts nothing", func(t *testing.T) {
		_, err := f.service.RecordPayment(ctx, invoice.ID, RecordInvoicePaymentRequest{
			Amount:        decimal.NewFromInt(80),
			PaymentMethod: "cash",
		})
		require.Error(t, err)

		payments, err := f.service.ListPayments(ctx, invoice.ID)
		require.NoError(t, err)
		assert.Empty(t, payments)

		debits, err := f.txRepo.SumDebits(ctx)
		require.NoError(t, err)
		assert.True(t, debits.IsZero())
	})

	t.Run("cancel after payment is rejected", func(t *testing.T) {
		paid := f.createInvoice(t, 40, nil, nil)
		_, err := f.service.RecordPayment(ctx, paid.ID, RecordInvoicePaymentRequest{
			Amount:        decimal.NewFromInt(10),
			PaymentMethod: "cash",
		})
		require.NoError(t, err)

		_, err = f.service.CancelInvoice(ctx, paid.ID)
		assert.Error(t, err)
	})
}

func TestInvoiceService_SendAndList(t *testing.T) {
	f := setupBilling(t)
	ctx := context.Background()

	invoice := f.createInvoice(t, 60, nil, nil)
	sent, err := f.service.SendInvoice(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, "sent", sent.Status)

	t.Run("sending twice is rejected", func(t *testing.T) {
		_, err := f.service.SendInvoice(ctx, invoice.ID)
		assert.Error(t, err)
	})

	t.Run("list filters by status", func(t *testing.T) {
		status := billing.InvoiceStatusSent
		page, err := f.service.ListInvoices(ctx, billing.InvoiceFilter{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, int64(1), page.Total)
	})
}
