package membership

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
	"github.com/mms/backend/internal/domain/ledger"
	"github.com/mms/backend/internal/domain/membership"
	"github.com/mms/backend/internal/infrastructure/config"
	"github.com/mms/backend/internal/infrastructure/persistence"
	"github.com/mms/backend/tests/testutil"
)

type membershipFixture struct {
	db           *gorm.DB
	duesService  *DuesService
	houseService *HouseService
	duesRepo     *persistence.GormDuesRepository
	posting      *appledger.PostingService
	txRepo       *persistence.GormTransactionRepository
	accounts     config.AccountsConfig
}

func setupMembership(t *testing.T) *membershipFixture {
	db := testutil.SetupTestDB(t)
	houseRepo := persistence.NewGormHouseRepository(db)
	memberRepo := persistence.NewGormMemberRepository(db)
	duesRepo := persistence.NewGormDuesRepository(db)
	paymentRepo := persistence.NewGormMemberPaymentRepository(db)
	accountRepo := persistence.NewGormAccountRepository(db)
	categoryRepo := persistence.NewGormAccountCategoryRepository(db)
	txRepo := persistence.NewGormTransactionRepository(db)
	posting := appledger.NewPostingService(accountRepo, categoryRepo, txRepo)
	accounts := config.AccountsConfig{
		Cash:        config.AccountEntry{Code: "1001", Name: "Main Cash"},
		Bank:        config.AccountEntry{Code: "1002", Name: "Bank Account"},
		DuesRevenue: config.AccountEntry{Code: "4002", Name: "Membership Dues Revenue"},
	}

	return &membershipFixture{
		db: db,
		duesService: NewDuesService(
			houseRepo, duesRepo, paymentRepo, posting,
			persistence.NewTxManager(db),
			accounts,
			config.DuesConfig{DefaultMonthlyAmount: decimal.NewFromInt(10)},
			nil,
		),
		houseService: NewHouseService(houseRepo, memberRepo, duesRepo),
		duesRepo:     duesRepo,
		posting:      posting,
		txRepo:       txRepo,
		accounts:     accounts,
	}
}

func (f *membershipFixture) createHouse(t *testing.T, name, number string) *membership.House {
	t.Helper()
	house, err := f.houseService.CreateHouse(context.Background(), CreateHouseRequest{
		HouseName:   name,
		HouseNumber: number,
		Ward:        "North",
	})
	require.NoError(t, err)
	return house
}

func TestDuesService_GenerateMonthlyDues(t *testing.T) {
	f := setupMembership(t)
	ctx := context.Background()

	f.createHouse(t, "Nadakkal House", "H-01")
	f.createHouse(t, "Puthen Veedu", "H-02")

	t.Run("creates one dues row per active house", func(t *testing.T) {
		resp, err := f.duesService.GenerateMonthlyDues(ctx, GenerateDuesRequest{Year: 2026, Month: 1})
		require.NoError(t, err)
		assert.Equal(t, 2, resp.Generated)
		assert.True(t, resp.Amount.Equal(decimal.NewFromInt(10)))
	})

	t.Run("re-running the same period is rejected", func(t *testing.T) {
		_, err := f.duesService.GenerateMonthlyDues(ctx, GenerateDuesRequest{Year: 2026, Month: 1})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already been generated")
	})

	t.Run("deactivated houses are skipped", func(t *testing.T) {
		inactive := f.createHouse(t, "Old House", "H-03")
		require.NoError(t, f.houseService.DeactivateHouse(ctx, inactive.GetID()))

		resp, err := f.duesService.GenerateMonthlyDues(ctx, GenerateDuesRequest{Year: 2026, Month: 2})
		require.NoError(t, err)
		assert.Equal(t, 2, resp.Generated)
	})

	t.Run("explicit amount overrides the default", func(t *testing.T) {
		resp, err := f.duesService.GenerateMonthlyDues(ctx, GenerateDuesRequest{
			Year: 2026, Month: 3, Amount: decimal.NewFromInt(25),
		})
		require.NoError(t, err)
		assert.True(t, resp.Amount.Equal(decimal.NewFromInt(25)))
	})
}

func TestDuesService_RecordPayment(t *testing.T) {
	f := setupMembership(t)
	ctx := context.Background()

	house := f.createHouse(t, "Nadakkal House", "H-01")
	for month := 1; month <= 3; month++ {
		_, err := f.duesService.GenerateMonthlyDues(ctx, GenerateDuesRequest{Year: 2026, Month: month})
		require.NoError(t, err)
	}

	t.Run("payment settles oldest dues first", func(t *testing.T) {
		payment, err := f.duesService.RecordPayment(ctx, RecordPaymentRequest{
			HouseID:       house.GetID(),
			Amount:        decimal.NewFromInt(20),
			PaymentMethod: "cash",
			PaymentDate:   time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
		assert.Equal(t, "RCP-202603-00001", payment.ReceiptNumber)
		assert.Len(t, payment.CoveredDuesIDs, 2)

		unpaid, err := f.duesRepo.FindUnpaidByHouses(ctx, []uuid.UUID{house.GetID()})
		require.NoError(t, err)
		require.Len(t, unpaid, 1)
		assert.Equal(t, 3, unpaid[0].Month)
	})

	t.Run("payment is posted to dues revenue", func(t *testing.T) {
		balance, err := f.posting.AccountBalance(ctx, f.accounts.DuesRevenue.Code)
		require.NoError(t, err)
		assert.True(t, balance.Equal(decimal.NewFromInt(20)))
	})

	t.Run("unknown house fails without side effects", func(t *testing.T) {
		_, err := f.duesService.RecordPayment(ctx, RecordPaymentRequest{
			HouseID:       uuid.New(),
			Amount:        decimal.NewFromInt(10),
			PaymentMethod: "cash",
		})
		assert.Error(t, err)
	})
}

func TestDuesService_BulkApplyPayment(t *testing.T) {
	f := setupMembership(t)
	ctx := context.Background()

	houseA := f.createHouse(t, "House A", "H-01")
	houseB := f.createHouse(t, "House B", "H-02")
	_, err := f.duesService.GenerateMonthlyDues(ctx, GenerateDuesRequest{Year: 2026, Month: 1})
	require.NoError(t, err)

	responses, err := f.duesService.BulkApplyPayment(ctx, BulkApplyPaymentRequest{
		Entries: []BulkPaymentEntry{
			{HouseID: houseA.GetID(), Amount: decimal.NewFromInt(10)},
			{HouseID: houseB.GetID(), Amount: decimal.NewFromInt(10)},
		},
		PaymentMethod: "cash",
		PaymentDate:   time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, responses, 2)
	assert.Len(t, responses[0].CoveredDuesIDs, 1)
	assert.Len(t, responses[1].CoveredDuesIDs, 1)

	t.Run("each payment gets its own receipt", func(t *testing.T) {
		assert.NotEqual(t, responses[0].ReceiptNumber, responses[1].ReceiptNumber)
	})

	t.Run("the ledger receives one posting for the total", func(t *testing.T) {
		count, err := f.txRepo.Count(ctx, ledger.TransactionFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		balance, err := f.posting.AccountBalance(ctx, f.accounts.Cash.Code)
		require.NoError(t, err)
		assert.True(t, balance.Equal(decimal.NewFromInt(20)))
	})

	t.Run("a bad entry rolls back the whole batch", func(t *testing.T) {
		_, err := f.duesService.GenerateMonthlyDues(ctx, GenerateDuesRequest{Year: 2026, Month: 2})
		require.NoError(t, err)

		_, err = f.duesService.BulkApplyPayment(ctx, BulkApplyPaymentRequest{
			Entries: []BulkPaymentEntry{
				{HouseID: houseA.GetID(), Amount: decimal.NewFromInt(10)},
				{HouseID: uuid.New(), Amount: decimal.NewFromInt(10)},
			},
			PaymentMethod: "cash",
		})
		require.Error(t, err)

		unpaid, err := f.duesRepo.FindUnpaidByHouses(ctx, []uuid.UUID{houseA.GetID()})
		require.NoError(t, err)
		assert.Len(t, unpaid, 1)
	})
}

func TestDuesService_OverdueReport(t *testing.T) {
	f := setupMembership(t)
	ctx := context.Background()

	houseA := f.createHouse(t, "House A", "H-01")
	houseB := f.createHouse(t, "House B", "H-02")
	for month := 1; month <= 2; month++ {
		_, err := f.duesService.GenerateMonthlyDues(ctx, GenerateDuesRequest{Year: 2026, Month: month})
		require.NoError(t, err)
	}

	// House B clears everything; house A stays behind.
	_, err := f.duesService.RecordPayment(ctx, RecordPaymentRequest{
		HouseID:       houseB.GetID(),
		Amount:        decimal.NewFromInt(20),
		PaymentMethod: "cash",
	})
	require.NoError(t, err)

	report, err := f.duesService.OverdueReport(ctx, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, report, 1)
	assert.Equal(t, houseA.GetID(), report[0].HouseID)
	assert.Equal(t, "House A", report[0].HouseName)
	assert.Equal(t, 2, report[0].MonthsUnpaid)
	assert.True(t, report[0].TotalDue.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, "2026-01", report[0].OldestPeriod)

	t.Run("empty when nothing is overdue", func(t *testing.T) {
		report, err := f.duesService.OverdueReport(ctx, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Empty(t, report)
	})
}
