package membership

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	appledger "github.com/mms/backend/internal/application/ledger"
	"github.com/mms/backend/internal/domain/ledger"
	"github.com/mms/backend/internal/domain/membership"
	"github.com/mms/backend/internal/domain/shared"
	"github.com/mms/backend/internal/domain/shared/valueobject"
	"github.com/mms/backend/internal/infrastructure/config"
)

// DuesService provides monthly dues generation, payment application and
// the overdue report. Payments and their ledger postings are written in
// one database transaction.
type DuesService struct {
	houseRepo   membership.HouseRepository
	duesRepo    membership.DuesRepository
	paymentRepo membership.PaymentRepository
	posting     *appledger.PostingService
	txManager   shared.TransactionManager
	accounts    config.AccountsConfig
	duesConfig  config.DuesConfig
	logger      *zap.Logger
}

// NewDuesService creates a new DuesService
func NewDuesService(
	houseRepo membership.HouseRepository,
	duesRepo membership.DuesRepository,
	paymentRepo membership.PaymentRepository,
	posting *appledger.PostingService,
	txManager shared.TransactionManager,
	accounts config.AccountsConfig,
	duesConfig config.DuesConfig,
	logger *zap.Logger,
) *DuesService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DuesService{
		houseRepo:   houseRepo,
		duesRepo:    duesRepo,
		paymentRepo: paymentRepo,
		posting:     posting,
		txManager:   txManager,
		accounts:    accounts,
		duesConfig:  duesConfig,
		logger:      logger,
	}
}

// GenerateDuesRequest represents a request to generate one month's dues
type GenerateDuesRequest struct {
	Year   int             `json:"year" binding:"required"`
	Month  int             `json:"month" binding:"required,min=1,max=12"`
	Amount decimal.Decimal `json:"amount"`
}

// GenerateDuesResponse reports how many dues rows were created
type GenerateDuesResponse struct {
	Year      int             `json:"year"`
	Month     int             `json:"month"`
	Amount    decimal.Decimal `json:"amount"`
	Generated int             `json:"generated"`
}

// RecordPaymentRequest represents a payment from one house
type RecordPaymentRequest struct {
	HouseID       uuid.UUID       `json:"house_id" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	PaymentMethod string          `json:"payment_method" binding:"required"`
	PaymentDate   time.Time       `json:"payment_date"`
	Notes         string          `json:"notes"`
}

// BulkPaymentEntry is one house's payment within a bulk request
type BulkPaymentEntry struct {
	HouseID uuid.UUID       `json:"house_id" binding:"required"`
	Amount  decimal.Decimal `json:"amount" binding:"required"`
}

// BulkApplyPaymentRequest represents payments from many houses collected
// together, e.g. a ward-level collection drive
type BulkApplyPaymentRequest struct {
	Entries       []BulkPaymentEntry `json:"entries" binding:"required,min=1,dive"`
	PaymentMethod string             `json:"payment_method" binding:"required"`
	PaymentDate   time.Time          `json:"payment_date"`
	Notes         string             `json:"notes"`
}

// PaymentResponse represents a member payment in API responses
type PaymentResponse struct {
	ID             uuid.UUID       `json:"id"`
	HouseID        uuid.UUID       `json:"house_id"`
	Amount         decimal.Decimal `json:"amount"`
	PaymentMethod  string          `json:"payment_method"`
	PaymentDate    time.Time       `json:"payment_date"`
	ReceiptNumber  string          `json:"receipt_number"`
	Notes          string          `json:"notes,omitempty"`
	CoveredDuesIDs []uuid.UUID     `json:"covered_dues_ids"`
}

// OverdueHouseReport aggregates one house's unpaid dues
type OverdueHouseReport struct {
	HouseID      uuid.UUID       `json:"house_id"`
	HouseName    string          `json:"house_name"`
	HouseNumber  string          `json:"house_number"`
	Ward         string          `json:"ward,omitempty"`
	MonthsUnpaid int             `json:"months_unpaid"`
	TotalDue     decimal.Decimal `json:"total_due"`
	OldestPeriod string          `json:"oldest_period"`
}

// GenerateMonthlyDues creates one dues row per active house for the
// requested period. A period is generated at most once; re-running for
// the same (year, month) fails before any row is written. The amount
// falls back to the configured default when the request leaves it zero.
func (s *DuesService) GenerateMonthlyDues(ctx context.Context, req GenerateDuesRequest) (*GenerateDuesResponse, error) {
	amount := req.Amount
	if amount.IsZero() {
		amount = s.duesConfig.DefaultMonthlyAmount
	}

	var generated int
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		exists, err := s.duesRepo.ExistsForPeriod(ctx, req.Year, req.Month)
		if err != nil {
			return err
		}
		if exists {
			return shared.NewDomainError("PERIOD_ALREADY_GENERATED",
				fmt.Sprintf("Dues for %04d-%02d have already been generated", req.Year, req.Month))
		}

		houses, err := s.houseRepo.FindActive(ctx)
		if err != nil {
			return err
		}

		batch := make([]*membership.MembershipDues, 0, len(houses))
		for _, house := range houses {
			dues, err := membership.NewMembershipDues(house.GetID(), req.Year, req.Month, valueobject.NewMoneyINR(amount))
			if err != nil {
				return err
			}
			batch = append(batch, dues)
		}
		if len(batch) == 0 {
			return nil
		}
		if err := s.duesRepo.SaveBatch(ctx, batch); err != nil {
			return err
		}
		generated = len(batch)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("monthly dues generated",
		zap.Int("year", req.Year),
		zap.Int("month", req.Month),
		zap.Int("count", generated),
	)
	return &GenerateDuesResponse{
		Year:      req.Year,
		Month:     req.Month,
		Amount:    amount,
		Generated: generated,
	}, nil
}

// RecordPayment applies one house's payment to its unpaid dues, oldest
// first, and posts the full amount to the ledger atomically
func (s *DuesService) RecordPayment(ctx context.Context, req RecordPaymentRequest) (*PaymentResponse, error) {
	var payment *membership.MemberPayment
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.houseRepo.FindByID(ctx, req.HouseID); err != nil {
			return err
		}

		var err error
		payment, err = s.applyHousePayment(ctx, req.HouseID, req.Amount,
			membership.PaymentMethod(req.PaymentMethod), req.PaymentDate, req.Notes)
		if err != nil {
			return err
		}

		_, err = s.posting.PostBalancedEntry(ctx, appledger.PostEntryInput{
			Date:        payment.PaymentDate,
			Description: fmt.Sprintf("Membership dues payment %s", payment.ReceiptNumber),
			Reference:   payment.ReceiptNumber,
			Debit:       s.debitAccountFor(payment.PaymentMethod),
			DebitType:   ledger.CategoryTypeAsset,
			Credit:      s.accounts.DuesRevenue,
			CreditType:  ledger.CategoryTypeRevenue,
			Amount:      payment.Amount.Amount(),
			Memo:        req.Notes,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	response := toPaymentResponse(payment)
	return &response, nil
}

// BulkApplyPayment records payments from many houses in one database
// transaction. Each house gets its own payment row and receipt; the
// ledger receives a single posting for the collected total.
func (s *DuesService) BulkApplyPayment(ctx context.Context, req BulkApplyPaymentRequest) ([]PaymentResponse, error) {
	if len(req.Entries) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Bulk payment requires at least one entry")
	}
	method := membership.PaymentMethod(req.PaymentMethod)
	responses := make([]PaymentResponse, 0, len(req.Entries))

	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		total := decimal.Zero
		for _, entry := range req.Entries {
			if _, err := s.houseRepo.FindByID(ctx, entry.HouseID); err != nil {
				return err
			}
			payment, err := s.applyHousePayment(ctx, entry.HouseID, entry.Amount, method, req.PaymentDate, req.Notes)
			if err != nil {
				return err
			}
			responses = append(responses, toPaymentResponse(payment))
			total = total.Add(entry.Amount)
		}

		date := req.PaymentDate
		if date.IsZero() {
			date = time.Now()
		}
		_, err := s.posting.PostBalancedEntry(ctx, appledger.PostEntryInput{
			Date:        date,
			Description: fmt.Sprintf("Bulk dues collection (%d houses)", len(req.Entries)),
			Reference:   responses[0].ReceiptNumber,
			Debit:       s.debitAccountFor(method),
			DebitType:   ledger.CategoryTypeAsset,
			Credit:      s.accounts.DuesRevenue,
			CreditType:  ledger.CategoryTypeRevenue,
			Amount:      total,
			Memo:        req.Notes,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return responses, nil
}

// OverdueReport lists houses with unpaid dues past their due date,
// aggregated per house
func (s *DuesService) OverdueReport(ctx context.Context, asOf time.Time) ([]OverdueHouseReport, error) {
	if asOf.IsZero() {
		asOf = time.Now()
	}

	overdue, err := s.duesRepo.FindOverdue(ctx, asOf)
	if err != nil {
		return nil, err
	}
	if len(overdue) == 0 {
		return []OverdueHouseReport{}, nil
	}

	type bucket struct {
		months int
		total  decimal.Decimal
		oldest *membership.MembershipDues
	}
	buckets := make(map[uuid.UUID]*bucket)
	order := make([]uuid.UUID, 0)
	for i := range overdue {
		dues := &overdue[i]
		b, ok := buckets[dues.HouseID]
		if !ok {
			b = &bucket{total: decimal.Zero}
			buckets[dues.HouseID] = b
			order = append(order, dues.HouseID)
		}
		b.months++
		b.total = b.total.Add(dues.AmountDue.Amount())
		if b.oldest == nil || dues.DueDate.Before(b.oldest.DueDate) {
			b.oldest = dues
		}
	}

	houses, err := s.houseRepo.FindByIDs(ctx, order)
	if err != nil {
		return nil, err
	}
	houseByID := make(map[uuid.UUID]*membership.House, len(houses))
	for i := range houses {
		houseByID[houses[i].GetID()] = &houses[i]
	}

	report := make([]OverdueHouseReport, 0, len(order))
	for _, houseID := range order {
		b := buckets[houseID]
		entry := OverdueHouseReport{
			HouseID:      houseID,
			MonthsUnpaid: b.months,
			TotalDue:     b.total,
			OldestPeriod: b.oldest.PeriodLabel(),
		}
		if house, ok := houseByID[houseID]; ok {
			entry.HouseName = house.HouseName
			entry.HouseNumber = house.HouseNumber
			entry.Ward = house.Ward
		}
		report = append(report, entry)
	}
	return report, nil
}

// applyHousePayment marks the house's unpaid dues as paid, oldest first,
// as far as the amount reaches, then saves the payment with a fresh
// receipt number. Any remainder beyond whole dues rows stays recorded on
// the payment as an advance.
func (s *DuesService) applyHousePayment(
	ctx context.Context,
	houseID uuid.UUID,
	amount decimal.Decimal,
	method membership.PaymentMethod,
	paymentDate time.Time,
	notes string,
) (*membership.MemberPayment, error) {
	date := paymentDate
	if date.IsZero() {
		date = time.Now()
	}

	unpaid, err := s.duesRepo.FindUnpaidByHouses(ctx, []uuid.UUID{houseID})
	if err != nil {
		return nil, err
	}

	remaining := amount
	covered := make([]uuid.UUID, 0, len(unpaid))
	for i := range unpaid {
		dues := &unpaid[i]
		if remaining.LessThan(dues.AmountDue.Amount()) {
			break
		}
		if err := dues.MarkPaid(date); err != nil {
			return nil, err
		}
		if err := s.duesRepo.Save(ctx, dues); err != nil {
			return nil, err
		}
		remaining = remaining.Sub(dues.AmountDue.Amount())
		covered = append(covered, dues.GetID())
	}

	count, err := s.paymentRepo.CountByMonth(ctx, date)
	if err != nil {
		return nil, err
	}
	receiptNumber := fmt.Sprintf("RCP-%s-%05d", date.Format("200601"), count+1)

	payment, err := membership.NewMemberPayment(houseID, valueobject.NewMoneyINR(amount), method, date, receiptNumber, covered)
	if err != nil {
		return nil, err
	}
	payment.Notes = notes
	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *DuesService) debitAccountFor(method membership.PaymentMethod) config.AccountEntry {
	if method == membership.PaymentMethodCash {
		return s.accounts.Cash
	}
	return s.accounts.Bank
}

func toPaymentResponse(payment *membership.MemberPayment) PaymentResponse {
	return PaymentResponse{
		ID:             payment.GetID(),
		HouseID:        payment.HouseID,
		Amount:         payment.Amount.Amount(),
		PaymentMethod:  payment.PaymentMethod.String(),
		PaymentDate:    payment.PaymentDate,
		ReceiptNumber:  payment.ReceiptNumber,
		Notes:          payment.Notes,
		CoveredDuesIDs: payment.CoveredDuesIDs,
	}
}
