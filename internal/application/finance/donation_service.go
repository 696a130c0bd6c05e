package finance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appledger "github.com/mms/backend/internal/application/ledger"
	"github.com/mms/backend/internal/domain/finance"
	"github.com/mms/backend/internal/domain/ledger"
	"github.com/mms/backend/internal/domain/shared"
	"github.com/mms/backend/internal/domain/shared/valueobject"
	"github.com/mms/backend/internal/infrastructure/config"
)

// DonationService provides application-level donation operations.
// Recording a donation writes the donation row and its ledger posting in
// one database transaction.
type DonationService struct {
	donationRepo finance.DonationRepository
	categoryRepo finance.DonationCategoryRepository
	posting      *appledger.PostingService
	txManager    shared.TransactionManager
	accounts     config.AccountsConfig
}

// NewDonationService creates a new DonationService
func NewDonationService(
	donationRepo finance.DonationRepository,
	categoryRepo finance.DonationCategoryRepository,
	posting *appledger.PostingService,
	txManager shared.TransactionManager,
	accounts config.AccountsConfig,
) *DonationService {
	return &DonationService{
		donationRepo: donationRepo,
		categoryRepo: categoryRepo,
		posting:      posting,
		txManager:    txManager,
		accounts:     accounts,
	}
}

// DonationResponse represents a donation in API responses
type DonationResponse struct {
	ID            uuid.UUID       `json:"id"`
	MemberID      *uuid.UUID      `json:"member_id,omitempty"`
	DonorName     string          `json:"donor_name"`
	CategoryID    *uuid.UUID      `json:"category_id,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	DonationType  string          `json:"donation_type"`
	Date          time.Time       `json:"date"`
	ReceiptNumber string          `json:"receipt_number"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// RecordDonationRequest represents a request to record a donation
type RecordDonationRequest struct {
	DonorName    string          `json:"donor_name"`
	MemberID     *uuid.UUID      `json:"member_id"`
	CategoryID   *uuid.UUID      `json:"category_id"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	DonationType string          `json:"donation_type" binding:"required"`
	Date         time.Time       `json:"date"`
	Notes        string          `json:"notes"`
}

// RecordDonation saves a donation and posts it to the ledger atomically.
// Cash donations debit the cash account; check and online donations debit
// the bank account.
func (s *DonationService) RecordDonation(ctx context.Context, req RecordDonationRequest) (*DonationResponse, error) {
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
	}

	var donation *finance.Donation
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		date := req.Date
		if date.IsZero() {
			date = time.Now()
		}

		count, err := s.donationRepo.CountByMonth(ctx, date)
		if err != nil {
			return err
		}
		receiptNumber := fmt.Sprintf("DON-%s-%05d", date.Format("200601"), count+1)

		donation, err = finance.NewDonation(
			req.DonorName,
			req.MemberID,
			req.CategoryID,
			valueobject.NewMoneyINR(req.Amount),
			finance.DonationType(req.DonationType),
			date,
			receiptNumber,
		)
		if err != nil {
			return err
		}
		donation.Notes = req.Notes

		if err := s.donationRepo.Save(ctx, donation); err != nil {
			return err
		}

		_, err = s.posting.PostBalancedEntry(ctx, appledger.PostEntryInput{
			Date:        donation.Date,
			Description: fmt.Sprintf("Donation %s", donation.ReceiptNumber),
			Reference:   donation.ReceiptNumber,
			Debit:       s.debitAccountFor(donation.DonationType),
			DebitType:   ledger.CategoryTypeAsset,
			Credit:      s.accounts.DonationRevenue,
			CreditType:  ledger.CategoryTypeRevenue,
			Amount:      donation.Amount.Amount(),
			Memo:        donation.DonorName,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	response := toDonationResponse(donation)
	return &response, nil
}

// GetDonation returns one donation by ID
func (s *DonationService) GetDonation(ctx context.Context, id uuid.UUID) (*DonationResponse, error) {
	donation, err := s.donationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := toDonationResponse(donation)
	return &response, nil
}

// ListDonations lists donations with filtering
func (s *DonationService) ListDonations(ctx context.Context, filter shared.Filter) ([]DonationResponse, error) {
	donations, err := s.donationRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]DonationResponse, len(donations))
	for i, donation := range donations {
		responses[i] = toDonationResponse(&donation)
	}
	return responses, nil
}

// CreateCategory creates a donation category
func (s *DonationService) CreateCategory(ctx context.Context, name, description string) (*finance.DonationCategory, error) {
	category, err := finance.NewDonationCategory(name, description)
	if err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// ListCategories lists all donation categories
func (s *DonationService) ListCategories(ctx context.Context) ([]finance.DonationCategory, error) {
	return s.categoryRepo.FindAll(ctx)
}

func (s *DonationService) debitAccountFor(donationType finance.DonationType) config.AccountEntry {
	switch donationType {
	case finance.DonationTypeCheck, finance.DonationTypeOnline:
		return s.accounts.Bank
	default:
		return s.accounts.Cash
	}
}

func toDonationResponse(donation *finance.Donation) DonationResponse {
	return DonationResponse{
		ID:            donation.GetID(),
		MemberID:      donation.MemberID,
		DonorName:     donation.DonorName,
		CategoryID:    donation.CategoryID,
		Amount:        donation.Amount.Amount(),
		DonationType:  donation.DonationType.String(),
		Date:          donation.Date,
		ReceiptNumber: donation.ReceiptNumber,
		Notes:         donation.Notes,
		CreatedAt:     donation.CreatedAt,
	}
}
