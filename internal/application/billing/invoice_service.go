package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appledger "github.com/mms/backend/internal/application/ledger"
	"github.com/mms/backend/internal/domain/billing"
	"github.com/mms/backend/internal/domain/ledger"
	"github.com/mms/backend/internal/domain/membership"
	"github.com/mms/backend/internal/domain/shared"
	"github.com/mms/backend/internal/domain/shared/valueobject"
	"github.com/mms/backend/internal/infrastructure/config"
)

// InvoiceService provides application-level invoice operations.
// Recording a payment updates the invoice, writes the payment row and
// posts to the ledger in one database transaction.
type InvoiceService struct {
	invoiceRepo billing.InvoiceRepository
	paymentRepo billing.BillingPaymentRepository
	shopRepo    billing.ShopRepository
	posting     *appledger.PostingService
	txManager   shared.TransactionManager
	accounts    config.AccountsConfig
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	invoiceRepo billing.InvoiceRepository,
	paymentRepo billing.BillingPaymentRepository,
	shopRepo billing.ShopRepository,
	posting *appledger.PostingService,
	txManager shared.TransactionManager,
	accounts config.AccountsConfig,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		shopRepo:    shopRepo,
		posting:     posting,
		txManager:   txManager,
		accounts:    accounts,
	}
}

// InvoiceLineItemResponse represents one invoice line in API responses
type InvoiceLineItemResponse struct {
	ID               uuid.UUID       `json:"id"`
	Description      string          `json:"description"`
	Amount           decimal.Decimal `json:"amount"`
	MembershipDuesID *uuid.UUID      `json:"membership_dues_id,omitempty"`
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID             uuid.UUID                 `json:"id"`
	InvoiceNumber  string                    `json:"invoice_number"`
	HouseID        *uuid.UUID                `json:"house_id,omitempty"`
	ShopID         *uuid.UUID                `json:"shop_id,omitempty"`
	PropertyUnitID *uuid.UUID                `json:"property_unit_id,omitempty"`
	DateIssued     time.Time                 `json:"date_issued"`
	DueDate        time.Time                 `json:"due_date"`
	Status         string                    `json:"status"`
	TotalAmount    decimal.Decimal           `json:"total_amount"`
	AmountPaid     decimal.Decimal           `json:"amount_paid"`
	BalanceDue     decimal.Decimal           `json:"balance_due"`
	Notes          string                    `json:"notes,omitempty"`
	LineItems      []InvoiceLineItemResponse `json:"line_items"`
	Version        int                       `json:"version"`
}

// InvoiceLineInput is one charge on a new invoice
type InvoiceLineInput struct {
	Description      string          `json:"description" binding:"required"`
	Amount           decimal.Decimal `json:"amount" binding:"required"`
	MembershipDuesID *uuid.UUID      `json:"membership_dues_id"`
}

// CreateInvoiceRequest represents a request to create an invoice
type CreateInvoiceRequest struct {
	HouseID        *uuid.UUID         `json:"house_id"`
	ShopID         *uuid.UUID         `json:"shop_id"`
	PropertyUnitID *uuid.UUID         `json:"property_unit_id"`
	DateIssued     time.Time          `json:"date_issued"`
	DueDate        time.Time          `json:"due_date"`
	Notes          string             `json:"notes"`
	Lines          []InvoiceLineInput `json:"lines" binding:"required,min=1,dive"`
}

// RecordInvoicePaymentRequest represents a payment against an invoice
type RecordInvoicePaymentRequest struct {
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	PaymentMethod  string          `json:"payment_method" binding:"required"`
	PaymentDate    time.Time       `json:"payment_date"`
	TransactionRef string          `json:"transaction_ref"`
	Notes          string          `json:"notes"`
}

// CreateInvoice creates a draft invoice numbered INV-YYYYMM-NNNNN
func (s *InvoiceService) CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	var invoice *billing.Invoice
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		dateIssued := req.DateIssued
		if dateIssued.IsZero() {
			dateIssued = time.Now()
		}

		count, err := s.invoiceRepo.CountByMonth(ctx, dateIssued)
		if err != nil {
			return err
		}
		invoiceNumber := fmt.Sprintf("INV-%s-%05d", dateIssued.Format("200601"), count+1)

		lines := make([]billing.InvoiceLineItem, len(req.Lines))
		for i, line := range req.Lines {
			lines[i] = billing.InvoiceLineItem{
				Description:      line.Description,
				Amount:           valueobject.NewMoneyINR(line.Amount),
				MembershipDuesID: line.MembershipDuesID,
			}
		}

		invoice, err = billing.NewInvoice(invoiceNumber, dateIssued, req.DueDate, lines)
		if err != nil {
			return err
		}
		invoice.HouseID = req.HouseID
		invoice.ShopID = req.ShopID
		invoice.PropertyUnitID = req.PropertyUnitID
		invoice.Notes = req.Notes

		return s.invoiceRepo.Save(ctx, invoice)
	})
	if err != nil {
		return nil, err
	}

	response := toInvoiceResponse(invoice)
	return &response, nil
}

// SendInvoice marks a draft invoice as issued
func (s *InvoiceService) SendInvoice(ctx context.Context, id uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	expectedVersion := invoice.GetVersion()
	if err := invoice.Send(); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.SaveWithLock(ctx, invoice, expectedVersion); err != nil {
		return nil, err
	}
	response := toInvoiceResponse(invoice)
	return &response, nil
}

// CancelInvoice voids an invoice that has no payments applied
func (s *InvoiceService) CancelInvoice(ctx context.Context, id uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	expectedVersion := invoice.GetVersion()
	if err := invoice.Cancel(); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.SaveWithLock(ctx, invoice, expectedVersion); err != nil {
		return nil, err
	}
	response := toInvoiceResponse(invoice)
	return &response, nil
}

// RecordPayment applies a payment to the invoice, saves the payment row
// and posts the ledger entry atomically. The credited revenue account
// follows the invoice link: dues revenue for houses, rental revenue for
// shops and property units, donation revenue otherwise.
func (s *InvoiceService) RecordPayment(ctx context.Context, invoiceID uuid.UUID, req RecordInvoicePaymentRequest) (*InvoiceResponse, error) {
	var invoice *billing.Invoice
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		invoice, err = s.invoiceRepo.FindByID(ctx, invoiceID)
		if err != nil {
			return err
		}

		amount := valueobject.NewMoneyINR(req.Amount)
		expectedVersion := invoice.GetVersion()
		if err := invoice.ApplyPayment(amount); err != nil {
			return err
		}
		if err := s.invoiceRepo.SaveWithLock(ctx, invoice, expectedVersion); err != nil {
			return err
		}

		payment, err := billing.NewBillingPayment(
			invoice.GetID(),
			amount,
			membership.PaymentMethod(req.PaymentMethod),
			req.PaymentDate,
			req.TransactionRef,
		)
		if err != nil {
			return err
		}
		payment.Notes = req.Notes
		if err := s.paymentRepo.Save(ctx, payment); err != nil {
			return err
		}

		_, err = s.posting.PostBalancedEntry(ctx, appledger.PostEntryInput{
			Date:        payment.PaymentDate,
			Description: fmt.Sprintf("Payment for invoice %s", invoice.InvoiceNumber),
			Reference:   invoice.InvoiceNumber,
			Debit:       s.debitAccountFor(payment.PaymentMethod),
			DebitType:   ledger.CategoryTypeAsset,
			Credit:      s.creditAccountFor(invoice),
			CreditType:  ledger.CategoryTypeRevenue,
			Amount:      payment.Amount.Amount(),
			Memo:        req.TransactionRef,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	response := toInvoiceResponse(invoice)
	return &response, nil
}

// GetInvoice returns one invoice with its line items
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := toInvoiceResponse(invoice)
	return &response, nil
}

// ListInvoices lists invoices with pagination
func (s *InvoiceService) ListInvoices(ctx context.Context, filter billing.InvoiceFilter) (*shared.Paginated[InvoiceResponse], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	invoices, err := s.invoiceRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.invoiceRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]InvoiceResponse, len(invoices))
	for i, invoice := range invoices {
		responses[i] = toInvoiceResponse(&invoice)
	}
	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// ListPayments lists payments applied to one invoice
func (s *InvoiceService) ListPayments(ctx context.Context, invoiceID uuid.UUID) ([]billing.BillingPayment, error) {
	return s.paymentRepo.FindByInvoice(ctx, invoiceID)
}

// CreateShop registers a shop tenancy
func (s *InvoiceService) CreateShop(ctx context.Context, name, tenantName string, monthlyRent decimal.Decimal) (*billing.Shop, error) {
	shop, err := billing.NewShop(name, tenantName, valueobject.NewMoneyINR(monthlyRent))
	if err != nil {
		return nil, err
	}
	if err := s.shopRepo.Save(ctx, shop); err != nil {
		return nil, err
	}
	return shop, nil
}

// ListShops lists shops with filtering
func (s *InvoiceService) ListShops(ctx context.Context, filter shared.Filter) ([]billing.Shop, error) {
	return s.shopRepo.FindAll(ctx, filter)
}

func (s *InvoiceService) debitAccountFor(method membership.PaymentMethod) config.AccountEntry {
	if method == membership.PaymentMethodCash {
		return s.accounts.Cash
	}
	return s.accounts.Bank
}

func (s *InvoiceService) creditAccountFor(invoice *billing.Invoice) config.AccountEntry {
	switch {
	case invoice.HouseID != nil:
		return s.accounts.DuesRevenue
	case invoice.ShopID != nil, invoice.PropertyUnitID != nil:
		return s.accounts.RentalRevenue
	default:
		return s.accounts.DonationRevenue
	}
}

func toInvoiceResponse(invoice *billing.Invoice) InvoiceResponse {
	lines := make([]InvoiceLineItemResponse, len(invoice.LineItems))
	for i, line := range invoice.LineItems {
		lines[i] = InvoiceLineItemResponse{
			ID:               line.ID,
			Description:      line.Description,
			Amount:           line.Amount.Amount(),
			MembershipDuesID: line.MembershipDuesID,
		}
	}
	return InvoiceResponse{
		ID:             invoice.GetID(),
		InvoiceNumber:  invoice.InvoiceNumber,
		HouseID:        invoice.HouseID,
		ShopID:         invoice.ShopID,
		PropertyUnitID: invoice.PropertyUnitID,
		DateIssued:     invoice.DateIssued,
		DueDate:        invoice.DueDate,
		Status:         invoice.Status.String(),
		TotalAmount:    invoice.TotalAmount.Amount(),
		AmountPaid:     invoice.AmountPaid.Amount(),
		BalanceDue:     invoice.BalanceDue().Amount(),
		Notes:          invoice.Notes,
		LineItems:      lines,
		Version:        invoice.GetVersion(),
	}
}
