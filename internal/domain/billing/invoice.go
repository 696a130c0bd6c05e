package billing

import (
	"time"

	"github.com/google/uuid"

	"github.com/mms/backend/internal/domain/shared"
	"github.com/mms/backend/internal/domain/shared/valueobject"
)

// InvoiceStatus represents the lifecycle state of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft         InvoiceStatus = "draft"
	InvoiceStatusSent          InvoiceStatus = "sent"
	InvoiceStatusPaid          InvoiceStatus = "paid"
	InvoiceStatusPartiallyPaid InvoiceStatus = "partially_paid"
	InvoiceStatusCancelled     InvoiceStatus = "cancelled"
	InvoiceStatusOverdue       InvoiceStatus = "overdue"
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid,
		InvoiceStatusPartiallyPaid, InvoiceStatusCancelled, InvoiceStatusOverdue:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// InvoiceLineItem is one charge on an invoice. MembershipDuesID links a
// line back to the dues row it bills, when the invoice covers dues.
type InvoiceLineItem struct {
	ID               uuid.UUID         `json:"id"`
	InvoiceID        uuid.UUID         `json:"invoice_id"`
	Description      string            `json:"description"`
	Amount           valueobject.Money `json:"amount"`
	MembershipDuesID *uuid.UUID        `json:"membership_dues_id,omitempty"`
}

// Invoice is a bill issued to a house, shop tenant, or property unit.
// Exactly which link is set decides the revenue account credited when a
// payment against it is posted.
type Invoice struct {
	shared.BaseAggregateRoot
	InvoiceNumber  string            `json:"invoice_number"`
	HouseID        *uuid.UUID        `json:"house_id,omitempty"`
	ShopID         *uuid.UUID        `json:"shop_id,omitempty"`
	PropertyUnitID *uuid.UUID        `json:"property_unit_id,omitempty"`
	DateIssued     time.Time         `json:"date_issued"`
	DueDate        time.Time         `json:"due_date"`
	Status         InvoiceStatus     `json:"status"`
	TotalAmount    valueobject.Money `json:"total_amount"`
	AmountPaid     valueobject.Money `json:"amount_paid"`
	Notes          string            `json:"notes"`
	LineItems      []InvoiceLineItem `json:"line_items"`
}

// NewInvoice creates a draft invoice from its line items. The total is
// always the sum of the lines.
func NewInvoice(invoiceNumber string, dateIssued, dueDate time.Time, lines []InvoiceLineItem) (*Invoice, error) {
	if invoiceNumber == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Invoice number cannot be empty")
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError("INVALID_LINES", "Invoice requires at least one line item")
	}
	total := valueobject.ZeroINR()
	for _, l := range lines {
		if l.Description == "" {
			return nil, shared.NewDomainError("INVALID_LINES", "Line item description cannot be empty")
		}
		if !l.Amount.IsPositive() {
			return nil, shared.NewDomainError("INVALID_AMOUNT", "Line item amount must be positive")
		}
		sum, err := total.Add(l.Amount)
		if err != nil {
			return nil, err
		}
		total = sum
	}
	if dateIssued.IsZero() {
		dateIssued = time.Now()
	}
	if dueDate.IsZero() {
		dueDate = dateIssued.AddDate(0, 1, 0)
	}

	inv := &Invoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		InvoiceNumber:     invoiceNumber,
		DateIssued:        dateIssued,
		DueDate:           dueDate,
		Status:            InvoiceStatusDraft,
		TotalAmount:       total,
		AmountPaid:        valueobject.ZeroINR(),
	}
	for i := range lines {
		lines[i].ID = uuid.New()
		lines[i].InvoiceID = inv.ID
	}
	inv.LineItems = lines
	return inv, nil
}

// BalanceDue is derived, never stored. It goes negative on overpayment.
func (i *Invoice) BalanceDue() valueobject.Money {
	bal, _ := i.TotalAmount.Sub(i.AmountPaid)
	return bal
}

// Send marks a draft invoice as issued to the payer
func (i *Invoice) Send() error {
	if i.Status != InvoiceStatusDraft {
		return shared.ErrInvalidState
	}
	i.Status = InvoiceStatusSent
	i.IncrementVersion()
	return nil
}

// Cancel voids an invoice that has received no payment
func (i *Invoice) Cancel() error {
	if i.Status == InvoiceStatusPaid || i.Status == InvoiceStatusPartiallyPaid {
		return shared.NewDomainError("INVALID_STATE", "Cannot cancel an invoice with payments applied")
	}
	if i.Status == InvoiceStatusCancelled {
		return shared.ErrInvalidState
	}
	i.Status = InvoiceStatusCancelled
	i.IncrementVersion()
	return nil
}

// MarkOverdue flags an unpaid invoice past its due date
func (i *Invoice) MarkOverdue(asOf time.Time) {
	if i.Status == InvoiceStatusSent && i.DueDate.Before(asOf) {
		i.Status = InvoiceStatusOverdue
		i.IncrementVersion()
	}
}

// ApplyPayment increases AmountPaid and moves the status. Overpayment is
// accepted: the balance goes negative and the invoice is still paid.
func (i *Invoice) ApplyPayment(amount valueobject.Money) error {
	if i.Status == InvoiceStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Cannot pay a cancelled invoice")
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	paid, err := i.AmountPaid.Add(amount)
	if err != nil {
		return err
	}
	i.AmountPaid = paid

	if i.AmountPaid.GreaterThanOrEqual(i.TotalAmount) {
		i.Status = InvoiceStatusPaid
	} else if i.AmountPaid.IsPositive() {
		i.Status = InvoiceStatusPartiallyPaid
	}
	i.IncrementVersion()
	return nil
}
