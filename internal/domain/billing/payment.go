package billing

import (
	"time"

	"github.com/google/uuid"

	"github.com/mms/backend/internal/domain/membership"
	"github.com/mms/backend/internal/domain/shared"
	"github.com/mms/backend/internal/domain/shared/valueobject"
)

// BillingPayment records money received against one invoice. Payments
// are append-only; deleting a payment does not rewind the invoice or
// the ledger.
type BillingPayment struct {
	shared.BaseAggregateRoot
	InvoiceID      uuid.UUID                `json:"invoice_id"`
	Amount         valueobject.Money        `json:"amount"`
	PaymentDate    time.Time                `json:"payment_date"`
	PaymentMethod  membership.PaymentMethod `json:"payment_method"`
	TransactionRef string                   `json:"transaction_ref"`
	Notes          string                   `json:"notes"`
}

// NewBillingPayment creates a payment against the given invoice
func NewBillingPayment(
	invoiceID uuid.UUID,
	amount valueobject.Money,
	method membership.PaymentMethod,
	paymentDate time.Time,
	transactionRef string,
) (*BillingPayment, error) {
	if invoiceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INVOICE", "Payment requires an invoice")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method is not valid")
	}
	if paymentDate.IsZero() {
		paymentDate = time.Now()
	}
	return &BillingPayment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		InvoiceID:         invoiceID,
		Amount:            amount,
		PaymentDate:       paymentDate,
		PaymentMethod:     method,
		TransactionRef:    transactionRef,
	}, nil
}
