package membership

import (
	"time"

	"github.com/google/uuid"

	"github.com/mms/backend/internal/domain/shared"
	"github.com/mms/backend/internal/domain/shared/valueobject"
)

// PaymentMethod identifies how a member payment was received
type PaymentMethod string

const (
	PaymentMethodCash  PaymentMethod = "cash"
	PaymentMethodBank  PaymentMethod = "bank"
	PaymentMethodUPI   PaymentMethod = "upi"
	PaymentMethodCheck PaymentMethod = "check"
)

// IsValid checks if the method is a known PaymentMethod
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodBank, PaymentMethodUPI, PaymentMethodCheck:
		return true
	}
	return false
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// MemberPayment records money received from a house against its dues.
// CoveredDuesIDs lists the dues rows this payment settled.
type MemberPayment struct {
	shared.BaseAggregateRoot
	HouseID        uuid.UUID         `json:"house_id"`
	Amount         valueobject.Money `json:"amount"`
	PaymentMethod  PaymentMethod     `json:"payment_method"`
	PaymentDate    time.Time         `json:"payment_date"`
	ReceiptNumber  string            `json:"receipt_number"`
	Notes          string            `json:"notes"`
	CoveredDuesIDs []uuid.UUID       `json:"covered_dues_ids"`
}

// NewMemberPayment creates a payment covering the given dues
func NewMemberPayment(
	houseID uuid.UUID,
	amount valueobject.Money,
	method PaymentMethod,
	paymentDate time.Time,
	receiptNumber string,
	coveredDuesIDs []uuid.UUID,
) (*MemberPayment, error) {
	if houseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_HOUSE", "Payment requires a house")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method is not valid")
	}
	if receiptNumber == "" {
		return nil, shared.NewDomainError("INVALID_RECEIPT", "Receipt number cannot be empty")
	}
	if paymentDate.IsZero() {
		paymentDate = time.Now()
	}
	return &MemberPayment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		HouseID:           houseID,
		Amount:            amount,
		PaymentMethod:     method,
		PaymentDate:       paymentDate,
		ReceiptNumber:     receiptNumber,
		CoveredDuesIDs:    coveredDuesIDs,
	}, nil
}
