package education

import (
	"time"

	"github.com/google/uuid"

	"github.com/mms/backend/internal/domain/shared"
	"github.com/mms/backend/internal/domain/shared/valueobject"
)

// StudentFeePayment records money received against an enrollment's
// course fee. Deleting a payment recomputes the enrollment's payment
// status but leaves any ledger posting in place.
type StudentFeePayment struct {
	shared.BaseAggregateRoot
	EnrollmentID    uuid.UUID         `json:"enrollment_id"`
	Amount          valueobject.Money `json:"amount"`
	Date            time.Time         `json:"date"`
	ReferenceNumber string            `json:"reference_number"`
	Notes           string            `json:"notes"`
}

// NewStudentFeePayment creates a fee payment for the enrollment
func NewStudentFeePayment(enrollmentID uuid.UUID, amount valueobject.Money, date time.Time, referenceNumber string) (*StudentFeePayment, error) {
	if enrollmentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ENROLLMENT", "Fee payment requires an enrollment")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Fee payment amount must be positive")
	}
	if date.IsZero() {
		date = time.Now()
	}
	return &StudentFeePayment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		EnrollmentID:      enrollmentID,
		Amount:            amount,
		Date:              date,
		ReferenceNumber:   referenceNumber,
	}, nil
}
