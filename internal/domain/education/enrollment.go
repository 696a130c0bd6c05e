package education

import (
	"time"

	"github.com/google/uuid"

	"github.com/mms/backend/internal/domain/shared"
	"github.com/mms/backend/internal/domain/shared/valueobject"
)

// EnrollmentStatus represents the student's standing in the class
type EnrollmentStatus string

const (
	EnrollmentStatusActive      EnrollmentStatus = "active"
	EnrollmentStatusInactive    EnrollmentStatus = "inactive"
	EnrollmentStatusGraduated   EnrollmentStatus = "graduated"
	EnrollmentStatusTransferred EnrollmentStatus = "transferred"
)

// IsValid checks if the status is a known EnrollmentStatus
func (s EnrollmentStatus) IsValid() bool {
	switch s {
	case EnrollmentStatusActive, EnrollmentStatusInactive,
		EnrollmentStatusGraduated, EnrollmentStatusTransferred:
		return true
	}
	return false
}

// PaymentStatus represents how much of the course fee has been settled
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusExempt  PaymentStatus = "exempt"
)

// StudentEnrollment links a student to a class. One row per
// (student, class) pair; a unique index backs the invariant.
type StudentEnrollment struct {
	shared.BaseAggregateRoot
	StudentID      uuid.UUID        `json:"student_id"`
	ClassID        uuid.UUID        `json:"class_id"`
	EnrollmentDate time.Time        `json:"enrollment_date"`
	Status         EnrollmentStatus `json:"status"`
	PaymentStatus  PaymentStatus    `json:"payment_status"`
}

// NewStudentEnrollment enrolls a student in a class. The initial payment
// status is derived from the class fee.
func NewStudentEnrollment(studentID, classID uuid.UUID, courseFee valueobject.Money) (*StudentEnrollment, error) {
	if studentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STUDENT", "Enrollment requires a student")
	}
	if classID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLASS", "Enrollment requires a class")
	}
	e := &StudentEnrollment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		StudentID:         studentID,
		ClassID:           classID,
		EnrollmentDate:    time.Now(),
		Status:            EnrollmentStatusActive,
	}
	e.RecalculatePaymentStatus(courseFee, valueobject.ZeroINR())
	return e, nil
}

// RecalculatePaymentStatus derives the payment status from the class fee
// and the sum of the enrollment's fee payments. Exemption wins when the
// fee is zero regardless of any recorded payments.
func (e *StudentEnrollment) RecalculatePaymentStatus(courseFee, totalPaid valueobject.Money) {
	switch {
	case courseFee.IsZero():
		e.PaymentStatus = PaymentStatusExempt
	case totalPaid.GreaterThanOrEqual(courseFee):
		e.PaymentStatus = PaymentStatusPaid
	case totalPaid.IsPositive():
		e.PaymentStatus = PaymentStatusPartial
	default:
		e.PaymentStatus = PaymentStatusPending
	}
}

// ChangeStatus moves the enrollment to a new standing
func (e *StudentEnrollment) ChangeStatus(status EnrollmentStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Enrollment status is not valid")
	}
	e.Status = status
	e.IncrementVersion()
	return nil
}
