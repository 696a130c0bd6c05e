package education

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mms/backend/internal/domain/shared"
)

// StudentRepository defines persistence for students
type StudentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Student, error)

	FindAll(ctx context.Context, filter shared.Filter) ([]Student, error)

	Save(ctx context.Context, student *Student) error
}

// ClassRepository defines persistence for classes
type ClassRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Class, error)

	FindAll(ctx context.Context, filter shared.Filter) ([]Class, error)

	FindActive(ctx context.Context) ([]Class, error)

	Save(ctx context.Context, class *Class) error
}

// EnrollmentRepository defines persistence for student enrollments
type EnrollmentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*StudentEnrollment, error)

	// FindByStudentAndClass resolves the unique (student, class) pair
	FindByStudentAndClass(ctx context.Context, studentID, classID uuid.UUID) (*StudentEnrollment, error)

	FindByClass(ctx context.Context, classID uuid.UUID) ([]StudentEnrollment, error)

	FindByStudent(ctx context.Context, studentID uuid.UUID) ([]StudentEnrollment, error)

	// CountActiveByClass counts active enrollments, the capacity check
	CountActiveByClass(ctx context.Context, classID uuid.UUID) (int64, error)

	Save(ctx context.Context, enrollment *StudentEnrollment) error
}

// FeePaymentRepository defines persistence for student fee payments
type FeePaymentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*StudentFeePayment, error)

	FindByEnrollment(ctx context.Context, enrollmentID uuid.UUID) ([]StudentFeePayment, error)

	// SumByEnrollment totals all payments against one enrollment
	SumByEnrollment(ctx context.Context, enrollmentID uuid.UUID) (decimal.Decimal, error)

	Save(ctx context.Context, payment *StudentFeePayment) error

	Delete(ctx context.Context, id uuid.UUID) error
}
