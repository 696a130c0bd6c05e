package education

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appledger "github.com/mms/backend/internal/application/ledger"
	"github.com/mms/backend/internal/domain/education"
	"github.com/mms/backend/internal/domain/ledger"
	"github.com/mms/backend/internal/domain/shared"
	"github.com/mms/backend/internal/domain/shared/valueobject"
	"github.com/mms/backend/internal/infrastructure/config"
)

// EnrollmentService provides class enrollment and fee payment
// operations. A fee payment and its ledger posting are written in one
// database transaction, and the enrollment's payment status is always
// recomputed from the stored payment total.
type EnrollmentService struct {
	studentRepo    education.StudentRepository
	classRepo      education.ClassRepository
	enrollmentRepo education.EnrollmentRepository
	feePaymentRepo education.FeePaymentRepository
	posting        *appledger.PostingService
	txManager      shared.TransactionManager
	accounts       config.AccountsConfig
}

// NewEnrollmentService creates a new EnrollmentService
func NewEnrollmentService(
	studentRepo education.StudentRepository,
	classRepo education.ClassRepository,
	enrollmentRepo education.EnrollmentRepository,
	feePaymentRepo education.FeePaymentRepository,
	posting *appledger.PostingService,
	txManager shared.TransactionManager,
	accounts config.AccountsConfig,
) *EnrollmentService {
	return &EnrollmentService{
		studentRepo:    studentRepo,
		classRepo:      classRepo,
		enrollmentRepo: enrollmentRepo,
		feePaymentRepo: feePaymentRepo,
		posting:        posting,
		txManager:      txManager,
		accounts:       accounts,
	}
}

// EnrollmentResponse represents an enrollment in API responses
type EnrollmentResponse struct {
	ID             uuid.UUID       `json:"id"`
	StudentID      uuid.UUID       `json:"student_id"`
	ClassID        uuid.UUID       `json:"class_id"`
	EnrollmentDate time.Time       `json:"enrollment_date"`
	Status         string          `json:"status"`
	PaymentStatus  string          `json:"payment_status"`
	CourseFee      decimal.Decimal `json:"course_fee"`
	TotalPaid      decimal.Decimal `json:"total_paid"`
}

// EnrollRequest represents a request to enroll a student in a class
type EnrollRequest struct {
	StudentID uuid.UUID `json:"student_id" binding:"required"`
	ClassID   uuid.UUID `json:"class_id" binding:"required"`
}

// RecordFeePaymentRequest represents a fee payment for an enrollment
type RecordFeePaymentRequest struct {
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	Date            time.Time       `json:"date"`
	ReferenceNumber string          `json:"reference_number"`
	Notes           string          `json:"notes"`
}

// Enroll enrolls a student in a class. The class must be active and
// under capacity, and a student enrolls in a class at most once. Free
// classes yield fee-exempt enrollments.
func (s *EnrollmentService) Enroll(ctx context.Context, req EnrollRequest) (*EnrollmentResponse, error) {
	student, err := s.studentRepo.FindByID(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	class, err := s.classRepo.FindByID(ctx, req.ClassID)
	if err != nil {
		return nil, err
	}
	if !class.IsActive {
		return nil, shared.NewDomainError("CLASS_CLOSED", "Class is not open for enrollment")
	}

	existing, err := s.enrollmentRepo.FindByStudentAndClass(ctx, student.GetID(), class.GetID())
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_ENROLLED", "Student is already enrolled in this class")
	}

	if class.MaxStudents > 0 {
		active, err := s.enrollmentRepo.CountActiveByClass(ctx, class.GetID())
		if err != nil {
			return nil, err
		}
		if active >= int64(class.MaxStudents) {
			return nil, shared.NewDomainError("CLASS_FULL", "Class has reached its maximum enrollment")
		}
	}

	enrollment, err := education.NewStudentEnrollment(student.GetID(), class.GetID(), class.CourseFee)
	if err != nil {
		return nil, err
	}
	if err := s.enrollmentRepo.Save(ctx, enrollment); err != nil {
		return nil, err
	}

	response := toEnrollmentResponse(enrollment, class.CourseFee.Amount(), decimal.Zero)
	return &response, nil
}

// RecordFeePayment saves the payment, recomputes the enrollment's
// payment status from the stored total and posts the amount to the
// ledger, all in one database transaction
func (s *EnrollmentService) RecordFeePayment(ctx context.Context, enrollmentID uuid.UUID, req RecordFeePaymentRequest) (*EnrollmentResponse, error) {
	var (
		enrollment *education.StudentEnrollment
		class      *education.Class
		totalPaid  decimal.Decimal
	)
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		enrollment, err = s.enrollmentRepo.FindByID(ctx, enrollmentID)
		if err != nil {
			return err
		}
		class, err = s.classRepo.FindByID(ctx, enrollment.ClassID)
		if err != nil {
			return err
		}

		payment, err := education.NewStudentFeePayment(
			enrollment.GetID(),
			valueobject.NewMoneyINR(req.Amount),
			req.Date,
			req.ReferenceNumber,
		)
		if err != nil {
			return err
		}
		payment.Notes = req.Notes
		if err := s.feePaymentRepo.Save(ctx, payment); err != nil {
			return err
		}

		totalPaid, err = s.feePaymentRepo.SumByEnrollment(ctx, enrollment.GetID())
		if err != nil {
			return err
		}
		enrollment.RecalculatePaymentStatus(class.CourseFee, valueobject.NewMoneyINR(totalPaid))
		if err := s.enrollmentRepo.Save(ctx, enrollment); err != nil {
			return err
		}

		_, err = s.posting.PostBalancedEntry(ctx, appledger.PostEntryInput{
			Date:        payment.Date,
			Description: fmt.Sprintf("Course fee payment for %s", class.Name),
			Reference:   payment.ReferenceNumber,
			Debit:       s.accounts.Cash,
			DebitType:   ledger.CategoryTypeAsset,
			Credit:      s.accounts.EducationRevenue,
			CreditType:  ledger.CategoryTypeRevenue,
			Amount:      payment.Amount.Amount(),
			Memo:        req.Notes,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	response := toEnrollmentResponse(enrollment, class.CourseFee.Amount(), totalPaid)
	return &response, nil
}

// DeleteFeePayment removes the payment and recomputes the enrollment's
// payment status. The ledger posting made when the payment was recorded
// stays in place; corrections are posted as new entries, never unwound.
func (s *EnrollmentService) DeleteFeePayment(ctx context.Context, paymentID uuid.UUID) (*EnrollmentResponse, error) {
	var (
		enrollment *education.StudentEnrollment
		class      *education.Class
		totalPaid  decimal.Decimal
	)
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		payment, err := s.feePaymentRepo.FindByID(ctx, paymentID)
		if err != nil {
			return err
		}
		enrollment, err = s.enrollmentRepo.FindByID(ctx, payment.EnrollmentID)
		if err != nil {
			return err
		}
		class, err = s.classRepo.FindByID(ctx, enrollment.ClassID)
		if err != nil {
			return err
		}

		if err := s.feePaymentRepo.Delete(ctx, payment.GetID()); err != nil {
			return err
		}

		totalPaid, err = s.feePaymentRepo.SumByEnrollment(ctx, enrollment.GetID())
		if err != nil {
			return err
		}
		enrollment.RecalculatePaymentStatus(class.CourseFee, valueobject.NewMoneyINR(totalPaid))
		return s.enrollmentRepo.Save(ctx, enrollment)
	})
	if err != nil {
		return nil, err
	}

	response := toEnrollmentResponse(enrollment, class.CourseFee.Amount(), totalPaid)
	return &response, nil
}

// GetEnrollment returns one enrollment with its fee totals
func (s *EnrollmentService) GetEnrollment(ctx context.Context, id uuid.UUID) (*EnrollmentResponse, error) {
	enrollment, err := s.enrollmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	class, err := s.classRepo.FindByID(ctx, enrollment.ClassID)
	if err != nil {
		return nil, err
	}
	totalPaid, err := s.feePaymentRepo.SumByEnrollment(ctx, enrollment.GetID())
	if err != nil {
		return nil, err
	}
	response := toEnrollmentResponse(enrollment, class.CourseFee.Amount(), totalPaid)
	return &response, nil
}

// ListClassEnrollments lists enrollments of a class
func (s *EnrollmentService) ListClassEnrollments(ctx context.Context, classID uuid.UUID) ([]education.StudentEnrollment, error) {
	return s.enrollmentRepo.FindByClass(ctx, classID)
}

// ListStudentEnrollments lists enrollments of a student
func (s *EnrollmentService) ListStudentEnrollments(ctx context.Context, studentID uuid.UUID) ([]education.StudentEnrollment, error) {
	return s.enrollmentRepo.FindByStudent(ctx, studentID)
}

// ListFeePayments lists fee payments of one enrollment
func (s *EnrollmentService) ListFeePayments(ctx context.Context, enrollmentID uuid.UUID) ([]education.StudentFeePayment, error) {
	return s.feePaymentRepo.FindByEnrollment(ctx, enrollmentID)
}

// CreateStudent registers a student
func (s *EnrollmentService) CreateStudent(ctx context.Context, firstName, lastName, guardianName, phone string) (*education.Student, error) {
	student, err := education.NewStudent(firstName, lastName, guardianName)
	if err != nil {
		return nil, err
	}
	student.Phone = phone
	if err := s.studentRepo.Save(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// ListStudents lists students with filtering
func (s *EnrollmentService) ListStudents(ctx context.Context, filter shared.Filter) ([]education.Student, error) {
	return s.studentRepo.FindAll(ctx, filter)
}

// CreateClass creates a class offering
func (s *EnrollmentService) CreateClass(ctx context.Context, name, gradeLevel, subject string, courseFee decimal.Decimal, maxStudents int) (*education.Class, error) {
	class, err := education.NewClass(name, gradeLevel, subject, valueobject.NewMoneyINR(courseFee), maxStudents)
	if err != nil {
		return nil, err
	}
	if err := s.classRepo.Save(ctx, class); err != nil {
		return nil, err
	}
	return class, nil
}

// ListClasses lists classes with filtering
func (s *EnrollmentService) ListClasses(ctx context.Context, filter shared.Filter) ([]education.Class, error) {
	return s.classRepo.FindAll(ctx, filter)
}

func toEnrollmentResponse(enrollment *education.StudentEnrollment, courseFee, totalPaid decimal.Decimal) EnrollmentResponse {
	return EnrollmentResponse{
		ID:             enrollment.GetID(),
		StudentID:      enrollment.StudentID,
		ClassID:        enrollment.ClassID,
		EnrollmentDate: enrollment.EnrollmentDate,
		Status:         string(enrollment.Status),
		PaymentStatus:  string(enrollment.PaymentStatus),
		CourseFee:      courseFee,
		TotalPaid:      totalPaid,
	}
}
