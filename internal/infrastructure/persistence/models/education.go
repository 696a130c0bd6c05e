package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mms/backend/internal/domain/education"
	"github.com/mms/backend/internal/domain/shared/valueobject"
)

// StudentModel is the persistence model for Student
type StudentModel struct {
	AggregateModel
	FirstName    string     `gorm:"type:varchar(100);not null"`
	LastName     string     `gorm:"type:varchar(100)"`
	DateOfBirth  *time.Time `gorm:""`
	GuardianName string     `gorm:"type:varchar(200)"`
	Phone        string     `gorm:"type:varchar(30)"`
	IsActive     bool       `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (StudentModel) TableName() string {
	return "students"
}

// ToDomain converts the persistence model to a domain Student
func (m *StudentModel) ToDomain() *education.Student {
	return &education.Student{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		FirstName:         m.FirstName,
		LastName:          m.LastName,
		DateOfBirth:       m.DateOfBirth,
		GuardianName:      m.GuardianName,
		Phone:             m.Phone,
		IsActive:          m.IsActive,
	}
}

// StudentModelFromDomain creates a persistence model from a domain Student
func StudentModelFromDomain(s *education.Student) *StudentModel {
	m := &StudentModel{
		FirstName:    s.FirstName,
		LastName:     s.LastName,
		DateOfBirth:  s.DateOfBirth,
		GuardianName: s.GuardianName,
		Phone:        s.Phone,
		IsActive:     s.IsActive,
	}
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	return m
}

// ClassModel is the persistence model for Class
type ClassModel struct {
	AggregateModel
	Name        string          `gorm:"type:varchar(100);not null"`
	GradeLevel  string          `gorm:"type:varchar(50)"`
	Subject     string          `gorm:"type:varchar(100)"`
	CourseFee   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	MaxStudents int             `gorm:"not null;default:0"`
	IsActive    bool            `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (ClassModel) TableName() string {
	return "classes"
}

// ToDomain converts the persistence model to a domain Class
func (m *ClassModel) ToDomain() *education.Class {
	return &education.Class{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		GradeLevel:        m.GradeLevel,
		Subject:           m.Subject,
		CourseFee:         valueobject.NewMoneyINR(m.CourseFee),
		MaxStudents:       m.MaxStudents,
		IsActive:          m.IsActive,
	}
}

// ClassModelFromDomain creates a persistence model from a domain Class
func ClassModelFromDomain(c *education.Class) *ClassModel {
	m := &ClassModel{
		Name:        c.Name,
		GradeLevel:  c.GradeLevel,
		Subject:     c.Subject,
		CourseFee:   c.CourseFee.Amount(),
		MaxStudents: c.MaxStudents,
		IsActive:    c.IsActive,
	}
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	return m
}

// StudentEnrollmentModel is the persistence model for StudentEnrollment.
// The composite unique index enforces one enrollment per student and class.
type StudentEnrollmentModel struct {
	AggregateModel
	StudentID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_enrollment_student_class,priority:1"`
	ClassID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_enrollment_student_class,priority:2;index"`
	EnrollmentDate time.Time `gorm:"not null"`
	Status         string    `gorm:"type:varchar(20);not null;index"`
	PaymentStatus  string    `gorm:"type:varchar(20);not null;index"`
}

// TableName returns the table name for GORM
func (StudentEnrollmentModel) TableName() string {
	return "student_enrollments"
}

// ToDomain converts the persistence model to a domain StudentEnrollment
func (m *StudentEnrollmentModel) ToDomain() *education.StudentEnrollment {
	return &education.StudentEnrollment{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		StudentID:         m.StudentID,
		ClassID:           m.ClassID,
		EnrollmentDate:    m.EnrollmentDate,
		Status:            education.EnrollmentStatus(m.Status),
		PaymentStatus:     education.PaymentStatus(m.PaymentStatus),
	}
}

// StudentEnrollmentModelFromDomain creates a persistence model from a domain StudentEnrollment
func StudentEnrollmentModelFromDomain(e *education.StudentEnrollment) *StudentEnrollmentModel {
	m := &StudentEnrollmentModel{
		StudentID:      e.StudentID,
		ClassID:        e.ClassID,
		EnrollmentDate: e.EnrollmentDate,
		Status:         string(e.Status),
		PaymentStatus:  string(e.PaymentStatus),
	}
	m.FromDomainAggregateRoot(e.BaseAggregateRoot)
	return m
}

// StudentFeePaymentModel is the persistence model for StudentFeePayment
type StudentFeePaymentModel struct {
	AggregateModel
	EnrollmentID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Date            time.Time       `gorm:"not null;index"`
	ReferenceNumber string          `gorm:"type:varchar(100)"`
	Notes           string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (StudentFeePaymentModel) TableName() string {
	return "student_fee_payments"
}

// ToDomain converts the persistence model to a domain StudentFeePayment
func (m *StudentFeePaymentModel) ToDomain() *education.StudentFeePayment {
	return &education.StudentFeePayment{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		EnrollmentID:      m.EnrollmentID,
		Amount:            valueobject.NewMoneyINR(m.Amount),
		Date:              m.Date,
		ReferenceNumber:   m.ReferenceNumber,
		Notes:             m.Notes,
	}
}

// StudentFeePaymentModelFromDomain creates a persistence model from a domain StudentFeePayment
func StudentFeePaymentModelFromDomain(p *education.StudentFeePayment) *StudentFeePaymentModel {
	m := &StudentFeePaymentModel{
		EnrollmentID:    p.EnrollmentID,
		Amount:          p.Amount.Amount(),
		Date:            p.Date,
		ReferenceNumber: p.ReferenceNumber,
		Notes:           p.Notes,
	}
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	return m
}
