package education

import (
	"github.com/mms/backend/internal/domain/shared"
	"github.com/mms/backend/internal/domain/shared/valueobject"
)

// Class is a course offering with a fee. A zero fee marks the class as
// free; enrollments in it are fee-exempt.
type Class struct {
	shared.BaseAggregateRoot
	Name        string            `json:"name"`
	GradeLevel  string            `json:"grade_level"`
	Subject     string            `json:"subject"`
	CourseFee   valueobject.Money `json:"course_fee"`
	MaxStudents int               `json:"max_students"`
	IsActive    bool              `json:"is_active"`
}

// NewClass creates a class offering
func NewClass(name, gradeLevel, subject string, courseFee valueobject.Money, maxStudents int) (*Class, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Class name cannot be empty")
	}
	if courseFee.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Course fee cannot be negative")
	}
	if maxStudents < 0 {
		return nil, shared.NewDomainError("INVALID_CAPACITY", "Max students cannot be negative")
	}
	return &Class{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		GradeLevel:        gradeLevel,
		Subject:           subject,
		CourseFee:         courseFee,
		MaxStudents:       maxStudents,
		IsActive:          true,
	}, nil
}

// IsFree reports whether the class charges no fee
func (c *Class) IsFree() bool {
	return c.CourseFee.IsZero()
}

// Deactivate closes the class to new enrollments
func (c *Class) Deactivate() {
	c.IsActive = false
	c.IncrementVersion()
}
