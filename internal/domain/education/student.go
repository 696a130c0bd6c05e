package education

import (
	"time"

	"github.com/mms/backend/internal/domain/shared"
)

// Student is a learner enrolled in the organization's classes
type Student struct {
	shared.BaseAggregateRoot
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	DateOfBirth  *time.Time `json:"date_of_birth,omitempty"`
	GuardianName string     `json:"guardian_name"`
	Phone        string     `json:"phone"`
	IsActive     bool       `json:"is_active"`
}

// NewStudent creates a student record
func NewStudent(firstName, lastName, guardianName string) (*Student, error) {
	if firstName == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "First name cannot be empty")
	}
	return &Student{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		FirstName:         firstName,
		LastName:          lastName,
		GuardianName:      guardianName,
		IsActive:          true,
	}, nil
}

// FullName returns the student's display name
func (s *Student) FullName() string {
	if s.LastName == "" {
		return s.FirstName
	}
	return s.FirstName + " " + s.LastName
}
