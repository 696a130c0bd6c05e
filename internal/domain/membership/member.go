package membership

import (
	"github.com/google/uuid"

	"github.com/mms/backend/internal/domain/shared"
)

// Member is an individual belonging to a house
type Member struct {
	shared.BaseAggregateRoot
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	HouseID   uuid.UUID `json:"house_id"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
}

// NewMember creates a new member of the given house
func NewMember(firstName, lastName string, houseID uuid.UUID) (*Member, error) {
	if firstName == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "First name cannot be empty")
	}
	if houseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_HOUSE", "Member requires a house")
	}
	return &Member{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		FirstName:         firstName,
		LastName:          lastName,
		HouseID:           houseID,
		IsActive:          true,
	}, nil
}

// FullName returns the member's display name
func (m *Member) FullName() string {
	if m.LastName == "" {
		return m.FirstName
	}
	return m.FirstName + " " + m.LastName
}

// Deactivate marks the member inactive
func (m *Member) Deactivate() {
	m.IsActive = false
	m.IncrementVersion()
}
