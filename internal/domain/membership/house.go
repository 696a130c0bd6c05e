package membership

import (
	"github.com/mms/backend/internal/domain/shared"
)

// House is the billing unit for membership dues. Dues and member
// payments attach to the house, not to individual members.
type House struct {
	shared.BaseAggregateRoot
	HouseName   string `json:"house_name"`
	HouseNumber string `json:"house_number"`
	Ward        string `json:"ward"`
	Address     string `json:"address"`
	IsActive    bool   `json:"is_active"`
}

// NewHouse creates a new house record
func NewHouse(houseName, houseNumber, ward string) (*House, error) {
	if houseName == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "House name cannot be empty")
	}
	if houseNumber == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "House number cannot be empty")
	}
	return &House{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		HouseName:         houseName,
		HouseNumber:       houseNumber,
		Ward:              ward,
		IsActive:          true,
	}, nil
}

// Deactivate marks the house inactive; dues generation skips it
func (h *House) Deactivate() {
	h.IsActive = false
	h.IncrementVersion()
}
