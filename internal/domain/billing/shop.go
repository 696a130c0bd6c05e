package billing

import (
	"github.com/mms/backend/internal/domain/shared"
	"github.com/mms/backend/internal/domain/shared/valueobject"
)

// Shop is a rented commercial unit owned by the organization. Invoices
// linked to a shop bill its rent, so their payments credit rental
// revenue rather than dues revenue.
type Shop struct {
	shared.BaseAggregateRoot
	Name        string            `json:"name"`
	TenantName  string            `json:"tenant_name"`
	MonthlyRent valueobject.Money `json:"monthly_rent"`
	IsActive    bool              `json:"is_active"`
}

// NewShop creates a shop record with its rent
func NewShop(name, tenantName string, monthlyRent valueobject.Money) (*Shop, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Shop name cannot be empty")
	}
	if monthlyRent.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Monthly rent cannot be negative")
	}
	return &Shop{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		TenantName:        tenantName,
		MonthlyRent:       monthlyRent,
		IsActive:          true,
	}, nil
}

// Deactivate marks the shop vacant; invoicing skips it
func (s *Shop) Deactivate() {
	s.IsActive = false
	s.IncrementVersion()
}
