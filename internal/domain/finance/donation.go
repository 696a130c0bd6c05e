package finance

import (
	"time"

	"github.com/google/uuid"

	"github.com/mms/backend/internal/domain/shared"
	"github.com/mms/backend/internal/domain/shared/valueobject"
)

// DonationType identifies how a donation was given
type DonationType string

const (
	DonationTypeCash   DonationType = "cash"
	DonationTypeCheck  DonationType = "check"
	DonationTypeOnline DonationType = "online"
	DonationTypeOther  DonationType = "other"
)

// IsValid checks if the type is a known DonationType
func (t DonationType) IsValid() bool {
	switch t {
	case DonationTypeCash, DonationTypeCheck, DonationTypeOnline, DonationTypeOther:
		return true
	}
	return false
}

// String returns the string representation of DonationType
func (t DonationType) String() string {
	return string(t)
}

// DonationCategory labels donations for reporting (zakat, sadaqah,
// building fund). Names are unique.
type DonationCategory struct {
	shared.BaseEntity
	Name        string `json:"name"`
	Description string `json:"description"`
}

// NewDonationCategory creates a donation category
func NewDonationCategory(name, description string) (*DonationCategory, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	return &DonationCategory{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Description: description,
	}, nil
}

// Donation records money received from a donor. MemberID is optional so
// anonymous and walk-in donations are representable.
type Donation struct {
	shared.BaseAggregateRoot
	MemberID      *uuid.UUID        `json:"member_id,omitempty"`
	DonorName     string            `json:"donor_name"`
	CategoryID    *uuid.UUID        `json:"category_id,omitempty"`
	Amount        valueobject.Money `json:"amount"`
	DonationType  DonationType      `json:"donation_type"`
	Date          time.Time         `json:"date"`
	ReceiptNumber string            `json:"receipt_number"`
	Notes         string            `json:"notes"`
}

// NewDonation creates a donation record
func NewDonation(
	donorName string,
	memberID, categoryID *uuid.UUID,
	amount valueobject.Money,
	donationType DonationType,
	date time.Time,
	receiptNumber string,
) (*Donation, error) {
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Donation amount must be positive")
	}
	if !donationType.IsValid() {
		return nil, shared.NewDomainError("INVALID_DONATION_TYPE", "Donation type is not valid")
	}
	if receiptNumber == "" {
		return nil, shared.NewDomainError("INVALID_RECEIPT", "Receipt number cannot be empty")
	}
	if date.IsZero() {
		date = time.Now()
	}
	return &Donation{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		MemberID:          memberID,
		DonorName:         donorName,
		CategoryID:        categoryID,
		Amount:            amount,
		DonationType:      donationType,
		Date:              date,
		ReceiptNumber:     receiptNumber,
	}, nil
}
