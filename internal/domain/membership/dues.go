package membership

import (
	"time"

	"github.com/google/uuid"

	"github.com/mms/backend/internal/domain/shared"
	"github.com/mms/backend/internal/domain/shared/valueobject"
)

// MembershipDues is one month's charge for a house. A house has at most
// one dues row per (year, month); a unique index backs the invariant.
type MembershipDues struct {
	shared.BaseAggregateRoot
	HouseID   uuid.UUID         `json:"house_id"`
	Year      int               `json:"year"`
	Month     int               `json:"month"`
	AmountDue valueobject.Money `json:"amount_due"`
	DueDate   time.Time         `json:"due_date"`
	IsPaid    bool              `json:"is_paid"`
	PaidAt    *time.Time        `json:"paid_at,omitempty"`
}

// NewMembershipDues creates the dues charge for a house and period.
// The due date is the first of the charged month.
func NewMembershipDues(houseID uuid.UUID, year, month int, amount valueobject.Money) (*MembershipDues, error) {
	if houseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_HOUSE", "Dues require a house")
	}
	if year < 2000 || year > 2200 {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Dues year is out of range")
	}
	if month < 1 || month > 12 {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Dues month must be between 1 and 12")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Dues amount must be positive")
	}
	return &MembershipDues{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		HouseID:           houseID,
		Year:              year,
		Month:             month,
		AmountDue:         amount,
		DueDate:           time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC),
	}, nil
}

// MarkPaid records the dues as settled at the given time
func (d *MembershipDues) MarkPaid(at time.Time) error {
	if d.IsPaid {
		return shared.NewDomainError("ALREADY_PAID", "Dues are already marked paid")
	}
	d.IsPaid = true
	d.PaidAt = &at
	d.IncrementVersion()
	return nil
}

// IsOverdue reports whether the dues are unpaid past their due date
func (d *MembershipDues) IsOverdue(asOf time.Time) bool {
	return !d.IsPaid && d.DueDate.Before(asOf)
}

// PeriodLabel returns "YYYY-MM" for display and logging
func (d *MembershipDues) PeriodLabel() string {
	return time.Date(d.Year, time.Month(d.Month), 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}
