package membership

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mms/backend/internal/domain/shared"
)

// HouseRepository defines persistence for houses
type HouseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*House, error)

	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]House, error)

	FindAll(ctx context.Context, filter shared.Filter) ([]House, error)

	// FindActive lists houses eligible for dues generation
	FindActive(ctx context.Context) ([]House, error)

	Save(ctx context.Context, house *House) error

	Count(ctx context.Context) (int64, error)
}

// MemberRepository defines persistence for members
type MemberRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Member, error)

	FindByHouse(ctx context.Context, houseID uuid.UUID) ([]Member, error)

	FindAll(ctx context.Context, filter shared.Filter) ([]Member, error)

	Save(ctx context.Context, member *Member) error
}

// DuesRepository defines persistence for monthly dues
type DuesRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*MembershipDues, error)

	// ExistsForPeriod reports whether any dues exist for (year, month);
	// the generation guard
	ExistsForPeriod(ctx context.Context, year, month int) (bool, error)

	// FindUnpaidByHouses lists unpaid dues for the houses, oldest first
	FindUnpaidByHouses(ctx context.Context, houseIDs []uuid.UUID) ([]MembershipDues, error)

	// FindOverdue lists unpaid dues with due date before asOf
	FindOverdue(ctx context.Context, asOf time.Time) ([]MembershipDues, error)

	FindByHouse(ctx context.Context, houseID uuid.UUID, filter shared.Filter) ([]MembershipDues, error)

	Save(ctx context.Context, dues *MembershipDues) error

	// SaveBatch inserts a batch of generated dues in one statement
	SaveBatch(ctx context.Context, dues []*MembershipDues) error
}

// PaymentRepository defines persistence for member payments
type PaymentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*MemberPayment, error)

	FindByHouse(ctx context.Context, houseID uuid.UUID, filter shared.Filter) ([]MemberPayment, error)

	Save(ctx context.Context, payment *MemberPayment) error

	// CountByMonth counts payments recorded in the month of the given
	// time, used for receipt numbering
	CountByMonth(ctx context.Context, at time.Time) (int64, error)
}
