package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mms/backend/internal/domain/shared"
)

// DonationRepository defines persistence for donations
type DonationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Donation, error)

	FindAll(ctx context.Context, filter shared.Filter) ([]Donation, error)

	Save(ctx context.Context, donation *Donation) error

	// CountByMonth counts donations recorded in the month of the given
	// time, used for receipt numbering
	CountByMonth(ctx context.Context, at time.Time) (int64, error)

	// SumByDateRange totals donation amounts between from and to inclusive
	SumByDateRange(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
}

// ExpenseRepository defines persistence for expenses
type ExpenseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Expense, error)

	FindAll(ctx context.Context, filter shared.Filter) ([]Expense, error)

	Save(ctx context.Context, expense *Expense) error

	CountByMonth(ctx context.Context, at time.Time) (int64, error)

	SumByDateRange(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
}

// DonationCategoryRepository defines persistence for donation categories
type DonationCategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*DonationCategory, error)

	FindByName(ctx context.Context, name string) (*DonationCategory, error)

	FindAll(ctx context.Context) ([]DonationCategory, error)

	Save(ctx context.Context, category *DonationCategory) error
}

// ExpenseCategoryRepository defines persistence for expense categories
type ExpenseCategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ExpenseCategory, error)

	FindByName(ctx context.Context, name string) (*ExpenseCategory, error)

	FindAll(ctx context.Context) ([]ExpenseCategory, error)

	Save(ctx context.Context, category *ExpenseCategory) error
}
