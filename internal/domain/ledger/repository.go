package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mms/backend/internal/domain/shared"
)

// TransactionFilter defines filtering options for ledger transaction queries
type TransactionFilter struct {
	shared.Filter
	Reference *string    // Filter by external reference
	FromDate  *time.Time // Filter by transaction date range start
	ToDate    *time.Time // Filter by transaction date range end
	AccountID *uuid.UUID // Only transactions touching this account
}

// AccountCategoryRepository defines persistence for account categories
type AccountCategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*AccountCategory, error)

	// FindByType finds the first category of the given type
	FindByType(ctx context.Context, categoryType CategoryType) (*AccountCategory, error)

	FindAll(ctx context.Context) ([]AccountCategory, error)

	Save(ctx context.Context, category *AccountCategory) error
}

// AccountRepository defines persistence for chart-of-accounts entries
type AccountRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)

	// FindByCode finds an account by its unique accounting code
	FindByCode(ctx context.Context, code string) (*Account, error)

	FindAll(ctx context.Context, filter shared.Filter) ([]Account, error)

	// FindActiveByType lists active accounts for one category type
	FindActiveByType(ctx context.Context, categoryType CategoryType) ([]Account, error)

	Save(ctx context.Context, account *Account) error

	ExistsByCode(ctx context.Context, code string) (bool, error)

	Count(ctx context.Context) (int64, error)
}

// TransactionRepository defines persistence for ledger transactions.
// Save persists the transaction together with all of its journal entries
// in one database transaction; a partial posting must never be visible.
type TransactionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error)

	FindByReference(ctx context.Context, reference string) ([]Transaction, error)

	FindAll(ctx context.Context, filter TransactionFilter) ([]Transaction, error)

	Save(ctx context.Context, tx *Transaction) error

	Count(ctx context.Context, filter TransactionFilter) (int64, error)

	// SumDebitByAccount aggregates the debit side for one account
	SumDebitByAccount(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, error)

	// SumCreditByAccount aggregates the credit side for one account
	SumCreditByAccount(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, error)

	// SumDebits and SumCredits aggregate across the whole ledger
	SumDebits(ctx context.Context) (decimal.Decimal, error)
	SumCredits(ctx context.Context) (decimal.Decimal, error)
}
