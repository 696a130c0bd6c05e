package ledger

import (
	"github.com/google/uuid"

	"github.com/mms/backend/internal/domain/shared"
)

// CategoryType classifies an account within the chart of accounts
type CategoryType string

const (
	CategoryTypeAsset     CategoryType = "asset"
	CategoryTypeLiability CategoryType = "liability"
	CategoryTypeEquity    CategoryType = "equity"
	CategoryTypeRevenue   CategoryType = "revenue"
	CategoryTypeExpense   CategoryType = "expense"
)

// IsValid checks if the type is a valid CategoryType
func (t CategoryType) IsValid() bool {
	switch t {
	case CategoryTypeAsset, CategoryTypeLiability, CategoryTypeEquity,
		CategoryTypeRevenue, CategoryTypeExpense:
		return true
	}
	return false
}

// String returns the string representation of CategoryType
func (t CategoryType) String() string {
	return string(t)
}

// DisplayName returns a human-readable name for the category type
func (t CategoryType) DisplayName() string {
	switch t {
	case CategoryTypeAsset:
		return "Assets"
	case CategoryTypeLiability:
		return "Liabilities"
	case CategoryTypeEquity:
		return "Equity"
	case CategoryTypeRevenue:
		return "Revenue"
	case CategoryTypeExpense:
		return "Expenses"
	default:
		return string(t)
	}
}

// NormalBalanceIsDebit reports which side increases accounts of this type.
// Assets and expenses grow on the debit side; the rest on the credit side.
func (t CategoryType) NormalBalanceIsDebit() bool {
	return t == CategoryTypeAsset || t == CategoryTypeExpense
}

// AccountCategory groups accounts by their role in the chart of accounts.
// Static reference data.
type AccountCategory struct {
	shared.BaseEntity
	Name         string       `json:"name"`
	CategoryType CategoryType `json:"category_type"`
	Description  string       `json:"description"`
}

// NewAccountCategory creates a new account category
func NewAccountCategory(name string, categoryType CategoryType) (*AccountCategory, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if !categoryType.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY_TYPE", "Account category type is not valid")
	}
	return &AccountCategory{
		BaseEntity:   shared.NewBaseEntity(),
		Name:         name,
		CategoryType: categoryType,
	}, nil
}

// Account is a leaf of the chart of accounts (e.g. "1001 Main Cash").
// Permanent reference data, looked up by its unique code.
type Account struct {
	shared.BaseEntity
	Code         string       `json:"code"`
	Name         string       `json:"name"`
	CategoryID   uuid.UUID    `json:"category_id"`
	CategoryType CategoryType `json:"category_type"`
	Description  string       `json:"description"`
	IsActive     bool         `json:"is_active"`
}

// NewAccount creates a new account under the given category
func NewAccount(code, name string, category *AccountCategory) (*Account, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Account code cannot be empty")
	}
	if len(code) > 20 {
		return nil, shared.NewDomainError("INVALID_CODE", "Account code cannot exceed 20 characters")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Account name cannot be empty")
	}
	if category == nil {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Account category is required")
	}
	return &Account{
		BaseEntity:   shared.NewBaseEntity(),
		Code:         code,
		Name:         name,
		CategoryID:   category.ID,
		CategoryType: category.CategoryType,
		IsActive:     true,
	}, nil
}

// Deactivate marks the account inactive; it stays resolvable by code so
// historical journal entries keep their reference
func (a *Account) Deactivate() {
	a.IsActive = false
}
