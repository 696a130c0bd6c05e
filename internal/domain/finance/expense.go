package finance

import (
	"time"

	"github.com/google/uuid"

	"github.com/mms/backend/internal/domain/shared"
	"github.com/mms/backend/internal/domain/shared/valueobject"
)

// ExpenseCategory labels expenses for reporting (utilities, salaries,
// maintenance). Names are unique.
type ExpenseCategory struct {
	shared.BaseEntity
	Name        string `json:"name"`
	Description string `json:"description"`
}

// NewExpenseCategory creates an expense category
func NewExpenseCategory(name, description string) (*ExpenseCategory, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	return &ExpenseCategory{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Description: description,
	}, nil
}

// Expense records money paid out by the organization
type Expense struct {
	shared.BaseAggregateRoot
	CategoryID    *uuid.UUID        `json:"category_id,omitempty"`
	Amount        valueobject.Money `json:"amount"`
	Date          time.Time         `json:"date"`
	Description   string            `json:"description"`
	ApprovedBy    string            `json:"approved_by"`
	Vendor        string            `json:"vendor"`
	ReceiptNumber string            `json:"receipt_number"`
}

// NewExpense creates an expense record
func NewExpense(
	categoryID *uuid.UUID,
	amount valueobject.Money,
	date time.Time,
	description, approvedBy, vendor, receiptNumber string,
) (*Expense, error) {
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Expense amount must be positive")
	}
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Expense description cannot be empty")
	}
	if receiptNumber == "" {
		return nil, shared.NewDomainError("INVALID_RECEIPT", "Receipt number cannot be empty")
	}
	if date.IsZero() {
		date = time.Now()
	}
	return &Expense{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CategoryID:        categoryID,
		Amount:            amount,
		Date:              date,
		Description:       description,
		ApprovedBy:        approvedBy,
		Vendor:            vendor,
		ReceiptNumber:     receiptNumber,
	}, nil
}
