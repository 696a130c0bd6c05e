package finance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appledger "github.com/mms/backend/internal/application/ledger"
	"github.com/mms/backend/internal/domain/finance"
	"github.com/mms/backend/internal/domain/ledger"
	"github.com/mms/backend/internal/domain/shared"
	"github.com/mms/backend/internal/domain/shared/valueobject"
	"github.com/mms/backend/internal/infrastructure/config"
)

// ExpenseService provides application-level expense operations.
// Recording an expense writes the expense row and its ledger posting in
// one database transaction.
type ExpenseService struct {
	expenseRepo  finance.ExpenseRepository
	categoryRepo finance.ExpenseCategoryRepository
	posting      *appledger.PostingService
	txManager    shared.TransactionManager
	accounts     config.AccountsConfig
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(
	expenseRepo finance.ExpenseRepository,
	categoryRepo finance.ExpenseCategoryRepository,
	posting *appledger.PostingService,
	txManager shared.TransactionManager,
	accounts config.AccountsConfig,
) *ExpenseService {
	return &ExpenseService{
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
		posting:      posting,
		txManager:    txManager,
		accounts:     accounts,
	}
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID            uuid.UUID       `json:"id"`
	CategoryID    *uuid.UUID      `json:"category_id,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	Description   string          `json:"description"`
	ApprovedBy    string          `json:"approved_by,omitempty"`
	Vendor        string          `json:"vendor,omitempty"`
	ReceiptNumber string          `json:"receipt_number"`
	CreatedAt     time.Time       `json:"created_at"`
}

// RecordExpenseRequest represents a request to record an expense
type RecordExpenseRequest struct {
	CategoryID  *uuid.UUID      `json:"category_id"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description" binding:"required"`
	ApprovedBy  string          `json:"approved_by"`
	Vendor      string          `json:"vendor"`
}

// RecordExpense saves an expense and posts it to the ledger atomically,
// debiting the expense account and crediting cash.
func (s *ExpenseService) RecordExpense(ctx context.Context, req RecordExpenseRequest) (*ExpenseResponse, error) {
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
	}

	var expense *finance.Expense
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		date := req.Date
		if date.IsZero() {
			date = time.Now()
		}

		count, err := s.expenseRepo.CountByMonth(ctx, date)
		if err != nil {
			return err
		}
		receiptNumber := fmt.Sprintf("EXP-%s-%05d", date.Format("200601"), count+1)

		expense, err = finance.NewExpense(
			req.CategoryID,
			valueobject.NewMoneyINR(req.Amount),
			date,
			req.Description,
			req.ApprovedBy,
			req.Vendor,
			receiptNumber,
		)
		if err != nil {
			return err
		}

		if err := s.expenseRepo.Save(ctx, expense); err != nil {
			return err
		}

		_, err = s.posting.PostBalancedEntry(ctx, appledger.PostEntryInput{
			Date:        expense.Date,
			Description: fmt.Sprintf("Expense %s", expense.ReceiptNumber),
			Reference:   expense.ReceiptNumber,
			Debit:       s.accounts.GeneralExpense,
			DebitType:   ledger.CategoryTypeExpense,
			Credit:      s.accounts.Cash,
			CreditType:  ledger.CategoryTypeAsset,
			Amount:      expense.Amount.Amount(),
			Memo:        expense.Description,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	response := toExpenseResponse(expense)
	return &response, nil
}

// GetExpense returns one expense by ID
func (s *ExpenseService) GetExpense(ctx context.Context, id uuid.UUID) (*ExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := toExpenseResponse(expense)
	return &response, nil
}

// ListExpenses lists expenses with filtering
func (s *ExpenseService) ListExpenses(ctx context.Context, filter shared.Filter) ([]ExpenseResponse, error) {
	expenses, err := s.expenseRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]ExpenseResponse, len(expenses))
	for i, expense := range expenses {
		responses[i] = toExpenseResponse(&expense)
	}
	return responses, nil
}

// CreateCategory creates an expense category
func (s *ExpenseService) CreateCategory(ctx context.Context, name, description string) (*finance.ExpenseCategory, error) {
	category, err := finance.NewExpenseCategory(name, description)
	if err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// ListCategories lists all expense categories
func (s *ExpenseService) ListCategories(ctx context.Context) ([]finance.ExpenseCategory, error) {
	return s.categoryRepo.FindAll(ctx)
}

func toExpenseResponse(expense *finance.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:            expense.GetID(),
		CategoryID:    expense.CategoryID,
		Amount:        expense.Amount.Amount(),
		Date:          expense.Date,
		Description:   expense.Description,
		ApprovedBy:    expense.ApprovedBy,
		Vendor:        expense.Vendor,
		ReceiptNumber: expense.ReceiptNumber,
		CreatedAt:     expense.CreatedAt,
	}
}
