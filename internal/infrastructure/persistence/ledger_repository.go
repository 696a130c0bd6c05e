package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mms/backend/internal/domain/ledger"
	"github.com/mms/backend/internal/domain/shared"
	"github.com/mms/backend/internal/infrastructure/persistence/models"
)

// GormAccountCategoryRepository implements ledger.AccountCategoryRepository using GORM
type GormAccountCategoryRepository struct {
	db *gorm.DB
}

// NewGormAccountCategoryRepository creates a new GormAccountCategoryRepository
func NewGormAccountCategoryRepository(db *gorm.DB) *GormAccountCategoryRepository {
	return &GormAccountCategoryRepository{db: db}
}

// FindByID finds an account category by its ID
func (r *GormAccountCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.AccountCategory, error) {
	var model models.AccountCategoryModel
	if err := session(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByType finds the first category of the given type
func (r *GormAccountCategoryRepository) FindByType(ctx context.Context, categoryType ledger.CategoryType) (*ledger.AccountCategory, error) {
	var model models.AccountCategoryModel
	if err := session(ctx, r.db).
		Where("category_type = ?", categoryType.String()).
		Order("created_at ASC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists all account categories
func (r *GormAccountCategoryRepository) FindAll(ctx context.Context) ([]ledger.AccountCategory, error) {
	var categoryModels []models.AccountCategoryModel
	if err := session(ctx, r.db).Order("category_type ASC, name ASC").Find(&categoryModels).Error; err != nil {
		return nil, err
	}
	categories := make([]ledger.AccountCategory, len(categoryModels))
	for i, model := range categoryModels {
		categories[i] = *model.ToDomain()
	}
	return categories, nil
}

// Save creates or updates an account category
func (r *GormAccountCategoryRepository) Save(ctx context.Context, category *ledger.AccountCategory) error {
	model := models.AccountCategoryModelFromDomain(category)
	return session(ctx, r.db).Save(model).Error
}

// GormAccountRepository implements ledger.AccountRepository using GORM
type GormAccountRepository struct {
	db *gorm.DB
}

// NewGormAccountRepository creates a new GormAccountRepository
func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

// FindByID finds an account by its ID
func (r *GormAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Account, error) {
	var model models.AccountModel
	if err := session(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds an account by its unique accounting code
func (r *GormAccountRepository) FindByCode(ctx context.Context, code string) (*ledger.Account, error) {
	var model models.AccountModel
	if err := session(ctx, r.db).First(&model, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists accounts with filtering
func (r *GormAccountRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ledger.Account, error) {
	var accountModels []models.AccountModel
	query := session(ctx, r.db).Model(&models.AccountModel{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("(code LIKE ? OR name LIKE ?)", pattern, pattern)
	}

	sortField := ValidateSortField(filter.OrderBy, AccountSortFields, "code")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize)
		if offset := (filter.Page - 1) * filter.PageSize; offset > 0 {
			query = query.Offset(offset)
		}
	}

	if err := query.Find(&accountModels).Error; err != nil {
		return nil, err
	}
	accounts := make([]ledger.Account, len(accountModels))
	for i, model := range accountModels {
		accounts[i] = *model.ToDomain()
	}
	return accounts, nil
}

// FindActiveByType lists active accounts for one category type
func (r *GormAccountRepository) FindActiveByType(ctx context.Context, categoryType ledger.CategoryType) ([]ledger.Account, error) {
	var accountModels []models.AccountModel
	if err := session(ctx, r.db).
		Where("category_type = ? AND is_active = ?", categoryType.String(), true).
		Order("code ASC").
		Find(&accountModels).Error; err != nil {
		return nil, err
	}
	accounts := make([]ledger.Account, len(accountModels))
	for i, model := range accountModels {
		accounts[i] = *model.ToDomain()
	}
	return accounts, nil
}

// Save creates or updates an account
func (r *GormAccountRepository) Save(ctx context.Context, account *ledger.Account) error {
	model := models.AccountModelFromDomain(account)
	return session(ctx, r.db).Save(model).Error
}

// ExistsByCode checks whether an account code is taken
func (r *GormAccountRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := session(ctx, r.db).Model(&models.AccountModel{}).
		Where("code = ?", code).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Count counts all accounts
func (r *GormAccountRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := session(ctx, r.db).Model(&models.AccountModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GormTransactionRepository implements ledger.TransactionRepository using GORM
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GormTransactionRepository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// FindByID finds a transaction with its journal entries
func (r *GormTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	var model models.TransactionModel
	if err := session(ctx, r.db).Preload("Entries").First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByReference finds all transactions sharing an external reference
func (r *GormTransactionRepository) FindByReference(ctx context.Context, reference string) ([]ledger.Transaction, error) {
	var txModels []models.TransactionModel
	if err := session(ctx, r.db).Preload("Entries").
		Where("reference = ?", reference).
		Order("date ASC").
		Find(&txModels).Error; err != nil {
		return nil, err
	}
	txs := make([]ledger.Transaction, len(txModels))
	for i, model := range txModels {
		txs[i] = *model.ToDomain()
	}
	return txs, nil
}

// FindAll lists transactions with filtering
func (r *GormTransactionRepository) FindAll(ctx context.Context, filter ledger.TransactionFilter) ([]ledger.Transaction, error) {
	var txModels []models.TransactionModel
	query := r.applyFilter(session(ctx, r.db).Model(&models.TransactionModel{}).Preload("Entries"), filter)

	sortField := ValidateSortField(filter.OrderBy, TransactionSortFields, "date")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize)
		if offset := (filter.Page - 1) * filter.PageSize; offset > 0 {
			query = query.Offset(offset)
		}
	}

	if err := query.Find(&txModels).Error; err != nil {
		return nil, err
	}
	txs := make([]ledger.Transaction, len(txModels))
	for i, model := range txModels {
		txs[i] = *model.ToDomain()
	}
	return txs, nil
}

// Save persists the transaction with all of its journal entries. The
// entries ride along via the association so a partial posting is not
// possible.
func (r *GormTransactionRepository) Save(ctx context.Context, tx *ledger.Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}
	model := models.TransactionModelFromDomain(tx)
	return session(ctx, r.db).Create(model).Error
}

// Count counts transactions matching the filter
func (r *GormTransactionRepository) Count(ctx context.Context, filter ledger.TransactionFilter) (int64, error) {
	var count int64
	query := r.applyFilter(session(ctx, r.db).Model(&models.TransactionModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormTransactionRepository) applyFilter(query *gorm.DB, filter ledger.TransactionFilter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("description LIKE ?", "%"+filter.Search+"%")
	}
	if filter.Reference != nil {
		query = query.Where("reference = ?", *filter.Reference)
	}
	if filter.FromDate != nil {
		query = query.Where("date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("date <= ?", *filter.ToDate)
	}
	if filter.AccountID != nil {
		query = query.Where("id IN (?)",
			query.Session(&gorm.Session{NewDB: true}).
				Model(&models.JournalEntryModel{}).
				Select("transaction_id").
				Where("account_id = ?", *filter.AccountID))
	}
	return query
}

// SumDebitByAccount aggregates the debit side for one account
func (r *GormTransactionRepository) SumDebitByAccount(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, error) {
	return r.sumEntryColumn(ctx, "debit", &accountID)
}

// SumCreditByAccount aggregates the credit side for one account
func (r *GormTransactionRepository) SumCreditByAccount(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, error) {
	return r.sumEntryColumn(ctx, "credit", &accountID)
}

// SumDebits aggregates the debit side across the whole ledger
func (r *GormTransactionRepository) SumDebits(ctx context.Context) (decimal.Decimal, error) {
	return r.sumEntryColumn(ctx, "debit", nil)
}

// SumCredits aggregates the credit side across the whole ledger
func (r *GormTransactionRepository) SumCredits(ctx context.Context) (decimal.Decimal, error) {
	return r.sumEntryColumn(ctx, "credit", nil)
}

func (r *GormTransactionRepository) sumEntryColumn(ctx context.Context, column string, accountID *uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	query := session(ctx, r.db).Model(&models.JournalEntryModel{}).
		Select(fmt.Sprintf("COALESCE(SUM(%s), 0) as total", column))
	if accountID != nil {
		query = query.Where("account_id = ?", *accountID)
	}
	if err := query.Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}
