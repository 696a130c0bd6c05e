package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mms/backend/internal/domain/finance"
	"github.com/mms/backend/internal/domain/shared"
	"github.com/mms/backend/internal/infrastructure/persistence/models"
)

// GormDonationRepository implements finance.DonationRepository using GORM
type GormDonationRepository struct {
	db *gorm.DB
}

// NewGormDonationRepository creates a new GormDonationRepository
func NewGormDonationRepository(db *gorm.DB) *GormDonationRepository {
	return &GormDonationRepository{db: db}
}

// FindByID finds a donation by its ID
func (r *GormDonationRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Donation, error) {
	var model models.DonationModel
	if err := session(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists donations with filtering
func (r *GormDonationRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.Donation, error) {
	var donationModels []models.DonationModel
	query := session(ctx, r.db).Model(&models.DonationModel{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("(receipt_number LIKE ? OR donor_name LIKE ?)", pattern, pattern)
	}

	sortField := ValidateSortField(filter.OrderBy, DonationSortFields, "date")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize)
		if offset := (filter.Page - 1) * filter.PageSize; offset > 0 {
			query = query.Offset(offset)
		}
	}

	if err := query.Find(&donationModels).Error; err != nil {
		return nil, err
	}
	donations := make([]finance.Donation, len(donationModels))
	for i, model := range donationModels {
		donations[i] = *model.ToDomain()
	}
	return donations, nil
}

// Save creates or updates a donation
func (r *GormDonationRepository) Save(ctx context.Context, donation *finance.Donation) error {
	model := models.DonationModelFromDomain(donation)
	return session(ctx, r.db).Save(model).Error
}

// CountByMonth counts donations recorded in the month of the given time
func (r *GormDonationRepository) CountByMonth(ctx context.Context, at time.Time) (int64, error) {
	var count int64
	yearMonth := at.Format("200601")
	if err := session(ctx, r.db).Model(&models.DonationModel{}).
		Where("receipt_number LIKE ?", fmt.Sprintf("DON-%s-%%", yearMonth)).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumByDateRange totals donation amounts between from and to inclusive
func (r *GormDonationRepository) SumByDateRange(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := session(ctx, r.db).Model(&models.DonationModel{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("date >= ? AND date <= ?", from, to).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// GormExpenseRepository implements finance.ExpenseRepository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// FindByID finds an expense by its ID
func (r *GormExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Expense, error) {
	var model models.ExpenseModel
	if err := session(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists expenses with filtering
func (r *GormExpenseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.Expense, error) {
	var expenseModels []models.ExpenseModel
	query := session(ctx, r.db).Model(&models.ExpenseModel{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("(receipt_number LIKE ? OR description LIKE ?)", pattern, pattern)
	}

	sortField := ValidateSortField(filter.OrderBy, ExpenseSortFields, "date")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize)
		if offset := (filter.Page - 1) * filter.PageSize; offset > 0 {
			query = query.Offset(offset)
		}
	}

	if err := query.Find(&expenseModels).Error; err != nil {
		return nil, err
	}
	expenses := make([]finance.Expense, len(expenseModels))
	for i, model := range expenseModels {
		expenses[i] = *model.ToDomain()
	}
	return expenses, nil
}

// Save creates or updates an expense
func (r *GormExpenseRepository) Save(ctx context.Context, expense *finance.Expense) error {
	model := models.ExpenseModelFromDomain(expense)
	return session(ctx, r.db).Save(model).Error
}

// CountByMonth counts expenses recorded in the month of the given time
func (r *GormExpenseRepository) CountByMonth(ctx context.Context, at time.Time) (int64, error) {
	var count int64
	yearMonth := at.Format("200601")
	if err := session(ctx, r.db).Model(&models.ExpenseModel{}).
		Where("receipt_number LIKE ?", fmt.Sprintf("EXP-%s-%%", yearMonth)).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumByDateRange totals expense amounts between from and to inclusive
func (r *GormExpenseRepository) SumByDateRange(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := session(ctx, r.db).Model(&models.ExpenseModel{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("date >= ? AND date <= ?", from, to).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// GormDonationCategoryRepository implements finance.DonationCategoryRepository using GORM
type GormDonationCategoryRepository struct {
	db *gorm.DB
}

// NewGormDonationCategoryRepository creates a new GormDonationCategoryRepository
func NewGormDonationCategoryRepository(db *gorm.DB) *GormDonationCategoryRepository {
	return &GormDonationCategoryRepository{db: db}
}

// FindByID finds a donation category by its ID
func (r *GormDonationCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.DonationCategory, error) {
	var model models.DonationCategoryModel
	if err := session(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByName finds a donation category by its unique name
func (r *GormDonationCategoryRepository) FindByName(ctx context.Context, name string) (*finance.DonationCategory, error) {
	var model models.DonationCategoryModel
	if err := session(ctx, r.db).First(&model, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists all donation categories
func (r *GormDonationCategoryRepository) FindAll(ctx context.Context) ([]finance.DonationCategory, error) {
	var categoryModels []models.DonationCategoryModel
	if err := session(ctx, r.db).Order("name ASC").Find(&categoryModels).Error; err != nil {
		return nil, err
	}
	categories := make([]finance.DonationCategory, len(categoryModels))
	for i, model := range categoryModels {
		categories[i] = *model.ToDomain()
	}
	return categories, nil
}

// Save creates or updates a donation category
func (r *GormDonationCategoryRepository) Save(ctx context.Context, category *finance.DonationCategory) error {
	model := models.DonationCategoryModelFromDomain(category)
	return session(ctx, r.db).Save(model).Error
}

// GormExpenseCategoryRepository implements finance.ExpenseCategoryRepository using GORM
type GormExpenseCategoryRepository struct {
	db *gorm.DB
}

// NewGormExpenseCategoryRepository creates a new GormExpenseCategoryRepository
func NewGormExpenseCategoryRepository(db *gorm.DB) *GormExpenseCategoryRepository {
	return &GormExpenseCategoryRepository{db: db}
}

// FindByID finds an expense category by its ID
func (r *GormExpenseCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.ExpenseCategory, error) {
	var model models.ExpenseCategoryModel
	if err := session(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByName finds an expense category by its unique name
func (r *GormExpenseCategoryRepository) FindByName(ctx context.Context, name string) (*finance.ExpenseCategory, error) {
	var model models.ExpenseCategoryModel
	if err := session(ctx, r.db).First(&model, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists all expense categories
func (r *GormExpenseCategoryRepository) FindAll(ctx context.Context) ([]finance.ExpenseCategory, error) {
	var categoryModels []models.ExpenseCategoryModel
	if err := session(ctx, r.db).Order("name ASC").Find(&categoryModels).Error; err != nil {
		return nil, err
	}
	categories := make([]finance.ExpenseCategory, len(categoryModels))
	for i, model := range categoryModels {
		categories[i] = *model.ToDomain()
	}
	return categories, nil
}

// Save creates or updates an expense category
func (r *GormExpenseCategoryRepository) Save(ctx context.Context, category *finance.ExpenseCategory) error {
	model := models.ExpenseCategoryModelFromDomain(category)
	return session(ctx, r.db).Save(model).Error
}
