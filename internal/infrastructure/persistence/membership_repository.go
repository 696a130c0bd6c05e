package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mms/backend/internal/domain/membership"
	"github.com/mms/backend/internal/domain/shared"
	"github.com/mms/backend/internal/infrastructure/persistence/models"
)

// GormHouseRepository implements membership.HouseRepository using GORM
type GormHouseRepository struct {
	db *gorm.DB
}

// NewGormHouseRepository creates a new GormHouseRepository
func NewGormHouseRepository(db *gorm.DB) *GormHouseRepository {
	return &GormHouseRepository{db: db}
}

// FindByID finds a house by its ID
func (r *GormHouseRepository) FindByID(ctx context.Context, id uuid.UUID) (*membership.House, error) {
	var model models.HouseModel
	if err := session(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDs finds houses by a set of IDs
func (r *GormHouseRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]membership.House, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var houseModels []models.HouseModel
	if err := session(ctx, r.db).Where("id IN ?", ids).Find(&houseModels).Error; err != nil {
		return nil, err
	}
	houses := make([]membership.House, len(houseModels))
	for i, model := range houseModels {
		houses[i] = *model.ToDomain()
	}
	return houses, nil
}

// FindAll lists houses with filtering
func (r *GormHouseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]membership.House, error) {
	var houseModels []models.HouseModel
	query := session(ctx, r.db).Model(&models.HouseModel{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("(house_name LIKE ? OR house_number LIKE ? OR ward LIKE ?)", pattern, pattern, pattern)
	}

	sortField := ValidateSortField(filter.OrderBy, HouseSortFields, "house_number")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize)
		if offset := (filter.Page - 1) * filter.PageSize; offset > 0 {
			query = query.Offset(offset)
		}
	}

	if err := query.Find(&houseModels).Error; err != nil {
		return nil, err
	}
	houses := make([]membership.House, len(houseModels))
	for i, model := range houseModels {
		houses[i] = *model.ToDomain()
	}
	return houses, nil
}

// FindActive lists houses eligible for dues generation
func (r *GormHouseRepository) FindActive(ctx context.Context) ([]membership.House, error) {
	var houseModels []models.HouseModel
	if err := session(ctx, r.db).
		Where("is_active = ?", true).
		Order("house_number ASC").
		Find(&houseModels).Error; err != nil {
		return nil, err
	}
	houses := make([]membership.House, len(houseModels))
	for i, model := range houseModels {
		houses[i] = *model.ToDomain()
	}
	return houses, nil
}

// Save creates or updates a house
func (r *GormHouseRepository) Save(ctx context.Context, house *membership.House) error {
	model := models.HouseModelFromDomain(house)
	return session(ctx, r.db).Save(model).Error
}

// Count counts all houses
func (r *GormHouseRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := session(ctx, r.db).Model(&models.HouseModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GormMemberRepository implements membership.MemberRepository using GORM
type GormMemberRepository struct {
	db *gorm.DB
}

// NewGormMemberRepository creates a new GormMemberRepository
func NewGormMemberRepository(db *gorm.DB) *GormMemberRepository {
	return &GormMemberRepository{db: db}
}

// FindByID finds a member by its ID
func (r *GormMemberRepository) FindByID(ctx context.Context, id uuid.UUID) (*membership.Member, error) {
	var model models.MemberModel
	if err := session(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByHouse lists members of a house
func (r *GormMemberRepository) FindByHouse(ctx context.Context, houseID uuid.UUID) ([]membership.Member, error) {
	var memberModels []models.MemberModel
	if err := session(ctx, r.db).
		Where("house_id = ?", houseID).
		Order("first_name ASC").
		Find(&memberModels).Error; err != nil {
		return nil, err
	}
	members := make([]membership.Member, len(memberModels))
	for i, model := range memberModels {
		members[i] = *model.ToDomain()
	}
	return members, nil
}

// FindAll lists members with filtering
func (r *GormMemberRepository) FindAll(ctx context.Context, filter shared.Filter) ([]membership.Member, error) {
	var memberModels []models.MemberModel
	query := session(ctx, r.db).Model(&models.MemberModel{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("(first_name LIKE ? OR last_name LIKE ?)", pattern, pattern)
	}

	sortField := ValidateSortField(filter.OrderBy, CommonSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize)
		if offset := (filter.Page - 1) * filter.PageSize; offset > 0 {
			query = query.Offset(offset)
		}
	}

	if err := query.Find(&memberModels).Error; err != nil {
		return nil, err
	}
	members := make([]membership.Member, len(memberModels))
	for i, model := range memberModels {
		members[i] = *model.ToDomain()
	}
	return members, nil
}

// Save creates or updates a member
func (r *GormMemberRepository) Save(ctx context.Context, member *membership.Member) error {
	model := models.MemberModelFromDomain(member)
	return session(ctx, r.db).Save(model).Error
}

// GormDuesRepository implements membership.DuesRepository using GORM
type GormDuesRepository struct {
	db *gorm.DB
}

// NewGormDuesRepository creates a new GormDuesRepository
func NewGormDuesRepository(db *gorm.DB) *GormDuesRepository {
	return &GormDuesRepository{db: db}
}

// FindByID finds a dues row by its ID
func (r *GormDuesRepository) FindByID(ctx context.Context, id uuid.UUID) (*membership.MembershipDues, error) {
	var model models.MembershipDuesModel
	if err := session(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ExistsForPeriod reports whether any dues exist for (year, month)
func (r *GormDuesRepository) ExistsForPeriod(ctx context.Context, year, month int) (bool, error) {
	var count int64
	if err := session(ctx, r.db).Model(&models.MembershipDuesModel{}).
		Where("year = ? AND month = ?", year, month).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindUnpaidByHouses lists unpaid dues for the houses, oldest first
func (r *GormDuesRepository) FindUnpaidByHouses(ctx context.Context, houseIDs []uuid.UUID) ([]membership.MembershipDues, error) {
	if len(houseIDs) == 0 {
		return nil, nil
	}
	var duesModels []models.MembershipDuesModel
	if err := session(ctx, r.db).
		Where("house_id IN ? AND is_paid = ?", houseIDs, false).
		Order("year ASC, month ASC").
		Find(&duesModels).Error; err != nil {
		return nil, err
	}
	dues := make([]membership.MembershipDues, len(duesModels))
	for i, model := range duesModels {
		dues[i] = *model.ToDomain()
	}
	return dues, nil
}

// FindOverdue lists unpaid dues with due date before asOf
func (r *GormDuesRepository) FindOverdue(ctx context.Context, asOf time.Time) ([]membership.MembershipDues, error) {
	var duesModels []models.MembershipDuesModel
	if err := session(ctx, r.db).
		Where("is_paid = ? AND due_date < ?", false, asOf).
		Order("due_date ASC").
		Find(&duesModels).Error; err != nil {
		return nil, err
	}
	dues := make([]membership.MembershipDues, len(duesModels))
	for i, model := range duesModels {
		dues[i] = *model.ToDomain()
	}
	return dues, nil
}

// FindByHouse lists dues of one house
func (r *GormDuesRepository) FindByHouse(ctx context.Context, houseID uuid.UUID, filter shared.Filter) ([]membership.MembershipDues, error) {
	var duesModels []models.MembershipDuesModel
	query := session(ctx, r.db).
		Where("house_id = ?", houseID).
		Order("year DESC, month DESC")

	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize)
		if offset := (filter.Page - 1) * filter.PageSize; offset > 0 {
			query = query.Offset(offset)
		}
	}

	if err := query.Find(&duesModels).Error; err != nil {
		return nil, err
	}
	dues := make([]membership.MembershipDues, len(duesModels))
	for i, model := range duesModels {
		dues[i] = *model.ToDomain()
	}
	return dues, nil
}

// Save creates or updates a dues row
func (r *GormDuesRepository) Save(ctx context.Context, dues *membership.MembershipDues) error {
	model := models.MembershipDuesModelFromDomain(dues)
	return session(ctx, r.db).Save(model).Error
}

// SaveBatch inserts a batch of generated dues in one statement
func (r *GormDuesRepository) SaveBatch(ctx context.Context, dues []*membership.MembershipDues) error {
	if len(dues) == 0 {
		return nil
	}
	duesModels := make([]*models.MembershipDuesModel, len(dues))
	for i, d := range dues {
		duesModels[i] = models.MembershipDuesModelFromDomain(d)
	}
	return session(ctx, r.db).Create(&duesModels).Error
}

// GormMemberPaymentRepository implements membership.PaymentRepository using GORM
type GormMemberPaymentRepository struct {
	db *gorm.DB
}

// NewGormMemberPaymentRepository creates a new GormMemberPaymentRepository
func NewGormMemberPaymentRepository(db *gorm.DB) *GormMemberPaymentRepository {
	return &GormMemberPaymentRepository{db: db}
}

// FindByID finds a payment with its covered dues links
func (r *GormMemberPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*membership.MemberPayment, error) {
	var model models.MemberPaymentModel
	if err := session(ctx, r.db).Preload("CoveredDues").First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByHouse lists payments of one house
func (r *GormMemberPaymentRepository) FindByHouse(ctx context.Context, houseID uuid.UUID, filter shared.Filter) ([]membership.MemberPayment, error) {
	var paymentModels []models.MemberPaymentModel
	query := session(ctx, r.db).Preload("CoveredDues").
		Where("house_id = ?", houseID).
		Order("payment_date DESC")

	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize)
		if offset := (filter.Page - 1) * filter.PageSize; offset > 0 {
			query = query.Offset(offset)
		}
	}

	if err := query.Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	payments := make([]membership.MemberPayment, len(paymentModels))
	for i, model := range paymentModels {
		payments[i] = *model.ToDomain()
	}
	return payments, nil
}

// Save persists the payment together with its covered-dues links
func (r *GormMemberPaymentRepository) Save(ctx context.Context, payment *membership.MemberPayment) error {
	model := models.MemberPaymentModelFromDomain(payment)
	return session(ctx, r.db).Create(model).Error
}

// CountByMonth counts payments recorded in the month of the given time
func (r *GormMemberPaymentRepository) CountByMonth(ctx context.Context, at time.Time) (int64, error) {
	var count int64
	yearMonth := at.Format("200601")
	if err := session(ctx, r.db).Model(&models.MemberPaymentModel{}).
		Where("receipt_number LIKE ?", fmt.Sprintf("RCP-%s-%%", yearMonth)).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
