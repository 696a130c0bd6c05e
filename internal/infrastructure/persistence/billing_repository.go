package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mms/backend/internal/domain/billing"
	"github.com/mms/backend/internal/domain/shared"
	"github.com/mms/backend/internal/infrastructure/persistence/models"
)

// GormInvoiceRepository implements billing.InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// FindByID finds an invoice with its line items
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	var model models.InvoiceModel
	if err := session(ctx, r.db).Preload("LineItems").First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNumber finds an invoice by its unique number
func (r *GormInvoiceRepository) FindByNumber(ctx context.Context, invoiceNumber string) (*billing.Invoice, error) {
	var model models.InvoiceModel
	if err := session(ctx, r.db).Preload("LineItems").
		First(&model, "invoice_number = ?", invoiceNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists invoices with filtering
func (r *GormInvoiceRepository) FindAll(ctx context.Context, filter billing.InvoiceFilter) ([]billing.Invoice, error) {
	var invoiceModels []models.InvoiceModel
	query := r.applyFilter(session(ctx, r.db).Model(&models.InvoiceModel{}).Preload("LineItems"), filter)

	sortField := ValidateSortField(filter.OrderBy, InvoiceSortFields, "date_issued")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize)
		if offset := (filter.Page - 1) * filter.PageSize; offset > 0 {
			query = query.Offset(offset)
		}
	}

	if err := query.Find(&invoiceModels).Error; err != nil {
		return nil, err
	}
	invoices := make([]billing.Invoice, len(invoiceModels))
	for i, model := range invoiceModels {
		invoices[i] = *model.ToDomain()
	}
	return invoices, nil
}

// Save creates or updates an invoice with its line items
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *billing.Invoice) error {
	model := models.InvoiceModelFromDomain(invoice)
	return session(ctx, r.db).Save(model).Error
}

// SaveWithLock persists the invoice only if the stored version still matches
func (r *GormInvoiceRepository) SaveWithLock(ctx context.Context, invoice *billing.Invoice, expectedVersion int) error {
	model := models.InvoiceModelFromDomain(invoice)
	result := session(ctx, r.db).Model(&models.InvoiceModel{}).
		Where("id = ? AND version = ?", invoice.GetID(), expectedVersion).
		Updates(map[string]any{
			"status":      model.Status,
			"amount_paid": model.AmountPaid,
			"version":     model.Version,
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Count counts invoices matching the filter
func (r *GormInvoiceRepository) Count(ctx context.Context, filter billing.InvoiceFilter) (int64, error) {
	var count int64
	query := r.applyFilter(session(ctx, r.db).Model(&models.InvoiceModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByMonth counts invoices issued in the month of the given time
func (r *GormInvoiceRepository) CountByMonth(ctx context.Context, at time.Time) (int64, error) {
	var count int64
	yearMonth := at.Format("200601")
	if err := session(ctx, r.db).Model(&models.InvoiceModel{}).
		Where("invoice_number LIKE ?", fmt.Sprintf("INV-%s-%%", yearMonth)).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormInvoiceRepository) applyFilter(query *gorm.DB, filter billing.InvoiceFilter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("invoice_number LIKE ?", "%"+filter.Search+"%")
	}
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.HouseID != nil {
		query = query.Where("house_id = ?", *filter.HouseID)
	}
	if filter.ShopID != nil {
		query = query.Where("shop_id = ?", *filter.ShopID)
	}
	return query
}

// GormShopRepository implements billing.ShopRepository using GORM
type GormShopRepository struct {
	db *gorm.DB
}

// NewGormShopRepository creates a new GormShopRepository
func NewGormShopRepository(db *gorm.DB) *GormShopRepository {
	return &GormShopRepository{db: db}
}

// FindByID finds a shop by its ID
func (r *GormShopRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Shop, error) {
	var model models.ShopModel
	if err := session(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists shops with filtering
func (r *GormShopRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.Shop, error) {
	var shopModels []models.ShopModel
	query := session(ctx, r.db).Model(&models.ShopModel{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("(name LIKE ? OR tenant_name LIKE ?)", pattern, pattern)
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

	if err := query.Find(&shopModels).Error; err != nil {
		return nil, err
	}
	shops := make([]billing.Shop, len(shopModels))
	for i, model := range shopModels {
		shops[i] = *model.ToDomain()
	}
	return shops, nil
}

// FindActive lists occupied shops
func (r *GormShopRepository) FindActive(ctx context.Context) ([]billing.Shop, error) {
	var shopModels []models.ShopModel
	if err := session(ctx, r.db).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&shopModels).Error; err != nil {
		return nil, err
	}
	shops := make([]billing.Shop, len(shopModels))
	for i, model := range shopModels {
		shops[i] = *model.ToDomain()
	}
	return shops, nil
}

// Save creates or updates a shop
func (r *GormShopRepository) Save(ctx context.Context, shop *billing.Shop) error {
	model := models.ShopModelFromDomain(shop)
	return session(ctx, r.db).Save(model).Error
}

// GormBillingPaymentRepository implements billing.BillingPaymentRepository using GORM
type GormBillingPaymentRepository struct {
	db *gorm.DB
}

// NewGormBillingPaymentRepository creates a new GormBillingPaymentRepository
func NewGormBillingPaymentRepository(db *gorm.DB) *GormBillingPaymentRepository {
	return &GormBillingPaymentRepository{db: db}
}

// FindByID finds a billing payment by its ID
func (r *GormBillingPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.BillingPayment, error) {
	var model models.BillingPaymentModel
	if err := session(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByInvoice lists payments applied to one invoice
func (r *GormBillingPaymentRepository) FindByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]billing.BillingPayment, error) {
	var paymentModels []models.BillingPaymentModel
	if err := session(ctx, r.db).
		Where("invoice_id = ?", invoiceID).
		Order("payment_date ASC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	payments := make([]billing.BillingPayment, len(paymentModels))
	for i, model := range paymentModels {
		payments[i] = *model.ToDomain()
	}
	return payments, nil
}

// Save creates a billing payment
func (r *GormBillingPaymentRepository) Save(ctx context.Context, payment *billing.BillingPayment) error {
	model := models.BillingPaymentModelFromDomain(payment)
	return session(ctx, r.db).Create(model).Error
}
