package billing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mms/backend/internal/domain/shared"
)

// InvoiceFilter defines filtering options for invoice queries
type InvoiceFilter struct {
	shared.Filter
	Status  *InvoiceStatus
	HouseID *uuid.UUID
	ShopID  *uuid.UUID
}

// InvoiceRepository defines persistence for invoices and their lines
type InvoiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)

	FindByNumber(ctx context.Context, invoiceNumber string) (*Invoice, error)

	FindAll(ctx context.Context, filter InvoiceFilter) ([]Invoice, error)

	Save(ctx context.Context, invoice *Invoice) error

	// SaveWithLock persists the invoice only if the stored version still
	// matches; returns ErrConcurrencyConflict otherwise
	SaveWithLock(ctx context.Context, invoice *Invoice, expectedVersion int) error

	Count(ctx context.Context, filter InvoiceFilter) (int64, error)

	// CountByMonth counts invoices issued in the month of the given
	// time, used for invoice numbering
	CountByMonth(ctx context.Context, at time.Time) (int64, error)
}

// ShopRepository defines persistence for shops
type ShopRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Shop, error)

	FindAll(ctx context.Context, filter shared.Filter) ([]Shop, error)

	FindActive(ctx context.Context) ([]Shop, error)

	Save(ctx context.Context, shop *Shop) error
}

// BillingPaymentRepository defines persistence for invoice payments
type BillingPaymentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BillingPayment, error)

	FindByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]BillingPayment, error)

	Save(ctx context.Context, payment *BillingPayment) error
}
