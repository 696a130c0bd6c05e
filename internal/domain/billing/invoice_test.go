package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mms/backend/internal/domain/membership"
	"github.com/mms/backend/internal/domain/shared/valueobject"
)

func newTestInvoice(t *testing.T, amounts ...float64) *Invoice {
	t.Helper()
	lines := make([]InvoiceLineItem, 0, len(amounts))
	for _, a := range amounts {
		lines = append(lines, InvoiceLineItem{
			Description: "Monthly dues",
			Amount:      valueobject.NewMoneyINRFromFloat(a),
		})
	}
	inv, err := NewInvoice("INV-202607-00001", time.Now(), time.Time{}, lines)
	require.NoError(t, err)
	return inv
}

func TestNewInvoice(t *testing.T) {
	t.Run("totals line items", func(t *testing.T) {
		inv := newTestInvoice(t, 30, 20)
		assert.True(t, inv.TotalAmount.Equals(valueobject.NewMoneyINRFromFloat(50)))
		assert.True(t, inv.AmountPaid.IsZero())
		assert.Equal(t, InvoiceStatusDraft, inv.Status)
		for _, l := range inv.LineItems {
			assert.Equal(t, inv.ID, l.InvoiceID)
		}
	})

	t.Run("rejects empty lines", func(t *testing.T) {
		_, err := NewInvoice("INV-202607-00002", time.Now(), time.Time{}, nil)
		assert.Error(t, err)
	})

	t.Run("rejects non-positive line amount", func(t *testing.T) {
		_, err := NewInvoice("INV-202607-00003", time.Now(), time.Time{}, []InvoiceLineItem{
			{Description: "Dues", Amount: valueobject.ZeroINR()},
		})
		assert.Error(t, err)
	})
}

func TestInvoiceApplyPayment(t *testing.T) {
	t.Run("partial payment", func(t *testing.T) {
		inv := newTestInvoice(t, 50)
		require.NoError(t, inv.ApplyPayment(valueobject.NewMoneyINRFromFloat(20)))
		assert.Equal(t, InvoiceStatusPartiallyPaid, inv.Status)
		assert.True(t, inv.BalanceDue().Equals(valueobject.NewMoneyINRFromFloat(30)))
	})

	t.Run("exact payment settles", func(t *testing.T) {
		inv := newTestInvoice(t, 50)
		require.NoError(t, inv.ApplyPayment(valueobject.NewMoneyINRFromFloat(50)))
		assert.Equal(t, InvoiceStatusPaid, inv.Status)
		assert.True(t, inv.BalanceDue().IsZero())
	})

	t.Run("two partials settle", func(t *testing.T) {
		inv := newTestInvoice(t, 50)
		require.NoError(t, inv.ApplyPayment(valueobject.NewMoneyINRFromFloat(20)))
		require.NoError(t, inv.ApplyPayment(valueobject.NewMoneyINRFromFloat(30)))
		assert.Equal(t, InvoiceStatusPaid, inv.Status)
	})

	t.Run("overpayment accepted with negative balance", func(t *testing.T) {
		inv := newTestInvoice(t, 50)
		require.NoError(t, inv.ApplyPayment(valueobject.NewMoneyINRFromFloat(80)))
		assert.Equal(t, InvoiceStatusPaid, inv.Status)
		assert.True(t, inv.BalanceDue().IsNegative())
		assert.True(t, inv.BalanceDue().Equals(valueobject.NewMoneyINRFromFloat(-30)))
	})

	t.Run("rejects payment on cancelled invoice", func(t *testing.T) {
		inv := newTestInvoice(t, 50)
		require.NoError(t, inv.Cancel())
		assert.Error(t, inv.ApplyPayment(valueobject.NewMoneyINRFromFloat(10)))
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		inv := newTestInvoice(t, 50)
		assert.Error(t, inv.ApplyPayment(valueobject.ZeroINR()))
	})
}

func TestInvoiceLifecycle(t *testing.T) {
	t.Run("send then overdue", func(t *testing.T) {
		inv := newTestInvoice(t, 50)
		require.NoError(t, inv.Send())
		assert.Equal(t, InvoiceStatusSent, inv.Status)

		inv.MarkOverdue(inv.DueDate.AddDate(0, 0, 1))
		assert.Equal(t, InvoiceStatusOverdue, inv.Status)
	})

	t.Run("cannot cancel after payment", func(t *testing.T) {
		inv := newTestInvoice(t, 50)
		require.NoError(t, inv.ApplyPayment(valueobject.NewMoneyINRFromFloat(10)))
		assert.Error(t, inv.Cancel())
	})

	t.Run("send only from draft", func(t *testing.T) {
		inv := newTestInvoice(t, 50)
		require.NoError(t, inv.Send())
		assert.Error(t, inv.Send())
	})
}

func TestNewBillingPayment(t *testing.T) {
	t.Run("creates payment", func(t *testing.T) {
		p, err := NewBillingPayment(uuid.New(), valueobject.NewMoneyINRFromFloat(25),
			membership.PaymentMethodUPI, time.Now(), "TXN-123")
		require.NoError(t, err)
		assert.Equal(t, membership.PaymentMethodUPI, p.PaymentMethod)
	})

	t.Run("rejects missing invoice", func(t *testing.T) {
		_, err := NewBillingPayment(uuid.Nil, valueobject.NewMoneyINRFromFloat(25),
			membership.PaymentMethodCash, time.Now(), "")
		assert.Error(t, err)
	})

	t.Run("rejects invalid method", func(t *testing.T) {
		_, err := NewBillingPayment(uuid.New(), valueobject.NewMoneyINRFromFloat(25),
			membership.PaymentMethod("barter"), time.Now(), "")
		assert.Error(t, err)
	})
}
