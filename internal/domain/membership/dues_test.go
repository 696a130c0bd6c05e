package membership

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mms/backend/internal/domain/shared/valueobject"
)

func TestNewMembershipDues(t *testing.T) {
	houseID := uuid.New()

	t.Run("creates dues with first-of-month due date", func(t *testing.T) {
		dues, err := NewMembershipDues(houseID, 2026, 7, valueobject.NewMoneyINRFromFloat(10))
		require.NoError(t, err)
		assert.Equal(t, 2026, dues.Year)
		assert.Equal(t, 7, dues.Month)
		assert.Equal(t, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), dues.DueDate)
		assert.False(t, dues.IsPaid)
		assert.Equal(t, "2026-07", dues.PeriodLabel())
	})

	t.Run("rejects invalid month", func(t *testing.T) {
		_, err := NewMembershipDues(houseID, 2026, 0, valueobject.NewMoneyINRFromFloat(10))
		assert.Error(t, err)
		_, err = NewMembershipDues(houseID, 2026, 13, valueobject.NewMoneyINRFromFloat(10))
		assert.Error(t, err)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := NewMembershipDues(houseID, 2026, 7, valueobject.ZeroINR())
		assert.Error(t, err)
	})

	t.Run("rejects missing house", func(t *testing.T) {
		_, err := NewMembershipDues(uuid.Nil, 2026, 7, valueobject.NewMoneyINRFromFloat(10))
		assert.Error(t, err)
	})
}

func TestMembershipDuesMarkPaid(t *testing.T) {
	dues, err := NewMembershipDues(uuid.New(), 2026, 5, valueobject.NewMoneyINRFromFloat(10))
	require.NoError(t, err)

	paidAt := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	require.NoError(t, dues.MarkPaid(paidAt))
	assert.True(t, dues.IsPaid)
	require.NotNil(t, dues.PaidAt)
	assert.Equal(t, paidAt, *dues.PaidAt)

	assert.Error(t, dues.MarkPaid(paidAt), "double settlement must fail")
}

func TestMembershipDuesIsOverdue(t *testing.T) {
	dues, err := NewMembershipDues(uuid.New(), 2026, 5, valueobject.NewMoneyINRFromFloat(10))
	require.NoError(t, err)

	asOf := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	assert.True(t, dues.IsOverdue(asOf))
	assert.False(t, dues.IsOverdue(time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC)))

	require.NoError(t, dues.MarkPaid(asOf))
	assert.False(t, dues.IsOverdue(asOf), "paid dues are never overdue")
}

func TestNewMemberPayment(t *testing.T) {
	houseID := uuid.New()
	duesIDs := []uuid.UUID{uuid.New(), uuid.New()}

	t.Run("creates payment with covered dues", func(t *testing.T) {
		p, err := NewMemberPayment(houseID, valueobject.NewMoneyINRFromFloat(20),
			PaymentMethodCash, time.Now(), "RCP-202605-00001", duesIDs)
		require.NoError(t, err)
		assert.Equal(t, houseID, p.HouseID)
		assert.Len(t, p.CoveredDuesIDs, 2)
	})

	t.Run("rejects unknown method", func(t *testing.T) {
		_, err := NewMemberPayment(houseID, valueobject.NewMoneyINRFromFloat(20),
			PaymentMethod("crypto"), time.Now(), "RCP-202605-00002", nil)
		assert.Error(t, err)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := NewMemberPayment(houseID, valueobject.ZeroINR(),
			PaymentMethodCash, time.Now(), "RCP-202605-00003", nil)
		assert.Error(t, err)
	})

	t.Run("rejects empty receipt number", func(t *testing.T) {
		_, err := NewMemberPayment(houseID, valueobject.NewMoneyINRFromFloat(20),
			PaymentMethodCash, time.Now(), "", nil)
		assert.Error(t, err)
	})
}
