package order

import (
	"errors"
	"testing"
	"time"

	"github.com/gomart/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helpers
func createTestOrder(t *testing.T) *Order {
	o, err := NewOrder(1, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return o
}

func price(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

// ============================================
// Status Tests
// ============================================

func TestStatus_IsValid(t *testing.T) {
	tests := []struct {
		status  Status
		isValid bool
	}{
		{StatusConfirmed, true},
		{StatusShipped, true},
		{StatusDelivered, true},
		{StatusCancelled, true},
		{Status("INVALID"), false},
		{Status(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.status.IsValid())
		})
	}
}

func TestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from     Status
		to       Status
		canTrans bool
	}{
		// From CONFIRMED
		{StatusConfirmed, StatusShipped, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusDelivered, false},
		// From SHIPPED
		{StatusShipped, StatusDelivered, true},
		{StatusShipped, StatusCancelled, false},
		{StatusShipped, StatusConfirmed, false},
		// Terminal states
		{StatusDelivered, StatusShipped, false},
		{StatusDelivered, StatusCancelled, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCancelled, StatusShipped, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.canTrans, tt.from.CanTransitionTo(tt.to))
		})
	}
}

// ============================================
// Order Tests
// ============================================

func TestNewOrder(t *testing.T) {
	t.Run("creates confirmed order with zero total", func(t *testing.T) {
		o := createTestOrder(t)
		assert.Equal(t, StatusConfirmed, o.Status)
		assert.True(t, o.TotalAmount.IsZero())
		assert.Equal(t, 0, o.DetailCount())
		assert.Equal(t, 1, o.Version)
	})

	t.Run("requires customer reference", func(t *testing.T) {
		_, err := NewOrder(0, time.Now())
		assert.ErrorIs(t, err, shared.ErrMissingReference)
	})
}

func TestOrder_AddDetail(t *testing.T) {
	t.Run("derives line total and order total", func(t *testing.T) {
		o := createTestOrder(t)

		detail, err := o.AddDetail(7, 2, price(10.0))
		require.NoError(t, err)
		assert.True(t, detail.LineTotal.Equal(price(20.0)), "line total: %s", detail.LineTotal)
		assert.True(t, o.TotalAmount.Equal(price(20.0)), "order total: %s", o.TotalAmount)
	})

	t.Run("sums totals across lines", func(t *testing.T) {
		o := createTestOrder(t)

		_, err := o.AddDetail(7, 2, price(10.0))
		require.NoError(t, err)
		_, err = o.AddDetail(8, 3, price(5.50))
		require.NoError(t, err)

		assert.Equal(t, 2, o.DetailCount())
		assert.True(t, o.TotalAmount.Equal(price(36.50)), "order total: %s", o.TotalAmount)
	})

	t.Run("merges repeated product into one line", func(t *testing.T) {
		o := createTestOrder(t)

		_, err := o.AddDetail(7, 2, price(10.0))
		require.NoError(t, err)
		_, err = o.AddDetail(7, 1, price(10.0))
		require.NoError(t, err)

		assert.Equal(t, 1, o.DetailCount())
		assert.Equal(t, 3, o.Details[0].Quantity)
		assert.True(t, o.TotalAmount.Equal(price(30.0)))
	})

	t.Run("rounds derived totals to cents", func(t *testing.T) {
		o := createTestOrder(t)

		detail, err := o.AddDetail(7, 3, price(3.33))
		require.NoError(t, err)
		assert.True(t, detail.LineTotal.Equal(price(9.99)))
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		o := createTestOrder(t)
		_, err := o.AddDetail(7, 0, price(10.0))
		assert.ErrorIs(t, err, shared.ErrDomainRange)
	})

	t.Run("rejects missing product reference", func(t *testing.T) {
		o := createTestOrder(t)
		_, err := o.AddDetail(0, 1, price(10.0))
		assert.ErrorIs(t, err, shared.ErrMissingReference)
	})

	t.Run("rejects lines on cancelled order", func(t *testing.T) {
		o := createTestOrder(t)
		require.NoError(t, o.Cancel(time.Now()))

		_, err := o.AddDetail(7, 1, price(10.0))
		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})
}

func TestOrder_UpdateDetailQuantity(t *testing.T) {
	t.Run("rederives line and order totals", func(t *testing.T) {
		o := createTestOrder(t)
		detail, err := o.AddDetail(7, 2, price(10.0))
		require.NoError(t, err)
		detail.ID = 42

		require.NoError(t, o.UpdateDetailQuantity(42, 5))
		assert.True(t, o.Details[0].LineTotal.Equal(price(50.0)))
		assert.True(t, o.TotalAmount.Equal(price(50.0)))
	})

	t.Run("keeps unit price immutable", func(t *testing.T) {
		o := createTestOrder(t)
		detail, err := o.AddDetail(7, 2, price(10.0))
		require.NoError(t, err)
		detail.ID = 42

		require.NoError(t, o.UpdateDetailQuantity(42, 5))
		assert.True(t, o.Details[0].UnitPrice.Equal(price(10.0)))
	})

	t.Run("unknown line fails", func(t *testing.T) {
		o := createTestOrder(t)
		err := o.UpdateDetailQuantity(99, 5)
		assert.Error(t, err)
	})
}

func TestOrder_Cancel(t *testing.T) {
	t.Run("cancels confirmed order and keeps total", func(t *testing.T) {
		o := createTestOrder(t)
		_, err := o.AddDetail(7, 2, price(10.0))
		require.NoError(t, err)

		at := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
		require.NoError(t, o.Cancel(at))

		assert.True(t, o.IsCancelled())
		require.NotNil(t, o.CancelledAt)
		assert.Equal(t, at, *o.CancelledAt)
		assert.True(t, o.TotalAmount.Equal(price(20.0)), "cancelled order keeps its total")
	})

	t.Run("second cancel reports AlreadyCancelled", func(t *testing.T) {
		o := createTestOrder(t)
		require.NoError(t, o.Cancel(time.Now()))

		err := o.Cancel(time.Now())
		assert.ErrorIs(t, err, shared.ErrAlreadyCancelled)
	})

	t.Run("shipped order cannot be cancelled", func(t *testing.T) {
		o := createTestOrder(t)
		require.NoError(t, o.MarkShipped())

		err := o.Cancel(time.Now())
		assert.ErrorIs(t, err, shared.ErrInvalidState)
		assert.False(t, errors.Is(err, shared.ErrAlreadyCancelled))
	})
}

func TestOrder_Lifecycle(t *testing.T) {
	o := createTestOrder(t)

	require.NoError(t, o.MarkShipped())
	assert.Equal(t, StatusShipped, o.Status)

	require.NoError(t, o.MarkDelivered())
	assert.Equal(t, StatusDelivered, o.Status)

	assert.Error(t, o.MarkShipped())
	assert.Error(t, o.Cancel(time.Now()))
}
