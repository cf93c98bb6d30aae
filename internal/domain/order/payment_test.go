package order

import (
	"testing"
	"time"

	"github.com/gomart/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentMethod_IsValid(t *testing.T) {
	tests := []struct {
		method  PaymentMethod
		isValid bool
	}{
		{PaymentMethodCreditCard, true},
		{PaymentMethodDebitCard, true},
		{PaymentMethodPaypal, true},
		{PaymentMethodBankTransfer, true},
		{PaymentMethodCash, true},
		{PaymentMethod("bitcoin"), false},
		{PaymentMethod(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.method), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.method.IsValid())
		})
	}
}

func TestNewPayment(t *testing.T) {
	paidAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("records amount rounded to cents", func(t *testing.T) {
		p, err := NewPayment(1, decimal.NewFromFloat(19.999), PaymentMethodCash, paidAt)
		require.NoError(t, err)
		assert.True(t, p.Amount.Equal(decimal.NewFromFloat(20.00)))
		assert.Equal(t, paidAt, p.PaymentDate)
	})

	t.Run("requires order reference", func(t *testing.T) {
		_, err := NewPayment(0, decimal.NewFromInt(10), PaymentMethodCash, paidAt)
		assert.ErrorIs(t, err, shared.ErrMissingReference)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := NewPayment(1, decimal.Zero, PaymentMethodCash, paidAt)
		assert.ErrorIs(t, err, shared.ErrDomainRange)

		_, err = NewPayment(1, decimal.NewFromInt(-5), PaymentMethodCash, paidAt)
		assert.ErrorIs(t, err, shared.ErrDomainRange)
	})

	t.Run("rejects unknown method", func(t *testing.T) {
		_, err := NewPayment(1, decimal.NewFromInt(10), PaymentMethod("barter"), paidAt)
		assert.ErrorIs(t, err, shared.ErrDomainRange)
	})
}
