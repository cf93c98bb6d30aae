package catalog

import (
	"testing"

	"github.com/gomart/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDiscount(t *testing.T) {
	t.Run("percent boundaries are inclusive", func(t *testing.T) {
		_, err := NewDiscount(1, "none", decimal.Zero)
		assert.NoError(t, err)

		_, err = NewDiscount(1, "everything", decimal.NewFromInt(100))
		assert.NoError(t, err)
	})

	t.Run("rejects percent outside 0..100", func(t *testing.T) {
		_, err := NewDiscount(1, "", decimal.NewFromFloat(-0.01))
		assert.ErrorIs(t, err, shared.ErrDomainRange)

		_, err = NewDiscount(1, "", decimal.NewFromFloat(100.01))
		assert.ErrorIs(t, err, shared.ErrDomainRange)
	})

	t.Run("requires product reference", func(t *testing.T) {
		_, err := NewDiscount(0, "", decimal.NewFromInt(10))
		assert.ErrorIs(t, err, shared.ErrMissingReference)
	})
}

func TestDiscount_ChangePercent(t *testing.T) {
	d, err := NewDiscount(1, "spring", decimal.NewFromInt(10))
	require.NoError(t, err)

	require.NoError(t, d.ChangePercent(decimal.NewFromInt(25)))
	assert.True(t, d.DiscountPercent.Equal(decimal.NewFromInt(25)))

	assert.ErrorIs(t, d.ChangePercent(decimal.NewFromInt(101)), shared.ErrDomainRange)
}
