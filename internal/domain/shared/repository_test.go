package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPaginated(t *testing.T) {
	t.Run("rounds the page count up", func(t *testing.T) {
		p := NewPaginated([]int{1, 2}, 5, 1, 2)
		assert.Equal(t, int64(5), p.Total)
		assert.Equal(t, 3, p.TotalPages)
	})

	t.Run("exact multiple", func(t *testing.T) {
		p := NewPaginated([]int{1, 2}, 4, 2, 2)
		assert.Equal(t, 2, p.TotalPages)
	})

	t.Run("non-positive page size is one page", func(t *testing.T) {
		p := NewPaginated([]int{1, 2, 3}, 3, 1, 0)
		assert.Equal(t, 1, p.TotalPages)
	})
}
