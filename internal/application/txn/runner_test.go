package txn

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gomart/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeScope runs the function without a real database, returning the queued
// error for each attempt.
type fakeScope struct {
	errs     []error
	attempts int
}

func (s *fakeScope) Execute(ctx context.Context, fn func(repos Repositories) error) error {
	idx := s.attempts
	s.attempts++
	if idx < len(s.errs) && s.errs[idx] != nil {
		return s.errs[idx]
	}
	return fn(nil)
}

// blockingScope never returns until the context is done
type blockingScope struct{}

func (s *blockingScope) Execute(ctx context.Context, fn func(repos Repositories) error) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestRunner_Run(t *testing.T) {
	t.Run("commits on first attempt", func(t *testing.T) {
		scope := &fakeScope{}
		runner := NewRunner(scope, 0, 0, nil)

		calls := 0
		err := runner.Run(context.Background(), "op", func(ctx context.Context, repos Repositories) error {
			calls++
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
		assert.Equal(t, 1, scope.attempts)
	})

	t.Run("retries stale writes with fresh attempts", func(t *testing.T) {
		scope := &fakeScope{errs: []error{shared.ErrStaleWrite, shared.ErrStaleWrite, nil}}
		runner := NewRunner(scope, 0, 3, nil)

		err := runner.Run(context.Background(), "op", func(ctx context.Context, repos Repositories) error {
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, scope.attempts)
	})

	t.Run("gives up after the attempt bound", func(t *testing.T) {
		scope := &fakeScope{errs: []error{shared.ErrStaleWrite, shared.ErrStaleWrite, shared.ErrStaleWrite}}
		runner := NewRunner(scope, 0, 3, nil)

		err := runner.Run(context.Background(), "op", func(ctx context.Context, repos Repositories) error {
			return nil
		})
		assert.ErrorIs(t, err, shared.ErrStaleWrite)
		assert.Equal(t, 3, scope.attempts)
	})

	t.Run("insufficient stock is not retried", func(t *testing.T) {
		scope := &fakeScope{errs: []error{shared.ErrInsufficientStock}}
		runner := NewRunner(scope, 0, 3, nil)

		err := runner.Run(context.Background(), "op", func(ctx context.Context, repos Repositories) error {
			return nil
		})
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		assert.Equal(t, 1, scope.attempts)
	})

	t.Run("domain errors pass through untouched", func(t *testing.T) {
		scope := &fakeScope{}
		runner := NewRunner(scope, 0, 3, nil)

		want := shared.NewMissingReference("order", "customer_id")
		err := runner.Run(context.Background(), "op", func(ctx context.Context, repos Repositories) error {
			return want
		})
		assert.ErrorIs(t, err, shared.ErrMissingReference)
		assert.Equal(t, 1, scope.attempts)
	})

	t.Run("attempt deadline surfaces as Timeout", func(t *testing.T) {
		runner := NewRunner(&blockingScope{}, 10*time.Millisecond, 2, nil)

		err := runner.Run(context.Background(), "op", func(ctx context.Context, repos Repositories) error {
			return nil
		})
		assert.ErrorIs(t, err, shared.ErrTimeout)
	})

	t.Run("caller cancellation is not remapped", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		runner := NewRunner(&blockingScope{}, time.Second, 2, nil)

		err := runner.Run(ctx, "op", func(ctx context.Context, repos Repositories) error {
			return nil
		})
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, errors.Is(err, shared.ErrTimeout))
	})
}
