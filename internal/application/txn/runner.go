package txn

import (
	"context"
	"errors"
	"time"

	"github.com/gomart/backend/internal/domain/shared"
	"github.com/gomart/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// DefaultAttempts bounds optimistic-concurrency retries so contended
	// operations fail instead of livelocking.
	DefaultAttempts = 3
	// DefaultTimeout bounds a single transaction attempt.
	DefaultTimeout = 5 * time.Second
)

// Runner executes business operations as bounded, retried transactions.
// StaleWrite and Timeout aborts are retried with fresh reads up to the
// attempt bound; every other failure is surfaced to the caller untouched.
// Each operation gets a correlation id so retries can be traced in logs.
type Runner struct {
	scope    Scope
	timeout  time.Duration
	attempts int
	logger   *zap.Logger
}

// NewRunner creates a Runner around the given transaction scope.
// Zero timeout/attempts fall back to the defaults; a nil logger is replaced
// with a no-op logger.
func NewRunner(scope Scope, timeout time.Duration, attempts int, logger *zap.Logger) *Runner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if attempts <= 0 {
		attempts = DefaultAttempts
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		scope:    scope,
		timeout:  timeout,
		attempts: attempts,
		logger:   logger,
	}
}

// Run executes fn inside a transaction, retrying transient aborts.
// fn is re-invoked from scratch on retry so every attempt works from fresh
// reads; fn must not keep state from a previous attempt.
func (r *Runner) Run(ctx context.Context, operation string, fn func(ctx context.Context, repos Repositories) error) error {
	ctx, log := logger.WithOperationID(ctx,
		r.logger.With(zap.String("operation", operation)),
		uuid.NewString())

	var err error
	for attempt := 1; attempt <= r.attempts; attempt++ {
		err = r.runOnce(ctx, fn)
		if err == nil {
			if attempt > 1 {
				log.Info("operation committed after retry", zap.Int("attempts", attempt))
			}
			return nil
		}
		if !isRetryable(err) {
			return err
		}
		if attempt < r.attempts {
			log.Warn("transient abort, retrying with fresh reads",
				zap.Int("attempt", attempt),
				zap.Error(err))
		}
	}

	log.Warn("operation aborted, retry bound exhausted",
		zap.Int("attempts", r.attempts),
		zap.Error(err))
	return err
}

// runOnce executes one bounded transaction attempt
func (r *Runner) runOnce(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error {
	attemptCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	err := r.scope.Execute(attemptCtx, func(repos Repositories) error {
		return fn(attemptCtx, repos)
	})
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		// The caller's own cancellation is not a timeout of ours.
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return shared.ErrTimeout
	}
	return err
}

// isRetryable reports whether an abort may succeed on a fresh attempt.
// InsufficientStock is deterministic given committed state, so it is
// surfaced immediately rather than retried.
func isRetryable(err error) bool {
	return errors.Is(err, shared.ErrStaleWrite) || errors.Is(err, shared.ErrTimeout)
}
