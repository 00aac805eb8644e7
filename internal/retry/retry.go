// Package retry runs agent calls with a bounded number of attempts and a
// linearly growing delay between them.
package retry

import (
	"context"
	"errors"
	"time"

	retrygo "github.com/avast/retry-go/v4"
	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/logger"
)

const (
	DefaultAttempts  = 3
	DefaultBaseDelay = 2 * time.Second
)

// Policy configures a retried operation.
type Policy struct {
	// Attempts is the total number of calls, values below 1 mean 1.
	Attempts int
	// BaseDelay is multiplied by the number of the failed attempt.
	BaseDelay time.Duration
	// AttemptTimeout bounds a single attempt when positive.
	AttemptTimeout time.Duration
	// Operation names the call in log entries.
	Operation string
	Logger    *zap.Logger
}

// DefaultPolicy returns the policy used for agent invocations.
func DefaultPolicy(l *zap.Logger) Policy {
	return Policy{
		Attempts:  DefaultAttempts,
		BaseDelay: DefaultBaseDelay,
		Logger:    l,
	}
}

// LinearDelay waits base after the first failure, 2*base after the second and
// so on.
func LinearDelay(base time.Duration) retrygo.DelayTypeFunc {
	return func(n uint, _ error, _ *retrygo.Config) time.Duration {
		return base * time.Duration(n+1)
	}
}

// Do calls op until it succeeds, the attempts are exhausted or ctx is done.
// Exhaustion returns the last error, cancellation returns the context error.
func Do(ctx context.Context, p Policy, op func(ctx context.Context) error) error {
	_, err := DoWithValue(ctx, p, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	})
	return err
}

// DoWithValue is Do for operations producing a value.
func DoWithValue[T any](ctx context.Context, p Policy, op func(ctx context.Context) (T, error)) (T, error) {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}
	log := logger.OrNop(p.Logger)

	var result T
	err := retrygo.Do(
		func() error {
			attemptCtx, cancel := attemptContext(ctx, p.AttemptTimeout)
			defer cancel()

			value, err := op(attemptCtx)
			if err != nil {
				return err
			}
			result = value
			return nil
		},
		retrygo.Context(ctx),
		retrygo.Attempts(uint(attempts)),
		retrygo.DelayType(LinearDelay(p.BaseDelay)),
		retrygo.LastErrorOnly(true),
		retrygo.RetryIf(func(err error) bool {
			return ctx.Err() == nil
		}),
		retrygo.OnRetry(func(n uint, err error) {
			fields := []zap.Field{
				zap.Int("attempt", int(n)+1),
				zap.Int("attempts", attempts),
				zap.Error(err),
			}
			if p.Operation != "" {
				fields = append(fields, zap.String("operation", p.Operation))
			}
			if int(n)+1 < attempts {
				fields = append(fields, zap.Duration("next_delay", p.BaseDelay*time.Duration(n+1)))
			}
			log.Warn("attempt failed", fields...)
		}),
	)
	if err != nil {
		var zero T
		if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
			return zero, ctxErr
		}
		return zero, err
	}

	return result, nil
}

func attemptContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
