package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"daycare-dispatch/internal/logx"
	"daycare-dispatch/internal/repository"
)

var newPool = repository.NewPool

const (
	dbAttemptTimeout = 3 * time.Second
	dbMaxBackoff     = 10 * time.Second
)

// connectDbWithRetry dials Postgres up to attempts times. The pause between
// attempts starts at delay and doubles up to dbMaxBackoff.
func connectDbWithRetry(ctx context.Context, logger logx.Logger, dsn string, attempts int, delay time.Duration) (*pgxpool.Pool, error) {
	var lastErr error
	wait := delay
	for i := 1; i <= attempts; i++ {
		attemptCtx, cancel := context.WithTimeout(ctx, dbAttemptTimeout)
		pool, err := newPool(attemptCtx, dsn)
		cancel()
		if err == nil {
			logger.Info("db connected", logx.Int("attempt", i))
			return pool, nil
		}
		lastErr = err
		if i == attempts {
			break
		}

		logger.Warn("db connect failed",
			logx.Int("attempt", i),
			logx.Int("attempts", attempts),
			logx.Duration("retry_in", wait),
			logx.Err(err),
		)
		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, ctx.Err()
		case <-t.C:
		}
		wait = min(wait*2, dbMaxBackoff)
	}
	return nil, fmt.Errorf("db connect failed after %d attempts: %w", attempts, lastErr)
}
