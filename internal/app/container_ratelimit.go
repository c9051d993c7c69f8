package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"daycare-dispatch/internal/config"
	"daycare-dispatch/internal/domain"
	"daycare-dispatch/internal/http/middleware/ratelimit"
	"daycare-dispatch/internal/logx"
)

// newRateLimiter builds the per-actor limiter. RATE_LIMIT_ENABLED=false turns it off.
func newRateLimiter(cfg *config.Config) ratelimit.Limiter {
	rl := cfg.RateLimit
	if !rl.Enabled {
		return ratelimit.Unlimited{}
	}
	return ratelimit.NewTokenBucketLimiter(ratelimit.Config{
		Rate:       rl.Rate,
		Burst:      rl.Burst,
		TTL:        rl.TTL,
		MaxBuckets: rl.MaxBuckets,
	}, nil)
}

type rateLimitIn struct {
	dig.In
	Logger  logx.Logger
	Counter prometheus.Counter `name:"rate_limit_exceeded_total"`
	Limiter ratelimit.Limiter
}

// newRateLimitMiddleware exempts the system actor used by internal schedulers.
func newRateLimitMiddleware(in rateLimitIn) *ratelimit.Middleware {
	return ratelimit.New(in.Logger, in.Counter, in.Limiter, domain.RoleSystem)
}
