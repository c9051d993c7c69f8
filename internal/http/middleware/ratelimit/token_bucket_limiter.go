package ratelimit

import (
	"math"
	"sync"
	"time"
)

// Config stores TokenBucketLimiter settings.
type Config struct {
	Rate       float64       // tokens per second
	Burst      int           // bucket capacity
	TTL        time.Duration // idle buckets older than this are swept; 0 keeps them
	MaxBuckets int           // 0 means unbounded
}

// TokenBucketLimiter keeps one bucket per caller key.
type TokenBucketLimiter struct {
	cfg   Config
	now   func() time.Time
	mu    sync.Mutex
	table map[string]*bucket
	swept time.Time
}

type bucket struct {
	tokens float64
	filled time.Time
}

// NewTokenBucketLimiter creates a limiter. A nil now uses time.Now.
func NewTokenBucketLimiter(cfg Config, now func() time.Time) *TokenBucketLimiter {
	if now == nil {
		now = time.Now
	}
	if cfg.Rate <= 0 {
		cfg.Rate = 1
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	if cfg.MaxBuckets < 0 {
		cfg.MaxBuckets = 0
	}
	return &TokenBucketLimiter{
		cfg:   cfg,
		now:   now,
		table: make(map[string]*bucket),
	}
}

// Take spends one token of key's bucket. When the bucket table is full, unknown
// keys are refused until idle buckets are swept.
func (l *TokenBucketLimiter) Take(key string) Decision {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()
	l.sweep(now)

	b, ok := l.table[key]
	if !ok {
		if l.cfg.MaxBuckets > 0 && len(l.table) >= l.cfg.MaxBuckets {
			return Decision{RetryAfter: l.tokenInterval()}
		}
		b = &bucket{tokens: float64(l.cfg.Burst), filled: now}
		l.table[key] = b
	}

	if dt := now.Sub(b.filled); dt > 0 {
		b.tokens = math.Min(float64(l.cfg.Burst), b.tokens+dt.Seconds()*l.cfg.Rate)
		b.filled = now
	}
	if b.tokens < 1 {
		missing := (1 - b.tokens) / l.cfg.Rate
		return Decision{RetryAfter: time.Duration(missing * float64(time.Second))}
	}
	b.tokens--
	return Decision{Allowed: true}
}

// Len reports the number of live buckets.
func (l *TokenBucketLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.table)
}

func (l *TokenBucketLimiter) tokenInterval() time.Duration {
	return time.Duration(float64(time.Second) / l.cfg.Rate)
}

// sweep drops idle buckets at most once per half TTL (min one minute). Caller holds mu.
func (l *TokenBucketLimiter) sweep(now time.Time) {
	if l.cfg.TTL <= 0 {
		return
	}
	every := max(time.Minute, l.cfg.TTL/2)
	if !l.swept.IsZero() && now.Sub(l.swept) < every {
		return
	}
	l.swept = now

	for k, b := range l.table {
		if now.Sub(b.filled) > l.cfg.TTL {
			delete(l.table, k)
		}
	}
}
