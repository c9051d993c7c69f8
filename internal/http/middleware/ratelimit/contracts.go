package ratelimit

import "time"

// Decision is the outcome of one Take.
type Decision struct {
	Allowed bool
	// RetryAfter is how long a refused caller should wait for the next token.
	RetryAfter time.Duration
}

// Limiter decides whether the caller identified by key may proceed.
type Limiter interface {
	Take(key string) Decision
}

// Unlimited lets every request through.
type Unlimited struct{}

// Take always allows.
func (Unlimited) Take(string) Decision { return Decision{Allowed: true} }
