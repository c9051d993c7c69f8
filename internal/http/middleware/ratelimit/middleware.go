package ratelimit

import (
	"io"
	"math"
	"net"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"daycare-dispatch/internal/domain"
	"daycare-dispatch/internal/http/middleware"
	"daycare-dispatch/internal/logx"
)

// Middleware throttles requests per caller.
type Middleware struct {
	logger  logx.Logger
	counter prometheus.Counter
	limiter Limiter
	exempt  []domain.Role
}

// New creates a Middleware. A nil limiter lets everything through. Callers
// holding one of the exempt roles are never throttled.
func New(logger logx.Logger, counter prometheus.Counter, limiter Limiter, exempt ...domain.Role) *Middleware {
	if logger == nil {
		logger = logx.Nop()
	}
	if limiter == nil {
		limiter = Unlimited{}
	}
	return &Middleware{
		logger:  logger,
		counter: counter,
		limiter: limiter,
		exempt:  exempt,
	}
}

// Handler returns chi-style middleware. It must run after the actor middleware
// for actor keys to apply.
func (m *Middleware) Handler() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, hasActor := middleware.ActorFrom(r.Context())
			if hasActor && slices.Contains(m.exempt, actor.Role) {
				next.ServeHTTP(w, r)
				return
			}

			key := "ip:" + clientIP(r)
			if hasActor {
				key = "actor:" + actor.ID
			}

			d := m.limiter.Take(key)
			if d.Allowed {
				next.ServeHTTP(w, r)
				return
			}

			if m.counter != nil {
				m.counter.Inc()
			}
			m.logger.Warn("rate limit exceeded",
				logx.String("event", "rate_limited"),
				logx.String("key", key),
				logx.String("method", r.Method),
				logx.String("path", r.URL.Path),
				logx.Duration("retry_after", d.RetryAfter),
			)
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", retryAfterSeconds(d.RetryAfter))
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = io.WriteString(w, `{"error":"too many requests"}`)
		})
	}
}

// retryAfterSeconds rounds up to whole seconds, never below one.
func retryAfterSeconds(d time.Duration) string {
	s := int(math.Ceil(d.Seconds()))
	if s < 1 {
		s = 1
	}
	return strconv.Itoa(s)
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}
