package middleware

import (
	"context"
	"io"
	"net/http"
	"strings"

	"daycare-dispatch/internal/domain"
	"daycare-dispatch/internal/logx"
)

// Actor headers set by the upstream gateway.
const (
	HeaderActorID   = "X-Actor-ID"
	HeaderActorRole = "X-Actor-Role"
)

type actorKey struct{}

// WithActor stores the caller in ctx.
func WithActor(ctx context.Context, a domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, a)
}

// ActorFrom returns the caller stored by Actor.
func ActorFrom(ctx context.Context) (domain.Actor, bool) {
	a, ok := ctx.Value(actorKey{}).(domain.Actor)
	return a, ok
}

// Actor rejects requests without a known caller identity.
func Actor(logger logx.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = logx.Nop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimSpace(r.Header.Get(HeaderActorID))
			role, err := domain.ParseRole(r.Header.Get(HeaderActorRole))
			if id == "" || err != nil {
				logger.Warn("unauthenticated request",
					logx.String("method", r.Method),
					logx.String("path", r.URL.Path),
					logx.String("role", r.Header.Get(HeaderActorRole)),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = io.WriteString(w, `{"error":"unauthenticated"}`)
				return
			}
			ctx := WithActor(r.Context(), domain.Actor{ID: id, Role: role})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
