package app

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"daycare-dispatch/internal/apperr"
	"daycare-dispatch/internal/service/orders"
	"daycare-dispatch/internal/transport/kafka"
)

type handlerFunc func(ctx context.Context, e orders.Event) error

func (f handlerFunc) Handle(ctx context.Context, e orders.Event) error { return f(ctx, e) }

func TestMakeOrdersKafka(t *testing.T) {
	t.Parallel()

	transient := errors.New("db down")
	tests := []struct {
		name      string
		err       error
		permanent bool
	}{
		{name: "ok"},
		{name: "invalid", err: fmt.Errorf("bad snapshot: %w", apperr.ErrInvalid), permanent: true},
		{name: "not found", err: fmt.Errorf("order o1: %w", apperr.ErrNotFound), permanent: true},
		{name: "transient", err: transient},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got orders.Event
			h := makeOrdersKafka(handlerFunc(func(_ context.Context, e orders.Event) error {
				got = e
				return tt.err
			}))

			err := h(context.Background(), orders.Event{OrderID: "o1", Status: "confirmed"})
			require.Equal(t, "o1", got.OrderID)
			if tt.err == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.err)
			var perm kafka.PermanentError
			require.Equal(t, tt.permanent, errors.As(err, &perm))
		})
	}
}
