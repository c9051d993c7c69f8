package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/require"

	"daycare-dispatch/internal/apperr"
	"daycare-dispatch/internal/logx"
	"daycare-dispatch/internal/service/orders"
	testlog "daycare-dispatch/internal/testutil"
)

const testTopic = "orders.events"

type fakeSession struct {
	sarama.ConsumerGroupSession
	ctx context.Context

	mu     sync.Mutex
	marked []int64
}

func (s *fakeSession) Context() context.Context { return s.ctx }

func (s *fakeSession) MarkMessage(m *sarama.ConsumerMessage, _ string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.marked = append(s.marked, m.Offset)
}

func (s *fakeSession) Marked() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int64(nil), s.marked...)
}

type fakeClaim struct {
	sarama.ConsumerGroupClaim
	ch chan *sarama.ConsumerMessage
}

func (c fakeClaim) Messages() <-chan *sarama.ConsumerMessage { return c.ch }

func claimOf(values ...[]byte) fakeClaim {
	ch := make(chan *sarama.ConsumerMessage, len(values))
	for i, v := range values {
		ch <- &sarama.ConsumerMessage{Topic: testTopic, Value: v, Offset: int64(i)}
	}
	close(ch)
	return fakeClaim{ch: ch}
}

func event(t *testing.T, orderID, status string) []byte {
	t.Helper()
	b, err := json.Marshal(EventDTO{OrderID: orderID, VendorID: "v1", Status: status})
	require.NoError(t, err)
	return b
}

func TestConsumeClaim(t *testing.T) {
	t.Parallel()

	errDB := errors.New("db down")
	tests := []struct {
		name      string
		msgs      func(t *testing.T) [][]byte
		handle    func(orders.Event) error
		wantErr   error
		wantCalls []string
		wantMark  []int64
		wantLog   string
	}{
		{
			name:     "bad json is skipped",
			msgs:     func(*testing.T) [][]byte { return [][]byte{[]byte("not-json")} },
			wantMark: []int64{0},
			wantLog:  "kafka bad json",
		},
		{
			name:     "blank order id is skipped",
			msgs:     func(t *testing.T) [][]byte { return [][]byte{event(t, "   ", "created")} },
			wantMark: []int64{0},
			wantLog:  "kafka empty order_id",
		},
		{
			name: "permanent failure is marked and consumption continues",
			msgs: func(t *testing.T) [][]byte {
				return [][]byte{event(t, "o1", "created"), event(t, "o2", "created")}
			},
			handle:    func(orders.Event) error { return Permanent(apperr.ErrInvalid) },
			wantCalls: []string{"o1", "o2"},
			wantMark:  []int64{0, 1},
			wantLog:   "kafka handle failed, skipping message",
		},
		{
			name: "transient failure stops the claim unmarked",
			msgs: func(t *testing.T) [][]byte {
				return [][]byte{event(t, "o1", "created"), event(t, "o2", "created")}
			},
			handle:    func(orders.Event) error { return errDB },
			wantErr:   errDB,
			wantCalls: []string{"o1"},
			wantLog:   "kafka handle failed, retrying",
		},
		{
			name: "success marks every message",
			msgs: func(t *testing.T) [][]byte {
				return [][]byte{event(t, "o1", "created"), event(t, "o1", "delivered")}
			},
			wantCalls: []string{"o1", "o1"},
			wantMark:  []int64{0, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := testlog.New()
			var calls []string
			h := &groupHandler{c: &Consumer{
				logger: rec.Logger(),
				handler: func(_ context.Context, ev orders.Event) error {
					require.Equal(t, "v1", ev.VendorID)
					calls = append(calls, ev.OrderID)
					if tt.handle == nil {
						return nil
					}
					return tt.handle(ev)
				},
			}}

			sess := &fakeSession{ctx: context.Background()}
			err := h.ConsumeClaim(sess, claimOf(tt.msgs(t)...))

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			require.Equal(t, tt.wantCalls, calls)
			require.Equal(t, tt.wantMark, sess.Marked())
			if tt.wantLog != "" {
				require.Contains(t, rec.Messages(), tt.wantLog)
				topic, ok := rec.Field(tt.wantLog, "topic")
				require.True(t, ok)
				require.Equal(t, testTopic, topic)
			}
		})
	}
}

func TestConsumeClaim_StopsWhenSessionEnds(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	h := &groupHandler{c: &Consumer{
		logger: logx.Nop(),
		handler: func(context.Context, orders.Event) error {
			t.Fatal("handler must not be called")
			return nil
		},
	}}
	claim := fakeClaim{ch: make(chan *sarama.ConsumerMessage)}

	require.NoError(t, h.ConsumeClaim(&fakeSession{ctx: ctx}, claim))
}
