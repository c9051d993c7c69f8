// Package notify delivers best-effort notifications about dispatch and payment events.
package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"daycare-dispatch/internal/logx"
)

// Kind names a notification.
type Kind string

// Notification kinds.
const (
	KindAgentAssigned   Kind = "agent_assigned"
	KindNoAgents        Kind = "no_agents_available"
	KindPaymentCredited Kind = "payment_credited"
	KindPayoutScheduled Kind = "payout_scheduled"
)

// RecipientAdmin addresses the operations team.
const RecipientAdmin = "admin"

// Message is one outbound notification.
type Message struct {
	Kind         Kind              `json:"kind"`
	Recipient    string            `json:"recipient"`
	AssignmentID string            `json:"assignment_id,omitempty"`
	OrderID      string            `json:"order_id,omitempty"`
	Text         string            `json:"text"`
	Data         map[string]string `json:"data,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
}

// Publisher sends a message to the notification channel.
type Publisher interface {
	Publish(ctx context.Context, m Message) error
}

type counter interface {
	Inc()
}

// Async publishes in the background. Callers never see publish errors; they
// are logged and counted.
type Async struct {
	pub      Publisher
	timeout  time.Duration
	failures counter
	logger   logx.Logger
	now      func() time.Time
	wg       sync.WaitGroup
}

// NewAsync wraps pub. failures may be nil.
func NewAsync(pub Publisher, timeout time.Duration, failures counter, logger logx.Logger) *Async {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Async{
		pub:      pub,
		timeout:  timeout,
		failures: failures,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Notify schedules m for delivery and returns immediately.
// The caller's cancellation does not abort the publish.
func (a *Async) Notify(ctx context.Context, m Message) {
	if a == nil || a.pub == nil {
		return
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = a.now()
	}
	ctx = context.WithoutCancel(ctx)

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		defer func() {
			if p := recover(); p != nil {
				a.fail(m, fmt.Errorf("publisher panic: %v", p))
			}
		}()

		ctx, cancel := context.WithTimeout(ctx, a.timeout)
		defer cancel()
		if err := a.pub.Publish(ctx, m); err != nil {
			a.fail(m, err)
		}
	}()
}

// Wait blocks until in-flight notifications finish.
func (a *Async) Wait() {
	if a == nil {
		return
	}
	a.wg.Wait()
}

func (a *Async) fail(m Message, err error) {
	if a.failures != nil {
		a.failures.Inc()
	}
	a.logger.Warn("notification failed",
		logx.String("event", "notification_failed"),
		logx.String("kind", string(m.Kind)),
		logx.String("recipient", m.Recipient),
		logx.Err(err),
	)
}

// LogPublisher writes notifications to the log. Used when no broker is configured.
type LogPublisher struct {
	logger logx.Logger
}

// NewLogPublisher creates a LogPublisher.
func NewLogPublisher(logger logx.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// Publish logs m.
func (p *LogPublisher) Publish(_ context.Context, m Message) error {
	p.logger.Info("notification",
		logx.String("event", "notification"),
		logx.String("kind", string(m.Kind)),
		logx.String("recipient", m.Recipient),
		logx.String("assignment_id", m.AssignmentID),
		logx.String("order_id", m.OrderID),
		logx.String("text", m.Text),
	)
	return nil
}
