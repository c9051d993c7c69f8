// Package dispatch drives delivery assignments through their lifecycle.
package dispatch

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/singleflight"

	"daycare-dispatch/internal/apperr"
	"daycare-dispatch/internal/domain"
	"daycare-dispatch/internal/logx"
	"daycare-dispatch/internal/ports/dispatchtx"
	"daycare-dispatch/internal/service/notify"
	"daycare-dispatch/internal/service/settlement"
	"daycare-dispatch/internal/service/tracking"
)

type settingsSource interface {
	Current(ctx context.Context) (domain.PlatformSettings, error)
}

type notifier interface {
	Notify(ctx context.Context, m notify.Message)
}

type settler interface {
	Settle(ctx context.Context, assignmentID string) (settlement.Result, error)
}

type tracker interface {
	Start(assignmentID, agentID string) tracking.Session
	Update(assignmentID, agentID string, c domain.Coordinates) tracking.Session
	Get(assignmentID string) (tracking.Session, bool)
	Stop(assignmentID string)
}

// Outcome is the result class of a dispatch attempt.
type Outcome string

// Dispatch outcomes.
const (
	OutcomeAssigned          Outcome = "assigned"
	OutcomeNoCandidates      Outcome = "no_candidates"
	OutcomeAttemptsExhausted Outcome = "attempts_exhausted"
	OutcomeDisabled          Outcome = "disabled"
)

// Result is what AutoAssign reports. No candidates and exhausted attempts are
// not errors: the assignment stays pending for a later retry.
type Result struct {
	Outcome    Outcome            `json:"outcome"`
	Assignment *domain.Assignment `json:"assignment"`
}

// Err maps non-assigned outcomes onto their sentinel errors.
func (r Result) Err() error {
	switch r.Outcome {
	case OutcomeNoCandidates:
		return apperr.ErrNoCandidates
	case OutcomeAttemptsExhausted:
		return apperr.ErrAttemptsExhausted
	default:
		return nil
	}
}

// Engine - dispatch engine for delivery assignments.
type Engine struct {
	repo             dispatchtx.Runner
	settings         settingsSource
	notifier         notifier
	settler          settler
	tracker          tracker
	outcomes         *prometheus.CounterVec
	group            singleflight.Group
	operationTimeout time.Duration
	logger           logx.Logger
	now              func() time.Time
}

// NewEngine creates an Engine. notifier and outcomes may be nil.
func NewEngine(
	repo dispatchtx.Runner,
	settings settingsSource,
	n notifier,
	s settler,
	t tracker,
	outcomes *prometheus.CounterVec,
	timeout time.Duration,
	logger logx.Logger,
) *Engine {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	if t == nil {
		t = tracking.NewStore(0)
	}
	return &Engine{
		repo:             repo,
		settings:         settings,
		notifier:         n,
		settler:          s,
		tracker:          t,
		outcomes:         outcomes,
		operationTimeout: timeout,
		logger:           logger,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

func (e *Engine) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, e.operationTimeout)
}

func (e *Engine) count(outcome string) {
	if e.outcomes != nil {
		e.outcomes.WithLabelValues(outcome).Inc()
	}
}

func (e *Engine) notify(ctx context.Context, m notify.Message) {
	if e.notifier != nil {
		e.notifier.Notify(ctx, m)
	}
}

func (e *Engine) read(ctx context.Context, id string) (*domain.Assignment, error) {
	var out *domain.Assignment
	err := e.repo.WithTx(ctx, func(tx dispatchtx.Repository) error {
		a, err := tx.GetAssignment(ctx, id)
		out = a
		return err
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, apperr.ErrNotFound
	}
	return out, nil
}
