package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/dig"

	"daycare-dispatch/internal/config"
	"daycare-dispatch/internal/domain"
	"daycare-dispatch/internal/logx"
)

type fakeExpirer struct{ calls atomic.Int32 }

func (f *fakeExpirer) ExpireOverdue(_ context.Context, actor domain.Actor) (int, error) {
	if actor.Role != domain.RoleSystem {
		return 0, errors.New("unexpected actor")
	}
	f.calls.Add(1)
	return 1, nil
}

type fakePayouts struct{ calls atomic.Int32 }

func (f *fakePayouts) ProcessDue(context.Context, domain.Actor) ([]domain.VendorPayout, error) {
	f.calls.Add(1)
	return nil, errors.New("bank offline")
}

func TestWorkerRun_TicksUntilCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	exp := &fakeExpirer{}
	pay := &fakePayouts{}

	done := make(chan error, 1)
	go func() {
		done <- workerRun(worker{
			ctx:     ctx,
			cfg:     config.Dispatch{ExpiryInterval: 5 * time.Millisecond, PayoutInterval: 5 * time.Millisecond},
			logger:  logx.Nop(),
			engine:  exp,
			payouts: pay,
		})
	}()

	require.Eventually(t, func() bool {
		return exp.calls.Load() >= 2 && pay.calls.Load() >= 2
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestWorkerRun_DisabledSchedulers(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	exp := &fakeExpirer{}

	err := workerRun(worker{ctx: ctx, logger: logx.Nop(), engine: exp, payouts: &fakePayouts{}})
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Zero(t, exp.calls.Load())
}

func TestEvery_NonPositiveIntervalReturns(t *testing.T) {
	t.Parallel()

	called := false
	every(context.Background(), 0, func(context.Context) { called = true })
	require.False(t, called)
}

func TestWorkerRunner_MustRun(t *testing.T) {
	t.Parallel()

	require.NotPanics(t, func() {
		(&WorkerRunner{runFn: func(*dig.Container) error { return context.Canceled }}).MustRun(dig.New())
	})
	require.NotPanics(t, func() {
		(&WorkerRunner{runFn: func(*dig.Container) error { return nil }}).MustRun(dig.New())
	})
	require.Panics(t, func() {
		(&WorkerRunner{runFn: func(*dig.Container) error { return errors.New("boom") }}).MustRun(dig.New())
	})
}
