package app

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"
	"golang.org/x/sync/errgroup"

	"daycare-dispatch/internal/config"
	"daycare-dispatch/internal/domain"
	"daycare-dispatch/internal/logx"
	"daycare-dispatch/internal/service/dispatch"
	"daycare-dispatch/internal/service/notify"
	"daycare-dispatch/internal/service/payout"
	"daycare-dispatch/internal/transport/kafka"
)

// WorkerRunner runs the background side: the orders consumer plus the
// expiry and payout schedulers.
type WorkerRunner struct {
	runFn func(*dig.Container) error
}

// NewWorkerRunner returns a new WorkerRunner
func NewWorkerRunner() *WorkerRunner {
	return &WorkerRunner{runFn: runWorker}
}

// MustRun runs the worker until the container context is done.
func (r *WorkerRunner) MustRun(container *dig.Container) {
	err := r.runFn(container)
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}
	panic(err)
}

type expirer interface {
	ExpireOverdue(ctx context.Context, actor domain.Actor) (int, error)
}

type payoutProcessor interface {
	ProcessDue(ctx context.Context, actor domain.Actor) ([]domain.VendorPayout, error)
}

type workerIn struct {
	dig.In
	Ctx      context.Context
	Config   *config.Config
	Pool     *pgxpool.Pool
	Logger   logx.Logger
	Consumer *kafka.Consumer
	Producer *kafka.Producer
	Notifier *notify.Async
	Engine   *dispatch.Engine
	Payouts  *payout.Service
}

type worker struct {
	ctx      context.Context
	cfg      config.Dispatch
	pool     *pgxpool.Pool
	logger   logx.Logger
	consumer *kafka.Consumer
	producer *kafka.Producer
	notifier *notify.Async
	engine   expirer
	payouts  payoutProcessor
}

func runWorker(container *dig.Container) error {
	return container.Invoke(func(in workerIn) error {
		return workerRun(worker{
			ctx:      in.Ctx,
			cfg:      in.Config.Dispatch,
			pool:     in.Pool,
			logger:   in.Logger,
			consumer: in.Consumer,
			producer: in.Producer,
			notifier: in.Notifier,
			engine:   in.Engine,
			payouts:  in.Payouts,
		})
	})
}

func workerRun(in worker) error {
	defer closeWorker(in)

	if in.consumer == nil {
		in.logger.Warn("kafka consumer disabled, running schedulers only")
	}

	g, ctx := errgroup.WithContext(in.ctx)
	g.Go(func() error {
		return in.consumer.Run(ctx)
	})
	g.Go(func() error {
		every(ctx, in.cfg.ExpiryInterval, func(ctx context.Context) {
			n, err := in.engine.ExpireOverdue(ctx, domain.SystemActor)
			if err != nil {
				in.logger.Error("expire overdue failed", logx.Err(err))
				return
			}
			if n > 0 {
				in.logger.Info("overdue assignments released", logx.Int("count", n))
			}
		})
		return nil
	})
	g.Go(func() error {
		every(ctx, in.cfg.PayoutInterval, func(ctx context.Context) {
			done, err := in.payouts.ProcessDue(ctx, domain.SystemActor)
			if err != nil {
				in.logger.Error("process due payouts failed", logx.Err(err))
				return
			}
			if len(done) > 0 {
				in.logger.Info("vendor payouts processed", logx.Int("count", len(done)))
			}
		})
		return nil
	})

	in.logger.Info("service-dispatch-worker started")
	if err := g.Wait(); err != nil {
		return err
	}
	<-in.ctx.Done()
	return in.ctx.Err()
}

// every runs fn on each tick until ctx is done. A non-positive interval disables it.
func every(ctx context.Context, interval time.Duration, fn func(context.Context)) {
	if interval <= 0 {
		return
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			fn(ctx)
		}
	}
}

func closeWorker(in worker) {
	if err := in.consumer.Close(); err != nil {
		in.logger.Error("kafka close error", logx.Err(err))
	}
	closeResources(in.logger, in.pool, in.producer, in.notifier)
}
