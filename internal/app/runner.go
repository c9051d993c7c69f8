package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"

	"daycare-dispatch/internal/logx"
	"daycare-dispatch/internal/service/notify"
	"daycare-dispatch/internal/transport/kafka"
)

const shutdownTimeout = 15 * time.Second

// Runner runs the HTTP API.
type Runner struct {
	runFn func(*dig.Container) error
	fatal func(string, ...interface{})
}

// NewRunner returns a new Runner
func NewRunner() *Runner {
	return &Runner{runFn: run, fatal: log.Fatalf}
}

// MustRun starts the HTTP server using the provided DI container
func (r *Runner) MustRun(container *dig.Container) {
	err := r.runFn(container)
	if err == nil {
		return
	}
	logger := containerLogger(container)
	switch {
	case errors.Is(err, context.Canceled):
		logger.Info("shutdown requested, exiting")
	case errors.Is(err, context.DeadlineExceeded):
		logger.Warn("startup aborted: startup timeout exceeded")
	default:
		r.fatal("run error: %v", err)
	}
}

func containerLogger(container *dig.Container) logx.Logger {
	var logger logx.Logger = logx.Nop()
	_ = container.Invoke(func(l logx.Logger) { logger = l })
	return logger
}

type runIn struct {
	dig.In
	Ctx      context.Context
	Server   *http.Server
	Pprof    *http.Server `name:"pprof"`
	Pool     *pgxpool.Pool
	Logger   logx.Logger
	Producer *kafka.Producer
	Notifier *notify.Async
}

func run(container *dig.Container) error {
	return container.Invoke(serve)
}

func serve(in runIn) error {
	errCh := make(chan error, 2)
	startServer(in.Server, "api", in.Logger, errCh)
	if in.Pprof != nil {
		startServer(in.Pprof, "pprof", in.Logger, errCh)
	}

	var runErr error
	select {
	case <-in.Ctx.Done():
		in.Logger.Info("shutting down service-dispatch")
	case runErr = <-errCh:
		in.Logger.Error("server failed", logx.Err(runErr))
	}

	gracefulShutdown(in.Logger, shutdownTimeout, in.Server, in.Pprof)
	closeResources(in.Logger, in.Pool, in.Producer, in.Notifier)
	return runErr
}

func startServer(srv *http.Server, name string, logger logx.Logger, errCh chan<- error) {
	go func() {
		logger.Info("listening", logx.String("server", name), logx.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("%s listen: %w", name, err)
		}
	}()
}

func gracefulShutdown(logger logx.Logger, timeout time.Duration, servers ...*http.Server) {
	shCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	for _, srv := range servers {
		if srv == nil {
			continue
		}
		if err := srv.Shutdown(shCtx); err != nil {
			logger.Warn("graceful shutdown error", logx.String("addr", srv.Addr), logx.Err(err))
			_ = srv.Close()
		}
	}
}

// closeResources drains pending notifications before the producer goes away.
func closeResources(logger logx.Logger, pool *pgxpool.Pool, producer *kafka.Producer, n *notify.Async) {
	n.Wait()
	if err := producer.Close(); err != nil {
		logger.Error("kafka producer close error", logx.Err(err))
	}
	if pool != nil {
		pool.Close()
	}
}
