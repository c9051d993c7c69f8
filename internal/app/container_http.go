package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"daycare-dispatch/internal/config"
	"daycare-dispatch/internal/http/handlers"
	"daycare-dispatch/internal/http/middleware/ratelimit"
	"daycare-dispatch/internal/http/pprofserver"
	"daycare-dispatch/internal/http/router"
	"daycare-dispatch/internal/logx"
	"daycare-dispatch/internal/metrics"
	"daycare-dispatch/internal/service/agent"
	"daycare-dispatch/internal/service/commission"
	"daycare-dispatch/internal/service/dispatch"
	"daycare-dispatch/internal/service/ledger"
	"daycare-dispatch/internal/service/payout"
	"daycare-dispatch/internal/service/settings"
)

type handlersIn struct {
	dig.In
	Logger      logx.Logger
	Engine      *dispatch.Engine
	Agents      *agent.Service
	Ledger      *ledger.Service
	Commissions *commission.Service
	Payouts     *payout.Service
	Settings    *settings.Provider
}

func newRouterHandlers(in handlersIn) router.Handlers {
	return router.Handlers{
		Base:        handlers.New(in.Logger),
		Assignments: handlers.NewAssignmentHandler(in.Logger, in.Engine),
		Agents:      handlers.NewAgentHandler(in.Logger, in.Agents, in.Ledger),
		Finance:     handlers.NewFinanceHandler(in.Logger, in.Commissions, in.Payouts),
		Settings:    handlers.NewSettingsHandler(in.Logger, in.Settings),
	}
}

type routerIn struct {
	dig.In
	Handlers  router.Handlers
	Logger    logx.Logger
	Metrics   *metrics.HTTP
	RateLimit *ratelimit.Middleware
	Gatherer  prometheus.Gatherer
}

func newMux(in routerIn) http.Handler {
	return router.New(in.Handlers, router.Options{
		Logger:    in.Logger,
		Metrics:   in.Metrics,
		RateLimit: in.RateLimit,
		Gatherer:  in.Gatherer,
	})
}

func newServer(cfg *config.Config, mux http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

type pprofOut struct {
	dig.Out
	Server *http.Server `name:"pprof"`
}

// newPprofServer yields a nil server when PPROF_ADDR is empty.
func newPprofServer(cfg *config.Config, logger logx.Logger) pprofOut {
	return pprofOut{Server: pprofserver.NewServer(cfg.Pprof, logger)}
}

func registerHTTP(container *dig.Container) error {
	return provideAll(container,
		newRateLimiter,
		newRateLimitMiddleware,
		newRouterHandlers,
		newMux,
		newServer,
		newPprofServer,
	)
}
