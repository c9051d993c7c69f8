package app

import (
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"daycare-dispatch/internal/config"
	"daycare-dispatch/internal/domain"
	"daycare-dispatch/internal/logx"
	"daycare-dispatch/internal/ports/dispatchtx"
	"daycare-dispatch/internal/service/agent"
	"daycare-dispatch/internal/service/commission"
	"daycare-dispatch/internal/service/dispatch"
	"daycare-dispatch/internal/service/ledger"
	"daycare-dispatch/internal/service/notify"
	"daycare-dispatch/internal/service/orders"
	"daycare-dispatch/internal/service/payout"
	"daycare-dispatch/internal/service/settings"
	"daycare-dispatch/internal/service/settlement"
	"daycare-dispatch/internal/service/tracking"
)

func newSettingsProvider(cfg *config.Config, repo dispatchtx.Runner, logger logx.Logger) (*settings.Provider, error) {
	var zones []domain.Zone
	if path := strings.TrimSpace(cfg.Settings.ZonesFile); path != "" {
		z, err := config.LoadZones(path)
		if err != nil {
			return nil, fmt.Errorf("zones: %w", err)
		}
		zones = z
	}
	return settings.NewProvider(repo, zones, cfg.Settings.CacheTTL, cfg.Dispatch.OperationTimeout, logger), nil
}

func newAgentService(cfg *config.Config, repo dispatchtx.Runner, logger logx.Logger) *agent.Service {
	return agent.NewService(repo, cfg.Dispatch.OperationTimeout, logger)
}

func newCommissionService(cfg *config.Config, repo dispatchtx.Runner, s *settings.Provider, logger logx.Logger) *commission.Service {
	return commission.NewService(repo, s, cfg.Dispatch.OperationTimeout, logger)
}

type ledgerIn struct {
	dig.In
	Config   *config.Config
	Repo     dispatchtx.Runner
	Settings *settings.Provider
	Notifier *notify.Async
	Credits  prometheus.Counter `name:"wallet_credits_total"`
	Logger   logx.Logger
}

func newLedgerService(in ledgerIn) *ledger.Service {
	return ledger.NewService(in.Repo, in.Settings, in.Notifier, in.Credits, in.Config.Dispatch.OperationTimeout, in.Logger)
}

func newPayoutService(
	cfg *config.Config,
	repo dispatchtx.Runner,
	s *settings.Provider,
	n *notify.Async,
	logger logx.Logger,
) *payout.Service {
	return payout.NewService(repo, s, n, cfg.Dispatch.OperationTimeout, logger)
}

func newSettlementService(
	repo dispatchtx.Runner,
	l *ledger.Service,
	p *payout.Service,
	logger logx.Logger,
) *settlement.Service {
	return settlement.NewService(repo, l, p, logger)
}

func newTrackingStore(cfg *config.Config) *tracking.Store {
	return tracking.NewStore(cfg.Tracking.SessionTTL)
}

type engineIn struct {
	dig.In
	Config   *config.Config
	Repo     dispatchtx.Runner
	Settings *settings.Provider
	Notifier *notify.Async
	Settler  *settlement.Service
	Tracker  *tracking.Store
	Outcomes *prometheus.CounterVec
	Logger   logx.Logger
}

func newEngine(in engineIn) *dispatch.Engine {
	return dispatch.NewEngine(
		in.Repo,
		in.Settings,
		in.Notifier,
		in.Settler,
		in.Tracker,
		in.Outcomes,
		in.Config.Dispatch.OperationTimeout,
		in.Logger,
	)
}

func newOrdersProcessor(
	e *dispatch.Engine,
	c *commission.Service,
	repo dispatchtx.Runner,
	logger logx.Logger,
) *orders.Processor {
	return orders.NewProcessor(e, c, repo, logger)
}

func registerService(container *dig.Container) error {
	return provideAll(container,
		newSettingsProvider,
		newAgentService,
		newCommissionService,
		newLedgerService,
		newPayoutService,
		newSettlementService,
		newTrackingStore,
		newEngine,
		newOrdersProcessor,
	)
}
