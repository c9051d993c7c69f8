package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/dig"

	"daycare-dispatch/internal/metrics"
)

type metricsOut struct {
	dig.Out
	Registry            *prometheus.Registry
	Gatherer            prometheus.Gatherer
	HTTP                *metrics.HTTP
	DispatchOutcomes    *prometheus.CounterVec
	RateLimitExceeded   prometheus.Counter `name:"rate_limit_exceeded_total"`
	PublisherRetries    prometheus.Counter `name:"publisher_retries_total"`
	NotificationsFailed prometheus.Counter `name:"notifications_failed_total"`
	WalletCredits       prometheus.Counter `name:"wallet_credits_total"`
}

// newMetrics registers every collector on a private registry so that
// repeated container builds in one process do not collide.
func newMetrics() (metricsOut, error) {
	reg := prometheus.NewRegistry()
	out := metricsOut{
		Registry:            reg,
		Gatherer:            reg,
		HTTP:                metrics.NewHTTP(),
		DispatchOutcomes:    metrics.NewDispatchOutcomesTotal(),
		RateLimitExceeded:   metrics.NewRateLimitExceededTotal(),
		PublisherRetries:    metrics.NewPublisherRetriesTotal(),
		NotificationsFailed: metrics.NewNotificationsFailedTotal(),
		WalletCredits:       metrics.NewWalletCreditsTotal(),
	}

	cs := []prometheus.Collector{
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		out.DispatchOutcomes,
		out.RateLimitExceeded,
		out.PublisherRetries,
		out.NotificationsFailed,
		out.WalletCredits,
	}
	cs = append(cs, out.HTTP.Collectors()...)
	for _, c := range cs {
		if err := reg.Register(c); err != nil {
			return metricsOut{}, err
		}
	}
	return out, nil
}

func registerMetrics(container *dig.Container) error {
	return provideAll(container, newMetrics)
}
