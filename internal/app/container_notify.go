package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"daycare-dispatch/internal/config"
	"daycare-dispatch/internal/logx"
	"daycare-dispatch/internal/service/notify"
	"daycare-dispatch/internal/transport/kafka"
)

func newProducer(cfg *config.Config) (*kafka.Producer, error) {
	return kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.NotificationsTopic)
}

type publisherIn struct {
	dig.In
	Config   *config.Config
	Logger   logx.Logger
	Producer *kafka.Producer
	Retries  prometheus.Counter `name:"publisher_retries_total"`
}

// newPublisher falls back to the log when no notifications topic is configured.
func newPublisher(in publisherIn) notify.Publisher {
	if in.Producer == nil {
		return notify.NewLogPublisher(in.Logger)
	}
	n := in.Config.Notify
	return kafka.NewRetryingPublisher(in.Producer, in.Logger, in.Retries, kafka.RetryConfig{
		MaxAttempts: n.MaxAttempts,
		BaseDelay:   n.BaseDelay,
		MaxDelay:    n.MaxDelay,
	})
}

type asyncIn struct {
	dig.In
	Config    *config.Config
	Logger    logx.Logger
	Publisher notify.Publisher
	Failures  prometheus.Counter `name:"notifications_failed_total"`
}

func newAsyncNotifier(in asyncIn) *notify.Async {
	return notify.NewAsync(in.Publisher, in.Config.Notify.Timeout, in.Failures, in.Logger)
}

func registerNotify(container *dig.Container) error {
	return provideAll(container,
		newProducer,
		newPublisher,
		newAsyncNotifier,
	)
}
