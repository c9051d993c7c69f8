package app

import (
	"context"

	"go.uber.org/dig"

	"daycare-dispatch/internal/apperr"
	"daycare-dispatch/internal/config"
	"daycare-dispatch/internal/logx"
	"daycare-dispatch/internal/service/orders"
	"daycare-dispatch/internal/transport/kafka"
)

type ordersHandler interface {
	Handle(ctx context.Context, e orders.Event) error
}

// makeOrdersKafka adapts the processor to the consumer. Events that reference
// unknown data or fail validation will not succeed on redelivery.
func makeOrdersKafka(p ordersHandler) kafka.HandleFunc {
	return func(ctx context.Context, event orders.Event) error {
		return kafka.PermanentIf(p.Handle(ctx, event), apperr.ErrInvalid, apperr.ErrNotFound)
	}
}

func newOrdersConsumer(cfg *config.Config, logger logx.Logger, p *orders.Processor) (*kafka.Consumer, error) {
	return kafka.NewConsumer(logger, cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.OrdersTopic, makeOrdersKafka(p))
}

func registerKafka(container *dig.Container) error {
	return provideAll(container, newOrdersConsumer)
}
