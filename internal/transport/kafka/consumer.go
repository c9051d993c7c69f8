// Package kafka carries order events in and notifications out over Kafka.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/IBM/sarama"

	"daycare-dispatch/internal/logx"
	"daycare-dispatch/internal/service/orders"
)

// HandleFunc processes a single orders.Event from Kafka
type HandleFunc func(context.Context, orders.Event) error

var newConsumerGroup = sarama.NewConsumerGroup

const consumeRetryDelay = time.Second

// Consumer wraps a Sarama consumer group and dispatches events to a handler
type Consumer struct {
	group   sarama.ConsumerGroup
	topic   string
	handler HandleFunc
	logger  logx.Logger
}

// NewConsumer creates a new Kafka consumer. It returns nil, nil when Kafka is not configured.
func NewConsumer(logger logx.Logger, brokers []string, groupID, topic string, h HandleFunc) (*Consumer, error) {
	if len(brokers) == 0 || strings.TrimSpace(topic) == "" || strings.TrimSpace(groupID) == "" {
		return nil, nil
	}
	if logger == nil {
		logger = logx.Nop()
	}

	cfg := sarama.NewConfig()
	cfg.Consumer.Offsets.Initial = sarama.OffsetOldest

	group, err := newConsumerGroup(brokers, groupID, cfg)
	if err != nil {
		return nil, err
	}

	return &Consumer{
		group:   group,
		topic:   topic,
		handler: h,
		logger:  logger,
	}, nil
}

// Run consumes until ctx is done.
func (c *Consumer) Run(ctx context.Context) error {
	if c == nil {
		return nil
	}

	h := &groupHandler{c: c}

	for {
		if err := c.group.Consume(ctx, []string{c.topic}, h); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.logger.Error("kafka consume error",
				logx.String("event", "kafka_consume_error"),
				logx.String("topic", c.topic),
				logx.Err(err),
			)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(consumeRetryDelay):
			}
			continue
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

// Close closes the consumer group.
func (c *Consumer) Close() error {
	if c == nil {
		return nil
	}
	return c.group.Close()
}

type groupHandler struct{ c *Consumer }

func (h *groupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

// ConsumeClaim hands messages to the handler in partition order. Malformed
// messages and permanent failures are marked and skipped; any other failure
// ends the claim so the message is redelivered.
func (h *groupHandler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case msg, ok := <-claim.Messages():
			if !ok {
				return nil
			}
			if err := h.process(sess, msg); err != nil {
				return err
			}
		case <-sess.Context().Done():
			return nil
		}
	}
}

func (h *groupHandler) process(sess sarama.ConsumerGroupSession, msg *sarama.ConsumerMessage) error {
	log := h.c.logger.With(
		logx.String("topic", msg.Topic),
		logx.Int64("offset", msg.Offset),
	)

	ev, ok := decode(log, msg.Value)
	if !ok {
		sess.MarkMessage(msg, "")
		return nil
	}
	log = log.With(logx.String("order_id", ev.OrderID), logx.String("status", ev.Status))

	err := h.c.handler(sess.Context(), ev)
	var perm PermanentError
	switch {
	case err == nil:
	case errors.As(err, &perm):
		log.Warn("kafka handle failed, skipping message", logx.Err(err))
	default:
		log.Error("kafka handle failed, retrying", logx.Err(err))
		return err
	}
	sess.MarkMessage(msg, "")
	return nil
}

func decode(log logx.Logger, raw []byte) (orders.Event, bool) {
	var dto EventDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		log.Warn("kafka bad json", logx.Err(err))
		return orders.Event{}, false
	}
	ev := ToDomain(dto)
	if ev.OrderID == "" {
		log.Warn("kafka empty order_id")
		return orders.Event{}, false
	}
	return ev, true
}
