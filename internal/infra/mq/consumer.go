package mq

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"shopcore/internal/pkg/config"
	"shopcore/internal/pkg/errs"
	"shopcore/internal/pkg/metrics"
	"shopcore/internal/usecase/shared"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Handler processes one decoded envelope. A returned error dead-letters
// the message; it is not retried on the main queue.
type Handler func(ctx context.Context, envelope shared.Envelope) error

// Consumer drains the notification queue one message at a time.
// Prefetch stays at 1 so a crash loses at most one in-flight delivery.
type Consumer struct {
	cfg     config.AMQPConfig
	handler Handler
	metrics *metrics.Metrics
}

func NewConsumer(cfg config.AMQPConfig, handler Handler, metrics *metrics.Metrics) *Consumer {
	return &Consumer{
		cfg:     cfg,
		handler: handler,
		metrics: metrics,
	}
}

// Run consumes until the context is cancelled, reconnecting with
// backoff when the connection drops.
func (c *Consumer) Run(ctx context.Context) error {
	delay := c.cfg.ReconnectBaseDelay
	attempts := 0

	for {
		err := c.consumeOnce(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		attempts++
		if attempts > c.cfg.MaxReconnectAttempts {
			slog.Error("giving up on broker reconnection", "attempts", attempts-1)
			return errs.Wrap(err, "consumer exceeded reconnect attempts")
		}

		slog.Warn("consumer disconnected, retrying",
			"attempt", attempts,
			"delay", delay.String(),
			"error", err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}

		delay *= 2
		if delay > c.cfg.ReconnectMaxDelay {
			delay = c.cfg.ReconnectMaxDelay
		}
	}
}

func (c *Consumer) consumeOnce(ctx context.Context) error {
	conn, err := amqp.Dial(c.cfg.URL)
	if err != nil {
		return errs.Wrap(err, "failed to dial broker")
	}
	defer conn.Close()

	channel, err := conn.Channel()
	if err != nil {
		return errs.Wrap(err, "failed to open channel")
	}
	defer channel.Close()

	if err := DeclareTopology(channel, c.cfg); err != nil {
		return err
	}

	// One unacked message at a time: slow consumers back-pressure the
	// broker instead of buffering deliveries in memory.
	if err := channel.Qos(1, 0, false); err != nil {
		return errs.Wrap(err, "failed to set prefetch")
	}

	deliveries, err := channel.Consume(c.cfg.Queue, "", false, false, false, false, nil)
	if err != nil {
		return errs.Wrap(err, "failed to start consuming")
	}

	slog.Info("consuming notifications", "queue", c.cfg.Queue)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case delivery, ok := <-deliveries:
			if !ok {
				return errs.New("delivery channel closed")
			}
			c.handleDelivery(ctx, delivery)
		}
	}
}

func (c *Consumer) handleDelivery(ctx context.Context, delivery amqp.Delivery) {
	var envelope shared.Envelope
	if err := json.Unmarshal(delivery.Body, &envelope); err != nil {
		slog.Error("unparseable notification, dead-lettering", "error", err)
		c.deadLetter(delivery)
		return
	}

	if err := c.handler(ctx, envelope); err != nil {
		slog.Error("notification handling failed, dead-lettering",
			"event_type", envelope.EventType,
			"recipient", envelope.RecipientEmail,
			"error", err)
		c.deadLetter(delivery)
		return
	}

	if err := delivery.Ack(false); err != nil {
		slog.Warn("failed to ack delivery", "error", err)
	}
}

// deadLetter rejects without requeue so the broker routes the message
// to the dead-letter exchange instead of redelivering it forever.
func (c *Consumer) deadLetter(delivery amqp.Delivery) {
	c.metrics.DeadLetteredEvents.Inc()
	if err := delivery.Nack(false, false); err != nil {
		slog.Warn("failed to nack delivery", "error", err)
	}
}
