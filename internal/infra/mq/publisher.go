package mq

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"shopcore/internal/pkg/config"
	"shopcore/internal/pkg/errs"
	"shopcore/internal/pkg/metrics"
	"shopcore/internal/usecase/commands"
	"shopcore/internal/usecase/shared"

	amqp "github.com/rabbitmq/amqp091-go"
)

var (
	ErrPublisherClosed = errs.New("publisher is closed")
	ErrNotConnected    = errs.New("broker connection unavailable")
)

// Publisher keeps one long-lived connection to the broker. A failed
// publish triggers a single synchronous reconnect attempt; sustained
// outages are handled by the background reconnect loop so request
// paths never block on broker recovery.
type Publisher struct {
	cfg     config.AMQPConfig
	metrics *metrics.Metrics

	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
	closed  bool

	notifyClose chan *amqp.Error
	done        chan struct{}
}

func NewPublisher(cfg config.AMQPConfig, metrics *metrics.Metrics) (commands.EventPublisher, func(), error) {
	p := &Publisher{
		cfg:     cfg,
		metrics: metrics,
		done:    make(chan struct{}),
	}

	if err := p.connect(); err != nil {
		// Start degraded: the reconnect loop keeps trying while the
		// rest of the service comes up.
		slog.Error("initial broker connection failed", "error", err)
	}

	go p.reconnectLoop()

	cleanup := func() {
		if err := p.Close(); err != nil {
			slog.Warn("failed to close publisher", "error", err)
		}
	}
	return p, cleanup, nil
}

func (p *Publisher) Publish(ctx context.Context, envelope shared.Envelope) error {
	body, err := json.Marshal(envelope)
	if err != nil {
		return errs.Wrap(err, "failed to marshal envelope")
	}

	if err := p.publish(ctx, body); err == nil {
		return nil
	}

	// One synchronous retry after reconnecting; anything beyond that is
	// the background loop's problem.
	if err := p.reconnect(); err != nil {
		return err
	}
	return p.publish(ctx, body)
}

func (p *Publisher) publish(ctx context.Context, body []byte) error {
	p.mu.Lock()
	channel := p.channel
	closed := p.closed
	p.mu.Unlock()

	if closed {
		return ErrPublisherClosed
	}
	if channel == nil {
		return ErrNotConnected
	}

	return channel.PublishWithContext(ctx,
		p.cfg.Exchange,
		p.cfg.RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
}

func (p *Publisher) connect() error {
	conn, err := amqp.Dial(p.cfg.URL)
	if err != nil {
		return errs.Wrap(err, "failed to dial broker")
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return errs.Wrap(err, "failed to open channel")
	}

	if err := DeclareTopology(channel, p.cfg); err != nil {
		channel.Close()
		conn.Close()
		return err
	}

	notifyClose := make(chan *amqp.Error, 1)
	conn.NotifyClose(notifyClose)

	p.mu.Lock()
	p.conn = conn
	p.channel = channel
	p.notifyClose = notifyClose
	p.mu.Unlock()

	slog.Info("connected to broker", "exchange", p.cfg.Exchange, "queue", p.cfg.Queue)
	return nil
}

func (p *Publisher) reconnect() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrPublisherClosed
	}
	p.teardownLocked()
	p.mu.Unlock()

	p.metrics.PublisherReconnects.Inc()
	return p.connect()
}

// reconnectLoop re-establishes dropped connections with exponential
// backoff, giving up after the configured attempt budget.
func (p *Publisher) reconnectLoop() {
	for {
		p.mu.Lock()
		notifyClose := p.notifyClose
		closed := p.closed
		p.mu.Unlock()

		if closed {
			return
		}
		if notifyClose == nil {
			// Never connected yet; pace the retries like a drop.
			if !p.retryWithBackoff() {
				return
			}
			continue
		}

		select {
		case <-p.done:
			return
		case amqpErr, ok := <-notifyClose:
			if !ok && p.isClosed() {
				return
			}
			if amqpErr != nil {
				slog.Warn("broker connection lost", "error", amqpErr.Error())
			}
			if !p.retryWithBackoff() {
				return
			}
		}
	}
}

func (p *Publisher) retryWithBackoff() bool {
	delay := p.cfg.ReconnectBaseDelay
	for attempt := 1; attempt <= p.cfg.MaxReconnectAttempts; attempt++ {
		select {
		case <-p.done:
			return false
		case <-time.After(delay):
		}

		err := p.reconnect()
		if err == nil {
			return true
		}
		slog.Warn("broker reconnect failed",
			"attempt", attempt,
			"max_attempts", p.cfg.MaxReconnectAttempts,
			"next_delay", delay.String(),
			"error", err)

		delay *= 2
		if delay > p.cfg.ReconnectMaxDelay {
			delay = p.cfg.ReconnectMaxDelay
		}
	}

	slog.Error("giving up on broker reconnection",
		"attempts", p.cfg.MaxReconnectAttempts)
	return false
}

func (p *Publisher) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

func (p *Publisher) teardownLocked() {
	if p.channel != nil {
		p.channel.Close()
		p.channel = nil
	}
	if p.conn != nil {
		p.conn.Close()
		p.conn = nil
	}
	p.notifyClose = nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	close(p.done)
	p.teardownLocked()
	return nil
}

// DeclareTopology asserts the durable exchange, the work queue wired to
// the dead-letter exchange, and the dead-letter queue itself. Safe to
// call on every connect.
func DeclareTopology(channel *amqp.Channel, cfg config.AMQPConfig) error {
	if err := channel.ExchangeDeclare(
		cfg.Exchange, "direct", true, false, false, false, nil,
	); err != nil {
		return errs.Wrap(err, "failed to declare exchange")
	}

	if err := channel.ExchangeDeclare(
		cfg.DeadLetterExchange, "direct", true, false, false, false, nil,
	); err != nil {
		return errs.Wrap(err, "failed to declare dead-letter exchange")
	}

	if _, err := channel.QueueDeclare(
		cfg.Queue, true, false, false, false,
		amqp.Table{
			"x-dead-letter-exchange":    cfg.DeadLetterExchange,
			"x-dead-letter-routing-key": cfg.RoutingKey,
		},
	); err != nil {
		return errs.Wrap(err, "failed to declare queue")
	}

	if _, err := channel.QueueDeclare(
		cfg.DeadLetterQueue, true, false, false, false, nil,
	); err != nil {
		return errs.Wrap(err, "failed to declare dead-letter queue")
	}

	if err := channel.QueueBind(cfg.Queue, cfg.RoutingKey, cfg.Exchange, false, nil); err != nil {
		return errs.Wrap(err, "failed to bind queue")
	}
	if err := channel.QueueBind(cfg.DeadLetterQueue, cfg.RoutingKey, cfg.DeadLetterExchange, false, nil); err != nil {
		return errs.Wrap(err, "failed to bind dead-letter queue")
	}
	return nil
}
