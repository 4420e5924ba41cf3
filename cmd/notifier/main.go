package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"shopcore/internal/infra/gateway"
	"shopcore/internal/infra/mq"
	"shopcore/internal/pkg/config"
	"shopcore/internal/pkg/metrics"
	"shopcore/internal/usecase/shared"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// The notifier is the delivery side of the notification pipeline: it
// drains the queue the API publishes to and forwards each envelope to
// the notification service webhook, which owns template rendering and
// the actual send.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go serveMetrics(registry)

	notifications := gateway.NewNotificationClient(cfg.Gateway)
	deliver := func(ctx context.Context, envelope shared.Envelope) error {
		if err := notifications.Deliver(ctx, envelope); err != nil {
			return err
		}
		slog.Info("notification forwarded",
			"event_type", envelope.EventType,
			"recipient", envelope.RecipientEmail)
		return nil
	}

	consumer := mq.NewConsumer(cfg.AMQP, deliver, m)
	if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("consumer exited", "error", err)
		os.Exit(1)
	}

	slog.Info("notifier stopped")
}

func serveMetrics(registry *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	addr := os.Getenv("NOTIFIER_METRICS_ADDR")
	if addr == "" {
		addr = ":9091"
	}
	if err := http.ListenAndServe(addr, mux); err != nil {
		slog.Error("metrics endpoint failed", "error", err)
	}
}
