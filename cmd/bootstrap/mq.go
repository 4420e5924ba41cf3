package bootstrap

import (
	"context"

	"shopcore/internal/infra/mq"
	"shopcore/internal/pkg/config"
	"shopcore/internal/pkg/metrics"
	"shopcore/internal/usecase/commands"

	"go.uber.org/fx"
)

var MQModule = fx.Module("mq",
	fx.Provide(
		NewEventPublisher,
	),
)

func NewEventPublisher(lc fx.Lifecycle, cfg config.Config, m *metrics.Metrics) (commands.EventPublisher, error) {
	publisher, cleanup, err := mq.NewPublisher(cfg.AMQP, m)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			cleanup()
			return nil
		},
	})

	return publisher, nil
}
