package bootstrap

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"tablebook/internal/infra/events"
	"tablebook/internal/pkg/config"
	"tablebook/internal/usecase/commands"
)

var AMQPModule = fx.Module("amqp",
	fx.Provide(
		NewEventPublisher,
	),
)

func NewEventPublisher(lc fx.Lifecycle, cfg config.Config) (commands.EventPublisher, error) {
	if cfg.AMQP.URL == "" {
		slog.Info("amqp not configured, lifecycle events disabled")
		return events.NoopPublisher{}, nil
	}

	publisher, cleanup, err := events.NewAMQPPublisher(cfg.AMQP)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			cleanup()
			return nil
		},
	})

	slog.Info("lifecycle event publishing enabled", "exchange", cfg.AMQP.Exchange)
	return publisher, nil
}
