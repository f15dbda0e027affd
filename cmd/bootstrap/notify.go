package bootstrap

import (
	"context"

	"facility-reservation/internal/infra/notify"
	"facility-reservation/internal/pkg/config"

	"go.uber.org/fx"
)

var NotifyModule = fx.Module("notify",
	fx.Provide(
		func(cfg config.Config) config.AMQPConfig { return cfg.AMQP },
		NewPublisher,
		notify.NewDispatcher,
	),
	fx.Invoke(StartDispatcher),
)

func NewPublisher(lc fx.Lifecycle, cfg config.Config) (notify.Publisher, error) {
	pub, err := notify.NewPublisher(cfg.AMQP)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return pub.Close()
		},
	})
	return pub, nil
}

func StartDispatcher(lc fx.Lifecycle, dispatcher *notify.Dispatcher) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			dispatcher.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return dispatcher.Stop(ctx)
		},
	})
}
