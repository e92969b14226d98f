package emailqueue

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/solterra/storefront/internal/config"
	"github.com/solterra/storefront/internal/usecase"
)

// Module wires the AMQP email publisher and its shutdown hook.
var Module = fx.Options(
	fx.Provide(newPublisher),
	fx.Provide(func(p *Publisher) usecase.EmailPublisher { return p }),
	fx.Invoke(registerLifecycle),
)

type publisherParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newPublisher(p publisherParams) (*Publisher, error) {
	return NewPublisher(p.Config.AMQPURL, p.Config.EmailQueue, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, publisher *Publisher) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return publisher.Close()
		},
	})
}
