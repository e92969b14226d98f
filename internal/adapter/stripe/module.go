package stripe

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/solterra/storefront/internal/config"
)

// Module exposes the Stripe client implementation to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(
		p.Config.StripeBaseURL,
		p.Config.StripeSecretKey,
		p.Config.StripeSuccessURL,
		p.Config.StripeCancelURL,
		p.Logger,
	)
}
