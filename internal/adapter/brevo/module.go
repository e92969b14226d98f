package brevo

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/solterra/storefront/internal/config"
	"github.com/solterra/storefront/internal/usecase"
)

// Module exposes the CRM client implementation to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (usecase.ContactClient, error) {
	return NewHTTPClient(p.Config.BrevoBaseURL, p.Config.BrevoAPIKey, p.Logger)
}
