package sheets

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/solterra/storefront/internal/config"
	"github.com/solterra/storefront/internal/usecase"
)

// Module exposes the ledger client implementation to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (usecase.LedgerClient, error) {
	return NewHTTPClient(
		p.Config.SheetsBaseURL,
		p.Config.SheetsAPIToken,
		p.Config.SheetsSpreadsheetID,
		p.Logger,
	)
}
