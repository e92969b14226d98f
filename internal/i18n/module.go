package i18n

import (
	"go.uber.org/fx"

	"github.com/solterra/storefront/internal/config"
)

// Module wires the message store for dependency injection.
var Module = fx.Provide(newStore)

func newStore(cfg *config.Config) *Store {
	return NewStore(cfg.MessagesDir)
}
