package config

import "go.uber.org/fx"

// Module provides configuration loading for the fx container.
var Module = fx.Provide(Load)
