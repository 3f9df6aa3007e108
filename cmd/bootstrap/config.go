package bootstrap

import (
	"go.uber.org/fx"

	"tablebook/internal/pkg/config"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
	),
)
