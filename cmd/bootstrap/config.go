package bootstrap

import (
	"foodshare/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		func(cfg config.Config) config.AdminConfig {
			return cfg.Admin
		},
	),
)
