package logger

import (
	"github.com/spendwise/spendwise/internal/config"
	"go.uber.org/fx"
)

// Module initializes the global logger from the loaded configuration
var Module = fx.Options(
	fx.Invoke(func(cfg *config.Config) error {
		return InitLogger(&cfg.Logging)
	}),
)
