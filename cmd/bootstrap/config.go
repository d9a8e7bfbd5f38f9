package bootstrap

import (
	"library-lending/internal/pkg/config"
	"library-lending/internal/usecase/commands"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		NewLendingOptions,
	),
)

func NewLendingOptions(cfg config.Config) commands.LendingOptions {
	return commands.NewLendingOptions(cfg.Lending)
}
