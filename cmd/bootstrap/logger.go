package bootstrap

import (
	"log/slog"

	"library-lending/internal/handler/middleware"
	"library-lending/internal/pkg/config"

	"go.uber.org/fx"
)

var LoggerModule = fx.Module("logger",
	fx.Provide(
		NewRequestLogger,
		NewLogger,
	),
)

// NewRequestLogger also installs the logger as the slog default.
func NewRequestLogger(cfg config.Config) *middleware.Logger {
	return middleware.NewLogger(cfg.Log)
}

func NewLogger(l *middleware.Logger) *slog.Logger {
	return l.GetSlogLogger()
}
