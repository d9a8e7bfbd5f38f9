package bootstrap

import (
	"library-lending/internal/pkg/config"
	"library-lending/internal/pkg/jwt"
	"library-lending/internal/usecase"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
		usecase.NewTokenValidator,
	),
)

func NewJWTService(cfg config.Config) *jwt.Service {
	return jwt.NewService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Duration)
}
