package bootstrap

import (
	"go.uber.org/fx"

	"tablebook/internal/pkg/config"
	"tablebook/internal/pkg/jwt"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
	),
)

func NewJWTService(cfg config.Config) *jwt.Service {
	return jwt.NewService(cfg.JWT.Secret)
}
