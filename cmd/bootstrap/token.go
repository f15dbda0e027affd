package bootstrap

import (
	"facility-reservation/internal/pkg/config"
	"facility-reservation/internal/pkg/token"

	"go.uber.org/fx"
)

var TokenModule = fx.Module("token",
	fx.Provide(
		NewTokenValidator,
	),
)

func NewTokenValidator(cfg config.Config) *token.Validator {
	return token.NewValidator(cfg.JWT)
}
