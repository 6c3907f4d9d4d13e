package auth

import (
	"fmt"

	"github.com/threatlens/threatlens-api/internal/config"
)

// NewTokenService builds the codec selected by cfg.TokenFormat
func NewTokenService(cfg config.AuthConfig) (TokenService, error) {
	switch cfg.TokenFormat {
	case config.TokenFormatJWT:
		return NewJWTService(cfg.JWTSecret, cfg.JWTIssuer)
	case config.TokenFormatPaseto:
		return NewPasetoService(cfg.PasetoKey)
	default:
		return nil, fmt.Errorf("unsupported token format %q", cfg.TokenFormat)
	}
}
