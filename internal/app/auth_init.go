// Package app provides authentication initialization.
package app

import (
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/load-optimizer/config"
	"github.com/guttosm/load-optimizer/internal/service"
)

// ErrNoCredentials is returned when authentication is enabled without any way to pass it.
var ErrNoCredentials = errors.New("authentication enabled but no API keys or JWT secret configured")

// AuthComponents holds the credential checkers handed to the router.
// Both are nil when authentication is disabled.
type AuthComponents struct {
	APIKeyValidator service.APIKeyValidator
	TokenVerifier   service.TokenVerifier
}

// InitializeAuth builds the credential checkers. A configured JWT secret enables
// bearer tokens, which take precedence over API keys on the protected routes.
func InitializeAuth(cfg config.AuthConfig) (*AuthComponents, error) {
	components := &AuthComponents{}
	if !cfg.Enabled {
		log.Warn().Msg("Authentication disabled - optimize and audit endpoints are public")
		return components, nil
	}

	if cfg.JWTSecretKey != "" {
		components.TokenVerifier = service.NewTokenService(service.NewTokenConfigFromAuthConfig(cfg))
		log.Info().Str("issuer", cfg.JWTIssuer).Msg("Bearer token authentication enabled")
	}

	if keys := service.NewAPIKeyServiceFromAuthConfig(cfg); !keys.Empty() {
		components.APIKeyValidator = keys
		if components.TokenVerifier == nil {
			log.Info().Msg("API key authentication enabled")
		}
	}

	if components.TokenVerifier == nil && components.APIKeyValidator == nil {
		return nil, ErrNoCredentials
	}
	return components, nil
}
