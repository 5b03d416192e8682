package di

import (
	"os"

	"github.com/samber/do/v2"

	"github.com/majidmanzarpour/workspace-cli/internal/auth"
)

// TokenEnvVar is consulted when the config file carries no token.
const TokenEnvVar = "WORKSPACE_ACCESS_TOKEN"

// TokenService wraps the token provider handed to every API client.
type TokenService struct {
	Provider auth.TokenProvider
}

// NewTokens builds the token provider from config, falling back to the
// environment. An empty token still yields a provider; it fails at
// request time with auth.ErrEmptyToken.
func NewTokens(i do.Injector) (*TokenService, error) {
	cfgSvc := do.MustInvoke[*ConfigService](i)

	token := cfgSvc.Config.Auth.AccessToken
	if token == "" {
		token = os.Getenv(TokenEnvVar)
	}

	return &TokenService{Provider: auth.Static(token)}, nil
}
