// Package auth provides the bearer token plumbing for workspace-cli.
//
// The request pipeline only needs an abstract token provider: something
// that yields a current access token and may fail. The OAuth2 handshake
// and on-disk token storage live outside this package; golang.org/x/oauth2
// token sources plug in through FromTokenSource.
package auth

import (
	"context"
	"errors"

	"golang.org/x/oauth2"
)

// ErrEmptyToken is returned when a source yields a token without an
// access token value.
var ErrEmptyToken = errors.New("auth: token source returned an empty access token")

// TokenProvider yields the current bearer token for outbound requests.
// Implementations must be safe for concurrent use: every retry attempt
// re-fetches a token, possibly from many calls at once.
type TokenProvider interface {
	AccessToken(ctx context.Context) (string, error)
}

// Static returns a provider that always yields the given token.
// Useful for tests and for tokens supplied directly via configuration.
func Static(token string) TokenProvider {
	return staticProvider(token)
}

type staticProvider string

func (p staticProvider) AccessToken(context.Context) (string, error) {
	if p == "" {
		return "", ErrEmptyToken
	}
	return string(p), nil
}

// FromTokenSource adapts an oauth2.TokenSource into a TokenProvider.
// The source's own refresh machinery runs on every fetch.
func FromTokenSource(source oauth2.TokenSource) TokenProvider {
	return &sourceProvider{source: source}
}

type sourceProvider struct {
	source oauth2.TokenSource
}

func (p *sourceProvider) AccessToken(context.Context) (string, error) {
	token, err := p.source.Token()
	if err != nil {
		return "", err
	}
	if token.AccessToken == "" {
		return "", ErrEmptyToken
	}
	return token.AccessToken, nil
}
