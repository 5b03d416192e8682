package auth

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestStaticProvider(t *testing.T) {
	token, err := Static("ya29.test").AccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ya29.test", token)
}

func TestStaticProviderEmpty(t *testing.T) {
	_, err := Static("").AccessToken(context.Background())
	assert.ErrorIs(t, err, ErrEmptyToken)
}

// countingSource counts fetches and can be pointed at different tokens.
type countingSource struct {
	calls atomic.Int64
	token *oauth2.Token
	err   error
}

func (s *countingSource) Token() (*oauth2.Token, error) {
	s.calls.Add(1)
	return s.token, s.err
}

func TestFromTokenSource(t *testing.T) {
	source := &countingSource{token: &oauth2.Token{AccessToken: "abc"}}

	token, err := FromTokenSource(source).AccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc", token)
}

func TestFromTokenSourceError(t *testing.T) {
	source := &countingSource{err: errors.New("refresh failed")}

	_, err := FromTokenSource(source).AccessToken(context.Background())
	assert.Error(t, err)
}

func TestManagerCachesUntilSkew(t *testing.T) {
	source := &countingSource{token: &oauth2.Token{
		AccessToken: "cached",
		Expiry:      time.Now().Add(time.Hour),
	}}
	manager := NewManager(source)

	for range 5 {
		token, err := manager.AccessToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "cached", token)
	}

	assert.Equal(t, int64(1), source.calls.Load(), "valid cached token must not refetch")
}

func TestManagerRefreshesNearExpiry(t *testing.T) {
	source := &countingSource{token: &oauth2.Token{
		AccessToken: "short-lived",
		Expiry:      time.Now().Add(time.Minute), // inside the default 5m skew
	}}
	manager := NewManager(source)

	_, err := manager.AccessToken(context.Background())
	require.NoError(t, err)
	_, err = manager.AccessToken(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), source.calls.Load(), "near-expiry token must refetch")
}

func TestManagerNoExpiryNeverRefreshes(t *testing.T) {
	source := &countingSource{token: &oauth2.Token{AccessToken: "static"}}
	manager := NewManager(source)

	for range 3 {
		_, err := manager.AccessToken(context.Background())
		require.NoError(t, err)
	}

	assert.Equal(t, int64(1), source.calls.Load())
}

func TestManagerPropagatesSourceError(t *testing.T) {
	source := &countingSource{err: errors.New("keychain locked")}
	manager := NewManager(source)

	_, err := manager.AccessToken(context.Background())
	assert.Error(t, err)
}
