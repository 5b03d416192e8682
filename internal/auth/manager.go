package auth

import (
	"context"
	"sync"
	"time"

	"golang.org/x/oauth2"
)

// DefaultExpirySkew is how long before the recorded expiry a cached token
// is considered stale. Google access tokens typically live 3600 seconds;
// refreshing early keeps long retry sequences from racing the expiry.
const DefaultExpirySkew = 5 * time.Minute

// Manager caches tokens from an oauth2.TokenSource and hands out the
// access token string, refreshing through the source once the cached copy
// gets within the expiry skew.
//
// Thread safety: safe for concurrent use; concurrent refreshes collapse
// into one fetch.
type Manager struct {
	source oauth2.TokenSource
	skew   time.Duration
	mu     sync.RWMutex
	cached *oauth2.Token
}

// NewManager creates a Manager over the given source with the default skew.
func NewManager(source oauth2.TokenSource) *Manager {
	return &Manager{
		source: source,
		skew:   DefaultExpirySkew,
	}
}

// WithExpirySkew overrides the refresh margin and returns the receiver.
func (m *Manager) WithExpirySkew(skew time.Duration) *Manager {
	m.skew = skew
	return m
}

// AccessToken returns a currently valid bearer token, fetching a fresh one
// from the source when the cache is empty or near expiry.
func (m *Manager) AccessToken(_ context.Context) (string, error) {
	m.mu.RLock()
	cached := m.cached
	m.mu.RUnlock()

	if m.usable(cached) {
		return cached.AccessToken, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Another caller may have refreshed while we waited for the lock.
	if m.usable(m.cached) {
		return m.cached.AccessToken, nil
	}

	token, err := m.source.Token()
	if err != nil {
		return "", err
	}
	if token.AccessToken == "" {
		return "", ErrEmptyToken
	}

	m.cached = token
	return token.AccessToken, nil
}

// usable reports whether a cached token is still safe to hand out.
// Tokens without an expiry never go stale here; their source decides.
func (m *Manager) usable(token *oauth2.Token) bool {
	if token == nil || token.AccessToken == "" {
		return false
	}
	if token.Expiry.IsZero() {
		return true
	}
	return time.Now().Before(token.Expiry.Add(-m.skew))
}

var _ TokenProvider = (*Manager)(nil)
