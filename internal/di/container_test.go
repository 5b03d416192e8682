package di

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestContainerResolvesAllServices(t *testing.T) {
	path := writeConfig(t, `
auth:
  access_token: test-token
logging:
  level: error
  format: json
`)

	c, err := NewContainer(path)
	require.NoError(t, err)
	defer func() { _ = c.Shutdown() }()

	cfgSvc, err := Invoke[*ConfigService](c)
	require.NoError(t, err)
	assert.Equal(t, "test-token", cfgSvc.Config.Auth.AccessToken)

	logSvc, err := Invoke[*LoggerService](c)
	require.NoError(t, err)
	assert.NotNil(t, logSvc.Logger)

	tokSvc, err := Invoke[*TokenService](c)
	require.NoError(t, err)

	token, err := tokSvc.Provider.AccessToken(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "test-token", token)

	batchSvc, err := Invoke[*BatchService](c)
	require.NoError(t, err)
	assert.NotNil(t, batchSvc.Gmail)
	assert.NotNil(t, batchSvc.Chat)
}

func TestContainerClientsCoverEveryFamily(t *testing.T) {
	c, err := NewContainer("")
	require.NoError(t, err)
	defer func() { _ = c.Shutdown() }()

	clients, err := Invoke[*ClientService](c)
	require.NoError(t, err)

	for _, family := range []string{
		"gmail", "drive", "calendar", "docs", "sheets",
		"slides", "tasks", "chat", "contacts", "groups", "admin",
	} {
		client, ok := clients.Get(family)
		assert.True(t, ok, family)
		require.NotNil(t, client, family)
		require.NotNil(t, client.Breaker(), family)
		assert.Equal(t, family, client.Breaker().Name())
	}

	_, ok := clients.Get("unknown")
	assert.False(t, ok)

	assert.Len(t, clients.Families(), 11)
}

func TestContainerEmptyPathUsesDefaults(t *testing.T) {
	c, err := NewContainer("")
	require.NoError(t, err)
	defer func() { _ = c.Shutdown() }()

	cfgSvc, err := Invoke[*ConfigService](c)
	require.NoError(t, err)
	assert.Empty(t, cfgSvc.Path)
}

func TestContainerInvalidConfigFails(t *testing.T) {
	path := writeConfig(t, "logging:\n  level: loud\n")

	c, err := NewContainer(path)
	require.NoError(t, err)

	_, err = Invoke[*ConfigService](c)
	assert.Error(t, err)
}
