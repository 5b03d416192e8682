package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCmd() (*cobra.Command, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	cmd := &cobra.Command{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)

	return cmd, buf
}

func TestFindConfigFileFlagWins(t *testing.T) {
	orig := cfgFile
	defer func() { cfgFile = orig }()

	cfgFile = "/tmp/custom.yaml"
	assert.Equal(t, "/tmp/custom.yaml", findConfigFile())
}

func TestQuotaListsEveryFamily(t *testing.T) {
	cmd, buf := newTestCmd()

	require.NoError(t, runQuota(cmd, nil))

	out := buf.String()
	for _, family := range []string{"gmail", "drive", "calendar", "docs", "tasks"} {
		assert.Contains(t, out, family)
	}
	assert.Contains(t, out, "250")
}

func TestConfigValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: info\n"), 0o600))

	orig := cfgFile
	defer func() { cfgFile = orig }()
	cfgFile = path

	cmd, buf := newTestCmd()
	require.NoError(t, runConfigValidate(cmd, nil))
	assert.Contains(t, buf.String(), "is valid")
}

func TestConfigValidateRejectsBadLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: loud\n"), 0o600))

	orig := cfgFile
	defer func() { cfgFile = orig }()
	cfgFile = path

	cmd, _ := newTestCmd()
	assert.Error(t, runConfigValidate(cmd, nil))
}

func TestReadBatchFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.json")
	content := `[
  {"id": "1", "method": "GET", "path": "/gmail/v1/users/me/labels"},
  {"id": "2", "method": "POST", "path": "/gmail/v1/users/me/labels", "body": {"name": "x"}}
]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	requests, err := readBatchFile(path)
	require.NoError(t, err)
	require.Len(t, requests, 2)
	assert.Equal(t, "1", requests[0].ID)
	assert.Equal(t, "GET", requests[0].Method)
	assert.JSONEq(t, `{"name": "x"}`, string(requests[1].Body))
}

func TestReadBatchFileInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	_, err := readBatchFile(path)
	assert.Error(t, err)
}
