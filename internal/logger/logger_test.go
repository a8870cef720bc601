package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "smartchef.log")

	log, err := New(Config{Level: "debug", Format: "json", OutputPath: path})
	require.NoError(t, err)

	log.Info("relay started")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"relay started"`)
}

func TestNewFallsBackToInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "smartchef.log")

	log, err := New(Config{Level: "loud", Format: "console", OutputPath: path})
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("shown")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
}

func TestNewBadPath(t *testing.T) {
	_, err := New(Config{OutputPath: filepath.Join(t.TempDir(), "missing", "x.log")})
	assert.Error(t, err)
}
