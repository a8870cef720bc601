package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points secret lookups at an empty directory and clears the variables under test.
func isolate(t *testing.T) {
	t.Setenv("SECRETS_DIR", t.TempDir())
	for _, name := range []string{
		"CI", "SMARTCHEF_ENV", "SERVER_PORT", "SERVER_HOST", "BACKEND_URL", "RELAY_URL",
		"RELAY_API_KEY", "GATEWAY_URL", "GATEWAY_API_KEY", "GATEWAY_API_KEY_FILE", "GATEWAY_MODEL",
		"GATEWAY_TIMEOUT", "REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "REDIS_DB", "REDIS_URL",
		"DETAILS_CACHE_TTL", "RATE_LIMIT_PER_MINUTE", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(name, "")
	}
}

func TestLoadConfig(t *testing.T) {
	isolate(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("BACKEND_URL", "http://localhost:8000/")
	t.Setenv("GATEWAY_API_KEY", "test-key")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("GATEWAY_TIMEOUT", "15")
	t.Setenv("DETAILS_CACHE_TTL", "2h")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "http://localhost:8000", cfg.BackendURL)
	assert.Equal(t, "test-key", cfg.GatewayAPIKey)
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
	assert.Equal(t, 15*time.Second, cfg.GatewayTimeout)
	assert.Equal(t, 2*time.Hour, cfg.DetailsCacheTTL)
	assert.True(t, cfg.RedisEnabled())
}

func TestLoadConfigWithDefaults(t *testing.T) {
	isolate(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, Development, cfg.Env)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, DefaultBackendURL, cfg.BackendURL)
	assert.Equal(t, DefaultGatewayURL, cfg.GatewayURL)
	assert.Equal(t, DefaultGatewayModel, cfg.GatewayModel)
	assert.Equal(t, 30, cfg.RateLimitPerMinute)
	assert.Equal(t, 24*time.Hour, cfg.DetailsCacheTTL)
	assert.False(t, cfg.RedisEnabled())
}

func TestLoadConfigReadsSecrets(t *testing.T) {
	isolate(t)
	dir := os.Getenv("SECRETS_DIR")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gateway_api_key"), []byte("secret-key\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "redis_host"), []byte("cache.internal"), 0o600))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "secret-key", cfg.GatewayAPIKey)
	assert.Equal(t, "cache.internal", cfg.RedisHost)
}

func TestLoadConfigKeyFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "key")
	require.NoError(t, os.WriteFile(path, []byte("  "), 0o600))
	t.Setenv("GATEWAY_API_KEY_FILE", path)

	_, err := LoadConfig()
	assert.EqualError(t, err, "API key file is empty")
}

func TestLoadConfigInvalidValues(t *testing.T) {
	isolate(t)
	t.Setenv("REDIS_DB", "zero")

	_, err := LoadConfig()
	var verr ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "REDIS_DB", verr.Field)
}

func TestGetEnvironment(t *testing.T) {
	isolate(t)
	assert.Equal(t, Development, GetEnvironment())

	t.Setenv("SMARTCHEF_ENV", "prod")
	assert.Equal(t, Production, GetEnvironment())
	assert.True(t, GetEnvironment().IsProduction())

	t.Setenv("CI", "true")
	assert.Equal(t, CI, GetEnvironment())
	assert.False(t, GetEnvironment().IsProduction())
}

func TestValidateRelay(t *testing.T) {
	cfg := &Config{Env: Production, ServerPort: "8080", GatewayURL: DefaultGatewayURL}

	err := cfg.ValidateRelay()
	var errs ValidationErrors
	require.True(t, errors.As(err, &errs))
	assert.Len(t, errs, 2)
	assert.Contains(t, err.Error(), "GATEWAY_API_KEY")
	assert.Contains(t, err.Error(), "REDIS_URL")

	cfg.GatewayAPIKey = "k"
	cfg.RedisURL = "redis://localhost:6379"
	assert.NoError(t, cfg.ValidateRelay())

	cfg.GatewayURL = "ftp://gateway"
	assert.Error(t, cfg.ValidateRelay())
}

func TestValidateClient(t *testing.T) {
	cfg := &Config{BackendURL: "http://localhost:8000"}
	assert.NoError(t, cfg.ValidateClient())

	cfg.RelayURL = "not a url"
	assert.Error(t, cfg.ValidateClient())

	cfg = &Config{}
	assert.Error(t, cfg.ValidateClient())
}
