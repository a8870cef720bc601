package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultBackendURL   = "https://smartchef-backend-oq3n.onrender.com"
	DefaultGatewayURL   = "https://ai.gateway.lovable.dev/v1/chat/completions"
	DefaultGatewayModel = "google/gemini-2.5-flash"
	DefaultRelayURL     = "http://localhost:8080/functions/v1/generate-recipe-details"
)

// Config holds all configuration for the application
type Config struct {
	Env Environment

	// Server configuration (relay)
	ServerPort string
	ServerHost string

	// Recipe backend the client talks to
	BackendURL string

	// Relay endpoint the client calls for recipe details
	RelayURL    string
	RelayAPIKey string

	// Chat-completion gateway used by the relay
	GatewayURL     string
	GatewayAPIKey  string
	GatewayModel   string
	GatewayTimeout time.Duration

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	DetailsCacheTTL    time.Duration
	RateLimitPerMinute int

	LogLevel  string
	LogFormat string
}

// LoadConfig creates a new Config instance with values from environment variables or secrets.
// A .env file in the working directory is loaded first; it never overrides real variables.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:           GetEnvironment(),
		ServerPort:    lookup("SERVER_PORT", "8080"),
		ServerHost:    lookup("SERVER_HOST", "0.0.0.0"),
		BackendURL:    strings.TrimRight(lookup("BACKEND_URL", DefaultBackendURL), "/"),
		RelayURL:      strings.TrimRight(lookup("RELAY_URL", DefaultRelayURL), "/"),
		RelayAPIKey:   lookup("RELAY_API_KEY", ""),
		GatewayURL:    lookup("GATEWAY_URL", DefaultGatewayURL),
		GatewayModel:  lookup("GATEWAY_MODEL", DefaultGatewayModel),
		RedisHost:     lookup("REDIS_HOST", ""),
		RedisPort:     lookup("REDIS_PORT", "6379"),
		RedisPassword: lookup("REDIS_PASSWORD", ""),
		RedisURL:      lookup("REDIS_URL", ""),
		LogLevel:      lookup("LOG_LEVEL", "info"),
		LogFormat:     lookup("LOG_FORMAT", "json"),
	}

	key, err := gatewayKey()
	if err != nil {
		return nil, err
	}
	cfg.GatewayAPIKey = key

	if cfg.RedisDB, err = intValue("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.RateLimitPerMinute, err = intValue("RATE_LIMIT_PER_MINUTE", 30); err != nil {
		return nil, err
	}
	if cfg.GatewayTimeout, err = durationValue("GATEWAY_TIMEOUT", 60*time.Second); err != nil {
		return nil, err
	}
	if cfg.DetailsCacheTTL, err = durationValue("DETAILS_CACHE_TTL", 24*time.Hour); err != nil {
		return nil, err
	}

	return cfg, nil
}

// RedisEnabled reports whether any redis address is configured
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

// RelayAddr returns the listen address for the relay server
func (c *Config) RelayAddr() string {
	return fmt.Sprintf("%s:%s", c.ServerHost, c.ServerPort)
}

// gatewayKey reads GATEWAY_API_KEY, falling back to the file named by GATEWAY_API_KEY_FILE
// and then to a Docker secret.
func gatewayKey() (string, error) {
	if key := os.Getenv("GATEWAY_API_KEY"); key != "" {
		return key, nil
	}
	if path := os.Getenv("GATEWAY_API_KEY_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read API key file: %w", err)
		}
		key := strings.TrimSpace(string(data))
		if key == "" {
			return "", fmt.Errorf("API key file is empty")
		}
		return key, nil
	}
	return readSecret("gateway_api_key"), nil
}

// lookup returns the environment value, then the Docker secret of the lowercased name,
// then the default.
func lookup(name, def string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	if v := readSecret(strings.ToLower(name)); v != "" {
		return v
	}
	return def
}

func intValue(name string, def int) (int, error) {
	raw := lookup(name, "")
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, ValidationError{Field: name, Message: fmt.Sprintf("invalid integer %q", raw)}
	}
	return v, nil
}

// durationValue accepts Go durations ("90s") or a bare number of seconds.
func durationValue(name string, def time.Duration) (time.Duration, error) {
	raw := lookup(name, "")
	if raw == "" {
		return def, nil
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, ValidationError{Field: name, Message: fmt.Sprintf("invalid duration %q", raw)}
	}
	return d, nil
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
