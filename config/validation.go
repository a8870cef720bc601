package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates every problem found in one pass
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	lines := make([]string, 0, len(errs))
	for _, e := range errs {
		lines = append(lines, e.Error())
	}
	return fmt.Sprintf("configuration validation failed:\n%s", strings.Join(lines, "\n"))
}

// relayRequirements lists the settings each environment insists on for the relay server.
var relayRequirements = map[Environment][]string{
	Development: {"SERVER_PORT"},
	Test:        {"SERVER_PORT"},
	CI:          {"SERVER_PORT", "GATEWAY_URL"},
	Production:  {"SERVER_PORT", "GATEWAY_URL", "GATEWAY_API_KEY", "REDIS"},
}

// ValidateRelay checks the settings the relay server needs
func (c *Config) ValidateRelay() error {
	var errs ValidationErrors

	for _, req := range relayRequirements[c.Env] {
		switch req {
		case "SERVER_PORT":
			if c.ServerPort == "" {
				errs = append(errs, ValidationError{Field: req, Message: "is required"})
			}
		case "GATEWAY_URL":
			if c.GatewayURL == "" {
				errs = append(errs, ValidationError{Field: req, Message: "is required"})
			}
		case "GATEWAY_API_KEY":
			if c.GatewayAPIKey == "" {
				errs = append(errs, ValidationError{Field: req, Message: "is required in production"})
			}
		case "REDIS":
			if !c.RedisEnabled() {
				errs = append(errs, ValidationError{Field: "REDIS_URL", Message: "redis is required in production"})
			}
		}
	}

	if c.GatewayURL != "" {
		if err := checkURL(c.GatewayURL); err != nil {
			errs = append(errs, ValidationError{Field: "GATEWAY_URL", Message: err.Error()})
		}
	}
	if c.RateLimitPerMinute < 0 {
		errs = append(errs, ValidationError{Field: "RATE_LIMIT_PER_MINUTE", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidateClient checks the settings the smartchef client needs
func (c *Config) ValidateClient() error {
	var errs ValidationErrors

	if c.BackendURL == "" {
		errs = append(errs, ValidationError{Field: "BACKEND_URL", Message: "is required"})
	} else if err := checkURL(c.BackendURL); err != nil {
		errs = append(errs, ValidationError{Field: "BACKEND_URL", Message: err.Error()})
	}
	if c.RelayURL != "" {
		if err := checkURL(c.RelayURL); err != nil {
			errs = append(errs, ValidationError{Field: "RELAY_URL", Message: err.Error()})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func checkURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("must be an http(s) URL")
	}
	if u.Host == "" {
		return errors.New("missing host")
	}
	return nil
}
