package config

import (
	"os"
	"strings"
)

// Environment represents the current runtime environment
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// GetEnvironment determines the current environment
func GetEnvironment() Environment {
	// CI environment is automatically detected
	if os.Getenv("CI") == "true" {
		return CI
	}
	return ParseEnvironment(os.Getenv("SMARTCHEF_ENV"))
}

// ParseEnvironment maps a raw value to an Environment, defaulting to Development.
func ParseEnvironment(raw string) Environment {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return Production
	case "test":
		return Test
	case "ci":
		return CI
	default:
		return Development
	}
}

// String returns the environment name
func (e Environment) String() string {
	return string(e)
}

// IsProduction reports whether e is the production environment
func (e Environment) IsProduction() bool {
	return e == Production
}
