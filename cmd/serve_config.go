package cmd

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
)

// Transport type constants for the MCP server.
const (
	transportStdio          = "stdio"
	transportSSE            = "sse"
	transportStreamableHTTP = "streamable-http"
)

// envValueTrue is the string value used to enable boolean environment variables.
const envValueTrue = "true"

// ServeConfig holds all configuration for the serve command.
type ServeConfig struct {
	// Transport settings
	Transport string
	HTTPAddr  string

	// Endpoint paths
	SSEEndpoint     string
	MessageEndpoint string
	HTTPEndpoint    string

	// AWS settings
	DefaultRegion string

	// KubectlPath is the kubectl binary used by the external-tool access
	// strategy. Empty resolves kubectl from PATH; a strategy without a
	// usable binary is skipped in the fallback chain.
	KubectlPath string

	// APIKey guards the HTTP query endpoint when non-empty.
	APIKey string

	DebugMode bool

	// CredentialCache tunes the provisioner's credential cache.
	CredentialCache CredentialCacheConfig

	// Metrics configures the dedicated metrics server.
	Metrics MetricsServeConfig
}

// CredentialCacheConfig holds the credential cache tuning knobs. Duration
// fields are strings so flag and environment values share one parse path;
// empty values keep the provisioner defaults.
type CredentialCacheConfig struct {
	TTL           string
	MaxEntries    int
	SweepInterval string
}

// MetricsServeConfig holds the dedicated metrics server configuration.
type MetricsServeConfig struct {
	Enabled bool
	Addr    string
}

// validateServeConfig rejects configurations the server cannot start with.
// It runs before any AWS or network activity.
func validateServeConfig(config ServeConfig) error {
	switch config.Transport {
	case transportStdio, transportSSE, transportStreamableHTTP:
	default:
		return fmt.Errorf("unsupported transport type: %s (supported: stdio, sse, streamable-http)", config.Transport)
	}

	if config.DefaultRegion == "" {
		return fmt.Errorf("default region must not be empty")
	}

	if config.CredentialCache.TTL != "" {
		if _, err := time.ParseDuration(config.CredentialCache.TTL); err != nil {
			return fmt.Errorf("invalid credential cache TTL: %w", err)
		}
	}
	if config.CredentialCache.SweepInterval != "" {
		if _, err := time.ParseDuration(config.CredentialCache.SweepInterval); err != nil {
			return fmt.Errorf("invalid credential cache sweep interval: %w", err)
		}
	}
	if config.CredentialCache.MaxEntries < 0 {
		return fmt.Errorf("credential cache max entries must not be negative, got %d", config.CredentialCache.MaxEntries)
	}

	if config.Metrics.Enabled && config.Metrics.Addr == "" {
		return fmt.Errorf("metrics server address must not be empty when the metrics server is enabled")
	}

	return nil
}

// loadEnvIfEmpty loads an environment variable into a string pointer if it's empty.
func loadEnvIfEmpty(target *string, envKey string) {
	if *target == "" {
		*target = os.Getenv(envKey)
	}
}

// parseDurationEnv parses a duration from an environment variable value.
// Returns the parsed duration and true if successful, or zero and false if parsing fails.
// Logs a warning if the value is present but invalid.
func parseDurationEnv(value, envName string) (time.Duration, bool) {
	if value == "" {
		return 0, false
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Warning: invalid duration for %s=%q: %v", envName, value, err)
		return 0, false
	}
	return d, true
}

// parseIntEnv parses an integer from an environment variable value.
// Returns the parsed int and true if successful, or zero and false if parsing fails.
// Logs a warning if the value is present but invalid.
func parseIntEnv(value, envName string) (int, bool) {
	if value == "" {
		return 0, false
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: invalid integer for %s=%q: %v", envName, value, err)
		return 0, false
	}
	return n, true
}
