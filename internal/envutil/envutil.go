// Package envutil provides helper functions for environment variable handling.
package envutil

import (
	"os"
	"strconv"
	"strings"

	"github.com/vessel-dev/vessel/internal/meta"
)

// HostEnvKey constructs a host-level environment variable name
// by combining the brand prefix with the given suffix.
// Example: HostEnvKey("CONFIG_PATH") returns "VESSEL_CONFIG_PATH".
func HostEnvKey(suffix string) string {
	return meta.EnvPrefix + "_" + suffix
}

// GetHostEnv retrieves a host-level environment variable.
func GetHostEnv(suffix string) string {
	return strings.TrimSpace(os.Getenv(HostEnvKey(suffix)))
}

// GetString returns the trimmed value of key, or fallback when unset or blank.
func GetString(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

// GetInt returns key parsed as an integer, or fallback when unset or invalid.
func GetInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

// GetFloat returns key parsed as a float, or fallback when unset or invalid.
func GetFloat(key string, fallback float64) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
