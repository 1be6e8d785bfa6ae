package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Duration is the type of every interval and timeout setting.
type Duration = time.Duration

// lookup returns the trimmed value of key; blank counts as unset.
func lookup(key string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(key))
	return raw, raw != ""
}

func envOrDefault(key, defaultValue string) string {
	if raw, ok := lookup(key); ok {
		return raw
	}
	return defaultValue
}

// parsedEnvOrDefault parses key with parse, keeping defaultValue when the variable is unset or
// parse rejects it.
func parsedEnvOrDefault[T any](key string, defaultValue T, parse func(string) (T, bool)) T {
	raw, ok := lookup(key)
	if !ok {
		return defaultValue
	}
	if v, ok := parse(raw); ok {
		return v
	}
	return defaultValue
}

func durationEnvOrDefault(key string, defaultValue Duration) Duration {
	return parsedEnvOrDefault(key, defaultValue, func(raw string) (Duration, bool) {
		d, err := time.ParseDuration(raw)
		return d, err == nil && d > 0
	})
}

func intEnvOrDefault(key string, defaultValue int) int {
	return parsedEnvOrDefault(key, defaultValue, func(raw string) (int, bool) {
		n, err := strconv.Atoi(raw)
		return n, err == nil && n > 0
	})
}

func boolEnvOrDefault(key string, defaultValue bool) bool {
	return parsedEnvOrDefault(key, defaultValue, func(raw string) (bool, bool) {
		switch strings.ToLower(raw) {
		case "1", "true", "yes", "on":
			return true, true
		case "0", "false", "no", "off":
			return false, true
		}
		return false, false
	})
}
