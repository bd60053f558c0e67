// Package config implements the thin env-var read-through the teacher's
// cmd/dbtool/main.go imports (config.Get) but whose source is absent from
// the retrieved pack; this repo supplies it in the same idiom as the
// teacher's cmd/server/main.go getEnv helper, plus Int/Bool/Duration
// variants for Redis TTLs, HTTP timeouts, and solver cutoffs (spec §9).
package config

import (
	"os"
	"strconv"
	"time"
)

// Get returns the environment variable's value, or fallback if unset.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// GetInt parses the environment variable as an int, or returns fallback if
// unset or unparsable.
func GetInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// GetBool parses the environment variable as a bool, or returns fallback if
// unset or unparsable.
func GetBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

// GetDuration parses the environment variable via time.ParseDuration, or
// returns fallback if unset or unparsable.
func GetDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
