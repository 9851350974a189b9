package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr             string
	ConsentTTL       time.Duration
	ExpiryWindowDays int
	SeedDemoData     bool
}

// Defaults. ConsentTTL matches the PSD2 re-authentication cycle of 90 days.
var (
	ConsentTTL       = 90 * 24 * time.Hour
	ExpiryWindowDays = 7
)

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("CONSENTRY_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	consentTTL := ConsentTTL
	if v := os.Getenv("CONSENT_TTL"); v != "" {
		if duration, err := time.ParseDuration(v); err == nil && duration > 0 {
			consentTTL = duration
		}
	}

	windowDays := ExpiryWindowDays
	if v := os.Getenv("EXPIRY_WINDOW_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			windowDays = n
		}
	}

	// Demo data is on unless explicitly disabled; the store is empty otherwise.
	seed := os.Getenv("SEED_DEMO_DATA") != "false"

	return Server{
		Addr:             addr,
		ConsentTTL:       consentTTL,
		ExpiryWindowDays: windowDays,
		SeedDemoData:     seed,
	}
}
