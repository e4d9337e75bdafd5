package config

import "time"

const (
	DefaultShutdownTimeout = 10 * time.Second
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second

	// DefaultAmount is used when /api/rates is called without an amount.
	DefaultAmount = 1000.0

	// DefaultProbeTimeout bounds one probe tick, publishing included.
	DefaultProbeTimeout = 30 * time.Second

	// PlaceholderAPIKey marks a keyed source that was never configured.
	PlaceholderAPIKey = "your_api_key_here"

	DefaultPGMaxConns = 5
	DefaultPGMinConns = 1
)
