// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults; Load layers file and env.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"runtime"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9090".
	Addr string `koanf:"addr"`

	// QueueSize bounds the in-memory registration queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of registration workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets the size of the registration-ID dedupe cache.
	DedupeSize int `koanf:"dedupe_size"`

	// MaxHistoryLimit caps GET /roster/history?limit.
	MaxHistoryLimit int `koanf:"max_history_limit"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		Addr:            ":9090",
		QueueSize:       10_000,
		WorkerCount:     runtime.NumCPU() * 2,
		DedupeSize:      100_000,
		MaxHistoryLimit: 1_000,
	}
}
