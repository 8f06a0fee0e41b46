// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults, Load(ctx) to layer sources.
// - All functions accept context.Context as the first parameter.
// - External errors must be wrapped via this package's sentinel kinds.
package config

import (
	"context"
)

// Default values applied by New.
const (
	defaultLogLevel           = "info"
	defaultAddr               = ":9480"
	defaultModelPath          = "model.json"
	defaultFallbackConfidence = 0.8
	defaultMaxBodyBytes       = 1 << 20
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9480".
	Addr string `koanf:"addr"`

	// ModelPath names the model artifact file, resolved against the
	// working directory.
	ModelPath string `koanf:"model_path"`

	// FallbackConfidence is the score attached to predictions when the
	// model exposes no class probabilities. Must be in [0, 1].
	FallbackConfidence float64 `koanf:"fallback_confidence"`

	// MaxBodyBytes caps the request body size accepted on POST /predict.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`
}

// New creates a Config populated with defaults. Context is accepted first to
// satisfy the project-wide convention; it is reserved for future use.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:           defaultLogLevel,
		Addr:               defaultAddr,
		ModelPath:          defaultModelPath,
		FallbackConfidence: defaultFallbackConfidence,
		MaxBodyBytes:       defaultMaxBodyBytes,
	}
}

// Validate reports whether the configuration is usable.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return wrapInvalid("addr must not be empty")
	}
	if c.ModelPath == "" {
		return wrapInvalid("model_path must not be empty")
	}
	if !(c.FallbackConfidence >= 0 && c.FallbackConfidence <= 1) {
		return wrapInvalid("fallback_confidence must be in [0, 1]")
	}
	if c.MaxBodyBytes <= 0 {
		return wrapInvalid("max_body_bytes must be positive")
	}
	return nil
}
