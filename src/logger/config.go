// FILE: arsenic/src/logger/config.go
package logger

import (
	"fmt"

	"arsenic/src/internal/config"
)

// DefaultConfig returns a configuration with every sink option populated and only the console enabled
func DefaultConfig() *Config {
	return config.Defaults()
}

// LoadConfig reads configuration from path, ARSENIC_* environment variables and CLI args.
// An empty path falls back to the standard config location.
func LoadConfig(path string, args []string) (*Config, error) {
	return config.Load(path, args)
}

// NewFromConfig creates a Logger from a loaded configuration. Options are applied after it.
func NewFromConfig(cfg *Config, opts ...Option) (*Logger, error) {
	if cfg == nil {
		cfg = config.Defaults()
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	settings, err := cfg.Settings()
	if err != nil {
		return nil, err
	}

	base := []Option{
		WithSettings(settings),
		WithFilter(cfg.Filter),
		WithSinks(cfg.Transport.Sinks()...),
		WithHandlePanics(cfg.HandlePanics),
	}
	if cfg.Logging != nil {
		base = append(base, WithLogConfig(cfg.Logging))
	}
	return New(append(base, opts...)...)
}
