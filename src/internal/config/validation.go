// FILE: arsenic/src/internal/config/validation.go
package config

import (
	"fmt"
	"net/url"
	"strings"

	"arsenic/src/internal/core"
	"arsenic/src/internal/filter"

	lconfig "github.com/lixenwraith/config"
)

// Validate checks the configuration and fills defaults for enabled sinks.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	if cfg.Level != "" {
		if _, err := core.ParseLevel(cfg.Level); err != nil {
			return fmt.Errorf("level: %w", err)
		}
	}
	if cfg.GlobalLevel != "" {
		if _, err := core.ParseLevel(cfg.GlobalLevel); err != nil {
			return fmt.Errorf("global_level: %w", err)
		}
	}
	if cfg.MaxStackDepth < 0 {
		return fmt.Errorf("max_stack_depth must not be negative: %d", cfg.MaxStackDepth)
	}

	if cfg.Logging == nil {
		cfg.Logging = DefaultLogConfig()
	}
	if err := validateLogConfig(cfg.Logging); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	cfg.Filter = normalizeFilter(cfg.Filter)

	t := &cfg.Transport
	if t.Console != nil {
		t.Console.Filter = normalizeFilter(t.Console.Filter)
	}
	if t.File != nil {
		t.File.Filter = normalizeFilter(t.File.Filter)
	}
	if t.Network != nil {
		t.Network.Filter = normalizeFilter(t.Network.Filter)
	}
	if t.HTTP != nil {
		t.HTTP.Filter = normalizeFilter(t.HTTP.Filter)
	}

	if t.Console != nil && t.Console.Enabled {
		if err := ValidateConsole(t.Console); err != nil {
			return err
		}
	}
	if t.File != nil && t.File.Enabled {
		if err := ValidateFile(t.File); err != nil {
			return err
		}
	}
	if t.Network != nil && t.Network.Enabled {
		if err := ValidateNetwork(t.Network); err != nil {
			return err
		}
	}
	if t.HTTP != nil && t.HTTP.Enabled {
		if err := ValidateHTTP(t.HTTP); err != nil {
			return err
		}
	}

	return nil
}

// normalizeFilter treats empty lists from a config file as absent criteria,
// since TOML cannot tell an omitted list from an empty one once defaults are merged.
func normalizeFilter(opts *filter.Options) *filter.Options {
	if opts == nil {
		return nil
	}
	if len(opts.Tags) == 0 {
		opts.Tags = nil
	}
	if len(opts.Functions) == 0 {
		opts.Functions = nil
	}
	if len(opts.Files) == 0 {
		opts.Files = nil
	}
	if opts.IsZero() {
		return nil
	}
	return opts
}

// ValidateSink dispatches to the validator of the option's kind.
func ValidateSink(cfg SinkConfig) error {
	switch opts := cfg.(type) {
	case *ConsoleOptions:
		return ValidateConsole(opts)
	case *FileOptions:
		return ValidateFile(opts)
	case *NetworkOptions:
		return ValidateNetwork(opts)
	case *HTTPOptions:
		return ValidateHTTP(opts)
	case nil:
		return fmt.Errorf("sink config is nil")
	default:
		return fmt.Errorf("unknown sink kind '%s'", cfg.Kind())
	}
}

func ValidateConsole(opts *ConsoleOptions) error {
	if opts.Target == "" {
		opts.Target = "stdout"
	}
	if opts.Color == "" {
		opts.Color = "always"
	}

	validTargets := map[string]bool{"stdout": true, "stderr": true}
	if !validTargets[opts.Target] {
		return fmt.Errorf("console sink: invalid target: %s", opts.Target)
	}

	validColors := map[string]bool{"auto": true, "always": true, "never": true}
	if !validColors[opts.Color] {
		return fmt.Errorf("console sink: invalid color mode: %s", opts.Color)
	}
	return nil
}

func ValidateFile(opts *FileOptions) error {
	if err := lconfig.NonEmpty(opts.Path); err != nil {
		return fmt.Errorf("file sink: requires 'path'")
	}
	if opts.MaxSizeMB < 0 || opts.MaxBackups < 0 || opts.MaxAgeDays < 0 {
		return fmt.Errorf("file sink: rotation limits must not be negative")
	}
	return nil
}

func ValidateNetwork(opts *NetworkOptions) error {
	if err := lconfig.NonEmpty(opts.Host); err != nil {
		return fmt.Errorf("network sink: requires 'host'")
	}
	if err := lconfig.Port(opts.Port); err != nil {
		return fmt.Errorf("network sink: %w", err)
	}

	defaults := DefaultNetworkOptions()
	if opts.ReconnectDelayMS <= 0 {
		opts.ReconnectDelayMS = defaults.ReconnectDelayMS
	}
	if opts.MaxReconnectDelayMS <= 0 {
		opts.MaxReconnectDelayMS = defaults.MaxReconnectDelayMS
	}
	if opts.AttemptsBeforeDecay <= 0 {
		opts.AttemptsBeforeDecay = defaults.AttemptsBeforeDecay
	}
	if opts.MaximumAttempts <= 0 {
		opts.MaximumAttempts = defaults.MaximumAttempts
	}
	if opts.MaxBufferSize <= 0 {
		opts.MaxBufferSize = defaults.MaxBufferSize
	}
	if opts.KeepAliveMS <= 0 {
		opts.KeepAliveMS = defaults.KeepAliveMS
	}
	if opts.DialTimeoutMS <= 0 {
		opts.DialTimeoutMS = defaults.DialTimeoutMS
	}
	if opts.WriteTimeoutMS <= 0 {
		opts.WriteTimeoutMS = defaults.WriteTimeoutMS
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = defaults.QueueSize
	}

	if opts.MaxReconnectDelayMS < opts.ReconnectDelayMS {
		return fmt.Errorf("network sink: max_reconnect_delay_ms (%d) is below reconnect_delay_ms (%d)",
			opts.MaxReconnectDelayMS, opts.ReconnectDelayMS)
	}

	return validateTLSClient("network sink", opts.TLS)
}

func ValidateHTTP(opts *HTTPOptions) error {
	defaults := DefaultHTTPOptions()
	if opts.URL == "" {
		opts.URL = defaults.URL
	}
	if opts.TimeoutMS <= 0 {
		opts.TimeoutMS = defaults.TimeoutMS
	}
	if opts.Attempts <= 0 {
		opts.Attempts = defaults.Attempts
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = defaults.QueueSize
	}
	if opts.RateLimit < 0 {
		return fmt.Errorf("http sink: rate_limit must not be negative")
	}
	if opts.RateLimit > 0 && opts.RateBurst <= 0 {
		opts.RateBurst = 1
	}

	parsed, err := url.Parse(opts.URL)
	if err != nil {
		return fmt.Errorf("http sink: invalid URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("http sink: URL must use http or https: %s", opts.URL)
	}
	if strings.EqualFold(parsed.Scheme, "https") && opts.TLS == nil {
		opts.TLS = &TLSClientConfig{Enabled: true}
	}

	return validateTLSClient("http sink", opts.TLS)
}
