// FILE: arsenic/src/internal/config/sink.go
package config

import (
	"arsenic/src/internal/core"
	"arsenic/src/internal/filter"
)

// SinkConfig is the tagged union of sink option types accepted by EnableSink.
type SinkConfig interface {
	Kind() string
	// FilterOverride returns the sink's own filter, nil when the global filter applies
	FilterOverride() *filter.Options
}

// ConsoleOptions configures the console sink.
type ConsoleOptions struct {
	Enabled bool `toml:"enabled"`

	// "stdout" or "stderr"
	Target string `toml:"target"`

	// "auto", "always" or "never"
	Color string `toml:"color"`

	Filter *filter.Options `toml:"filter"`
}

func (o *ConsoleOptions) Kind() string                   { return "console" }
func (o *ConsoleOptions) FilterOverride() *filter.Options { return o.Filter }

// FileOptions configures the file sink.
type FileOptions struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`

	// Rotation is off unless MaxSizeMB is positive
	MaxSizeMB  int64 `toml:"max_size_mb"`
	MaxBackups int64 `toml:"max_backups"`
	MaxAgeDays int64 `toml:"max_age_days"`
	Compress   bool  `toml:"compress"`

	Filter *filter.Options `toml:"filter"`
}

func (o *FileOptions) Kind() string                   { return "file" }
func (o *FileOptions) FilterOverride() *filter.Options { return o.Filter }

// NetworkOptions configures the reconnecting stream sink.
type NetworkOptions struct {
	Enabled bool   `toml:"enabled"`
	Host    string `toml:"host"`
	Port    int64  `toml:"port"`

	// Prefix each line with "[hostname] "
	SendHostname bool `toml:"send_hostname"`

	ReconnectDelayMS    int64 `toml:"reconnect_delay_ms"`
	MaxReconnectDelayMS int64 `toml:"max_reconnect_delay_ms"`
	AttemptsBeforeDecay int64 `toml:"attempts_before_decay"`
	MaximumAttempts     int64 `toml:"maximum_attempts"`
	MaxBufferSize       int64 `toml:"max_buffer_size"`

	KeepAliveMS    int64 `toml:"keep_alive_ms"`
	DialTimeoutMS  int64 `toml:"dial_timeout_ms"`
	WriteTimeoutMS int64 `toml:"write_timeout_ms"`
	QueueSize      int64 `toml:"queue_size"`

	TLS *TLSClientConfig `toml:"tls"`

	Filter *filter.Options `toml:"filter"`
}

func (o *NetworkOptions) Kind() string                   { return "network" }
func (o *NetworkOptions) FilterOverride() *filter.Options { return o.Filter }

// HTTPOptions configures the HTTP remote sink.
type HTTPOptions struct {
	Enabled bool   `toml:"enabled"`
	URL     string `toml:"url"`
	APIKey  string `toml:"api_key"`

	TimeoutMS int64 `toml:"timeout_ms"`
	// Total attempts per entry, including the first
	Attempts  int64 `toml:"attempts"`
	QueueSize int64 `toml:"queue_size"`

	// Requests per second, 0 disables limiting
	RateLimit float64 `toml:"rate_limit"`
	RateBurst int64   `toml:"rate_burst"`

	// HS256 key for an optional bearer token
	JWTSigningKey string `toml:"jwt_signing_key"`
	JWTIssuer     string `toml:"jwt_issuer"`

	TLS *TLSClientConfig `toml:"tls"`

	Filter *filter.Options `toml:"filter"`
}

func (o *HTTPOptions) Kind() string                   { return "http" }
func (o *HTTPOptions) FilterOverride() *filter.Options { return o.Filter }

// DefaultConsoleOptions returns console defaults.
func DefaultConsoleOptions() *ConsoleOptions {
	return &ConsoleOptions{
		Enabled: true,
		Target:  "stdout",
		Color:   "always",
	}
}

// DefaultNetworkOptions returns stream sink defaults.
func DefaultNetworkOptions() *NetworkOptions {
	return &NetworkOptions{
		ReconnectDelayMS:    core.DefaultReconnectDelay.Milliseconds(),
		MaxReconnectDelayMS: core.DefaultMaxReconnectDelay.Milliseconds(),
		AttemptsBeforeDecay: core.DefaultAttemptsBeforeDecay,
		MaximumAttempts:     core.DefaultMaximumAttempts,
		MaxBufferSize:       core.DefaultMaxBufferSize,
		KeepAliveMS:         core.DefaultKeepAlive.Milliseconds(),
		DialTimeoutMS:       core.DefaultDialTimeout.Milliseconds(),
		WriteTimeoutMS:      core.DefaultWriteTimeout.Milliseconds(),
		QueueSize:           core.DefaultStreamQueueSize,
		SendHostname:        true,
	}
}

// DefaultHTTPOptions returns HTTP sink defaults.
func DefaultHTTPOptions() *HTTPOptions {
	return &HTTPOptions{
		URL:       core.DefaultHTTPURL,
		TimeoutMS: core.DefaultHTTPTimeout.Milliseconds(),
		Attempts:  core.DefaultHTTPAttempts,
		QueueSize: core.DefaultHTTPQueueSize,
	}
}
