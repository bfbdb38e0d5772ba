// FILE: arsenic/src/internal/config/config.go
package config

import (
	"arsenic/src/internal/core"
	"arsenic/src/internal/filter"
)

// Config is the complete logger configuration.
type Config struct {
	// Minimum level: "log", "debug", "info", "warn", "error", "fatal"
	Level string `toml:"level"`

	// Overrides Level when set
	GlobalLevel string `toml:"global_level"`

	// Default tag for entries that carry none
	Tag string `toml:"tag"`

	// Caller frames included in the trace suffix
	MaxStackDepth int64 `toml:"max_stack_depth"`

	Timestamps       bool   `toml:"timestamps"`
	TimestampPattern string `toml:"timestamp_pattern"`
	Locale           string `toml:"locale"`

	EchoMemoryUsage bool `toml:"echo_memory_usage"`
	EchoCPUUsage    bool `toml:"echo_cpu_usage"`

	// Terminate the process after a fatal entry
	FatalExits bool `toml:"fatal_exits"`

	// Recover swallows the panic after logging it instead of re-panicking
	HandlePanics bool `toml:"handle_panics"`

	Filter *filter.Options `toml:"filter"`

	Transport TransportConfig `toml:"transport"`

	// Diagnostics of the logger itself
	Logging *LogConfig `toml:"logging"`
}

// TransportConfig enables sinks; a nil entry leaves the sink disabled.
type TransportConfig struct {
	Console *ConsoleOptions `toml:"console"`
	File    *FileOptions    `toml:"file"`
	Network *NetworkOptions `toml:"network"`
	HTTP    *HTTPOptions    `toml:"http"`
}

// Sinks returns the enabled sink options in delivery order.
func (t *TransportConfig) Sinks() []SinkConfig {
	var sinks []SinkConfig
	if t.Console != nil && t.Console.Enabled {
		sinks = append(sinks, t.Console)
	}
	if t.File != nil && t.File.Enabled {
		sinks = append(sinks, t.File)
	}
	if t.Network != nil && t.Network.Enabled {
		sinks = append(sinks, t.Network)
	}
	if t.HTTP != nil && t.HTTP.Enabled {
		sinks = append(sinks, t.HTTP)
	}
	return sinks
}

// Settings converts the configuration into runtime settings.
func (c *Config) Settings() (core.Settings, error) {
	s := core.DefaultSettings()

	if c.Level != "" {
		level, err := core.ParseLevel(c.Level)
		if err != nil {
			return s, err
		}
		s.MinLevel = level
	}
	if c.GlobalLevel != "" {
		level, err := core.ParseLevel(c.GlobalLevel)
		if err != nil {
			return s, err
		}
		s.GlobalMinLevel = &level
	}

	s.Tag = c.Tag
	s.MaxDepth = int(c.MaxStackDepth)
	s.Timestamps = c.Timestamps
	if c.TimestampPattern != "" {
		s.TimestampPattern = c.TimestampPattern
	}
	if c.Locale != "" {
		s.Locale = c.Locale
	}
	s.EchoMemory = c.EchoMemoryUsage
	s.EchoCPU = c.EchoCPUUsage
	s.FatalExits = c.FatalExits
	return s, nil
}
