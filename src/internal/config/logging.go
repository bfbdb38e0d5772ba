// FILE: arsenic/src/internal/config/logging.go
package config

import (
	"fmt"

	"github.com/lixenwraith/log"
)

// LogConfig configures the logger's own diagnostics output
type LogConfig struct {
	// Output mode: "stdout", "stderr", "none"
	Output string `toml:"output"`

	// Log level: "debug", "info", "warn", "error"
	Level string `toml:"level"`
}

// DefaultLogConfig returns diagnostics defaults: warnings and above on stderr
func DefaultLogConfig() *LogConfig {
	return &LogConfig{
		Output: "stderr",
		Level:  "warn",
	}
}

// Args builds the key=value overrides for log.Logger.InitWithDefaults.
func (c *LogConfig) Args() []string {
	args := []string{"disable_file=true"}

	switch c.Output {
	case "stdout":
		args = append(args, "enable_stdout=true", "stdout_target=stdout")
	case "stderr":
		args = append(args, "enable_stdout=true", "stdout_target=stderr")
	default:
		args = append(args, "enable_stdout=false")
	}

	return append(args, fmt.Sprintf("level=%d", c.logLevel()))
}

func (c *LogConfig) logLevel() int64 {
	switch c.Level {
	case "debug":
		return log.LevelDebug
	case "info":
		return log.LevelInfo
	case "error":
		return log.LevelError
	default:
		return log.LevelWarn
	}
}

func validateLogConfig(cfg *LogConfig) error {
	validOutputs := map[string]bool{
		"stdout": true, "stderr": true, "none": true,
	}
	if !validOutputs[cfg.Output] {
		return fmt.Errorf("invalid log output mode: %s", cfg.Output)
	}

	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[cfg.Level] {
		return fmt.Errorf("invalid log level: %s", cfg.Level)
	}

	return nil
}
