// FILE: arsenic/src/internal/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"arsenic/src/internal/core"
	"arsenic/src/internal/filter"

	lconfig "github.com/lixenwraith/config"
)

// Defaults returns the configuration used when no source overrides a value.
func Defaults() *Config {
	networkDefaults := DefaultNetworkOptions()
	networkDefaults.TLS = &TLSClientConfig{}
	httpDefaults := DefaultHTTPOptions()
	httpDefaults.TLS = &TLSClientConfig{}

	return &Config{
		Level:            "debug",
		MaxStackDepth:    core.DefaultMaxDepth,
		Timestamps:       true,
		TimestampPattern: core.DefaultTimestampPattern,
		Locale:           core.DefaultLocale,
		Filter:           &filter.Options{},
		Transport: TransportConfig{
			Console: DefaultConsoleOptions(),
			File:    &FileOptions{},
			Network: networkDefaults,
			HTTP:    httpDefaults,
		},
		Logging: DefaultLogConfig(),
	}
}

// Load builds the configuration from defaults, the TOML file at path,
// ARSENIC_* environment variables and CLI args, in increasing precedence.
// A missing file is not an error.
func Load(path string, cliArgs []string) (*Config, error) {
	if path == "" {
		path = GetConfigPath()
	}

	cfg, err := lconfig.NewBuilder().
		WithDefaults(Defaults()).
		WithEnvPrefix("ARSENIC_").
		WithFile(path).
		WithArgs(cliArgs).
		WithEnvTransform(customEnvTransform).
		WithSources(
			lconfig.SourceCLI,
			lconfig.SourceEnv,
			lconfig.SourceFile,
			lconfig.SourceDefault,
		).
		Build()

	if err != nil {
		if !strings.Contains(err.Error(), "not found") {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	finalConfig := &Config{}
	if err := cfg.Scan(finalConfig); err != nil {
		return nil, fmt.Errorf("failed to scan config: %w", err)
	}

	return finalConfig, Validate(finalConfig)
}

func customEnvTransform(path string) string {
	env := strings.ReplaceAll(path, ".", "_")
	env = strings.ToUpper(env)
	env = "ARSENIC_" + env
	return env
}

// GetConfigPath resolves the config file from ARSENIC_CONFIG_FILE and ARSENIC_CONFIG_DIR,
// falling back to ~/.config/arsenic.toml.
func GetConfigPath() string {
	if configFile := os.Getenv("ARSENIC_CONFIG_FILE"); configFile != "" {
		if filepath.IsAbs(configFile) {
			return configFile
		}
		if configDir := os.Getenv("ARSENIC_CONFIG_DIR"); configDir != "" {
			return filepath.Join(configDir, configFile)
		}
		return configFile
	}

	if configDir := os.Getenv("ARSENIC_CONFIG_DIR"); configDir != "" {
		return filepath.Join(configDir, "arsenic.toml")
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".config", "arsenic.toml")
	}

	return "arsenic.toml"
}
