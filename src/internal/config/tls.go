// FILE: arsenic/src/internal/config/tls.go
package config

import (
	"fmt"
	"os"
)

// TLSClientConfig configures outbound TLS for the network and HTTP sinks.
type TLSClientConfig struct {
	Enabled bool `toml:"enabled"`

	// CA file to trust specific server certificates
	ServerCAFile string `toml:"server_ca_file"`

	// Client certificate for mTLS
	ClientCertFile string `toml:"client_cert_file"`
	ClientKeyFile  string `toml:"client_key_file"`

	ServerName         string `toml:"server_name"`
	InsecureSkipVerify bool   `toml:"insecure_skip_verify"`

	// TLS version constraints: "TLS1.2", "TLS1.3"
	MinVersion string `toml:"min_version"`
	MaxVersion string `toml:"max_version"`

	// Cipher suites (comma-separated list)
	CipherSuites string `toml:"cipher_suites"`
}

func validateTLSClient(sinkName string, tls *TLSClientConfig) error {
	if tls == nil || !tls.Enabled {
		return nil
	}

	if (tls.ClientCertFile == "") != (tls.ClientKeyFile == "") {
		return fmt.Errorf("%s: both client_cert_file and client_key_file must be provided for mTLS", sinkName)
	}

	for name, path := range map[string]string{
		"server_ca_file":   tls.ServerCAFile,
		"client_cert_file": tls.ClientCertFile,
		"client_key_file":  tls.ClientKeyFile,
	} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("%s: %s is not accessible: %w", sinkName, name, err)
		}
	}

	validVersions := map[string]bool{"": true, "TLS1.0": true, "TLS1.1": true, "TLS1.2": true, "TLS1.3": true}
	if !validVersions[tls.MinVersion] {
		return fmt.Errorf("%s: invalid min TLS version: %s", sinkName, tls.MinVersion)
	}
	if !validVersions[tls.MaxVersion] {
		return fmt.Errorf("%s: invalid max TLS version: %s", sinkName, tls.MaxVersion)
	}

	return nil
}
