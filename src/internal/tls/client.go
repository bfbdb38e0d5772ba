// FILE: arsenic/src/internal/tls/client.go
package tls

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"

	"arsenic/src/internal/config"

	"github.com/lixenwraith/log"
)

// ClientManager builds the outbound TLS configuration shared by the network and HTTP sinks.
type ClientManager struct {
	config    *config.TLSClientConfig
	tlsConfig *tls.Config
	logger    *log.Logger
}

// NewClientManager creates a TLS manager for a sink. It returns nil when TLS is disabled.
func NewClientManager(cfg *config.TLSClientConfig, logger *log.Logger) (*ClientManager, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}

	minVersion, err := parseTLSVersion(cfg.MinVersion, tls.VersionTLS12)
	if err != nil {
		return nil, err
	}
	maxVersion, err := parseTLSVersion(cfg.MaxVersion, tls.VersionTLS13)
	if err != nil {
		return nil, err
	}
	if minVersion > maxVersion {
		return nil, fmt.Errorf("min TLS version %s is above max %s",
			tlsVersionString(minVersion), tlsVersionString(maxVersion))
	}

	m := &ClientManager{
		config: cfg,
		logger: logger,
		tlsConfig: &tls.Config{
			MinVersion:         minVersion,
			MaxVersion:         maxVersion,
			ServerName:         cfg.ServerName,
			InsecureSkipVerify: cfg.InsecureSkipVerify,
		},
	}

	if cfg.CipherSuites != "" {
		suites, err := parseCipherSuites(cfg.CipherSuites)
		if err != nil {
			return nil, err
		}
		m.tlsConfig.CipherSuites = suites
	}

	if err := m.loadClientCertificate(); err != nil {
		return nil, err
	}
	if err := m.loadServerCA(); err != nil {
		return nil, err
	}

	logger.Debug("msg", "TLS client configuration loaded", "component", "tls",
		"min_version", tlsVersionString(minVersion),
		"max_version", tlsVersionString(maxVersion),
		"mtls", len(m.tlsConfig.Certificates) > 0)
	return m, nil
}

// loadClientCertificate attaches the mTLS key pair when configured.
func (m *ClientManager) loadClientCertificate() error {
	certFile, keyFile := m.config.ClientCertFile, m.config.ClientKeyFile
	switch {
	case certFile == "" && keyFile == "":
		return nil
	case certFile == "" || keyFile == "":
		return fmt.Errorf("both client_cert_file and client_key_file must be provided for mTLS")
	}

	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return fmt.Errorf("failed to load client cert/key: %w", err)
	}
	m.tlsConfig.Certificates = []tls.Certificate{cert}
	return nil
}

// loadServerCA replaces the system roots with the configured CA bundle.
func (m *ClientManager) loadServerCA() error {
	if m.config.ServerCAFile == "" {
		return nil
	}

	pem, err := os.ReadFile(m.config.ServerCAFile)
	if err != nil {
		return fmt.Errorf("failed to read server CA file: %w", err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return fmt.Errorf("failed to parse server CA certificate")
	}
	m.tlsConfig.RootCAs = pool
	return nil
}

// GetConfig returns a copy of the TLS configuration. A nil manager yields nil.
func (m *ClientManager) GetConfig() *tls.Config {
	if m == nil {
		return nil
	}
	return m.tlsConfig.Clone()
}

// ConfigFor returns a copy of the TLS configuration with ServerName defaulted to host.
func (m *ClientManager) ConfigFor(host string) *tls.Config {
	cfg := m.GetConfig()
	if cfg != nil && cfg.ServerName == "" {
		cfg.ServerName = host
	}
	return cfg
}

// GetStats describes the TLS configuration for sink statistics.
func (m *ClientManager) GetStats() map[string]any {
	if m == nil {
		return map[string]any{"enabled": false}
	}
	return map[string]any{
		"enabled":              true,
		"min_version":          tlsVersionString(m.tlsConfig.MinVersion),
		"max_version":          tlsVersionString(m.tlsConfig.MaxVersion),
		"has_client_cert":      len(m.tlsConfig.Certificates) > 0,
		"has_server_ca":        m.tlsConfig.RootCAs != nil,
		"insecure_skip_verify": m.tlsConfig.InsecureSkipVerify,
	}
}
