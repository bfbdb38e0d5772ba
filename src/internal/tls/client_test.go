// FILE: arsenic/src/internal/tls/client_test.go
package tls

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"arsenic/src/internal/config"

	"github.com/lixenwraith/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeSelfSigned writes a self-signed certificate and key, returning their paths.
func writeSelfSigned(t *testing.T) (string, string) {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	template := &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: "arsenic-test"},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(time.Hour),
		IsCA:                  true,
		BasicConstraintsValid: true,
		KeyUsage:              x509.KeyUsageCertSign | x509.KeyUsageDigitalSignature,
		DNSNames:              []string{"localhost"},
	}
	der, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
	require.NoError(t, err)

	keyDER, err := x509.MarshalECPrivateKey(key)
	require.NoError(t, err)

	dir := t.TempDir()
	certFile := filepath.Join(dir, "cert.pem")
	keyFile := filepath.Join(dir, "key.pem")
	require.NoError(t, os.WriteFile(certFile, pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}), 0600))
	require.NoError(t, os.WriteFile(keyFile, pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: keyDER}), 0600))
	return certFile, keyFile
}

func TestNewClientManager(t *testing.T) {
	logger := log.NewLogger()

	t.Run("DisabledReturnsNil", func(t *testing.T) {
		m, err := NewClientManager(nil, logger)
		require.NoError(t, err)
		assert.Nil(t, m)
		assert.Nil(t, m.GetConfig())
		assert.Equal(t, false, m.GetStats()["enabled"])

		m, err = NewClientManager(&config.TLSClientConfig{Enabled: false}, logger)
		require.NoError(t, err)
		assert.Nil(t, m)
	})

	t.Run("Defaults", func(t *testing.T) {
		m, err := NewClientManager(&config.TLSClientConfig{Enabled: true}, logger)
		require.NoError(t, err)

		cfg := m.ConfigFor("collector.local")
		assert.Equal(t, uint16(tls.VersionTLS12), cfg.MinVersion)
		assert.Equal(t, uint16(tls.VersionTLS13), cfg.MaxVersion)
		assert.Equal(t, "collector.local", cfg.ServerName)
		assert.Empty(t, m.GetConfig().ServerName, "ConfigFor must not mutate the shared config")
	})

	t.Run("CertificatesAndSuites", func(t *testing.T) {
		certFile, keyFile := writeSelfSigned(t)
		m, err := NewClientManager(&config.TLSClientConfig{
			Enabled:        true,
			ServerCAFile:   certFile,
			ClientCertFile: certFile,
			ClientKeyFile:  keyFile,
			MinVersion:     "TLS12",
			CipherSuites:   "TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256, TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384",
		}, logger)
		require.NoError(t, err)

		cfg := m.GetConfig()
		assert.Len(t, cfg.Certificates, 1)
		assert.NotNil(t, cfg.RootCAs)
		assert.Equal(t, []uint16{
			tls.TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256,
			tls.TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384,
		}, cfg.CipherSuites)

		stats := m.GetStats()
		assert.Equal(t, true, stats["has_client_cert"])
		assert.Equal(t, true, stats["has_server_ca"])
		assert.Equal(t, "TLS1.2", stats["min_version"])
	})

	testCases := []struct {
		name string
		cfg  *config.TLSClientConfig
	}{
		{name: "HalfKeyPair", cfg: &config.TLSClientConfig{Enabled: true, ClientCertFile: "cert.pem"}},
		{name: "MissingCA", cfg: &config.TLSClientConfig{Enabled: true, ServerCAFile: "/nonexistent/ca.pem"}},
		{name: "UnknownVersion", cfg: &config.TLSClientConfig{Enabled: true, MinVersion: "SSL3"}},
		{name: "InvertedVersions", cfg: &config.TLSClientConfig{Enabled: true, MinVersion: "TLS1.3", MaxVersion: "TLS1.2"}},
		{name: "UnknownSuite", cfg: &config.TLSClientConfig{Enabled: true, CipherSuites: "TLS_NULL"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := NewClientManager(tc.cfg, logger)
			assert.Error(t, err)
			assert.Nil(t, m)
		})
	}
}
