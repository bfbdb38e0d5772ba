// FILE: arsenic/src/internal/tls/parse.go
package tls

import (
	"crypto/tls"
	"fmt"
	"strings"
)

var versionNames = map[string]uint16{
	"TLS1.0": tls.VersionTLS10,
	"TLS1.1": tls.VersionTLS11,
	"TLS1.2": tls.VersionTLS12,
	"TLS1.3": tls.VersionTLS13,
}

// parseTLSVersion accepts "TLS1.2" or "TLS12" style names; empty selects def.
func parseTLSVersion(version string, def uint16) (uint16, error) {
	if version == "" {
		return def, nil
	}
	name := strings.ToUpper(strings.TrimSpace(version))
	if !strings.Contains(name, ".") && len(name) == 5 {
		name = name[:4] + "." + name[4:]
	}
	if v, ok := versionNames[name]; ok {
		return v, nil
	}
	return 0, fmt.Errorf("unknown TLS version: %s", version)
}

// parseCipherSuites resolves a comma-separated list of IANA suite names.
// Only suites crypto/tls considers secure are accepted.
func parseCipherSuites(suites string) ([]uint16, error) {
	known := make(map[string]uint16)
	for _, s := range tls.CipherSuites() {
		known[s.Name] = s.ID
	}

	var result []uint16
	for _, name := range strings.Split(suites, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		id, ok := known[name]
		if !ok {
			return nil, fmt.Errorf("unsupported cipher suite: %s", name)
		}
		result = append(result, id)
	}
	return result, nil
}

func tlsVersionString(version uint16) string {
	for name, v := range versionNames {
		if v == version {
			return name
		}
	}
	return fmt.Sprintf("0x%04x", version)
}
