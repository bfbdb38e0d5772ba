// FILE: arsenic/src/logger/config_test.go
package logger

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"arsenic/src/internal/stack"
	"arsenic/src/internal/usage"

	"github.com/lixenwraith/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Level = "warn"
	cfg.Tag = "svc"
	cfg.Timestamps = false
	cfg.MaxStackDepth = 0
	cfg.Transport.Console.Color = "never"

	out := &syncBuffer{}
	l, err := NewFromConfig(cfg,
		WithDiagnostics(log.NewLogger()),
		WithConsoleWriter(out),
		WithCapturer(stack.Static(makeFrames(4)...)))
	require.NoError(t, err)
	defer l.Close()

	l.Info("dropped")
	l.Warn("kept")

	assert.Equal(t, []string{"[svc] [warn] kept {from line 4 of f3.go (fn3)}"}, out.Lines())
	assert.Equal(t, []string{SinkConsole}, l.Sinks())
}

func TestNewFromConfig_Invalid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Level = "chatty"

	_, err := NewFromConfig(cfg, WithDiagnostics(log.NewLogger()))
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arsenic.toml")
	content := `
level = "error"
tag = "worker"
timestamps = false

[transport.console]
enabled = true
color = "never"

[transport.file]
enabled = true
path = "` + filepath.ToSlash(filepath.Join(t.TempDir(), "worker.log")) + `"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Level)
	assert.Equal(t, "worker", cfg.Tag)

	l, err := NewFromConfig(cfg, WithDiagnostics(log.NewLogger()), WithConsoleWriter(&syncBuffer{}))
	require.NoError(t, err)
	defer l.Close()
	assert.Equal(t, []string{SinkConsole, SinkFile}, l.Sinks())
	assert.Equal(t, LevelError, l.Settings().MinLevel)
}

func TestLogger_HTTPSink(t *testing.T) {
	received := make(chan map[string]any, 4)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var payload map[string]any
		if json.Unmarshal(body, &payload) == nil {
			received <- payload
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	snap := usage.Snapshot{HeapUsed: 4 * 1024 * 1024, MemoryTotal: 8 * 1024 * 1024, Load: 1.5}
	l, _ := newTestLogger(t,
		WithSampler(usage.Fixed(snap)),
		WithSinks(&HTTPOptions{Enabled: true, URL: server.URL, APIKey: "key-1"}))
	l.SetTag("billing")

	l.Error("charge failed")

	select {
	case payload := <-received:
		assert.Equal(t, "key-1", payload["apiKey"])
		assert.Equal(t, "charge failed", payload["message"])
		assert.Equal(t, "error", payload["level"])
		assert.Equal(t, "billing", payload["tag"])
		assert.EqualValues(t, 4*1024*1024, payload["memory"])
		assert.EqualValues(t, 1.5, payload["cpu"])
	case <-time.After(5 * time.Second):
		t.Fatal("payload not delivered")
	}
}
