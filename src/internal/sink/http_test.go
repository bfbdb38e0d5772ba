// FILE: arsenic/src/internal/sink/http_test.go
package sink

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"arsenic/src/internal/config"
	"arsenic/src/internal/core"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collector is an HTTP endpoint that fails the first failures requests with status.
type collector struct {
	server   *httptest.Server
	hits     atomic.Int32
	failures int32
	status   int
	bodies   chan []byte
	headers  chan http.Header
}

func newCollector(t *testing.T, failures int32, status int) *collector {
	c := &collector{
		failures: failures,
		status:   status,
		bodies:   make(chan []byte, 10),
		headers:  make(chan http.Header, 10),
	}
	c.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := c.hits.Add(1)
		body, _ := io.ReadAll(r.Body)
		if n <= c.failures {
			w.WriteHeader(c.status)
			return
		}
		c.bodies <- body
		c.headers <- r.Header.Clone()
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(c.server.Close)
	return c
}

func waitBody(t *testing.T, c *collector) []byte {
	t.Helper()
	select {
	case body := <-c.bodies:
		return body
	case <-time.After(3 * time.Second):
		t.Fatal("collector received nothing")
		return nil
	}
}

func TestHTTPSink_Delivery(t *testing.T) {
	c := newCollector(t, 0, 0)

	h, err := NewHTTPSink(&config.HTTPOptions{URL: c.server.URL + "/api/log", APIKey: "key-1"}, newTestLogger())
	require.NoError(t, err)
	require.NoError(t, h.Start(t.Context()))
	defer h.Stop()

	rec := newRecord(core.LevelWarn, "disk almost full", "storage")
	rec.Hostname = "web-1"
	rec.PID = 99
	h.Emit(rec)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(waitBody(t, c), &payload))
	assert.Equal(t, "key-1", payload["apiKey"])
	assert.Equal(t, "disk almost full", payload["message"])
	assert.Equal(t, "warn", payload["level"])
	assert.Equal(t, "storage", payload["tag"])
	assert.Equal(t, "web-1", payload["hostname"])
	assert.Equal(t, float64(99), payload["pid"])
	assert.Equal(t, "[]", payload["stack"])

	headers := <-c.headers
	assert.Equal(t, "application/json", headers.Get("Content-Type"))
	assert.True(t, strings.HasPrefix(headers.Get("User-Agent"), "arsenic/"))
	assert.Empty(t, headers.Get("Authorization"))

	require.Eventually(t, func() bool { return h.totalSent.Load() == 1 }, time.Second, 5*time.Millisecond)
}

func TestHTTPSink_Retries(t *testing.T) {
	t.Run("SucceedsOnThirdAttempt", func(t *testing.T) {
		c := newCollector(t, 2, http.StatusInternalServerError)
		h, err := NewHTTPSink(&config.HTTPOptions{URL: c.server.URL}, newTestLogger())
		require.NoError(t, err)
		require.NoError(t, h.Start(t.Context()))
		defer h.Stop()

		h.Emit(newRecord(core.LevelInfo, "eventually"))
		waitBody(t, c)

		assert.Equal(t, int32(3), c.hits.Load())
		require.Eventually(t, func() bool { return h.totalSent.Load() == 1 }, time.Second, 5*time.Millisecond)
		assert.Equal(t, uint64(0), h.GetStats().TotalFailed)
	})

	t.Run("DropsAfterThreeAttempts", func(t *testing.T) {
		c := newCollector(t, 100, http.StatusBadGateway)
		h, err := NewHTTPSink(&config.HTTPOptions{URL: c.server.URL}, newTestLogger())
		require.NoError(t, err)
		require.NoError(t, h.Start(t.Context()))
		defer h.Stop()

		h.Emit(newRecord(core.LevelError, "lost"))

		require.Eventually(t, func() bool { return h.GetStats().TotalFailed == 1 }, 3*time.Second, 5*time.Millisecond)
		assert.Equal(t, int32(3), c.hits.Load())
		assert.Equal(t, uint64(0), h.totalSent.Load())
	})

	t.Run("ClientErrorIsNotRetried", func(t *testing.T) {
		c := newCollector(t, 100, http.StatusUnauthorized)
		h, err := NewHTTPSink(&config.HTTPOptions{URL: c.server.URL}, newTestLogger())
		require.NoError(t, err)
		require.NoError(t, h.Start(t.Context()))
		defer h.Stop()

		h.Emit(newRecord(core.LevelError, "rejected"))

		require.Eventually(t, func() bool { return h.GetStats().TotalFailed == 1 }, 3*time.Second, 5*time.Millisecond)
		assert.Equal(t, int32(1), c.hits.Load())
	})

	t.Run("UnreachableEndpoint", func(t *testing.T) {
		h, err := NewHTTPSink(&config.HTTPOptions{URL: "http://127.0.0.1:1/api/log", TimeoutMS: 200}, newTestLogger())
		require.NoError(t, err)
		require.NoError(t, h.Start(t.Context()))
		defer h.Stop()

		h.Emit(newRecord(core.LevelInfo, "nowhere"))
		require.Eventually(t, func() bool { return h.GetStats().TotalFailed == 1 }, 3*time.Second, 10*time.Millisecond)
		assert.Equal(t, uint64(3), h.totalRequests.Load())
	})
}

func TestHTTPSink_BearerToken(t *testing.T) {
	c := newCollector(t, 0, 0)
	opts := &config.HTTPOptions{
		URL:           c.server.URL,
		JWTSigningKey: "shared-secret",
		JWTIssuer:     "arsenic-test",
	}
	h, err := NewHTTPSink(opts, newTestLogger())
	require.NoError(t, err)
	require.NoError(t, h.Start(t.Context()))
	defer h.Stop()

	h.Emit(newRecord(core.LevelInfo, "signed"))
	waitBody(t, c)
	headers := <-c.headers

	auth := headers.Get("Authorization")
	require.True(t, strings.HasPrefix(auth, "Bearer "))

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(strings.TrimPrefix(auth, "Bearer "), claims, func(token *jwt.Token) (any, error) {
		return []byte("shared-secret"), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	require.NoError(t, err)
	assert.True(t, token.Valid)
	assert.Equal(t, "arsenic-test", claims.Issuer)

	first, err := h.bearerToken()
	require.NoError(t, err)
	second, err := h.bearerToken()
	require.NoError(t, err)
	assert.Equal(t, first, second, "token is cached")
}

func TestHTTPSink_RateLimit(t *testing.T) {
	c := newCollector(t, 0, 0)
	h, err := NewHTTPSink(&config.HTTPOptions{URL: c.server.URL, RateLimit: 1000}, newTestLogger())
	require.NoError(t, err)
	require.NotNil(t, h.limiter)
	require.NoError(t, h.Start(t.Context()))
	defer h.Stop()

	for i := 0; i < 3; i++ {
		h.Emit(newRecord(core.LevelInfo, "limited"))
	}
	for i := 0; i < 3; i++ {
		waitBody(t, c)
	}
	assert.Equal(t, true, h.GetStats().Details["rate_limited"])
}
