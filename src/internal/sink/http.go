// FILE: arsenic/src/internal/sink/http.go
package sink

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"arsenic/src/internal/config"
	"arsenic/src/internal/format"
	ltls "arsenic/src/internal/tls"
	"arsenic/src/internal/version"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lixenwraith/log"
	"github.com/valyala/fasthttp"
	"golang.org/x/time/rate"
)

// tokenLifetime bounds how long a signed bearer token is reused
const tokenLifetime = 5 * time.Minute

// HTTPSink posts one JSON payload per entry to a remote collector.
// Delivery is fire-and-forget: failures are retried a bounded number of times, then dropped.
type HTTPSink struct {
	base
	config *config.HTTPOptions

	// Network
	client     *fasthttp.Client
	tlsManager *ltls.ClientManager
	limiter    *rate.Limiter
	timeout    time.Duration

	formatter *format.JSONFormatter

	// Bearer token cache
	tokenMu     sync.Mutex
	token       string
	tokenExpiry time.Time
	hostname    string

	// Runtime
	queue    chan []byte
	done     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once

	// Statistics
	totalSent         atomic.Uint64
	totalDropped      atomic.Uint64
	totalRequests     atomic.Uint64
	activeConnections atomic.Int64
	lastSent          atomic.Value // time.Time
}

// NewHTTPSink creates an HTTP sink
func NewHTTPSink(opts *config.HTTPOptions, logger *log.Logger) (*HTTPSink, error) {
	if opts == nil {
		return nil, fmt.Errorf("HTTP sink options cannot be nil")
	}
	if err := config.ValidateHTTP(opts); err != nil {
		return nil, err
	}

	h := &HTTPSink{
		config:    opts,
		timeout:   time.Duration(opts.TimeoutMS) * time.Millisecond,
		formatter: format.NewJSONFormatter(opts.APIKey),
		queue:     make(chan []byte, opts.QueueSize),
		done:      make(chan struct{}),
	}
	h.setup(opts, h.formatter.Name(), logger)
	h.lastSent.Store(time.Time{})
	h.hostname, _ = os.Hostname()

	h.client = &fasthttp.Client{
		MaxConnsPerHost:               10,
		MaxIdleConnDuration:           10 * time.Second,
		ReadTimeout:                   h.timeout,
		WriteTimeout:                  h.timeout,
		DisableHeaderNamesNormalizing: true,
	}

	tlsManager, err := ltls.NewClientManager(opts.TLS, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create TLS client manager: %w", err)
	}
	if tlsManager != nil {
		h.tlsManager = tlsManager
		h.client.TLSConfig = tlsManager.GetConfig()
	}

	if opts.RateLimit > 0 {
		h.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), int(opts.RateBurst))
	}

	return h, nil
}

// Emit queues the record's payload without waiting for the network
func (h *HTTPSink) Emit(rec *format.Record) {
	if _, ok := h.admit(rec); !ok {
		return
	}

	body, err := h.formatter.Format(rec)
	if err != nil {
		h.totalFailed.Add(1)
		h.logger.Error("msg", "Failed to format payload",
			"component", "http_sink",
			"error", err)
		return
	}

	select {
	case h.queue <- body:
	default:
		h.totalDropped.Add(1)
		h.logger.Warn("msg", "HTTP queue full, payload dropped",
			"component", "http_sink",
			"queue_size", cap(h.queue))
	}
}

func (h *HTTPSink) Start(ctx context.Context) error {
	h.wg.Add(1)
	go h.processLoop(ctx)

	h.logger.Info("msg", "HTTP sink started",
		"component", "http_sink",
		"url", h.config.URL,
		"attempts", h.config.Attempts,
		"timeout_ms", h.config.TimeoutMS)
	return nil
}

// Stop shuts down the sink after delivering what is already queued
func (h *HTTPSink) Stop() {
	h.stopOnce.Do(func() {
		close(h.done)
	})
	h.wg.Wait()

	h.logger.Info("msg", "HTTP sink stopped",
		"component", "http_sink",
		"total_sent", h.totalSent.Load(),
		"total_failed", h.totalFailed.Load(),
		"total_dropped", h.totalDropped.Load())
}

func (h *HTTPSink) processLoop(ctx context.Context) {
	defer h.wg.Done()

	for {
		select {
		case body := <-h.queue:
			h.send(ctx, body)
		case <-ctx.Done():
			return
		case <-h.done:
			h.drain()
			return
		}
	}
}

// drain delivers queued payloads on shutdown
func (h *HTTPSink) drain() {
	for {
		select {
		case body := <-h.queue:
			h.send(context.Background(), body)
		default:
			return
		}
	}
}

// send posts body, retrying transport errors and 5xx responses up to the attempt budget.
func (h *HTTPSink) send(ctx context.Context, body []byte) {
	h.activeConnections.Add(1)
	defer h.activeConnections.Add(-1)

	if h.limiter != nil {
		if err := h.limiter.Wait(ctx); err != nil {
			h.totalDropped.Add(1)
			return
		}
	}

	var lastErr error
	for attempt := int64(1); attempt <= h.config.Attempts; attempt++ {
		statusCode, responseBody, err := h.post(body)
		h.totalRequests.Add(1)

		if err != nil {
			lastErr = fmt.Errorf("request failed: %w", err)
			h.logger.Debug("msg", "HTTP request failed",
				"component", "http_sink",
				"attempt", attempt,
				"error", err)
			continue
		}

		if statusCode >= 200 && statusCode < 300 {
			h.totalSent.Add(1)
			h.lastSent.Store(time.Now())
			return
		}

		lastErr = fmt.Errorf("server returned status %d: %s", statusCode, responseBody)

		// Client errors will not succeed on retry
		if statusCode >= 400 && statusCode < 500 {
			break
		}
	}

	h.totalFailed.Add(1)
	h.logger.Warn("msg", "Failed to deliver payload",
		"component", "http_sink",
		"url", h.config.URL,
		"error", lastErr)
}

func (h *HTTPSink) post(body []byte) (int, []byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(h.config.URL)
	req.Header.SetMethod("POST")
	req.Header.SetContentType("application/json")
	req.Header.Set("User-Agent", version.UserAgent())
	req.SetBody(body)

	if h.config.JWTSigningKey != "" {
		token, err := h.bearerToken()
		if err != nil {
			return 0, nil, err
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	if err := h.client.DoTimeout(req, resp, h.timeout); err != nil {
		return 0, nil, err
	}

	// Response buffers return to the pool on release
	responseBody := append([]byte(nil), resp.Body()...)
	return resp.StatusCode(), responseBody, nil
}

// bearerToken returns a cached HS256 token, signing a new one near expiry
func (h *HTTPSink) bearerToken() (string, error) {
	h.tokenMu.Lock()
	defer h.tokenMu.Unlock()

	now := time.Now()
	if h.token != "" && now.Add(time.Minute).Before(h.tokenExpiry) {
		return h.token, nil
	}

	expiry := now.Add(tokenLifetime)
	claims := jwt.RegisteredClaims{
		Issuer:    h.config.JWTIssuer,
		Subject:   h.hostname,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiry),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(h.config.JWTSigningKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign bearer token: %w", err)
	}

	h.token = signed
	h.tokenExpiry = expiry
	return signed, nil
}

func (h *HTTPSink) GetStats() SinkStats {
	lastSent, _ := h.lastSent.Load().(time.Time)

	return h.stats(h.activeConnections.Load(), map[string]any{
		"url":            h.config.URL,
		"queued":         len(h.queue),
		"total_sent":     h.totalSent.Load(),
		"total_dropped":  h.totalDropped.Load(),
		"total_requests": h.totalRequests.Load(),
		"last_sent":      lastSent,
		"rate_limited":   h.limiter != nil,
		"tls":            h.tlsManager.GetStats(),
	})
}
