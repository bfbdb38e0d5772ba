// FILE: arsenic/src/internal/sink/stream.go
package sink

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"os"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"arsenic/src/internal/config"
	"arsenic/src/internal/format"
	ltls "arsenic/src/internal/tls"

	"github.com/lixenwraith/log"
)

// StreamState is the connection state of a StreamSink
type StreamState int32

const (
	StateDisconnected StreamState = iota
	StateConnecting
	StateConnected
	StateErroring
)

func (s StreamState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateErroring:
		return "erroring"
	default:
		return "unknown"
	}
}

// shutdownWriteTimeout bounds any write still in flight once the sink stops
const shutdownWriteTimeout = 1 * time.Second

// Dialer opens the outbound connection for a StreamSink
type Dialer func(ctx context.Context) (net.Conn, error)

// StreamSink keeps a persistent connection to a remote line collector.
// While disconnected it buffers lines and retries with a decaying back-off.
type StreamSink struct {
	base
	config     *config.NetworkOptions
	address    string
	dial       Dialer
	tlsManager *ltls.ClientManager
	prefix     string
	formatter  *format.TextFormatter

	baseDelay           time.Duration
	maxDelay            time.Duration
	attemptsBeforeDecay int64
	maximumAttempts     int64
	maxBufferSize       int
	writeTimeout        time.Duration

	// Guarded by mu
	mu             sync.Mutex
	state          StreamState
	buffer         []byte
	loggingEnabled bool
	currentRetries int64
	totalRetries   int64
	delay          time.Duration
	lastErr        error

	writes chan []byte
	done   chan struct{}
	wg     sync.WaitGroup

	// Serializes write deadline updates between the writer and the stop watcher
	deadlineMu sync.Mutex

	// Statistics
	totalWritten  atomic.Uint64
	totalBuffered atomic.Uint64
	totalDropped  atomic.Uint64
	totalConnects atomic.Uint64
	stopOnce      sync.Once
}

// NewStreamSink creates a stream sink. A nil dial uses TCP, or TLS when configured.
func NewStreamSink(opts *config.NetworkOptions, logger *log.Logger, dial Dialer) (*StreamSink, error) {
	if err := config.ValidateNetwork(opts); err != nil {
		return nil, err
	}

	s := &StreamSink{
		config:              opts,
		address:             net.JoinHostPort(opts.Host, strconv.FormatInt(opts.Port, 10)),
		dial:                dial,
		formatter:           format.NewTextFormatter(),
		baseDelay:           time.Duration(opts.ReconnectDelayMS) * time.Millisecond,
		maxDelay:            time.Duration(opts.MaxReconnectDelayMS) * time.Millisecond,
		attemptsBeforeDecay: opts.AttemptsBeforeDecay,
		maximumAttempts:     opts.MaximumAttempts,
		maxBufferSize:       int(opts.MaxBufferSize),
		writeTimeout:        time.Duration(opts.WriteTimeoutMS) * time.Millisecond,
		state:               StateDisconnected,
		loggingEnabled:      true,
		writes:              make(chan []byte, opts.QueueSize),
		done:                make(chan struct{}),
	}
	s.delay = s.baseDelay
	s.setup(opts, s.formatter.Name(), logger)

	if opts.SendHostname {
		if hostname, err := os.Hostname(); err == nil {
			s.prefix = "[" + hostname + "] "
		}
	}

	if s.dial == nil {
		tlsManager, err := ltls.NewClientManager(opts.TLS, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create TLS client manager: %w", err)
		}
		s.tlsManager = tlsManager
		s.dial = s.dialNetwork
	}

	return s, nil
}

func (s *StreamSink) dialNetwork(ctx context.Context) (net.Conn, error) {
	dialer := &net.Dialer{
		Timeout:   time.Duration(s.config.DialTimeoutMS) * time.Millisecond,
		KeepAlive: time.Duration(s.config.KeepAliveMS) * time.Millisecond,
	}

	if s.tlsManager != nil {
		tlsDialer := &tls.Dialer{
			NetDialer: dialer,
			Config:    s.tlsManager.ConfigFor(s.config.Host),
		}
		return tlsDialer.DialContext(ctx, "tcp", s.address)
	}
	return dialer.DialContext(ctx, "tcp", s.address)
}

// Emit renders the record and hands it to the connection, or buffers it while disconnected.
func (s *StreamSink) Emit(rec *format.Record) {
	res, ok := s.admit(rec)
	if !ok {
		return
	}

	line := []byte(s.prefix + s.formatter.Format(rec, res.MatchedTags, false) + "\n")

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateConnected {
		select {
		case s.writes <- line:
		default:
			s.totalDropped.Add(1)
		}
		return
	}
	s.bufferLocked(line)
}

// bufferLocked appends line when buffering is enabled and the line fits. Caller holds mu.
func (s *StreamSink) bufferLocked(line []byte) {
	if !s.loggingEnabled || len(s.buffer)+len(line) > s.maxBufferSize {
		s.totalDropped.Add(1)
		return
	}
	s.buffer = append(s.buffer, line...)
	s.totalBuffered.Add(1)
}

func (s *StreamSink) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateDisconnected {
		s.mu.Unlock()
		return fmt.Errorf("stream sink already started")
	}
	s.state = StateConnecting
	s.mu.Unlock()

	s.wg.Add(1)
	go s.run(ctx)

	s.logger.Info("msg", "Stream sink started",
		"component", "stream_sink",
		"address", s.address,
		"tls", s.tlsManager != nil)
	return nil
}

func (s *StreamSink) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
	})
	s.wg.Wait()

	s.mu.Lock()
	s.state = StateDisconnected
	s.mu.Unlock()

	s.logger.Info("msg", "Stream sink stopped",
		"component", "stream_sink",
		"total_written", s.totalWritten.Load(),
		"total_dropped", s.totalDropped.Load(),
		"total_connects", s.totalConnects.Load())
}

// run drives the Connecting -> Connected -> Erroring cycle until stopped.
func (s *StreamSink) run(ctx context.Context) {
	defer s.wg.Done()

	for {
		if s.stopping(ctx) {
			return
		}

		s.setState(StateConnecting)
		conn, err := s.dial(ctx)
		if err != nil {
			s.logger.Warn("msg", "Failed to connect to collector",
				"component", "stream_sink",
				"address", s.address,
				"error", err)
			if !s.backoff(ctx, nil, err) {
				return
			}
			continue
		}

		unsent, err := s.serve(ctx, conn)
		_ = conn.Close()
		if err == nil {
			return
		}

		s.logger.Warn("msg", "Lost connection to collector",
			"component", "stream_sink",
			"address", s.address,
			"error", err)
		if !s.backoff(ctx, unsent, err) {
			return
		}
	}
}

// serve flushes the buffer then writes queued lines until the connection fails.
// It returns the data that could not be written and the failure, or a nil error on shutdown.
func (s *StreamSink) serve(ctx context.Context, conn net.Conn) ([]byte, error) {
	s.mu.Lock()
	pending := s.buffer
	s.buffer = nil
	s.state = StateConnected
	s.currentRetries = 0
	s.delay = s.baseDelay
	s.lastErr = nil
	s.mu.Unlock()

	s.totalConnects.Add(1)
	s.logger.Info("msg", "Connected to collector",
		"component", "stream_sink",
		"address", s.address,
		"buffered_bytes", len(pending))

	readErr := make(chan error, 1)
	s.wg.Add(1)
	go s.watch(conn, readErr)

	served := make(chan struct{})
	defer close(served)
	s.wg.Add(1)
	go s.watchStop(ctx, conn, served)

	if len(pending) > 0 {
		if err := s.write(ctx, conn, pending); err != nil {
			return pending, err
		}
	}

	for {
		select {
		case line := <-s.writes:
			if err := s.write(ctx, conn, line); err != nil {
				return line, err
			}
		case err := <-readErr:
			return nil, fmt.Errorf("connection closed by peer: %w", err)
		case <-ctx.Done():
			s.flushQueued(ctx, conn)
			return nil, nil
		case <-s.done:
			s.flushQueued(ctx, conn)
			return nil, nil
		}
	}
}

// watch reports when the peer closes the connection. Collectors never send data.
func (s *StreamSink) watch(conn net.Conn, readErr chan<- error) {
	defer s.wg.Done()

	buf := make([]byte, 512)
	for {
		if _, err := conn.Read(buf); err != nil {
			// Buffered, single send
			readErr <- err
			return
		}
	}
}

// flushQueued writes whatever is still queued before shutdown.
func (s *StreamSink) flushQueued(ctx context.Context, conn net.Conn) {
	for {
		select {
		case line := <-s.writes:
			if err := s.write(ctx, conn, line); err != nil {
				return
			}
		default:
			return
		}
	}
}

// watchStop cuts the deadline of a blocked write once the sink stops,
// so a stalled collector cannot hold Stop for a full write timeout.
func (s *StreamSink) watchStop(ctx context.Context, conn net.Conn, served <-chan struct{}) {
	defer s.wg.Done()

	select {
	case <-s.done:
	case <-ctx.Done():
	case <-served:
		return
	}

	s.deadlineMu.Lock()
	_ = conn.SetWriteDeadline(time.Now().Add(shutdownWriteTimeout))
	s.deadlineMu.Unlock()
}

// writeDeadline is the regular write timeout, shortened while stopping.
func (s *StreamSink) writeDeadline(ctx context.Context) time.Time {
	timeout := s.writeTimeout
	if s.stopping(ctx) && shutdownWriteTimeout < timeout {
		timeout = shutdownWriteTimeout
	}
	return time.Now().Add(timeout)
}

func (s *StreamSink) write(ctx context.Context, conn net.Conn, data []byte) error {
	s.deadlineMu.Lock()
	err := conn.SetWriteDeadline(s.writeDeadline(ctx))
	s.deadlineMu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	n, err := conn.Write(data)
	if err != nil {
		s.totalFailed.Add(1)
		return fmt.Errorf("write failed: %w", err)
	}
	if n != len(data) {
		s.totalFailed.Add(1)
		return fmt.Errorf("partial write: %d/%d bytes", n, len(data))
	}

	s.totalWritten.Add(1)
	return nil
}

// backoff enters Erroring, rebuffers unsent and queued lines, waits the current
// delay and records the failed attempt. It returns false when the sink is stopping.
func (s *StreamSink) backoff(ctx context.Context, unsent []byte, cause error) bool {
	s.mu.Lock()
	s.state = StateErroring
	s.lastErr = cause
	if len(unsent) > 0 {
		s.bufferLocked(unsent)
	}
drain:
	for {
		select {
		case line := <-s.writes:
			s.bufferLocked(line)
		default:
			break drain
		}
	}
	delay := s.delay
	s.mu.Unlock()

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-s.done:
		return false
	case <-timer.C:
	}

	s.recordFailure()
	return true
}

// recordFailure counts one failed attempt, applies the delay decay and
// disables buffering once the attempt budget is spent.
func (s *StreamSink) recordFailure() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.currentRetries++
	s.totalRetries++

	if s.currentRetries >= s.attemptsBeforeDecay && s.delay < s.maxDelay {
		s.delay *= 2
		if s.delay > s.maxDelay {
			s.delay = s.maxDelay
		}
		s.currentRetries = 0
		s.logger.Debug("msg", "Reconnect delay increased",
			"component", "stream_sink",
			"delay", s.delay)
	}

	if s.totalRetries >= s.maximumAttempts && s.loggingEnabled {
		s.loggingEnabled = false
		s.logger.Warn("msg", "Reconnect attempts exhausted, buffering disabled",
			"component", "stream_sink",
			"address", s.address,
			"total_retries", s.totalRetries)
	}
}

func (s *StreamSink) setState(state StreamState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

func (s *StreamSink) stopping(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	case <-s.done:
		return true
	default:
		return false
	}
}

// State returns the current connection state
func (s *StreamSink) State() StreamState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *StreamSink) GetStats() SinkStats {
	s.mu.Lock()
	state := s.state
	details := map[string]any{
		"address":         s.address,
		"state":           state.String(),
		"buffered_bytes":  len(s.buffer),
		"logging_enabled": s.loggingEnabled,
		"current_retries": s.currentRetries,
		"total_retries":   s.totalRetries,
		"delay_ms":        s.delay.Milliseconds(),
		"last_error":      fmt.Sprintf("%v", s.lastErr),
	}
	s.mu.Unlock()

	details["total_written"] = s.totalWritten.Load()
	details["total_buffered"] = s.totalBuffered.Load()
	details["total_dropped"] = s.totalDropped.Load()
	details["total_connects"] = s.totalConnects.Load()
	details["tls"] = s.tlsManager.GetStats()

	var active int64
	if state == StateConnected {
		active = 1
	}
	return s.stats(active, details)
}
