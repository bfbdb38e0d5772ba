// FILE: arsenic/src/internal/collector/collector.go
package collector

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/log"
	"github.com/lixenwraith/log/compat"
	"github.com/panjf2000/gnet/v2"
)

const (
	maxClientBufferSize = 10 * 1024 * 1024 // 10MB max per client
	maxLineLength       = 1 * 1024 * 1024  // 1MB max per line
)

// Config configures the line collector
type Config struct {
	Host       string `toml:"host"`
	Port       int64  `toml:"port"`
	BufferSize int64  `toml:"buffer_size"`
}

// Line is one newline-delimited record received from a stream sink
type Line struct {
	Time       time.Time
	RemoteAddr string
	Text       string
}

// Collector receives newline-delimited log lines over TCP.
// It is the development counterpart of the network sink.
type Collector struct {
	config      Config
	server      *lineServer
	subscribers []chan Line
	mu          sync.RWMutex
	done        chan struct{}
	doneOnce    sync.Once
	stopOnce    sync.Once
	engine      *gnet.Engine
	engineMu    sync.Mutex
	wg          sync.WaitGroup
	logger      *log.Logger

	// Statistics
	totalLines   atomic.Uint64
	droppedLines atomic.Uint64
	invalidLines atomic.Uint64
	activeConns  atomic.Int64
	totalConns   atomic.Uint64
	startTime    time.Time
	lastLineTime atomic.Value // time.Time
}

// New creates a collector
func New(cfg Config, logger *log.Logger) (*Collector, error) {
	if cfg.Host == "" {
		cfg.Host = "0.0.0.0"
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("collector requires a valid port, got %d", cfg.Port)
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 1000
	}

	c := &Collector{
		config:    cfg,
		done:      make(chan struct{}),
		startTime: time.Now(),
		logger:    logger,
	}
	c.lastLineTime.Store(time.Time{})
	return c, nil
}

// Subscribe returns a channel receiving every line. Lines are dropped for slow subscribers.
func (c *Collector) Subscribe() <-chan Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan Line, c.config.BufferSize)
	c.subscribers = append(c.subscribers, ch)
	return ch
}

// Start runs the gnet engine and returns once it is listening or has failed
func (c *Collector) Start() error {
	c.server = &lineServer{
		collector: c,
		clients:   make(map[gnet.Conn]*client),
	}

	addr := fmt.Sprintf("tcp://%s:%d", c.config.Host, c.config.Port)
	gnetLogger := compat.NewGnetAdapter(c.logger)

	errChan := make(chan error, 1)
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.logger.Info("msg", "Collector starting",
			"component", "collector",
			"address", addr)

		err := gnet.Run(c.server, addr,
			gnet.WithLogger(gnetLogger),
			gnet.WithMulticore(true),
			gnet.WithReusePort(true),
		)
		if err != nil {
			c.logger.Error("msg", "Collector failed",
				"component", "collector",
				"port", c.config.Port,
				"error", err)
		}
		errChan <- err
	}()

	// Wait briefly for the engine to start or fail
	select {
	case err := <-errChan:
		c.doneOnce.Do(func() { close(c.done) })
		c.wg.Wait()
		if err == nil {
			err = fmt.Errorf("collector exited during startup")
		}
		return err
	case <-time.After(100 * time.Millisecond):
		c.logger.Info("msg", "Collector started", "component", "collector", "port", c.config.Port)
		return nil
	}
}

// Stop shuts the engine down and closes subscriber channels.
// It is safe to call more than once and after a failed Start.
func (c *Collector) Stop() {
	c.stopOnce.Do(c.stop)
}

func (c *Collector) stop() {
	c.logger.Info("msg", "Stopping collector", "component", "collector")
	c.doneOnce.Do(func() { close(c.done) })

	c.engineMu.Lock()
	engine := c.engine
	c.engineMu.Unlock()

	if engine != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := (*engine).Stop(ctx); err != nil {
			c.logger.Warn("msg", "Collector engine stop failed", "component", "collector", "error", err)
		}
	}

	c.wg.Wait()

	c.mu.Lock()
	for _, ch := range c.subscribers {
		close(ch)
	}
	c.subscribers = nil
	c.mu.Unlock()

	c.logger.Info("msg", "Collector stopped",
		"component", "collector",
		"total_lines", c.totalLines.Load())
}

// GetStats returns collector statistics
func (c *Collector) GetStats() map[string]any {
	lastLine, _ := c.lastLineTime.Load().(time.Time)
	return map[string]any{
		"port":               c.config.Port,
		"start_time":         c.startTime,
		"last_line_time":     lastLine,
		"total_lines":        c.totalLines.Load(),
		"dropped_lines":      c.droppedLines.Load(),
		"invalid_lines":      c.invalidLines.Load(),
		"active_connections": c.activeConns.Load(),
		"total_connections":  c.totalConns.Load(),
	}
}

func (c *Collector) publish(line Line) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	c.totalLines.Add(1)
	c.lastLineTime.Store(line.Time)

	for _, ch := range c.subscribers {
		select {
		case ch <- line:
		default:
			c.droppedLines.Add(1)
		}
	}
}

// client is the per-connection read buffer
type client struct {
	buffer     bytes.Buffer
	remoteAddr string
}

// lineServer handles gnet events
type lineServer struct {
	gnet.BuiltinEventEngine
	collector *Collector
	clients   map[gnet.Conn]*client
	mu        sync.RWMutex
}

func (s *lineServer) OnBoot(eng gnet.Engine) gnet.Action {
	s.collector.engineMu.Lock()
	s.collector.engine = &eng
	s.collector.engineMu.Unlock()

	s.collector.logger.Debug("msg", "Collector engine booted",
		"component", "collector",
		"port", s.collector.config.Port)
	return gnet.None
}

func (s *lineServer) OnOpen(c gnet.Conn) (out []byte, action gnet.Action) {
	remoteAddr := c.RemoteAddr().String()

	s.mu.Lock()
	s.clients[c] = &client{remoteAddr: remoteAddr}
	s.mu.Unlock()

	s.collector.totalConns.Add(1)
	newCount := s.collector.activeConns.Add(1)
	s.collector.logger.Debug("msg", "Collector connection opened",
		"component", "collector",
		"remote_addr", remoteAddr,
		"active_connections", newCount)
	return nil, gnet.None
}

func (s *lineServer) OnClose(c gnet.Conn, err error) gnet.Action {
	s.mu.Lock()
	cl, ok := s.clients[c]
	delete(s.clients, c)
	s.mu.Unlock()

	// A final line without terminator still counts
	if ok && cl.buffer.Len() > 0 {
		s.emit(cl, cl.buffer.Bytes())
	}

	newCount := s.collector.activeConns.Add(-1)
	s.collector.logger.Debug("msg", "Collector connection closed",
		"component", "collector",
		"active_connections", newCount,
		"error", err)
	return gnet.None
}

func (s *lineServer) OnTraffic(c gnet.Conn) gnet.Action {
	s.mu.RLock()
	cl, exists := s.clients[c]
	s.mu.RUnlock()

	if !exists {
		return gnet.Close
	}

	data, err := c.Next(-1)
	if err != nil {
		s.collector.logger.Error("msg", "Error reading from connection",
			"component", "collector",
			"error", err)
		return gnet.Close
	}

	if cl.buffer.Len()+len(data) > maxClientBufferSize {
		s.collector.logger.Warn("msg", "Client buffer limit exceeded, closing connection",
			"component", "collector",
			"remote_addr", cl.remoteAddr,
			"buffer_size", cl.buffer.Len(),
			"limit", maxClientBufferSize)
		s.collector.invalidLines.Add(1)
		return gnet.Close
	}
	cl.buffer.Write(data)

	if cl.buffer.Len() > maxLineLength && bytes.IndexByte(cl.buffer.Bytes(), '\n') < 0 {
		s.collector.logger.Warn("msg", "Line too long without newline",
			"component", "collector",
			"remote_addr", cl.remoteAddr,
			"buffer_size", cl.buffer.Len())
		s.collector.invalidLines.Add(1)
		return gnet.Close
	}

	for {
		idx := bytes.IndexByte(cl.buffer.Bytes(), '\n')
		if idx < 0 {
			break
		}
		line := cl.buffer.Next(idx + 1)
		s.emit(cl, line)
	}

	return gnet.None
}

func (s *lineServer) emit(cl *client, raw []byte) {
	text := string(bytes.TrimRight(raw, "\r\n"))
	if text == "" {
		return
	}
	s.collector.publish(Line{
		Time:       time.Now(),
		RemoteAddr: cl.remoteAddr,
		Text:       text,
	})
}
