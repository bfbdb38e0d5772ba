// FILE: arsenic/src/logger/sinks.go
package logger

import (
	"fmt"
	"time"

	"arsenic/src/internal/config"
	"arsenic/src/internal/sink"
)

// EnableSink creates and starts a sink. An enabled sink of the same kind is replaced.
func (l *Logger) EnableSink(cfg SinkConfig) error {
	if cfg == nil {
		return fmt.Errorf("sink config is nil")
	}

	s, err := l.newSink(cfg)
	if err != nil {
		return fmt.Errorf("failed to create %s sink: %w", cfg.Kind(), err)
	}
	if err := s.Start(l.ctx); err != nil {
		return fmt.Errorf("failed to start %s sink: %w", cfg.Kind(), err)
	}

	l.mu.Lock()
	old := l.sinks[cfg.Kind()]
	l.sinks[cfg.Kind()] = s
	l.reorderLocked()
	l.mu.Unlock()

	if old != nil {
		old.Stop()
	}

	l.diag.Info("msg", "Sink enabled",
		"component", "logger",
		"sink", cfg.Kind(),
		"replaced", old != nil)
	return nil
}

func (l *Logger) newSink(cfg SinkConfig) (sink.Sink, error) {
	if opts, ok := cfg.(*config.ConsoleOptions); ok && l.consoleTo != nil {
		if err := config.ValidateConsole(opts); err != nil {
			return nil, err
		}
		return sink.NewConsoleSinkWriter(opts, l.consoleTo, l.diag), nil
	}
	return sink.New(cfg, l.diag)
}

// DisableSink stops and removes the sink of the given kind.
// It reports whether such a sink was enabled.
func (l *Logger) DisableSink(kind string) bool {
	l.mu.Lock()
	s, ok := l.sinks[kind]
	if ok {
		delete(l.sinks, kind)
		l.reorderLocked()
	}
	l.mu.Unlock()

	if !ok {
		return false
	}
	s.Stop()
	l.diag.Info("msg", "Sink disabled", "component", "logger", "sink", kind)
	return true
}

// sinkOrder fixes delivery order regardless of enable order
var sinkOrder = []string{SinkConsole, SinkFile, SinkNetwork, SinkHTTP}

// reorderLocked publishes a fresh slice so emitters can iterate without the lock.
func (l *Logger) reorderLocked() {
	order := make([]sink.Sink, 0, len(l.sinks))
	for _, kind := range sinkOrder {
		if s, ok := l.sinks[kind]; ok {
			order = append(order, s)
		}
	}
	l.order = order
	_, l.needUsage = l.sinks[SinkHTTP]
}

// Sinks returns the kinds of the enabled sinks in delivery order
func (l *Logger) Sinks() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	kinds := make([]string, 0, len(l.sinks))
	for _, kind := range sinkOrder {
		if _, ok := l.sinks[kind]; ok {
			kinds = append(kinds, kind)
		}
	}
	return kinds
}

// Stats returns statistics for every enabled sink keyed by kind
func (l *Logger) Stats() map[string]SinkStats {
	l.mu.RLock()
	sinks := make(map[string]sink.Sink, len(l.sinks))
	for kind, s := range l.sinks {
		sinks[kind] = s
	}
	l.mu.RUnlock()

	stats := make(map[string]SinkStats, len(sinks))
	for kind, s := range sinks {
		stats[kind] = s.GetStats()
	}
	return stats
}

// Sync flushes sinks that hold local buffers
func (l *Logger) Sync() {
	l.mu.RLock()
	sinks := l.order
	l.mu.RUnlock()
	l.syncSinks(sinks)
}

// Close stops every sink. The logger drops entries afterwards.
func (l *Logger) Close() {
	l.mu.Lock()
	sinks := l.order
	l.sinks = make(map[string]sink.Sink)
	l.order = nil
	l.mu.Unlock()

	for _, s := range sinks {
		s.Stop()
	}
	l.cancel()

	l.diag.Debug("msg", "Logger closed", "component", "logger", "sinks", len(sinks))
	if l.ownsDiag {
		_ = l.diag.Shutdown(2 * time.Second)
	}
}
