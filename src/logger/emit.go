// FILE: arsenic/src/logger/emit.go
package logger

import (
	"arsenic/src/internal/core"
	"arsenic/src/internal/format"
	"arsenic/src/internal/sink"
	"arsenic/src/internal/usage"
)

// Every public emitting method reaches emit through exactly one call to log,
// so the caller sits at frame core.DefaultStartDepth. Exception adds one hop.

// LogAt emits at level.
func (l *Logger) LogAt(level Level, args ...any) { l.log(level, nil, args) }

// Log emits at the log level, the lowest severity.
func (l *Logger) Log(args ...any) { l.log(core.LevelLog, nil, args) }

// Debug emits at the debug level.
func (l *Logger) Debug(args ...any) { l.log(core.LevelDebug, nil, args) }

// Info emits at the info level.
func (l *Logger) Info(args ...any) { l.log(core.LevelInfo, nil, args) }

// Warn emits at the warn level.
func (l *Logger) Warn(args ...any) { l.log(core.LevelWarn, nil, args) }

// Error emits at the error level.
func (l *Logger) Error(args ...any) { l.log(core.LevelError, nil, args) }

// Fatal emits at the fatal level and exits the process when fatal exits are enabled.
func (l *Logger) Fatal(args ...any) { l.log(core.LevelFatal, nil, args) }

// Exception emits at the exception level. It ranks with fatal but never exits.
func (l *Logger) Exception(args ...any) { l.exception(nil, args) }

func (l *Logger) exception(tags []string, args []any) {
	l.log(core.LevelException, tags, args)
}

func (l *Logger) log(level core.Level, tags []string, args []any) {
	l.emit(level, tags, args)
}

// emit must stay the direct callee of log: the frame window depends on it.
func (l *Logger) emit(level core.Level, tags []string, args []any) {
	l.mu.RLock()
	settings := l.settings
	f := l.filter
	sinks := l.order
	needUsage := l.needUsage
	l.mu.RUnlock()

	if !settings.Allows(level) || len(sinks) == 0 {
		return
	}

	entry := &core.Entry{
		Time:   l.clock(),
		Level:  level,
		Args:   args,
		Tags:   settings.ResolveTags(tags),
		Frames: l.capturer.Capture(),
	}

	rec := &format.Record{
		Entry:    entry,
		Settings: settings,
		Message:  l.serializer.Serialize(args),
		Hostname: l.hostname,
		PID:      l.pid,
		Filter:   f,
	}
	if settings.Timestamps {
		rec.Timestamp = l.timestamps.Format(settings.TimestampPattern, settings.Locale, entry.Time)
	}
	if needUsage || settings.EchoMemory || settings.EchoCPU {
		rec.Snapshot = l.sampler.Sample()
		rec.Usage = usage.Prefix(rec.Snapshot, settings.EchoMemory, settings.EchoCPU)
	}

	for _, s := range sinks {
		l.deliver(s, rec)
	}

	if level == core.LevelFatal && settings.FatalExits {
		l.syncSinks(sinks)
		l.exit(1)
	}
}

// deliver isolates callers from a misbehaving sink.
func (l *Logger) deliver(s sink.Sink, rec *format.Record) {
	defer func() {
		if r := recover(); r != nil {
			l.diag.Error("msg", "Sink panicked during emit",
				"component", "logger",
				"sink", s.GetStats().Type,
				"panic", r)
		}
	}()
	s.Emit(rec)
}

func (l *Logger) syncSinks(sinks []sink.Sink) {
	for _, s := range sinks {
		if syncer, ok := s.(sink.Syncer); ok {
			if err := syncer.Sync(); err != nil {
				l.diag.Warn("msg", "Failed to sync sink before exit",
					"component", "logger",
					"sink", s.GetStats().Type,
					"error", err)
			}
		}
	}
}

// Recover logs a recovered panic at the exception level. Use it as
// `defer l.Recover()`. The panic continues unless panic handling is enabled.
func (l *Logger) Recover() {
	r := recover()
	if r == nil {
		return
	}
	l.log(core.LevelException, nil, []any{r})

	l.mu.RLock()
	handled := l.handlePanics
	l.mu.RUnlock()
	if !handled {
		panic(r)
	}
}

// Tagged emits entries carrying a fixed tag list.
type Tagged struct {
	l    *Logger
	tags []string
}

// WithTags returns an emitter whose entries carry tags instead of the default tag.
func (l *Logger) WithTags(tags ...string) *Tagged {
	return &Tagged{l: l, tags: append([]string(nil), tags...)}
}

func (t *Tagged) LogAt(level Level, args ...any) { t.l.log(level, t.tags, args) }

func (t *Tagged) Log(args ...any)       { t.l.log(core.LevelLog, t.tags, args) }
func (t *Tagged) Debug(args ...any)     { t.l.log(core.LevelDebug, t.tags, args) }
func (t *Tagged) Info(args ...any)      { t.l.log(core.LevelInfo, t.tags, args) }
func (t *Tagged) Warn(args ...any)      { t.l.log(core.LevelWarn, t.tags, args) }
func (t *Tagged) Error(args ...any)     { t.l.log(core.LevelError, t.tags, args) }
func (t *Tagged) Fatal(args ...any)     { t.l.log(core.LevelFatal, t.tags, args) }
func (t *Tagged) Exception(args ...any) { t.l.exception(t.tags, args) }
