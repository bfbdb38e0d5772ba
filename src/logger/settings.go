// FILE: arsenic/src/logger/settings.go
package logger

import (
	"arsenic/src/internal/core"
	"arsenic/src/internal/filter"
)

// Settings returns a copy of the current settings
func (l *Logger) Settings() Settings {
	l.mu.RLock()
	defer l.mu.RUnlock()
	s := l.settings
	if s.GlobalMinLevel != nil {
		g := *s.GlobalMinLevel
		s.GlobalMinLevel = &g
	}
	return s
}

// update applies fn to a copy of the settings and publishes it.
// Emitters holding the previous copy are unaffected.
func (l *Logger) update(fn func(s *core.Settings)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s := l.settings
	fn(&s)
	l.settings = s
}

// SetLevel sets the minimum level this logger emits
func (l *Logger) SetLevel(level Level) {
	l.update(func(s *core.Settings) { s.MinLevel = level })
}

// SetGlobalLevel sets a threshold that takes precedence over the logger level
func (l *Logger) SetGlobalLevel(level Level) {
	l.update(func(s *core.Settings) { s.GlobalMinLevel = &level })
}

// ClearGlobalLevel removes the global threshold
func (l *Logger) ClearGlobalLevel() {
	l.update(func(s *core.Settings) { s.GlobalMinLevel = nil })
}

// SetTag sets the default tag for entries logged without explicit tags
func (l *Logger) SetTag(tag string) {
	l.update(func(s *core.Settings) { s.Tag = tag })
}

// SetMaxStackDepth sets how many frames past the caller are included in traces.
// A negative depth disables traces.
func (l *Logger) SetMaxStackDepth(depth int) {
	l.update(func(s *core.Settings) { s.MaxDepth = depth })
}

// SetTimestampFormat sets the Go layout used for entry timestamps
func (l *Logger) SetTimestampFormat(pattern string) {
	if pattern == "" {
		pattern = core.DefaultTimestampPattern
	}
	l.update(func(s *core.Settings) { s.TimestampPattern = pattern })
}

// SetLocale sets the locale used for month and weekday names
func (l *Logger) SetLocale(locale string) {
	if locale == "" {
		locale = core.DefaultLocale
	}
	l.update(func(s *core.Settings) { s.Locale = locale })
}

// EchoTimestamps toggles the timestamp prefix
func (l *Logger) EchoTimestamps(enabled bool) {
	l.update(func(s *core.Settings) { s.Timestamps = enabled })
}

// EchoMemoryUsage toggles the heap usage prefix
func (l *Logger) EchoMemoryUsage(enabled bool) {
	l.update(func(s *core.Settings) { s.EchoMemory = enabled })
}

// EchoCPUUsage toggles the load average prefix
func (l *Logger) EchoCPUUsage(enabled bool) {
	l.update(func(s *core.Settings) { s.EchoCPU = enabled })
}

// SetFatalExits controls whether fatal entries terminate the process
func (l *Logger) SetFatalExits(enabled bool) {
	l.update(func(s *core.Settings) { s.FatalExits = enabled })
}

// SetColorize toggles color for sinks that support it
func (l *Logger) SetColorize(enabled bool) {
	l.update(func(s *core.Settings) { s.Colorize = enabled })
}

// SetHandlePanics controls whether Recover swallows the panic it logged
func (l *Logger) SetHandlePanics(enabled bool) {
	l.mu.Lock()
	l.handlePanics = enabled
	l.mu.Unlock()
}

// SetFilter replaces the logger-wide filter. Nil or empty options remove it.
func (l *Logger) SetFilter(opts *FilterOptions) {
	var f *filter.Filter
	if !opts.IsZero() {
		f = filter.New(opts, l.diag)
	}
	l.mu.Lock()
	l.filter = f
	l.mu.Unlock()
}
