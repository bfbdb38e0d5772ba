// FILE: arsenic/src/logger/default.go
package logger

import (
	"sync/atomic"

	"arsenic/src/internal/core"

	"github.com/lixenwraith/log"
)

var std atomic.Pointer[Logger]

func init() {
	std.Store(newDefault())
}

// newDefault never fails: it drops diagnostics, then sinks, until construction succeeds.
func newDefault(opts ...Option) *Logger {
	if l, err := New(opts...); err == nil {
		return l
	}

	quiet := append(opts[:len(opts):len(opts)], WithDiagnostics(log.NewLogger()))
	if l, err := New(quiet...); err == nil {
		return l
	}

	// No diagnostics and no sinks leaves nothing that can fail
	l, _ := New(append(quiet, WithSinks())...)
	return l
}

// Default returns the package-level logger
func Default() *Logger {
	return std.Load()
}

// SetDefault replaces the package-level logger and returns the previous one.
// The previous logger is left running.
func SetDefault(l *Logger) *Logger {
	if l == nil {
		return std.Load()
	}
	return std.Swap(l)
}

// Package-level emitters call log directly so the frame window matches the methods.

func LogAt(level Level, args ...any) { Default().log(level, nil, args) }

func Log(args ...any)       { Default().log(core.LevelLog, nil, args) }
func Debug(args ...any)     { Default().log(core.LevelDebug, nil, args) }
func Info(args ...any)      { Default().log(core.LevelInfo, nil, args) }
func Warn(args ...any)      { Default().log(core.LevelWarn, nil, args) }
func Error(args ...any)     { Default().log(core.LevelError, nil, args) }
func Fatal(args ...any)     { Default().log(core.LevelFatal, nil, args) }
func Exception(args ...any) { Default().exception(nil, args) }

// WithTags returns a tagged emitter on the package-level logger
func WithTags(tags ...string) *Tagged {
	return Default().WithTags(tags...)
}
