// FILE: arsenic/src/internal/core/entry.go
package core

import "time"

// Frame is one captured call site.
type Frame struct {
	File     string `json:"fileName"`
	Function string `json:"functionName"`
	Line     int    `json:"line"`
}

// FunctionName returns the frame's function or "anonymous" when it could not be resolved.
func (f Frame) FunctionName() string {
	if f.Function == "" {
		return "anonymous"
	}
	return f.Function
}

// Entry represents a single log call flowing through the sinks.
// It lives only for the duration of the call that created it.
type Entry struct {
	Time   time.Time
	Level  Level
	Args   []any
	Tags   []string
	Frames []Frame
}

// StartDepth returns the index of the first caller frame for the entry's level.
func (e *Entry) StartDepth() int {
	if e.Level == LevelException {
		return ExceptionStartDepth
	}
	return DefaultStartDepth
}
