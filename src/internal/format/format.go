// FILE: arsenic/src/internal/format/format.go
package format

import (
	"arsenic/src/internal/core"
	"arsenic/src/internal/filter"
	"arsenic/src/internal/usage"
)

// Record carries one entry plus everything derived from it once per log call.
// Sinks render from a Record and never mutate it.
type Record struct {
	Entry    *core.Entry
	Settings core.Settings

	// Message is the serialized argument list
	Message string
	// Usage is the resource-usage prefix, empty when disabled
	Usage    string
	Snapshot usage.Snapshot
	// Timestamp is the formatted entry time, empty when timestamps are disabled
	Timestamp string

	Hostname string
	PID      int

	// Filter is the logger-wide filter, nil when none is set
	Filter *filter.Filter
}

// Trace returns the stack suffix for the record's frame window.
func (r *Record) Trace() string {
	return FormatTrace(r.Entry.Frames, r.Entry.StartDepth(), r.Settings.MaxDepth)
}

// Window returns the frames that belong in the record's trace.
func (r *Record) Window() []core.Frame {
	return Window(r.Entry.Frames, r.Entry.StartDepth(), r.Settings.MaxDepth)
}
