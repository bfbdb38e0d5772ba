// FILE: arsenic/src/internal/format/text.go
package format

import (
	"strings"

	"arsenic/src/internal/core"

	"github.com/fatih/color"
)

var (
	levelColors = map[core.Level]*color.Color{
		core.LevelLog:       color.New(color.FgGreen),
		core.LevelDebug:     color.New(color.FgGreen),
		core.LevelInfo:      color.New(color.FgBlue),
		core.LevelWarn:      color.New(color.FgMagenta),
		core.LevelError:     color.New(color.FgHiRed),
		core.LevelFatal:     color.New(color.FgRed),
		core.LevelException: color.New(color.ReverseVideo, color.FgRed),
	}
	traceColor = color.New(color.FgHiBlack)
)

func init() {
	// Sinks decide on colorization themselves, independent of the process tty
	for _, c := range levelColors {
		c.EnableColor()
	}
	traceColor.EnableColor()
}

// TextFormatter renders the human-readable line shared by the console, file and stream sinks.
type TextFormatter struct{}

// NewTextFormatter creates a text formatter
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{}
}

// Format returns `[timestamp] [tags] [usage level] message {trace}` without a terminator.
// matchedTags, when set, replaces the entry tags in the tag section.
func (f *TextFormatter) Format(rec *Record, matchedTags string, colorize bool) string {
	var b strings.Builder

	if rec.Timestamp != "" {
		b.WriteString("[")
		b.WriteString(rec.Timestamp)
		b.WriteString("] ")
	}

	var head strings.Builder
	switch {
	case matchedTags != "":
		head.WriteString("[" + matchedTags + "] ")
	case len(rec.Entry.Tags) > 0:
		head.WriteString("[" + strings.Join(rec.Entry.Tags, " ") + "] ")
	}
	head.WriteString("[")
	head.WriteString(rec.Usage)
	head.WriteString(rec.Entry.Level.String())
	head.WriteString("]")

	if c, ok := levelColors[rec.Entry.Level]; ok && colorize {
		b.WriteString(c.Sprint(head.String()))
	} else {
		b.WriteString(head.String())
	}

	b.WriteString(" ")
	b.WriteString(rec.Message)

	if trace := rec.Trace(); trace != "" {
		b.WriteString(" ")
		if colorize {
			b.WriteString(traceColor.Sprint(trace))
		} else {
			b.WriteString(trace)
		}
	}

	return b.String()
}

// Name returns the formatter name
func (f *TextFormatter) Name() string {
	return "text"
}
