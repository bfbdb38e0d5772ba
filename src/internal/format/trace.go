// FILE: arsenic/src/internal/format/trace.go
package format

import (
	"strconv"
	"strings"

	"arsenic/src/internal/core"
)

// Window selects frames[startDepth : startDepth+maxDepth+1], clamped to the stack.
func Window(frames []core.Frame, startDepth, maxDepth int) []core.Frame {
	if startDepth < 0 {
		startDepth = 0
	}
	if maxDepth < 0 || startDepth >= len(frames) {
		return nil
	}
	end := startDepth + maxDepth + 1
	if end > len(frames) {
		end = len(frames)
	}
	return frames[startDepth:end]
}

// FormatTrace renders "{from line L of FILE (FUNC), line L2 of FILE2 (FUNC2)}".
// The first startDepth frames belong to the logger and are skipped.
func FormatTrace(frames []core.Frame, startDepth, maxDepth int) string {
	window := Window(frames, startDepth, maxDepth)
	if len(window) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteByte('{')
	for i, frame := range window {
		if i == 0 {
			b.WriteString("from line ")
		} else {
			b.WriteString(", line ")
		}
		b.WriteString(strconv.Itoa(frame.Line))
		b.WriteString(" of ")
		b.WriteString(frame.File)
		if frame.Function != "" {
			b.WriteString(" (")
			b.WriteString(frame.Function)
			b.WriteByte(')')
		}
	}
	b.WriteByte('}')
	return b.String()
}
