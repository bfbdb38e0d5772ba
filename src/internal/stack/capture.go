// FILE: arsenic/src/internal/stack/capture.go
package stack

import (
	"path/filepath"
	"runtime"
	"strings"

	"arsenic/src/internal/core"
)

// maxFrames bounds how many call sites a single capture records
const maxFrames = 64

// Capturer produces the call stack of the goroutine that invokes it.
// Index 0 is the function that called Capture.
type Capturer interface {
	Capture() []core.Frame
}

// RuntimeCapturer captures frames with runtime.Callers.
type RuntimeCapturer struct{}

// Capture implements Capturer.
func (RuntimeCapturer) Capture() []core.Frame {
	pcs := make([]uintptr, maxFrames)
	// Skip runtime.Callers and Capture itself
	n := runtime.Callers(2, pcs)
	if n == 0 {
		return nil
	}

	frames := runtime.CallersFrames(pcs[:n])
	result := make([]core.Frame, 0, n)
	for {
		frame, more := frames.Next()
		result = append(result, core.Frame{
			File:     filepath.Base(frame.File),
			Function: shortFunction(frame.Function),
			Line:     frame.Line,
		})
		if !more {
			break
		}
	}
	return result
}

// shortFunction strips the import path, keeping "pkg.(*Type).Method".
func shortFunction(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// Static returns a Capturer that always yields frames. Used with synthetic stacks.
func Static(frames ...core.Frame) Capturer {
	return staticCapturer(frames)
}

type staticCapturer []core.Frame

func (s staticCapturer) Capture() []core.Frame {
	out := make([]core.Frame, len(s))
	copy(out, s)
	return out
}
