// FILE: arsenic/src/internal/format/format_test.go
package format

import (
	"fmt"
	"testing"
	"time"

	"arsenic/src/internal/core"

	"github.com/stretchr/testify/assert"
)

func makeFrames(n int) []core.Frame {
	frames := make([]core.Frame, 0, n)
	for i := 0; i < n; i++ {
		frames = append(frames, core.Frame{
			File:     fmt.Sprintf("f%d.go", i),
			Function: fmt.Sprintf("pkg.fn%d", i),
			Line:     i + 10,
		})
	}
	return frames
}

func newTestRecord(level core.Level, message string, frames []core.Frame) *Record {
	settings := core.DefaultSettings()
	return &Record{
		Entry: &core.Entry{
			Time:   time.Date(2023, 10, 27, 10, 30, 0, 0, time.UTC),
			Level:  level,
			Frames: frames,
		},
		Settings: settings,
		Message:  message,
	}
}

func TestWindow(t *testing.T) {
	frames := makeFrames(6)

	testCases := []struct {
		name       string
		startDepth int
		maxDepth   int
		expected   []int
	}{
		{name: "MiddleWindow", startDepth: 3, maxDepth: 2, expected: []int{3, 4, 5}},
		{name: "ClampedAtEnd", startDepth: 4, maxDepth: 5, expected: []int{4, 5}},
		{name: "SingleFrame", startDepth: 2, maxDepth: 0, expected: []int{2}},
		{name: "PastEnd", startDepth: 6, maxDepth: 3, expected: nil},
		{name: "NegativeDepth", startDepth: 1, maxDepth: -1, expected: nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			window := Window(frames, tc.startDepth, tc.maxDepth)
			var got []int
			for _, f := range window {
				got = append(got, f.Line-10)
			}
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestFormatTrace(t *testing.T) {
	t.Run("ThreeFrames", func(t *testing.T) {
		trace := FormatTrace(makeFrames(6), 3, 2)
		assert.Equal(t, "{from line 13 of f3.go (pkg.fn3), line 14 of f4.go (pkg.fn4), line 15 of f5.go (pkg.fn5)}", trace)
	})

	t.Run("AnonymousFrameOmitsFunction", func(t *testing.T) {
		frames := makeFrames(4)
		frames[3].Function = ""
		trace := FormatTrace(frames, 3, 3)
		assert.Equal(t, "{from line 13 of f3.go}", trace)
	})

	t.Run("EmptyWhenShallow", func(t *testing.T) {
		assert.Empty(t, FormatTrace(makeFrames(2), 3, 3))
	})
}

func TestRecord_TraceUsesExceptionDepth(t *testing.T) {
	frames := makeFrames(6)

	rec := newTestRecord(core.LevelException, "boom", frames)
	rec.Settings.MaxDepth = 0
	assert.Equal(t, "{from line 14 of f4.go (pkg.fn4)}", rec.Trace())

	rec = newTestRecord(core.LevelInfo, "hi", frames)
	rec.Settings.MaxDepth = 0
	assert.Equal(t, "{from line 13 of f3.go (pkg.fn3)}", rec.Trace())
}
