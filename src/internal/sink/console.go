// FILE: arsenic/src/internal/sink/console.go
package sink

import (
	"context"
	"io"
	"os"
	"sync"

	"arsenic/src/internal/config"
	"arsenic/src/internal/format"

	"github.com/fatih/color"
	"github.com/lixenwraith/log"
	"golang.org/x/term"
)

// ConsoleSink writes colorized lines to stdout or stderr
type ConsoleSink struct {
	base
	config    *config.ConsoleOptions
	output    io.Writer
	colorize  bool
	formatter *format.TextFormatter

	mu sync.Mutex
}

// NewConsoleSink creates a console sink on the configured standard stream
func NewConsoleSink(opts *config.ConsoleOptions, logger *log.Logger) (*ConsoleSink, error) {
	var output io.Writer = os.Stdout
	if opts.Target == "stderr" {
		output = os.Stderr
	}
	return NewConsoleSinkWriter(opts, output, logger), nil
}

// NewConsoleSinkWriter creates a console sink writing to output
func NewConsoleSinkWriter(opts *config.ConsoleOptions, output io.Writer, logger *log.Logger) *ConsoleSink {
	s := &ConsoleSink{
		config:    opts,
		output:    output,
		colorize:  resolveColor(opts.Color, output),
		formatter: format.NewTextFormatter(),
	}
	s.setup(opts, s.formatter.Name(), logger)
	return s
}

// resolveColor maps the color mode to a decision; "auto" colors terminals only.
func resolveColor(mode string, output io.Writer) bool {
	switch mode {
	case "never":
		return false
	case "auto":
		f, ok := output.(*os.File)
		return ok && !color.NoColor && term.IsTerminal(int(f.Fd()))
	default:
		return true
	}
}

func (s *ConsoleSink) Emit(rec *format.Record) {
	res, ok := s.admit(rec)
	if !ok {
		return
	}

	line := s.formatter.Format(rec, res.MatchedTags, s.colorize && rec.Settings.Colorize) + "\n"

	s.mu.Lock()
	_, err := io.WriteString(s.output, line)
	s.mu.Unlock()

	if err != nil {
		s.totalFailed.Add(1)
		s.logger.Debug("msg", "Console write failed", "component", "console_sink", "error", err)
	}
}

func (s *ConsoleSink) Start(ctx context.Context) error {
	s.logger.Info("msg", "Console sink started",
		"component", "console_sink",
		"target", s.config.Target,
		"colorize", s.colorize)
	return nil
}

func (s *ConsoleSink) Stop() {
	s.logger.Info("msg", "Console sink stopped", "component", "console_sink")
}

// Sync flushes the underlying stream when it is a file
func (s *ConsoleSink) Sync() error {
	if f, ok := s.output.(*os.File); ok {
		// Terminals and pipes reject fsync; that is not a delivery failure
		_ = f.Sync()
	}
	return nil
}

func (s *ConsoleSink) GetStats() SinkStats {
	return s.stats(0, map[string]any{
		"target":   s.config.Target,
		"colorize": s.colorize,
	})
}
