// FILE: arsenic/src/logger/logger.go
package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"arsenic/src/internal/config"
	"arsenic/src/internal/core"
	"arsenic/src/internal/filter"
	"arsenic/src/internal/format"
	"arsenic/src/internal/sink"
	"arsenic/src/internal/stack"
	"arsenic/src/internal/timestamp"
	"arsenic/src/internal/usage"

	"github.com/lixenwraith/log"
)

// Logger routes leveled entries to its enabled sinks.
// All methods are safe for concurrent use.
type Logger struct {
	mu           sync.RWMutex
	settings     core.Settings
	filter       *filter.Filter
	sinks        map[string]sink.Sink
	order        []sink.Sink
	handlePanics bool
	needUsage    bool

	capturer   stack.Capturer
	sampler    usage.Sampler
	timestamps timestamp.Formatter
	serializer *format.Serializer
	clock      func() time.Time
	exit       func(int)

	// Diagnostics of the logger itself
	diag      *log.Logger
	ownsDiag  bool
	diagArgs  []string
	consoleTo io.Writer

	initialSinks []config.SinkConfig
	filterOpts   *filter.Options
	hostname     string
	pid          int

	ctx    context.Context
	cancel context.CancelFunc
}

// Option customizes a Logger at construction
type Option func(*Logger)

// WithSettings replaces the initial settings
func WithSettings(s Settings) Option {
	return func(l *Logger) { l.settings = s }
}

// WithFilter sets the initial logger-wide filter
func WithFilter(opts *FilterOptions) Option {
	return func(l *Logger) {
		l.filterOpts = opts
	}
}

// WithSinks replaces the default console sink with the given sinks
func WithSinks(cfgs ...SinkConfig) Option {
	return func(l *Logger) { l.initialSinks = cfgs }
}

// WithCapturer overrides stack capture
func WithCapturer(c StackCapturer) Option {
	return func(l *Logger) { l.capturer = c }
}

// WithSampler overrides resource usage sampling
func WithSampler(s UsageSampler) Option {
	return func(l *Logger) { l.sampler = s }
}

// WithTimestampFormatter overrides timestamp rendering
func WithTimestampFormatter(f timestamp.Formatter) Option {
	return func(l *Logger) { l.timestamps = f }
}

// WithClock overrides the entry time source
func WithClock(now func() time.Time) Option {
	return func(l *Logger) { l.clock = now }
}

// WithExitFunc overrides the process exit used by fatal entries
func WithExitFunc(exit func(int)) Option {
	return func(l *Logger) { l.exit = exit }
}

// WithConsoleWriter sends console sink output to w instead of stdout or stderr
func WithConsoleWriter(w io.Writer) Option {
	return func(l *Logger) { l.consoleTo = w }
}

// WithDiagnostics uses an existing logger for internal diagnostics.
// The caller keeps ownership of it.
func WithDiagnostics(diag *log.Logger) Option {
	return func(l *Logger) {
		l.diag = diag
		l.ownsDiag = false
	}
}

// WithLogConfig configures the internal diagnostics output
func WithLogConfig(cfg *LogConfig) Option {
	return func(l *Logger) { l.diagArgs = cfg.Args() }
}

// WithHandlePanics makes Recover swallow the panic after logging it
func WithHandlePanics(enabled bool) Option {
	return func(l *Logger) { l.handlePanics = enabled }
}

// New creates a Logger. Without WithSinks a colorized stdout console sink is enabled.
func New(opts ...Option) (*Logger, error) {
	l := &Logger{
		settings:     core.DefaultSettings(),
		sinks:        make(map[string]sink.Sink),
		capturer:     stack.RuntimeCapturer{},
		sampler:      usage.NewSampler(),
		timestamps:   timestamp.NewFormatter(),
		serializer:   format.NewSerializer(core.DefaultWrapWidth),
		clock:        time.Now,
		exit:         os.Exit,
		diag:         log.NewLogger(),
		ownsDiag:     true,
		diagArgs:     config.DefaultLogConfig().Args(),
		initialSinks: []config.SinkConfig{config.DefaultConsoleOptions()},
		pid:          os.Getpid(),
	}
	l.hostname, _ = os.Hostname()
	l.ctx, l.cancel = context.WithCancel(context.Background())

	for _, opt := range opts {
		opt(l)
	}

	if l.ownsDiag {
		if err := l.diag.InitWithDefaults(l.diagArgs...); err != nil {
			l.cancel()
			return nil, fmt.Errorf("failed to initialize diagnostics: %w", err)
		}
	}

	if !l.filterOpts.IsZero() {
		l.filter = filter.New(l.filterOpts, l.diag)
	}

	for _, cfg := range l.initialSinks {
		if err := l.EnableSink(cfg); err != nil {
			l.Close()
			return nil, err
		}
	}

	l.diag.Debug("msg", "Logger created",
		"component", "logger",
		"sinks", len(l.order),
		"level", l.settings.MinLevel.String())
	return l, nil
}
