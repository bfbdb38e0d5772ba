// FILE: arsenic/src/internal/sink/sink.go
package sink

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"arsenic/src/internal/config"
	"arsenic/src/internal/filter"
	"arsenic/src/internal/format"

	"github.com/lixenwraith/log"
)

// Sink represents an output destination for log records
type Sink interface {
	// Emit filters, renders and delivers a record. It never blocks on network I/O.
	Emit(rec *format.Record)

	// Start begins background processing, if the sink has any
	Start(ctx context.Context) error

	// Stop gracefully shuts down the sink
	Stop()

	// GetStats returns sink statistics
	GetStats() SinkStats
}

// Syncer is implemented by sinks that can flush local buffers to stable storage.
type Syncer interface {
	Sync() error
}

// SinkStats contains statistics about a sink
type SinkStats struct {
	Type              string
	TotalProcessed    uint64
	TotalFiltered     uint64
	TotalFailed       uint64
	ActiveConnections int64
	StartTime         time.Time
	LastProcessed     time.Time
	Details           map[string]any
}

// New creates a sink from its options.
func New(cfg config.SinkConfig, logger *log.Logger) (Sink, error) {
	if err := config.ValidateSink(cfg); err != nil {
		return nil, err
	}

	switch opts := cfg.(type) {
	case *config.ConsoleOptions:
		return NewConsoleSink(opts, logger)
	case *config.FileOptions:
		return NewFileSink(opts, logger)
	case *config.NetworkOptions:
		return NewStreamSink(opts, logger, nil)
	case *config.HTTPOptions:
		return NewHTTPSink(opts, logger)
	default:
		return nil, fmt.Errorf("unknown sink kind '%s'", cfg.Kind())
	}
}

// base carries the filter decision and the statistics every sink shares.
type base struct {
	kind      string
	format    string
	filter    *filter.Filter // sink override, nil when the record's filter applies
	logger    *log.Logger
	startTime time.Time

	// Statistics
	totalProcessed atomic.Uint64
	totalFiltered  atomic.Uint64
	totalFailed    atomic.Uint64
	lastProcessed  atomic.Value // time.Time
}

// setup takes the kind and filter override from the sink's options.
func (b *base) setup(cfg config.SinkConfig, formatName string, logger *log.Logger) {
	b.kind = cfg.Kind()
	b.format = formatName
	b.logger = logger
	b.startTime = time.Now()
	if override := cfg.FilterOverride(); !override.IsZero() {
		b.filter = filter.New(override, logger)
	}
	b.lastProcessed.Store(time.Time{})
}

// admit applies the sink filter, or the record's filter when the sink has none.
func (b *base) admit(rec *format.Record) (filter.Result, bool) {
	f := b.filter
	if f == nil {
		f = rec.Filter
	}

	res := filter.Result{Emit: true}
	if f != nil {
		res = f.Apply(rec.Entry.Tags, rec.Entry.Frames)
	}
	if !res.Emit {
		b.totalFiltered.Add(1)
		return res, false
	}

	b.totalProcessed.Add(1)
	b.lastProcessed.Store(time.Now())
	return res, true
}

func (b *base) stats(activeConns int64, details map[string]any) SinkStats {
	lastProc, _ := b.lastProcessed.Load().(time.Time)
	details["format"] = b.format
	if b.filter != nil {
		details["filter"] = b.filter.GetStats()
	}
	return SinkStats{
		Type:              b.kind,
		TotalProcessed:    b.totalProcessed.Load(),
		TotalFiltered:     b.totalFiltered.Load(),
		TotalFailed:       b.totalFailed.Load(),
		ActiveConnections: activeConns,
		StartTime:         b.startTime,
		LastProcessed:     lastProc,
		Details:           details,
	}
}
