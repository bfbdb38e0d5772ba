// FILE: arsenic/src/internal/filter/filter.go
package filter

import (
	"path/filepath"
	"strings"
	"sync/atomic"

	"arsenic/src/internal/core"

	"github.com/lixenwraith/log"
)

// Options selects which entries are emitted. A nil slice means the criterion is absent.
// Present criteria are ANDed; any element of a criterion matching is enough.
type Options struct {
	Tags      []string `toml:"tags"`
	Functions []string `toml:"functions"`
	Files     []string `toml:"files"`
}

// IsZero reports whether no criterion is present.
func (o *Options) IsZero() bool {
	return o == nil || (o.Tags == nil && o.Functions == nil && o.Files == nil)
}

// Result is the outcome of a filter decision.
type Result struct {
	Emit bool
	// MatchedTags is the joined tag intersection when a tag criterion matched
	MatchedTags string
}

// Filter applies Options to entries and keeps statistics.
type Filter struct {
	options Options
	logger  *log.Logger

	// Statistics
	totalProcessed atomic.Uint64
	totalDropped   atomic.Uint64
}

// New creates a filter. A nil or empty Options yields a filter that passes everything.
func New(opts *Options, logger *log.Logger) *Filter {
	f := &Filter{logger: logger}
	if opts != nil {
		f.options = *opts
	}

	logger.Debug("msg", "Filter created",
		"component", "filter",
		"tags", len(f.options.Tags),
		"functions", len(f.options.Functions),
		"files", len(f.options.Files))
	return f
}

// Apply decides whether an entry with tags and frames passes the filter.
func (f *Filter) Apply(tags []string, frames []core.Frame) Result {
	f.totalProcessed.Add(1)

	res := Evaluate(tags, frames, &f.options)
	if !res.Emit {
		f.totalDropped.Add(1)
	}
	return res
}

// Options returns a copy of the active options.
func (f *Filter) Options() Options {
	return f.options
}

// GetStats returns filter statistics
func (f *Filter) GetStats() map[string]any {
	return map[string]any{
		"tags":            f.options.Tags,
		"functions":       f.options.Functions,
		"files":           f.options.Files,
		"total_processed": f.totalProcessed.Load(),
		"total_dropped":   f.totalDropped.Load(),
	}
}

// ShouldEmit reports whether an entry passes opts.
func ShouldEmit(tags []string, frames []core.Frame, opts *Options) bool {
	return Evaluate(tags, frames, opts).Emit
}

// Evaluate runs every present criterion of opts against the entry.
func Evaluate(tags []string, frames []core.Frame, opts *Options) Result {
	if opts.IsZero() {
		return Result{Emit: true}
	}

	var res Result
	if opts.Tags != nil {
		matches := intersect(tags, opts.Tags)
		if len(matches) == 0 {
			return Result{}
		}
		res.MatchedTags = strings.Join(matches, " ")
	}

	if opts.Functions != nil && !anyFunction(frames, opts.Functions) {
		return Result{}
	}

	if opts.Files != nil && !anyFile(frames, opts.Files) {
		return Result{}
	}

	res.Emit = true
	return res
}

// intersect returns the elements of tags present in wanted, in tags order.
func intersect(tags, wanted []string) []string {
	var out []string
	for _, tag := range tags {
		if contains(wanted, tag) && !contains(out, tag) {
			out = append(out, tag)
		}
	}
	return out
}

func anyFunction(frames []core.Frame, names []string) bool {
	for _, frame := range frames {
		if frame.Function == "" {
			continue
		}
		if contains(names, frame.Function) || contains(names, baseFunction(frame.Function)) {
			return true
		}
	}
	return false
}

func anyFile(frames []core.Frame, names []string) bool {
	for _, frame := range frames {
		if contains(names, filepath.Base(frame.File)) {
			return true
		}
	}
	return false
}

// baseFunction reduces "pkg.(*T).Method" to "Method".
func baseFunction(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return name
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
