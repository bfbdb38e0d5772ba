// FILE: arsenic/src/internal/usage/usage.go
package usage

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/prometheus/procfs"
)

const bytesPerMB = 1024 * 1024

// Snapshot is a point-in-time view of process and host resources.
type Snapshot struct {
	HeapUsed    uint64  // bytes allocated on the Go heap
	MemoryTotal uint64  // host memory in bytes, 0 when unknown
	Load        float64 // 15 minute load average, 0 when unknown
}

// HeapUsedMB returns the heap size in megabytes.
func (s Snapshot) HeapUsedMB() float64 {
	return float64(s.HeapUsed) / bytesPerMB
}

// Sampler reads a Snapshot.
type Sampler interface {
	Sample() Snapshot
}

// ProcSampler samples the Go runtime and, where /proc is available, the host.
type ProcSampler struct {
	fs    procfs.FS
	hasFS bool
}

// NewSampler creates a sampler backed by the default proc mount.
func NewSampler() *ProcSampler {
	fs, err := procfs.NewDefaultFS()
	return &ProcSampler{fs: fs, hasFS: err == nil}
}

// Sample implements Sampler.
func (p *ProcSampler) Sample() Snapshot {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	snap := Snapshot{HeapUsed: ms.HeapAlloc}
	if !p.hasFS {
		return snap
	}

	if avg, err := p.fs.LoadAvg(); err == nil {
		snap.Load = avg.Load15
	}
	if mem, err := p.fs.Meminfo(); err == nil && mem.MemTotal != nil {
		// meminfo reports kB
		snap.MemoryTotal = *mem.MemTotal * 1024
	}
	return snap
}

// Prefix renders the "<heapMB>MB <load>% " resource-usage snippet.
func Prefix(s Snapshot, memory, cpu bool) string {
	var b strings.Builder
	if memory {
		fmt.Fprintf(&b, "%.2fMB ", s.HeapUsedMB())
	}
	if cpu {
		fmt.Fprintf(&b, "%.2f%% ", s.Load)
	}
	return b.String()
}

// Fixed returns a Sampler that always reports snap.
func Fixed(snap Snapshot) Sampler {
	return fixedSampler(snap)
}

type fixedSampler Snapshot

func (f fixedSampler) Sample() Snapshot { return Snapshot(f) }
