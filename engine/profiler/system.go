// Package profiler records nested timing scopes and dumps them as a
// speedscope evented profile. Scopes are recorded only in builds with the
// profile tag; resource sampling works in every build.
package profiler

import (
	"os"
	"runtime"
	"time"

	"github.com/hubastard/groveui/engine/core"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

var logger = core.NewLogger("profiler")

// Sample is a snapshot of process and machine resource use.
type Sample struct {
	HeapAlloc  uint64
	Mallocs    uint64
	Goroutines int

	RSS        uint64  // resident set size of this process
	CPUPercent float64 // since the previous refresh
	CPUs       int
	MemPercent float64 // machine-wide memory in use
}

// Sampler refreshes a Sample at most once per interval. The OS queries are
// slow enough that calling them every frame shows up in the frame time.
type Sampler struct {
	proc     *process.Process
	interval time.Duration
	at       time.Time
	last     Sample
}

func NewSampler(interval time.Duration) *Sampler {
	s := &Sampler{interval: interval}
	if p, err := process.NewProcess(int32(os.Getpid())); err == nil {
		s.proc = p
	} else {
		logger.Warn("process stats unavailable", "err", err)
	}
	if n, err := cpu.Counts(true); err == nil {
		s.last.CPUs = n
	} else {
		s.last.CPUs = runtime.NumCPU()
	}
	return s
}

// Sample returns the cached snapshot, refreshing it when now is at least one
// interval past the previous refresh.
func (s *Sampler) Sample(now time.Time) Sample {
	if !s.at.IsZero() && now.Sub(s.at) < s.interval {
		return s.last
	}
	s.at = now

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	s.last.HeapAlloc = m.HeapAlloc
	s.last.Mallocs = m.Mallocs
	s.last.Goroutines = runtime.NumGoroutine()

	if s.proc != nil {
		if mi, err := s.proc.MemoryInfo(); err == nil {
			s.last.RSS = mi.RSS
		}
		if pct, err := s.proc.Percent(0); err == nil {
			s.last.CPUPercent = pct
		}
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		s.last.MemPercent = vm.UsedPercent
	}
	return s.last
}
