// Package sysmon answers the memory_usage/cpu_usage questions at the flat
// boundary. CPU utilization is computed between two samples; the previous
// sample lives in the Monitor rather than in package state, so the
// lifecycle is explicit: one owner creates the Monitor and calls CPUUsage
// on it, and concurrent callers need their own Monitor or a lock.
package sysmon

import (
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// Monitor samples process and system resource usage.
type Monitor struct {
	proc *process.Process

	// previous aggregate CPU sample; zero until the first CPUUsage call.
	prevBusy  float64
	prevTotal float64
	primed    bool
}

// New creates a Monitor for the current process.
func New() *Monitor {
	m := &Monitor{}
	if p, err := process.NewProcess(int32(os.Getpid())); err == nil {
		m.proc = p
	}
	return m
}

// MemoryUsage returns the resident set size of this process in bytes,
// falling back to the Go runtime's view when the platform query fails.
func (m *Monitor) MemoryUsage() uint64 {
	if m.proc != nil {
		if info, err := m.proc.MemoryInfo(); err == nil && info != nil {
			return info.RSS
		}
	}
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return ms.Sys
}

// SystemMemory returns total and used bytes for the whole machine.
func (m *Monitor) SystemMemory() (total, used uint64) {
	vm, err := mem.VirtualMemory()
	if err != nil || vm == nil {
		return 0, 0
	}
	return vm.Total, vm.Used
}

// CPUUsage returns the aggregate CPU busy percentage (0-100) over the
// interval since the previous call. The first call primes the cursor and
// returns 0; so does a degenerate interval (two calls with no elapsed CPU
// time between them).
func (m *Monitor) CPUUsage() float32 {
	times, err := cpu.Times(false)
	if err != nil || len(times) == 0 {
		return 0
	}
	t := times[0]

	busy := t.User + t.System + t.Nice + t.Irq + t.Softirq + t.Steal
	total := busy + t.Idle + t.Iowait

	prevBusy, prevTotal, primed := m.prevBusy, m.prevTotal, m.primed
	m.prevBusy, m.prevTotal, m.primed = busy, total, true

	if !primed || total <= prevTotal {
		return 0
	}

	pct := (busy - prevBusy) / (total - prevTotal) * 100
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return float32(pct)
}
