// Package capi is the flat function surface for foreign callers. Every
// function takes and returns primitive types, never fails with a Go error,
// and maps invalid input to the neutral value of its return type (0, false,
// or a no-op). Pools are referenced through opaque uint64 handles issued by
// a process-wide registry, so no Go pointer ever crosses the boundary.
package capi

import (
	"sync"

	"github.com/mirakit/vecarena"
	"github.com/mirakit/vecarena/arena"
	"github.com/mirakit/vecarena/sysmon"
	"github.com/mirakit/vecarena/vek"
)

// PoolHandle references a registered pool. Zero is never issued.
type PoolHandle uint64

// AllocRef references an allocation inside a pool. Zero is never issued.
type AllocRef uint32

// StatsOut is the flat output record filled by PoolStats.
type StatsOut struct {
	Total         uint64
	Used          uint64
	Free          uint64
	FreeBlocks    uint64
	Allocs        uint64
	Frees         uint64
	Fragmentation float32
}

// poolEntry serializes access to one pool. The arena itself is
// single-threaded by contract; the boundary is where cross-thread calls
// arrive, so the lock lives here.
type poolEntry struct {
	mu   sync.Mutex
	pool *arena.Arena
}

var registry = struct {
	mu    sync.Mutex
	next  PoolHandle
	pools map[PoolHandle]*poolEntry
}{
	next:  1,
	pools: make(map[PoolHandle]*poolEntry),
}

func lookup(h PoolHandle) *poolEntry {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	return registry.pools[h]
}

// PoolInit creates a pool with at least size bytes of capacity and returns
// its handle, or 0 when size is invalid.
func PoolInit(size int) PoolHandle {
	pool, err := arena.New(size)
	if err != nil {
		return 0
	}

	registry.mu.Lock()
	defer registry.mu.Unlock()
	h := registry.next
	registry.next++
	registry.pools[h] = &poolEntry{pool: pool}
	return h
}

// PoolAlloc carves size bytes out of the pool. Returns 0 on an unknown
// handle, a non-positive size, or pool exhaustion.
func PoolAlloc(p PoolHandle, size int) AllocRef {
	e := lookup(p)
	if e == nil || size <= 0 {
		return 0
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	h, err := e.pool.Alloc(size)
	if err != nil {
		return 0
	}
	return AllocRef(h)
}

// PoolFree returns an allocation to the pool. Unknown handles, the zero
// ref, and refs the pool did not issue are all ignored.
func PoolFree(p PoolHandle, ref AllocRef) {
	e := lookup(p)
	if e == nil || ref == 0 {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	_ = e.pool.Free(arena.Handle(ref))
}

// PoolDestroy releases the pool and retires its handle. Unknown handles are
// ignored.
func PoolDestroy(p PoolHandle) {
	registry.mu.Lock()
	e := registry.pools[p]
	delete(registry.pools, p)
	registry.mu.Unlock()

	if e == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	_ = e.pool.Close()
}

// PoolStats fills out with the pool's accounting and reports success.
func PoolStats(p PoolHandle, out *StatsOut) bool {
	e := lookup(p)
	if e == nil || out == nil {
		return false
	}

	e.mu.Lock()
	stats := e.pool.Stats()
	e.mu.Unlock()

	*out = StatsOut{
		Total:         uint64(stats.Total),
		Used:          uint64(stats.Used),
		Free:          uint64(stats.Free),
		FreeBlocks:    uint64(stats.FreeBlocks),
		Allocs:        stats.Allocs,
		Frees:         stats.Frees,
		Fragmentation: float32(stats.Fragmentation),
	}
	return true
}

// DotProduct returns the dot product of a and b, or 0 when either slice is
// empty or the lengths disagree.
func DotProduct(a, b []float32) float32 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	v, err := vek.Dot(a, b)
	if err != nil {
		return 0
	}
	return v
}

// CosineSimilarity returns the cosine of the angle between a and b, or 0 on
// empty or mismatched input and on zero-norm vectors.
func CosineSimilarity(a, b []float32) float32 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	v, err := vek.CosineSimilarity(a, b)
	if err != nil {
		return 0
	}
	return v
}

// Normalize scales v to unit length in place. Returns false and leaves v
// unchanged when v is empty or has zero norm.
func Normalize(v []float32) bool {
	if len(v) == 0 {
		return false
	}
	return vek.NormalizeInPlace(v)
}

// Hash returns a deterministic 64-bit content hash of data, or 0 for empty
// input.
func Hash(data []byte) uint64 {
	if len(data) == 0 {
		return 0
	}
	return vek.Hash(data)
}

// mon answers MemoryUsage and CPUUsage. The CPU cursor lives in the Monitor
// and the boundary is its single owner; monMu serializes samplers.
var (
	monMu sync.Mutex
	mon   = sysmon.New()
)

// MemoryUsage returns the resident set size of this process in bytes.
func MemoryUsage() uint64 {
	monMu.Lock()
	defer monMu.Unlock()
	return mon.MemoryUsage()
}

// CPUUsage returns the aggregate CPU busy percentage since the previous
// call, 0 on the first call.
func CPUUsage() float32 {
	monMu.Lock()
	defer monMu.Unlock()
	return mon.CPUUsage()
}

// Version returns the library's semantic version triplet.
func Version() (major, minor, patch int) {
	return vecarena.VersionMajor, vecarena.VersionMinor, vecarena.VersionPatch
}

// SIMDEnabled reports whether the vector kernels selected a SIMD-capable
// fast path on this machine.
func SIMDEnabled() bool {
	return vek.Accelerated()
}
