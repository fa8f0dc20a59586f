package vecarena

import (
	"github.com/mirakit/vecarena/arena"
	"github.com/mirakit/vecarena/store"
	"github.com/mirakit/vecarena/vek"
)

// Library version, reported through capi.Version for foreign callers.
const (
	VersionMajor = 1
	VersionMinor = 0
	VersionPatch = 0
)

// Pool is the fixed-capacity allocator. See the arena package for the full
// API and its single-threaded contract.
type Pool = arena.Arena

// Handle references an allocation inside a Pool.
type Handle = arena.Handle

// NewPool creates a pool with at least capacity bytes.
func NewPool(capacity int) (*Pool, error) {
	return arena.New(capacity)
}

// NewStore creates an embedding store for dim-dimensional vectors backed by
// a pool sized from the options.
func NewStore(dim int, opts ...store.Option) (*store.Store, error) {
	return store.New(dim, opts...)
}

// Accelerated reports whether the vector kernels run on a SIMD-capable fast
// path on this machine.
func Accelerated() bool {
	return vek.Accelerated()
}
