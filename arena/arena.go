package arena

import (
	"errors"
	"fmt"
	"sort"
	"unsafe"
)

// Alignment is the allocation granularity. Every requested size is rounded
// up to this boundary, and blocks are never split below it.
const Alignment = 8

var (
	// ErrOutOfMemory is returned when no free block can satisfy a request.
	// The caller may Free something and retry, or use a larger arena.
	ErrOutOfMemory = errors.New("arena: out of memory")

	// ErrClosed is returned for any operation after Close.
	ErrClosed = errors.New("arena: closed")

	// ErrBadHandle is returned when a handle does not refer to a live
	// allocation of this arena (foreign handle, double free, or a handle
	// invalidated by Reset).
	ErrBadHandle = errors.New("arena: bad handle")

	// ErrInvalidCapacity is returned by New for non-positive capacities.
	ErrInvalidCapacity = errors.New("arena: invalid capacity")
)

// Handle identifies a live allocation. The zero Handle is never valid.
type Handle uint32

// block is a free region inside the buffer. Blocks are kept in a slice;
// placement (offset) is authoritative for coalescing, not list position.
type block struct {
	off  int
	size int
}

// record backs one handle. Dead records are recycled through a free-slot
// stack so the table does not grow without bound.
type record struct {
	off  int
	size int
	live bool
}

// Arena is a fixed-capacity pool. See the package documentation for the
// allocation policy and the concurrency contract.
type Arena struct {
	buf    []byte
	total  int
	used   int
	free   []block
	recs   []record
	slots  []uint32 // recycled record indices
	allocs uint64
	frees  uint64
	closed bool
}

// New creates an arena with the given byte capacity, rounded up to
// Alignment. The free list starts as a single block spanning the buffer.
func New(capacity int) (*Arena, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}
	capacity = align(capacity)

	a := &Arena{
		buf:   make([]byte, capacity),
		total: capacity,
		free:  []block{{off: 0, size: capacity}},
	}
	return a, nil
}

// align rounds n up to the next Alignment boundary.
func align(n int) int {
	return (n + Alignment - 1) &^ (Alignment - 1)
}

// Alloc reserves size bytes (rounded up to Alignment) and returns a handle
// to the allocation. The scan is first-fit over the free list in its
// current order; a matched block is split when the tail remainder is at
// least Alignment bytes, otherwise the whole block is granted and the
// caller receives the slack.
func (a *Arena) Alloc(size int) (Handle, error) {
	if a.closed {
		return 0, ErrClosed
	}
	if size <= 0 {
		return 0, fmt.Errorf("%w: size %d", ErrInvalidCapacity, size)
	}
	size = align(size)

	for i := range a.free {
		b := a.free[i]
		if b.size < size {
			continue
		}

		granted := size
		if rem := b.size - size; rem >= Alignment {
			// Split: the tail stays on the free list in place.
			a.free[i] = block{off: b.off + size, size: rem}
		} else {
			// Consume the whole block, slack included.
			granted = b.size
			a.free = append(a.free[:i], a.free[i+1:]...)
		}

		a.used += granted
		a.allocs++
		return a.newHandle(b.off, granted), nil
	}

	return 0, fmt.Errorf("%w: requested %d, free %d in %d block(s)",
		ErrOutOfMemory, size, a.total-a.used, len(a.free))
}

// Free returns the allocation behind h to the free list and coalesces
// adjacent blocks. Freeing an invalid handle is detected and reported.
func (a *Arena) Free(h Handle) error {
	if a.closed {
		return ErrClosed
	}
	r, err := a.lookup(h)
	if err != nil {
		return err
	}

	a.recs[h-1].live = false
	a.slots = append(a.slots, uint32(h-1))
	a.used -= r.size
	a.frees++

	a.free = append(a.free, block{off: r.off, size: r.size})
	a.coalesce()
	return nil
}

// Compact merges adjacent free blocks. Free already coalesces after every
// call; Compact exists for callers that mutate allocation patterns in
// bursts and want an explicit defragmentation point.
func (a *Arena) Compact() error {
	if a.closed {
		return ErrClosed
	}
	a.coalesce()
	return nil
}

// coalesce sorts free blocks by offset and merges every block whose end
// touches the next block's start. Single linear pass after the sort.
func (a *Arena) coalesce() {
	if len(a.free) < 2 {
		return
	}
	sort.Slice(a.free, func(i, j int) bool {
		return a.free[i].off < a.free[j].off
	})

	out := a.free[:1]
	for _, b := range a.free[1:] {
		last := &out[len(out)-1]
		if last.off+last.size == b.off {
			last.size += b.size
		} else {
			out = append(out, b)
		}
	}
	a.free = out
}

// Reset discards every outstanding allocation and restores the single
// spanning free block. All handles issued so far become invalid; the caller
// must guarantee nothing still uses them.
func (a *Arena) Reset() error {
	if a.closed {
		return ErrClosed
	}
	a.free = a.free[:0]
	a.free = append(a.free, block{off: 0, size: a.total})
	a.recs = a.recs[:0]
	a.slots = a.slots[:0]
	a.used = 0
	return nil
}

// Close releases the backing buffer. Every subsequent operation returns
// ErrClosed. Closing twice is a no-op.
func (a *Arena) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	a.buf = nil
	a.free = nil
	a.recs = nil
	a.slots = nil
	return nil
}

// Bytes returns the payload of h as a sub-slice of the arena buffer. The
// slice aliases pool memory: it is valid until h is freed, the arena is
// Reset, or the arena is Closed.
func (a *Arena) Bytes(h Handle) ([]byte, error) {
	if a.closed {
		return nil, ErrClosed
	}
	r, err := a.lookup(h)
	if err != nil {
		return nil, err
	}
	return a.buf[r.off : r.off+r.size : r.off+r.size], nil
}

// Float32s returns the payload of h viewed as a float32 slice, holding
// size/4 elements. Same lifetime rules as Bytes. The view is what the
// vector kernels operate on; the arena itself is unaware of the numeric
// layer.
func (a *Arena) Float32s(h Handle) ([]float32, error) {
	b, err := a.Bytes(h)
	if err != nil {
		return nil, err
	}
	n := len(b) / 4
	if n == 0 {
		return nil, nil
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(&b[0])), n), nil
}

// Size reports the granted size of the allocation behind h, which may
// exceed the requested size by alignment slack.
func (a *Arena) Size(h Handle) (int, error) {
	if a.closed {
		return 0, ErrClosed
	}
	r, err := a.lookup(h)
	if err != nil {
		return 0, err
	}
	return r.size, nil
}

// lookup validates h against the handle table.
func (a *Arena) lookup(h Handle) (record, error) {
	idx := int(h) - 1
	if idx < 0 || idx >= len(a.recs) || !a.recs[idx].live {
		return record{}, fmt.Errorf("%w: %d", ErrBadHandle, h)
	}
	return a.recs[idx], nil
}

// newHandle records an allocation, reusing a dead table slot when one is
// available.
func (a *Arena) newHandle(off, size int) Handle {
	r := record{off: off, size: size, live: true}
	if n := len(a.slots); n > 0 {
		idx := a.slots[n-1]
		a.slots = a.slots[:n-1]
		a.recs[idx] = r
		return Handle(idx + 1)
	}
	a.recs = append(a.recs, r)
	return Handle(len(a.recs))
}
