// Package arena implements a fixed-capacity memory pool with a free-list
// allocator. An Arena owns one contiguous byte buffer for its entire
// lifetime and carves allocations out of it without further runtime
// allocations on the hot path.
//
// Allocations are addressed by opaque handles rather than raw pointers:
// Alloc returns a Handle, and the payload is accessed through bounds-checked
// views (Bytes, Float32s). The handle table makes double frees and foreign
// handles detectable instead of undefined behavior.
//
// Free space is tracked as a list of variable-sized blocks. Alloc performs a
// first-fit scan, splitting blocks when the remainder is worth keeping.
// Every Free re-coalesces adjacent blocks (address-ordered merge) to bound
// long-run fragmentation; Compact re-runs the merge on demand.
//
// Typical usage: create one arena per worker or per request, allocate many
// fixed-width vectors from it, and Reset at the end for O(1) cleanup.
//
// An Arena is not goroutine-safe. Callers that share an arena across
// goroutines must serialize access externally (or keep one arena per
// goroutine, which is the intended pattern).
package arena
