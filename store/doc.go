// Package store implements an arena-backed embedding store: a fixed
// dimension is chosen at construction, each inserted vector lives in one
// pool allocation, and queries score the whole table exactly with the vek
// kernels (cosine, dot, or L2).
//
// Deletes are soft at the ID level (a roaring tombstone set) while the
// pool block is returned to the free list immediately, so memory is
// reusable even though IDs are never recycled.
//
// Snapshots serialize all live vectors with optional zstd or LZ4
// compression, either to an io.Writer or through a blobstore.
//
// The store is safe for concurrent use; the arena underneath stays
// single-threaded behind the store's lock.
package store
