package vek

import "github.com/cespare/xxhash/v2"

// Hash returns a deterministic, non-cryptographic 64-bit content hash of
// data (xxHash64). Intended as a cache or lookup key, never for security.
func Hash(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// HashString is Hash over the bytes of s without allocating.
func HashString(s string) uint64 {
	return xxhash.Sum64String(s)
}
