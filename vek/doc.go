// Package vek provides the public API for float32 embedding-vector kernels:
// dot product, cosine similarity, L2 norm, in-place normalization, distance
// functions, min/max reduction, multi-operand product-sum, and a content
// hash. All numeric routines dispatch to lane-width-adaptive implementations
// in internal/simd when available, with scalar fallbacks.
//
// Every length-checked function follows one convention: it returns a
// *ErrLengthMismatch describing the disagreement instead of a sentinel
// value, so caller programming errors cannot masquerade as legitimate
// results. The flat capi boundary maps these errors to neutral defaults.
//
// All functions are pure and reentrant over their inputs; NormalizeInPlace
// writes to its argument and must not overlap with concurrent readers of
// the same slice.
package vek
