// Package simd provides width-adaptive float32 kernels for the public vek
// package. Each kernel has a scalar generic implementation and a lane-wide
// fast path that processes W elements per iteration with W independent
// accumulators (W=8 on amd64 with AVX2/AVX-512, W=4 on arm64 with NEON).
// Dispatch happens once at package init through function pointers; the
// noasm build tag and the VECARENA_SIMD=generic environment override force
// the scalar path.
//
// Accumulation order differs between widths, so results are numerically
// close across builds but not bit-identical.
//
// This is an internal package - external users should use the vek package.
package simd
