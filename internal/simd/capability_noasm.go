//go:build (!amd64 && !arm64) || noasm

package simd

func init() {
	// No lane-wide path on this platform (or noasm build): scalar kernels.
	initCapabilities()
}
