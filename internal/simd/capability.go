package simd

import (
	"os"
	"runtime"
	"strings"
)

// ISA represents the instruction set the kernels were selected for.
type ISA uint8

const (
	// Generic represents the scalar implementation (no SIMD).
	Generic ISA = iota
	// NEON represents ARM64 NEON (128-bit, 4 float32 lanes).
	NEON
	// AVX2 represents x86-64 AVX2 with FMA (256-bit, 8 float32 lanes).
	AVX2
	// AVX512 represents x86-64 AVX-512 (kernels still use 8-lane groups).
	AVX512
)

// String returns the string representation of an ISA.
func (i ISA) String() string {
	switch i {
	case Generic:
		return "generic"
	case NEON:
		return "neon"
	case AVX2:
		return "avx2"
	case AVX512:
		return "avx512"
	default:
		return "unknown"
	}
}

// ParseISA parses a string into an ISA value.
func ParseISA(s string) (ISA, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "generic":
		return Generic, true
	case "neon":
		return NEON, true
	case "avx2":
		return AVX2, true
	case "avx512":
		return AVX512, true
	default:
		return Generic, false
	}
}

// Width returns the lane width of an ISA in float32 elements.
func (i ISA) Width() int {
	switch i {
	case NEON:
		return 4
	case AVX2, AVX512:
		return 8
	default:
		return 1
	}
}

// Package-level state - initialized once at package init.
// No mutex needed: Go guarantees init() runs before any other code.
var (
	activeISA   ISA
	hasOverride bool

	// CPU feature flags (set by platform-specific init)
	hasASIMD   bool // ARM64 NEON
	hasAVX2    bool // x86-64 AVX2 + FMA
	hasAVX512F bool // x86-64 AVX-512 Foundation
)

// initCapabilities is called from platform-specific init functions after
// CPU features are detected. It selects the active ISA and rebinds the
// kernel pointers.
func initCapabilities() {
	if override := os.Getenv("VECARENA_SIMD"); override != "" {
		if isa, ok := ParseISA(override); ok && isISAAvailable(isa) {
			hasOverride = true
			activeISA = isa
			applyISA(activeISA)
			return
		}
		// Invalid or unavailable override - fall through to auto-detection.
	}

	activeISA = selectBestISA()
	applyISA(activeISA)
}

// isISAAvailable checks if an ISA is supported on this CPU.
func isISAAvailable(isa ISA) bool {
	switch isa {
	case Generic:
		return true
	case NEON:
		return hasASIMD
	case AVX2:
		return hasAVX2
	case AVX512:
		return hasAVX512F
	default:
		return false
	}
}

// selectBestISA chooses the widest ISA for the current platform.
func selectBestISA() ISA {
	switch runtime.GOARCH {
	case "arm64":
		if hasASIMD {
			return NEON
		}
	case "amd64":
		if hasAVX512F {
			return AVX512
		}
		if hasAVX2 {
			return AVX2
		}
	}
	return Generic
}

// applyISA rebinds the kernel function pointers for the selected width.
func applyISA(isa ISA) {
	switch isa.Width() {
	case 8:
		kernelDot = dot8
		kernelSquaredL2 = squaredL28
		kernelManhattan = manhattan8
		kernelMinMax = minMax8
	case 4:
		kernelDot = dot4
		kernelSquaredL2 = squaredL24
		kernelManhattan = manhattan4
		kernelMinMax = minMax4
	default:
		kernelDot = dotGeneric
		kernelSquaredL2 = squaredL2Generic
		kernelManhattan = manhattanGeneric
		kernelMinMax = minMaxGeneric
	}
}

// ActiveISA returns the currently active ISA.
func ActiveISA() ISA {
	return activeISA
}

// Width returns the active lane width in float32 elements (1 = scalar).
func Width() int {
	return activeISA.Width()
}

// Accelerated reports whether a lane-wide path is active.
func Accelerated() bool {
	return activeISA != Generic
}

// IsOverridden returns true if VECARENA_SIMD forced the selection.
func IsOverridden() bool {
	return hasOverride
}
