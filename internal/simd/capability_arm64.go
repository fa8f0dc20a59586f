//go:build arm64 && !noasm

package simd

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

func init() {
	// cpu.ARM64 is not populated on darwin; every Apple Silicon core has
	// NEON, so assume it there.
	hasASIMD = cpu.ARM64.HasASIMD || runtime.GOOS == "darwin"
	initCapabilities()
}
