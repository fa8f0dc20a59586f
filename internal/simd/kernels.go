package simd

import "math"

// Kernel function pointers - set once at init, zero runtime overhead.
// Generic implementations are the default; platform-specific init()
// functions override with lane-wide versions when available.
var (
	kernelDot        = dotGeneric
	kernelSquaredL2  = squaredL2Generic
	kernelScale      = scaleGeneric
	kernelMinMax     = minMaxGeneric
	kernelManhattan  = manhattanGeneric
	kernelWeightedL2 = weightedL2Generic
)

// Dot calculates the dot product of two vectors.
//
// SAFETY: Assumes len(a) == len(b). Caller MUST ensure lengths match.
func Dot(a, b []float32) float32 {
	return kernelDot(a, b)
}

// SquaredL2 calculates the squared L2 distance.
//
// SAFETY: Assumes len(a) == len(b). Caller MUST ensure lengths match.
func SquaredL2(a, b []float32) float32 {
	return kernelSquaredL2(a, b)
}

// ScaleInPlace multiplies all elements of a by scalar.
func ScaleInPlace(a []float32, scalar float32) {
	kernelScale(a, scalar)
}

// MinMax returns the minimum and maximum element of v in a single pass.
// Returns (0, 0) for an empty vector.
func MinMax(v []float32) (float32, float32) {
	return kernelMinMax(v)
}

// Manhattan calculates the L1 distance between two vectors.
//
// SAFETY: Assumes len(a) == len(b). Caller MUST ensure lengths match.
func Manhattan(a, b []float32) float32 {
	return kernelManhattan(a, b)
}

// WeightedSquaredL2 calculates the weighted squared L2 distance
// sum(w[i] * (a[i]-b[i])^2).
//
// SAFETY: Assumes len(a) == len(b) == len(w).
func WeightedSquaredL2(a, b, w []float32) float32 {
	return kernelWeightedL2(a, b, w)
}

// ProductSum computes sum over i of the product across all vectors of
// element i: sum_i prod_j vs[j][i].
//
// SAFETY: Assumes all vectors share the length of vs[0].
func ProductSum(vs [][]float32) float32 {
	if len(vs) == 0 {
		return 0
	}
	var sum float32
	for i := range vs[0] {
		p := vs[0][i]
		for j := 1; j < len(vs); j++ {
			p *= vs[j][i]
		}
		sum += p
	}
	return sum
}

// Sqrt returns the square root of x as float32.
func Sqrt(x float32) float32 {
	return float32(math.Sqrt(float64(x)))
}

// ============================================================================
// Generic scalar implementations
// ============================================================================

func dotGeneric(a, b []float32) float32 {
	var ret float32
	for i := range a {
		ret += a[i] * b[i]
	}

	return ret
}

func squaredL2Generic(a, b []float32) float32 {
	var distance float32
	for i := range a {
		d := a[i] - b[i]
		distance += d * d
	}

	return distance
}

func scaleGeneric(a []float32, scalar float32) {
	for i := range a {
		a[i] *= scalar
	}
}

func minMaxGeneric(v []float32) (float32, float32) {
	if len(v) == 0 {
		return 0, 0
	}
	lo, hi := v[0], v[0]
	for _, x := range v[1:] {
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}
	return lo, hi
}

func manhattanGeneric(a, b []float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		if d < 0 {
			d = -d
		}
		sum += d
	}
	return sum
}

func weightedL2Generic(a, b, w []float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += w[i] * d * d
	}
	return sum
}
