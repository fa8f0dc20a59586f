package vek

import (
	"errors"
	"fmt"

	"github.com/mirakit/vecarena/internal/simd"
)

// ErrEmptyInput is returned when an operation receives no vectors.
var ErrEmptyInput = errors.New("vek: empty input")

// ErrLengthMismatch indicates two operands disagree on length.
type ErrLengthMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrLengthMismatch) Error() string {
	return fmt.Sprintf("vek: length mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func checkLen(a, b []float32) error {
	if len(a) != len(b) {
		return &ErrLengthMismatch{Expected: len(a), Actual: len(b)}
	}
	return nil
}

// Dot computes the dot product of a and b.
func Dot(a, b []float32) (float32, error) {
	if err := checkLen(a, b); err != nil {
		return 0, err
	}
	return simd.Dot(a, b), nil
}

// CosineSimilarity computes dot(a,b) / (|a|*|b|). A zero norm on either
// side yields 0 ("no similarity") rather than NaN.
func CosineSimilarity(a, b []float32) (float32, error) {
	if err := checkLen(a, b); err != nil {
		return 0, err
	}
	if len(a) == 0 {
		return 0, ErrEmptyInput
	}

	na := simd.Dot(a, a)
	nb := simd.Dot(b, b)
	if na == 0 || nb == 0 {
		return 0, nil
	}
	return simd.Dot(a, b) / (simd.Sqrt(na) * simd.Sqrt(nb)), nil
}

// Norm returns the L2 norm sqrt(sum v[i]^2).
func Norm(v []float32) float32 {
	return simd.Sqrt(simd.Dot(v, v))
}

// NormalizeInPlace scales v to unit length in place. A zero-norm vector has
// no defined direction and is left unchanged; the return value reports
// whether scaling happened.
func NormalizeInPlace(v []float32) bool {
	n2 := simd.Dot(v, v)
	if n2 == 0 {
		return false
	}
	simd.ScaleInPlace(v, 1/simd.Sqrt(n2))
	return true
}

// EuclideanDistance computes the L2 distance between a and b.
func EuclideanDistance(a, b []float32) (float32, error) {
	if err := checkLen(a, b); err != nil {
		return 0, err
	}
	return simd.Sqrt(simd.SquaredL2(a, b)), nil
}

// SquaredEuclideanDistance computes the squared L2 distance, skipping the
// final square root. Preferred for ranking, where the monotone transform
// does not change the order.
func SquaredEuclideanDistance(a, b []float32) (float32, error) {
	if err := checkLen(a, b); err != nil {
		return 0, err
	}
	return simd.SquaredL2(a, b), nil
}

// ManhattanDistance computes the L1 distance between a and b.
func ManhattanDistance(a, b []float32) (float32, error) {
	if err := checkLen(a, b); err != nil {
		return 0, err
	}
	return simd.Manhattan(a, b), nil
}

// WeightedDistance computes sqrt(sum w[i]*(a[i]-b[i])^2). The weights must
// match the vector length.
func WeightedDistance(a, b, w []float32) (float32, error) {
	if err := checkLen(a, b); err != nil {
		return 0, err
	}
	if err := checkLen(a, w); err != nil {
		return 0, err
	}
	return simd.Sqrt(simd.WeightedSquaredL2(a, b, w)), nil
}

// MinMax returns the minimum and maximum element of v in a single pass,
// (0, 0) for an empty vector.
func MinMax(v []float32) (float32, float32) {
	return simd.MinMax(v)
}

// MultiDot computes sum_i prod_j vectors[j][i]: the elementwise product
// across all vectors, summed. With two vectors this is the dot product.
func MultiDot(vectors [][]float32) (float32, error) {
	if len(vectors) == 0 {
		return 0, ErrEmptyInput
	}
	want := len(vectors[0])
	for _, v := range vectors[1:] {
		if len(v) != want {
			return 0, &ErrLengthMismatch{Expected: want, Actual: len(v)}
		}
	}
	return simd.ProductSum(vectors), nil
}

// Accelerated reports whether a lane-wide kernel path is active in this
// process.
func Accelerated() bool {
	return simd.Accelerated()
}

// LaneWidth returns the number of float32 lanes processed per group by the
// active kernels (1 means scalar).
func LaneWidth() int {
	return simd.Width()
}
