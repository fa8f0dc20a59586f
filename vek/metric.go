package vek

import "fmt"

// Metric represents the scoring function used for vector comparison.
type Metric int

const (
	// MetricCosine ranks by cosine similarity (higher is closer).
	MetricCosine Metric = iota
	// MetricDot ranks by inner product (higher is closer).
	MetricDot
	// MetricL2 ranks by squared Euclidean distance (lower is closer).
	MetricL2
)

func (m Metric) String() string {
	switch m {
	case MetricCosine:
		return "Cosine"
	case MetricDot:
		return "Dot"
	case MetricL2:
		return "L2"
	default:
		return fmt.Sprintf("Unknown(%d)", int(m))
	}
}

// Ascending reports whether smaller scores rank closer under m.
func (m Metric) Ascending() bool {
	return m == MetricL2
}

// Func scores two equal-length vectors.
type Func func(a, b []float32) (float32, error)

// Provider returns the scoring function for the given metric.
func Provider(m Metric) (Func, error) {
	switch m {
	case MetricCosine:
		return CosineSimilarity, nil
	case MetricDot:
		return Dot, nil
	case MetricL2:
		return SquaredEuclideanDistance, nil
	default:
		return nil, fmt.Errorf("vek: unsupported metric: %v", m)
	}
}
