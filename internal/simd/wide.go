package simd

// Lane-wide kernel variants. Each processes len - (len mod W) elements in
// groups of W with W independent accumulators, reduces pairwise, and
// finishes the remainder with a scalar loop. The W-accumulator shape keeps
// the multiply-add chains independent so the compiler can vectorize them;
// it is also why accumulation order differs from the generic path.
//
// These are kept free of build tags so the scalar fallback and every width
// are testable on any platform.

func dot4(a, b []float32) float32 {
	var s0, s1, s2, s3 float32
	n := len(a) &^ 3
	for i := 0; i < n; i += 4 {
		s0 += a[i] * b[i]
		s1 += a[i+1] * b[i+1]
		s2 += a[i+2] * b[i+2]
		s3 += a[i+3] * b[i+3]
	}
	sum := (s0 + s2) + (s1 + s3)
	for i := n; i < len(a); i++ {
		sum += a[i] * b[i]
	}
	return sum
}

func dot8(a, b []float32) float32 {
	var s0, s1, s2, s3, s4, s5, s6, s7 float32
	n := len(a) &^ 7
	for i := 0; i < n; i += 8 {
		s0 += a[i] * b[i]
		s1 += a[i+1] * b[i+1]
		s2 += a[i+2] * b[i+2]
		s3 += a[i+3] * b[i+3]
		s4 += a[i+4] * b[i+4]
		s5 += a[i+5] * b[i+5]
		s6 += a[i+6] * b[i+6]
		s7 += a[i+7] * b[i+7]
	}
	sum := ((s0 + s4) + (s1 + s5)) + ((s2 + s6) + (s3 + s7))
	for i := n; i < len(a); i++ {
		sum += a[i] * b[i]
	}
	return sum
}

func squaredL24(a, b []float32) float32 {
	var s0, s1, s2, s3 float32
	n := len(a) &^ 3
	for i := 0; i < n; i += 4 {
		d0 := a[i] - b[i]
		d1 := a[i+1] - b[i+1]
		d2 := a[i+2] - b[i+2]
		d3 := a[i+3] - b[i+3]
		s0 += d0 * d0
		s1 += d1 * d1
		s2 += d2 * d2
		s3 += d3 * d3
	}
	sum := (s0 + s2) + (s1 + s3)
	for i := n; i < len(a); i++ {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

func squaredL28(a, b []float32) float32 {
	var s0, s1, s2, s3, s4, s5, s6, s7 float32
	n := len(a) &^ 7
	for i := 0; i < n; i += 8 {
		d0 := a[i] - b[i]
		d1 := a[i+1] - b[i+1]
		d2 := a[i+2] - b[i+2]
		d3 := a[i+3] - b[i+3]
		d4 := a[i+4] - b[i+4]
		d5 := a[i+5] - b[i+5]
		d6 := a[i+6] - b[i+6]
		d7 := a[i+7] - b[i+7]
		s0 += d0 * d0
		s1 += d1 * d1
		s2 += d2 * d2
		s3 += d3 * d3
		s4 += d4 * d4
		s5 += d5 * d5
		s6 += d6 * d6
		s7 += d7 * d7
	}
	sum := ((s0 + s4) + (s1 + s5)) + ((s2 + s6) + (s3 + s7))
	for i := n; i < len(a); i++ {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

func manhattan4(a, b []float32) float32 {
	var s0, s1, s2, s3 float32
	n := len(a) &^ 3
	for i := 0; i < n; i += 4 {
		s0 += abs32(a[i] - b[i])
		s1 += abs32(a[i+1] - b[i+1])
		s2 += abs32(a[i+2] - b[i+2])
		s3 += abs32(a[i+3] - b[i+3])
	}
	sum := (s0 + s2) + (s1 + s3)
	for i := n; i < len(a); i++ {
		sum += abs32(a[i] - b[i])
	}
	return sum
}

func manhattan8(a, b []float32) float32 {
	var s0, s1, s2, s3, s4, s5, s6, s7 float32
	n := len(a) &^ 7
	for i := 0; i < n; i += 8 {
		s0 += abs32(a[i] - b[i])
		s1 += abs32(a[i+1] - b[i+1])
		s2 += abs32(a[i+2] - b[i+2])
		s3 += abs32(a[i+3] - b[i+3])
		s4 += abs32(a[i+4] - b[i+4])
		s5 += abs32(a[i+5] - b[i+5])
		s6 += abs32(a[i+6] - b[i+6])
		s7 += abs32(a[i+7] - b[i+7])
	}
	sum := ((s0 + s4) + (s1 + s5)) + ((s2 + s6) + (s3 + s7))
	for i := n; i < len(a); i++ {
		sum += abs32(a[i] - b[i])
	}
	return sum
}

func minMax4(v []float32) (float32, float32) {
	if len(v) == 0 {
		return 0, 0
	}
	if len(v) < 4 {
		return minMaxGeneric(v)
	}

	lo0, lo1, lo2, lo3 := v[0], v[1], v[2], v[3]
	hi0, hi1, hi2, hi3 := v[0], v[1], v[2], v[3]
	n := len(v) &^ 3
	for i := 4; i < n; i += 4 {
		lo0, hi0 = minmax32(v[i], lo0, hi0)
		lo1, hi1 = minmax32(v[i+1], lo1, hi1)
		lo2, hi2 = minmax32(v[i+2], lo2, hi2)
		lo3, hi3 = minmax32(v[i+3], lo3, hi3)
	}

	lo := min32(min32(lo0, lo1), min32(lo2, lo3))
	hi := max32(max32(hi0, hi1), max32(hi2, hi3))
	for i := n; i < len(v); i++ {
		lo, hi = minmax32(v[i], lo, hi)
	}
	return lo, hi
}

func minMax8(v []float32) (float32, float32) {
	if len(v) < 16 {
		return minMax4(v)
	}
	// Two interleaved 4-lane passes over front and back halves.
	h := len(v) / 2
	lo1, hi1 := minMax4(v[:h])
	lo2, hi2 := minMax4(v[h:])
	return min32(lo1, lo2), max32(hi1, hi2)
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func minmax32(x, lo, hi float32) (float32, float32) {
	if x < lo {
		lo = x
	}
	if x > hi {
		hi = x
	}
	return lo, hi
}
