package calculator

import "math"

// Sum adds up values.
func Sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return Sum(values) / float64(len(values))
}

// MaxAbs scans values and returns the largest absolute value.
func MaxAbs(values []float64) float64 {
	m := 0.0
	for _, v := range values {
		if a := math.Abs(v); a > m {
			m = a
		}
	}
	return m
}

// MeanSquaredError returns mean((pred-target)^2) over paired slices.
// Returns 0 when the slices are empty.
func MeanSquaredError(pred, target []float64) float64 {
	n := len(pred)
	if len(target) < n {
		n = len(target)
	}
	if n == 0 {
		return 0
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		d := pred[i] - target[i]
		sum += d * d
	}
	return sum / float64(n)
}

// Extremes returns the maximum and minimum of values. ok is false for an empty slice.
func Extremes(values []float64) (high, low float64, ok bool) {
	if len(values) == 0 {
		return 0, 0, false
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for _, v := range values {
		if v > high {
			high = v
		}
		if v < low {
			low = v
		}
	}
	return high, low, true
}
