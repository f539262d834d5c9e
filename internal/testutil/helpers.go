// Package testutil provides reusable helper functions for audio
// processing tests.
package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Default tolerances for various test scenarios.
const (
	DefaultTolerance = 1e-10
	GainTolerance    = 1e-6
	DBTolerance      = 0.01
)

// Sine generates n samples of a sine wave at freq Hz with the given
// amplitude.
func Sine(n, rate int, freq, amplitude float64) []float64 {
	out := make([]float64, n)
	w := 2 * math.Pi * freq / float64(rate)
	for i := range out {
		out[i] = amplitude * math.Sin(w*float64(i))
	}
	return out
}

// Impulse generates n samples that are zero except for a unit spike at
// index 0.
func Impulse(n int) []float64 {
	out := make([]float64, n)
	if n > 0 {
		out[0] = 1
	}
	return out
}

// Constant generates n samples of the given value.
func Constant(n int, value float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = value
	}
	return out
}

// RMS returns the root-mean-square amplitude of s.
func RMS(s []float64) float64 {
	if len(s) == 0 {
		return 0
	}
	var sum float64
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(s)))
}

// PeakAbs returns the largest absolute value in s.
func PeakAbs(s []float64) float64 {
	peak := 0.0
	for _, v := range s {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	return peak
}

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(v) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(v, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// AssertAllInRange verifies that all elements are within [minVal, maxVal].
func AssertAllInRange(t *testing.T, s []float64, minVal, maxVal float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if v < minVal || v > maxVal {
			return assert.Fail(t, "value out of range",
				"s[%d]=%f is outside range [%f, %f]", i, v, minVal, maxVal)
		}
	}
	return true
}

// AssertPeakBelow verifies that no sample exceeds limit in magnitude.
func AssertPeakBelow(t *testing.T, s []float64, limit float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if math.Abs(v) > limit {
			return assert.Fail(t, "peak above limit",
				"|s[%d]|=%f exceeds %f", i, math.Abs(v), limit)
		}
	}
	return true
}

// AssertSameLength verifies that every channel has the same length.
func AssertSameLength(t *testing.T, channels [][]float64, msgAndArgs ...any) bool {
	t.Helper()
	if len(channels) == 0 {
		return true
	}
	n := len(channels[0])
	for ch, c := range channels {
		if !assert.Len(t, c, n, "channel %d length differs", ch) {
			return false
		}
	}
	return true
}

// AssertSlicesInDelta verifies two slices match element-wise within
// tolerance.
func AssertSlicesInDelta(t *testing.T, expected, actual []float64, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if !assert.Len(t, actual, len(expected), msgAndArgs...) {
		return false
	}
	for i := range expected {
		if !assert.InDelta(t, expected[i], actual[i], tolerance,
			"mismatch at index %d", i) {
			return false
		}
	}
	return true
}
