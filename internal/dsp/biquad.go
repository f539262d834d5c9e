// Package dsp implements the signal processing primitives behind the
// vocal, beat, mixing and mastering chains: Butterworth-style filters,
// an envelope-follower compressor, de-essing, brickwall limiting,
// loudness measurement, mid/side stereo operations, short-time Fourier
// analysis, convolution reverb and cubic sample rate conversion.
//
// All functions operate on single channels of float64 samples in the
// range [-1, 1]. Callers that process multi-channel audio invoke them
// once per channel; nothing in this package retains state between calls.
package dsp

import "math"

// Butterworth section Q values. An order-2N Butterworth low/high-pass
// factors into N second-order sections whose Q values follow from the
// pole angles of the analog prototype.
const (
	butterworthQ2  = 0.7071067811865476 // order 2: single section
	butterworthQ4a = 0.5411961001461970 // order 4: first section
	butterworthQ4b = 1.3065629648763765 // order 4: second section
)

// biquad is one second-order IIR section in transposed direct form II.
type biquad struct {
	b0, b1, b2 float64
	a1, a2     float64
	z1, z2     float64
}

// process advances the section by one sample.
func (s *biquad) process(x float64) float64 {
	y := s.b0*x + s.z1
	s.z1 = s.b1*x - s.a1*y + s.z2
	s.z2 = s.b2*x - s.a2*y
	return y
}

// lowpassSection designs a second-order low-pass biquad (RBJ cookbook).
func lowpassSection(rate int, cutoff, q float64) biquad {
	w0 := 2 * math.Pi * cutoff / float64(rate)
	cosW0 := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)

	a0 := 1 + alpha
	return biquad{
		b0: (1 - cosW0) / 2 / a0,
		b1: (1 - cosW0) / a0,
		b2: (1 - cosW0) / 2 / a0,
		a1: -2 * cosW0 / a0,
		a2: (1 - alpha) / a0,
	}
}

// highpassSection designs a second-order high-pass biquad (RBJ cookbook).
func highpassSection(rate int, cutoff, q float64) biquad {
	w0 := 2 * math.Pi * cutoff / float64(rate)
	cosW0 := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)

	a0 := 1 + alpha
	return biquad{
		b0: (1 + cosW0) / 2 / a0,
		b1: -(1 + cosW0) / a0,
		b2: (1 + cosW0) / 2 / a0,
		a1: -2 * cosW0 / a0,
		a2: (1 - alpha) / a0,
	}
}

// cascadeQs returns the section Q values for a given filter order.
// Orders 2 and 4 cover every use in the processing chains; anything
// else is rounded to the nearest supported order rather than rejected.
func cascadeQs(order int) []float64 {
	if order >= defaultCutOrder {
		return []float64{butterworthQ4a, butterworthQ4b}
	}
	return []float64{butterworthQ2}
}

// Nyquist returns half the sample rate in Hz.
func Nyquist(rate int) float64 {
	return float64(rate) / 2
}

// clampCutoff forces a requested frequency into the designable range.
// Out-of-range specs are clamped, never silently dropped.
func clampCutoff(rate int, freq float64) float64 {
	limit := Nyquist(rate) * maxCutoffFraction
	if freq > limit {
		return limit
	}
	if freq < minCutoffHz {
		return minCutoffHz
	}
	return freq
}

// Lowpass applies a Butterworth-style low-pass cut and returns a new
// slice. A cutoff at or above Nyquist passes the signal through
// unchanged rather than erroring.
func Lowpass(x []float64, rate int, cutoff float64, order int) []float64 {
	out := make([]float64, len(x))
	copy(out, x)
	if cutoff >= Nyquist(rate) {
		return out
	}
	runCascade(out, cascadeQs(order), func(q float64) biquad {
		return lowpassSection(rate, clampCutoff(rate, cutoff), q)
	})
	return out
}

// Highpass applies a Butterworth-style high-pass cut and returns a new
// slice. Cutoffs at or below zero, or at or above Nyquist, pass the
// signal through unchanged.
func Highpass(x []float64, rate int, cutoff float64, order int) []float64 {
	out := make([]float64, len(x))
	copy(out, x)
	if cutoff <= 0 || cutoff >= Nyquist(rate) {
		return out
	}
	runCascade(out, cascadeQs(order), func(q float64) biquad {
		return highpassSection(rate, clampCutoff(rate, cutoff), q)
	})
	return out
}

// Bandpass extracts the band between lowEdge and highEdge by cascading
// a high-pass at the lower edge with a low-pass at the upper edge.
func Bandpass(x []float64, rate int, lowEdge, highEdge float64, order int) []float64 {
	out := Highpass(x, rate, lowEdge, order)
	return Lowpass(out, rate, highEdge, order)
}

// runCascade filters buf in place through one section per Q value.
func runCascade(buf []float64, qs []float64, design func(q float64) biquad) {
	for _, q := range qs {
		s := design(q)
		for i, v := range buf {
			buf[i] = s.process(v)
		}
	}
}
