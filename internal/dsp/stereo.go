package dsp

import "github.com/tphakala/simd/f64"

// Downmix averages channels into a single mono channel. Mono input is
// copied through.
func Downmix(channels [][]float64) []float64 {
	if len(channels) == 0 {
		return nil
	}
	mono := make([]float64, len(channels[0]))
	copy(mono, channels[0])
	if len(channels) == 1 {
		return mono
	}
	for _, ch := range channels[1:] {
		for i, v := range ch {
			mono[i] += v
		}
	}
	f64.Scale(mono, mono, 1/float64(len(channels)))
	return mono
}

// MidSide converts a stereo pair to mid/side form.
// mid = (L+R)/2, side = (L-R)/2.
func MidSide(left, right []float64) (mid, side []float64) {
	mid = make([]float64, len(left))
	side = make([]float64, len(left))
	for i := range left {
		mid[i] = (left[i] + right[i]) / 2
		side[i] = (left[i] - right[i]) / 2
	}
	return mid, side
}

// FromMidSide converts mid/side back to left/right in place.
func FromMidSide(mid, side []float64) (left, right []float64) {
	left = make([]float64, len(mid))
	right = make([]float64, len(mid))
	for i := range mid {
		left[i] = mid[i] + side[i]
		right[i] = mid[i] - side[i]
	}
	return left, right
}

// ScaleSide widens or narrows a stereo pair by scaling the side signal.
// A factor of 1 is a no-op; values above 1 widen, below 1 narrow.
func ScaleSide(left, right []float64, factor float64) (outL, outR []float64) {
	mid, side := MidSide(left, right)
	f64.Scale(side, side, factor)
	return FromMidSide(mid, side)
}
