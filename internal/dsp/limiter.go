package dsp

import "math"

// Limit hard-limits a single channel at the given linear threshold and
// returns a new slice. The raw per-sample gain curve is smoothed by
// taking the minimum gain inside a centered window, which rounds off
// gain steps without letting any peak back through.
func Limit(x []float64, threshold float64) []float64 {
	gains := make([]float64, len(x))
	for i, v := range x {
		gains[i] = limiterGain(math.Abs(v), threshold)
	}
	smoothMinInPlace(gains)

	out := make([]float64, len(x))
	for i := range x {
		out[i] = x[i] * gains[i]
	}
	return out
}

// LimitLinked limits all channels with a shared gain curve driven by
// the loudest channel at each sample, modifying the channels in place.
// A shared curve keeps the stereo image stable under limiting.
func LimitLinked(channels [][]float64, threshold float64) {
	if len(channels) == 0 {
		return
	}
	n := len(channels[0])
	gains := make([]float64, n)
	for i := 0; i < n; i++ {
		level := 0.0
		for _, ch := range channels {
			if a := math.Abs(ch[i]); a > level {
				level = a
			}
		}
		gains[i] = limiterGain(level, threshold)
	}
	smoothMinInPlace(gains)

	for _, ch := range channels {
		for i := range ch {
			ch[i] *= gains[i]
		}
	}
}

func limiterGain(level, threshold float64) float64 {
	if level > threshold {
		return threshold / level
	}
	return 1.0
}

// smoothMinInPlace replaces each gain with the minimum over a window
// of limiterWindow samples centered on it, clipped at the ends.
func smoothMinInPlace(gains []float64) {
	n := len(gains)
	if n == 0 {
		return
	}
	half := limiterWindow / 2
	src := make([]float64, n)
	copy(src, gains)
	for i := range gains {
		start := i - half
		if start < 0 {
			start = 0
		}
		end := i + half
		if end > n {
			end = n
		}
		m := src[start]
		for _, v := range src[start+1 : end] {
			if v < m {
				m = v
			}
		}
		gains[i] = m
	}
}
