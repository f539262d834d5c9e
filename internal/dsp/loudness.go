package dsp

import (
	"math"

	"github.com/tphakala/simd/f64"
)

// DBToLinear converts decibels to a linear amplitude factor.
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts a linear amplitude to decibels. Non-positive
// amplitudes report the silence floor instead of -Inf.
func LinearToDB(amp float64) float64 {
	if amp <= 0 {
		return silenceFloorDB
	}
	return 20 * math.Log10(amp)
}

// MeanSquare returns the mean of x squared.
func MeanSquare(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return f64.DotProductUnsafe(x, x) / float64(len(x))
}

// RMS returns the root-mean-square amplitude of x.
func RMS(x []float64) float64 {
	return math.Sqrt(MeanSquare(x))
}

// PeakAbs returns the largest absolute sample value across channels.
func PeakAbs(channels [][]float64) float64 {
	peak := 0.0
	for _, ch := range channels {
		for _, v := range ch {
			if a := math.Abs(v); a > peak {
				peak = a
			}
		}
	}
	return peak
}

// LoudnessProxy estimates integrated loudness from a mono downmix.
// This is a mean-square proxy anchored at -23, not a gated K-weighted
// measurement.
func LoudnessProxy(mono []float64) float64 {
	return loudnessOffsetDB - 10*math.Log10(MeanSquare(mono)+loudnessEpsilon)
}

// Scale multiplies every channel by gain in place.
func Scale(channels [][]float64, gain float64) {
	for _, ch := range channels {
		f64.Scale(ch, ch, gain)
	}
}

// AdjustLevel scales all channels so the RMS of the reference channel
// set reaches targetDB. Silent input is left untouched.
func AdjustLevel(channels [][]float64, targetDB float64) {
	rms := 0.0
	n := 0
	for _, ch := range channels {
		rms += MeanSquare(ch) * float64(len(ch))
		n += len(ch)
	}
	if n == 0 {
		return
	}
	rms = math.Sqrt(rms / float64(n))
	currentDB := LinearToDB(rms)
	if currentDB <= silenceFloorDB {
		return
	}
	Scale(channels, DBToLinear(targetDB-currentDB))
}

// NormalizeLoudness scales channels so the loudness proxy of their mono
// downmix reaches targetLUFS.
func NormalizeLoudness(channels [][]float64, targetLUFS float64) {
	mono := Downmix(channels)
	current := LoudnessProxy(mono)
	Scale(channels, DBToLinear(targetLUFS-current))
}
