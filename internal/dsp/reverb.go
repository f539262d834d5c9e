package dsp

import (
	"math"
	"math/rand"

	"github.com/tphakala/simd/f64"
)

// ReverbImpulse builds a synthetic room impulse: a unit spike followed
// by exponentially decaying gaussian noise, one second long. The same
// seed always produces the same impulse, keeping renders reproducible.
func ReverbImpulse(rate int, seed int64) []float64 {
	n := int(float64(rate) * reverbLengthSec)
	if n < 1 {
		n = 1
	}
	impulse := make([]float64, n)
	impulse[0] = 1

	rng := rand.New(rand.NewSource(seed))
	decay := float64(rate) * reverbDecaySec
	for i := 1; i < n; i++ {
		impulse[i] = rng.NormFloat64() * math.Exp(-float64(i)/decay)
	}
	return impulse
}

// Reverb mixes the convolution of x with impulse into a copy of x at
// the given wet amount. An amount of zero returns a plain copy.
func Reverb(x, impulse []float64, amount float64) []float64 {
	out := make([]float64, len(x))
	copy(out, x)
	if amount == 0 || len(impulse) == 0 {
		return out
	}
	wet := ConvolveSame(x, impulse)
	f64.Scale(wet, wet, amount)
	for i := range out {
		out[i] += wet[i]
	}
	return out
}
