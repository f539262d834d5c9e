package dsp

// Hermite basis coefficients for 4-point cubic interpolation.
const (
	hermiteHalf        = 0.5
	hermiteThreeHalves = 1.5
	hermiteFiveHalves  = 2.5
)

// ResampleCubic converts x from one sample rate to another using
// 4-point cubic Hermite interpolation. Equal rates return a copy.
// This trades some stop-band rejection for simplicity, which is fine
// for aligning stems whose rates rarely differ by more than 2x.
func ResampleCubic(x []float64, fromRate, toRate int) []float64 {
	if fromRate == toRate || len(x) == 0 {
		out := make([]float64, len(x))
		copy(out, x)
		return out
	}

	ratio := float64(toRate) / float64(fromRate)
	out := make([]float64, 0, int(float64(len(x))*ratio)+1)

	var history [4]float64
	phase := 0.0
	step := 1.0 / ratio
	for _, sample := range x {
		history[3] = history[2]
		history[2] = history[1]
		history[1] = history[0]
		history[0] = sample

		for phase < 1.0 {
			out = append(out, hermite(history, phase))
			phase += step
		}
		phase -= 1.0
	}
	return out
}

// hermite evaluates the cubic Hermite polynomial at fractional
// position frac within the 4-sample window (history[3] oldest).
func hermite(history [4]float64, frac float64) float64 {
	y0 := history[3]
	y1 := history[2]
	y2 := history[1]
	y3 := history[0]

	a := -hermiteHalf*y0 + hermiteThreeHalves*y1 - hermiteThreeHalves*y2 + hermiteHalf*y3
	b := y0 - hermiteFiveHalves*y1 + 2*y2 - hermiteHalf*y3
	c := -hermiteHalf*y0 + hermiteHalf*y2
	d := y1
	return ((a*frac+b)*frac+c)*frac + d
}
