package dsp

import "math"

// DynamicsSpec configures a downward compressor pass.
type DynamicsSpec struct {
	ThresholdDB float64
	Ratio       float64
	AttackMs    float64
	ReleaseMs   float64

	// Makeup restores the pre-compression RMS level afterwards.
	Makeup bool
}

// Compress applies per-sample downward compression and returns a new
// slice. Above the threshold the target gain is (|x|/T)^(1/ratio - 1),
// smoothed asymmetrically: gain reductions track fast, recoveries slow.
// Below the threshold the gain snaps back to unity immediately.
func Compress(x []float64, spec DynamicsSpec) []float64 {
	out := make([]float64, len(x))
	copy(out, x)
	if len(x) == 0 || spec.Ratio <= 0 {
		return out
	}

	threshold := DBToLinear(spec.ThresholdDB)
	exponent := 1/spec.Ratio - 1

	gain := 1.0
	for i := 1; i < len(out); i++ {
		level := math.Abs(out[i])
		if level > threshold {
			target := math.Pow(level/threshold, exponent)
			if target < gain {
				gain = gain*attackHold + target*attackFeed
			} else {
				gain = gain*releaseHold + target*releaseFeed
			}
		} else {
			gain = 1.0
		}
		out[i] *= gain
	}

	if spec.Makeup {
		applyMakeup(out, x)
	}
	return out
}

// CompressLinked compresses a stereo pair with a shared gain curve
// driven by the louder of the two channels, preserving the stereo
// image. Channels are modified in place. No makeup is applied.
func CompressLinked(left, right []float64, spec DynamicsSpec) {
	if len(left) == 0 || spec.Ratio <= 0 {
		return
	}

	threshold := DBToLinear(spec.ThresholdDB)
	exponent := 1/spec.Ratio - 1

	gain := 1.0
	for i := 1; i < len(left); i++ {
		level := math.Max(math.Abs(left[i]), math.Abs(right[i]))
		if level > threshold {
			target := math.Pow(level/threshold, exponent)
			if target < gain {
				gain = gain*attackHold + target*attackFeed
			} else {
				gain = gain*releaseHold + target*releaseFeed
			}
		} else {
			gain = 1.0
		}
		left[i] *= gain
		right[i] *= gain
	}
}

// applyMakeup scales compressed back toward the RMS of the original.
func applyMakeup(compressed, original []float64) {
	after := RMS(compressed)
	if after <= 0 {
		return
	}
	before := RMS(original)
	for i := range compressed {
		compressed[i] *= before / after
	}
}

// DeEss attenuates sibilance by compressing the 5-8 kHz band. The band
// is extracted, its rectified envelope smoothed with a 100 Hz low-pass,
// and wherever the envelope exceeds the threshold the band is scaled
// down to it before additive recombination.
func DeEss(x []float64, rate int, thresholdDB float64) []float64 {
	band := Bandpass(x, rate, sibilanceLowHz, sibilanceHighHz, sibilanceOrder)

	env := make([]float64, len(band))
	for i, v := range band {
		env[i] = math.Abs(v)
	}
	env = Lowpass(env, rate, deEssEnvelopeHz, shelfSupportOrder)

	threshold := DBToLinear(thresholdDB)
	out := make([]float64, len(x))
	for i := range x {
		gain := 1.0
		if env[i] > threshold {
			gain = threshold / env[i]
		}
		out[i] = x[i] - band[i] + band[i]*gain
	}
	return out
}
