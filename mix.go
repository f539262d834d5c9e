package mixmaster

import (
	"fmt"
	"math"

	"github.com/MasterBuilder91/MixMasterAi/internal/dsp"
)

// Mix bus constants.
const (
	// Masking mitigation: where the beat's magnitude exceeds twice the
	// vocal's in a bin, the beat bin is scaled down.
	maskDominanceRatio = 2.0
	maskAttenuation    = 0.7

	// Stereo placement pulls the vocal toward the center and pushes
	// the beat outward.
	vocalSideScale = 0.8
	beatSideScale  = 1.2

	// Bus compression and tone.
	busCompThresholdDB = -10.0
	busCompRatio       = 1.5
	busHighShelfHz     = 8000.0
	busHighShelfDB     = 1.0

	// Final mix ceiling, linear.
	mixLimiterCeiling = 0.95
)

// MixTracks combines a processed vocal and beat into a stereo mix. The
// beat is resampled to the vocal's rate, both stems are promoted to
// stereo, gained, optionally unmasked and placed, summed, then bus
// processed and loudness normalized under a linked limiter.
func MixTracks(vocal, beat *Buffer, s MixSettings) (*Buffer, error) {
	if err := vocal.Validate(); err != nil {
		return nil, fmt.Errorf("mix: vocal: %w", err)
	}
	if err := beat.Validate(); err != nil {
		return nil, fmt.Errorf("mix: beat: %w", err)
	}

	beat = resampleBuffer(beat, vocal.Rate)

	v := promoteStereo(vocal)
	bt := promoteStereo(beat)

	dsp.Scale(v.Channels, dsp.DBToLinear(s.VocalLevelDB))
	dsp.Scale(bt.Channels, dsp.DBToLinear(s.BeatLevelDB))

	if s.ReduceMasking {
		reduceMasking(v, bt)
	}

	if s.StereoPlacement {
		v.Channels[0], v.Channels[1] = dsp.ScaleSide(v.Channels[0], v.Channels[1], vocalSideScale)
		bt.Channels[0], bt.Channels[1] = dsp.ScaleSide(bt.Channels[0], bt.Channels[1], beatSideScale)
	}

	mix := sumStems(v, bt)

	if s.BusProcessing {
		dsp.CompressLinked(mix.Channels[0], mix.Channels[1], dsp.DynamicsSpec{
			ThresholdDB: busCompThresholdDB,
			Ratio:       busCompRatio,
		})
		for ch := range mix.Channels {
			mix.Channels[ch] = dsp.ApplyFilter(mix.Channels[ch], mix.Rate, dsp.FilterSpec{
				Kind: dsp.FilterShelfHigh, Freq: busHighShelfHz, GainDB: busHighShelfDB,
			})
		}
	}

	dsp.NormalizeLoudness(mix.Channels, s.TargetLUFS)
	dsp.LimitLinked(mix.Channels, mixLimiterCeiling)
	return mix, nil
}

// resampleBuffer converts every channel to the target rate. Equal
// rates return the input unchanged.
func resampleBuffer(b *Buffer, rate int) *Buffer {
	if b.Rate == rate {
		return b
	}
	out := &Buffer{Channels: make([][]float64, len(b.Channels)), Rate: rate}
	for ch, c := range b.Channels {
		out.Channels[ch] = dsp.ResampleCubic(c, b.Rate, rate)
	}
	return out
}

// reduceMasking ducks beat spectrogram bins that drown out the vocal.
// The decision mask comes from the mono downmixes; it is then applied
// to each beat channel's own spectrogram.
func reduceMasking(vocal, beat *Buffer) {
	stft := dsp.NewSTFT(dsp.DefaultFrameSize, dsp.DefaultHop)

	vocalFrames := stft.Analyze(vocal.Mono())
	beatFrames := stft.Analyze(beat.Mono())

	frames := len(vocalFrames)
	if len(beatFrames) < frames {
		frames = len(beatFrames)
	}

	mask := make([][]float64, frames)
	for t := 0; t < frames; t++ {
		mask[t] = make([]float64, len(beatFrames[t]))
		for k := range beatFrames[t] {
			mask[t][k] = 1
			if magnitude(beatFrames[t][k]) > magnitude(vocalFrames[t][k])*maskDominanceRatio {
				mask[t][k] = maskAttenuation
			}
		}
	}

	for ch := range beat.Channels {
		chFrames := stft.Analyze(beat.Channels[ch])
		for t := 0; t < len(chFrames) && t < frames; t++ {
			for k := range chFrames[t] {
				chFrames[t][k] *= complex(mask[t][k], 0)
			}
		}
		beat.Channels[ch] = stft.Synthesize(chFrames, len(beat.Channels[ch]))
	}
}

func magnitude(c complex128) float64 {
	return math.Hypot(real(c), imag(c))
}

// sumStems adds two stereo stems sample by sample. The output spans
// the longer stem; the shorter one contributes silence past its end.
// Resampling can leave the stems a few samples apart.
func sumStems(a, b *Buffer) *Buffer {
	n := a.Frames()
	if b.Frames() > n {
		n = b.Frames()
	}
	out := NewBuffer(maxChannels, n, a.Rate)
	for ch := 0; ch < maxChannels; ch++ {
		for i, v := range a.Channels[ch] {
			out.Channels[ch][i] = v
		}
		for i, v := range b.Channels[ch] {
			out.Channels[ch][i] += v
		}
	}
	return out
}
