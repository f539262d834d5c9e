package mixmaster

import (
	"context"
	"fmt"

	"github.com/MasterBuilder91/MixMasterAi/internal/dsp"
)

// Mastering chain constants.
const (
	masterLowShelfHz  = 200.0
	masterHighShelfHz = 8000.0

	// Multiband crossover corners and roll-off.
	mbLowCrossoverHz  = 200.0
	mbHighCrossoverHz = 5000.0
	mbCrossoverOrder  = 4

	// Per-band compression ratios. The high band is clamped hardest.
	mbLowRatio  = 3.0
	mbMidRatio  = 2.0
	mbHighRatio = 4.0
)

// ReferenceMatcher masters a target buffer against a reference track.
// Implementations typically call out to an external service or
// library; any returned error makes the caller fall back to the
// standard mastering chain.
type ReferenceMatcher interface {
	Match(ctx context.Context, target, reference *Buffer) (*Buffer, error)
}

// MasterTrack runs the standard mastering chain: shelving EQ, 3-band
// multiband compression, stereo enhancement, loudness normalization
// and a per-channel limiter. The input buffer is not modified.
func MasterTrack(b *Buffer, s MasterSettings) (*Buffer, error) {
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("master: %w", err)
	}

	out := b.Clone()
	for ch := range out.Channels {
		out.Channels[ch] = masterEQ(out.Channels[ch], out.Rate, s)
		out.Channels[ch] = multibandCompress(out.Channels[ch], out.Rate, s)
	}

	if out.Stereo() && s.StereoEnhance != 0 {
		out.Channels[0], out.Channels[1] = dsp.ScaleSide(
			out.Channels[0], out.Channels[1], 1+s.StereoEnhance)
	}

	dsp.NormalizeLoudness(out.Channels, s.TargetLUFS)

	ceiling := dsp.DBToLinear(s.LimiterThresholdDB)
	for ch := range out.Channels {
		out.Channels[ch] = dsp.Limit(out.Channels[ch], ceiling)
	}
	return out, nil
}

// MasterWithReference tries reference matching first and falls back to
// the standard chain if the matcher is missing or fails. The returned
// bool reports whether the reference was actually used.
func MasterWithReference(ctx context.Context, target, reference *Buffer, s MasterSettings, m ReferenceMatcher) (*Buffer, bool, error) {
	if s.UseReferenceMatching && m != nil && reference != nil {
		matched, err := m.Match(ctx, target, reference)
		if err == nil && matched != nil {
			return matched, true, nil
		}
	}
	out, err := MasterTrack(target, s)
	return out, false, err
}

// masterEQ applies the final tone shaping: gentle low and high shelves.
func masterEQ(ch []float64, rate int, s MasterSettings) []float64 {
	ch = dsp.ApplyFilter(ch, rate, dsp.FilterSpec{
		Kind: dsp.FilterShelfLow, Freq: masterLowShelfHz, GainDB: s.EQLowShelfDB,
	})
	ch = dsp.ApplyFilter(ch, rate, dsp.FilterSpec{
		Kind: dsp.FilterShelfHigh, Freq: masterHighShelfHz, GainDB: s.EQHighShelfDB,
	})
	return ch
}

// multibandCompress splits the channel into low, mid and high bands,
// compresses each with makeup, and sums them back. The mid band is the
// residual after subtracting the crossover extremes, so the three
// bands reconstruct the signal exactly at unity gain.
func multibandCompress(ch []float64, rate int, s MasterSettings) []float64 {
	low := dsp.Lowpass(ch, rate, mbLowCrossoverHz, mbCrossoverOrder)
	high := dsp.Highpass(ch, rate, mbHighCrossoverHz, mbCrossoverOrder)

	mid := make([]float64, len(ch))
	for i := range ch {
		mid[i] = ch[i] - low[i] - high[i]
	}

	low = dsp.Compress(low, dsp.DynamicsSpec{
		ThresholdDB: s.MBLowThresholdDB, Ratio: mbLowRatio, Makeup: true,
	})
	mid = dsp.Compress(mid, dsp.DynamicsSpec{
		ThresholdDB: s.MBMidThresholdDB, Ratio: mbMidRatio, Makeup: true,
	})
	high = dsp.Compress(high, dsp.DynamicsSpec{
		ThresholdDB: s.MBHighThresholdDB, Ratio: mbHighRatio, Makeup: true,
	})

	out := make([]float64, len(ch))
	for i := range out {
		out[i] = low[i] + mid[i] + high[i]
	}
	return out
}
