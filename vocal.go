package mixmaster

import (
	"fmt"

	"github.com/MasterBuilder91/MixMasterAi/internal/dsp"
)

// Vocal chain EQ support corners and delay tap.
const (
	vocalLowShelfHz  = 300.0
	vocalHighShelfHz = 8000.0

	// vocalCutOrder is the roll-off order for the low/high cuts.
	vocalCutOrder = 4

	// vocalDelaySec is the single slap-delay tap offset.
	vocalDelaySec = 0.25
)

// ProcessVocals runs the vocal chain: EQ, compression, optional
// de-essing, then spatial effects. The input buffer is not modified.
// A mono input comes back mono; only the spatial stage temporarily
// widens it to stereo for the delay and reverb.
func ProcessVocals(b *Buffer, s VocalSettings) (*Buffer, error) {
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("vocal chain: %w", err)
	}

	out := b.Clone()
	for ch := range out.Channels {
		out.Channels[ch] = vocalEQ(out.Channels[ch], out.Rate, s)
		out.Channels[ch] = dsp.Compress(out.Channels[ch], dsp.DynamicsSpec{
			ThresholdDB: s.CompThresholdDB,
			Ratio:       s.CompRatio,
			AttackMs:    s.AttackMs,
			ReleaseMs:   s.ReleaseMs,
			Makeup:      true,
		})
		if s.DeEss {
			out.Channels[ch] = dsp.DeEss(out.Channels[ch], out.Rate, s.DeEssThresholdDB)
		}
	}

	return vocalSpatial(out, s), nil
}

// vocalEQ applies the five vocal EQ moves in order: cuts first, then
// the shelves, then the mid bell.
func vocalEQ(ch []float64, rate int, s VocalSettings) []float64 {
	ch = dsp.ApplyFilter(ch, rate, dsp.FilterSpec{
		Kind: dsp.FilterHighpass, Freq: s.EQLowCutHz, Order: vocalCutOrder,
	})
	ch = dsp.ApplyFilter(ch, rate, dsp.FilterSpec{
		Kind: dsp.FilterLowpass, Freq: s.EQHighCutHz, Order: vocalCutOrder,
	})
	ch = dsp.ApplyFilter(ch, rate, dsp.FilterSpec{
		Kind: dsp.FilterShelfLow, Freq: vocalLowShelfHz, GainDB: s.EQLowShelfDB,
	})
	ch = dsp.ApplyFilter(ch, rate, dsp.FilterSpec{
		Kind: dsp.FilterShelfHigh, Freq: vocalHighShelfHz, GainDB: s.EQHighShelfDB,
	})
	ch = dsp.ApplyFilter(ch, rate, dsp.FilterSpec{
		Kind: dsp.FilterPeaking, Freq: s.EQMidFreqHz, GainDB: s.EQMidGainDB, Q: s.EQMidQ,
	})
	return ch
}

// vocalSpatial adds width, delay and reverb. Widening only applies to
// material that was stereo to begin with; a duplicated mono channel
// has no side signal to widen.
func vocalSpatial(b *Buffer, s VocalSettings) *Buffer {
	wasStereo := b.Stereo()
	st := promoteStereo(b)

	if wasStereo && s.StereoWidth != 0 {
		st.Channels[0], st.Channels[1] = dsp.ScaleSide(
			st.Channels[0], st.Channels[1], 1+s.StereoWidth)
	}

	if s.DelayAmount > 0 {
		tap := int(float64(st.Rate) * vocalDelaySec)
		for _, ch := range st.Channels {
			addDelayTap(ch, tap, s.DelayAmount)
		}
	}

	if s.ReverbAmount > 0 {
		impulse := dsp.ReverbImpulse(st.Rate, s.ReverbSeed)
		for i, ch := range st.Channels {
			st.Channels[i] = dsp.Reverb(ch, impulse, s.ReverbAmount)
		}
	}

	if peak := st.Peak(); peak > 1 {
		dsp.Scale(st.Channels, 1/peak)
	}

	if !wasStereo {
		return demoteMono(st)
	}
	return st
}

// addDelayTap mixes a single delayed copy of ch into itself in place.
func addDelayTap(ch []float64, tap int, amount float64) {
	if tap <= 0 || tap >= len(ch) {
		return
	}
	for i := len(ch) - 1; i >= tap; i-- {
		ch[i] += ch[i-tap] * amount
	}
}
