package mixmaster

import (
	"fmt"

	"github.com/MasterBuilder91/MixMasterAi/internal/dsp"
)

// Beat chain EQ support corner and cut order.
const (
	beatLowShelfHz = 200.0
	beatCutOrder   = 4
)

// ProcessBeat runs the beat chain: EQ, compression, and an RMS level
// adjustment toward the target. The input buffer is not modified.
// Compression here applies no makeup gain; the level stage after it
// sets the final loudness.
func ProcessBeat(b *Buffer, s BeatSettings) (*Buffer, error) {
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("beat chain: %w", err)
	}

	out := b.Clone()
	for ch := range out.Channels {
		out.Channels[ch] = beatEQ(out.Channels[ch], out.Rate, s)
		out.Channels[ch] = dsp.Compress(out.Channels[ch], dsp.DynamicsSpec{
			ThresholdDB: s.CompThresholdDB,
			Ratio:       s.CompRatio,
			AttackMs:    s.AttackMs,
			ReleaseMs:   s.ReleaseMs,
		})
	}

	dsp.AdjustLevel(out.Channels, s.LevelTargetDB)
	return out, nil
}

// beatEQ applies the three beat EQ moves: low shelf boost, high cut,
// mid scoop.
func beatEQ(ch []float64, rate int, s BeatSettings) []float64 {
	ch = dsp.ApplyFilter(ch, rate, dsp.FilterSpec{
		Kind: dsp.FilterShelfLow, Freq: beatLowShelfHz, GainDB: s.EQLowBoostDB,
	})
	ch = dsp.ApplyFilter(ch, rate, dsp.FilterSpec{
		Kind: dsp.FilterLowpass, Freq: s.EQHighCutHz, Order: beatCutOrder,
	})
	ch = dsp.ApplyFilter(ch, rate, dsp.FilterSpec{
		Kind: dsp.FilterPeaking, Freq: s.EQMidFreqHz, GainDB: s.EQMidScoopDB, Q: s.EQMidQ,
	})
	return ch
}
