package dsp

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MasterBuilder91/MixMasterAi/internal/testutil"
)

func TestApplyFilterZeroGainShelfIsExactNoOp(t *testing.T) {
	in := testutil.Sine(2048, testRate, 440, 0.8)

	for _, kind := range []FilterKind{FilterShelfLow, FilterShelfHigh, FilterPeaking} {
		out := ApplyFilter(in, testRate, FilterSpec{Kind: kind, Freq: 1000, GainDB: 0, Q: 1})
		testutil.AssertSlicesInDelta(t, in, out, 0)
	}
}

func TestApplyFilterLowShelfBoostsBass(t *testing.T) {
	bass := testutil.Sine(8192, testRate, 100, 0.3)
	out := ApplyFilter(bass, testRate, FilterSpec{
		Kind: FilterShelfLow, Freq: 300, GainDB: 6,
	})

	testutil.AssertNoNaNOrInf(t, out)
	assert.Greater(t, testutil.RMS(out[2048:]), testutil.RMS(bass[2048:])*1.5)
}

func TestApplyFilterHighShelfCutsTreble(t *testing.T) {
	treble := testutil.Sine(8192, testRate, 12000, 0.3)
	out := ApplyFilter(treble, testRate, FilterSpec{
		Kind: FilterShelfHigh, Freq: 8000, GainDB: -6,
	})

	assert.Less(t, testutil.RMS(out[2048:]), testutil.RMS(treble[2048:])*0.7)
}

func TestApplyFilterPeakingCutScoopsMids(t *testing.T) {
	mid := testutil.Sine(8192, testRate, 800, 0.3)
	out := ApplyFilter(mid, testRate, FilterSpec{
		Kind: FilterPeaking, Freq: 800, GainDB: -6, Q: 1,
	})

	assert.Less(t, testutil.RMS(out[2048:]), testutil.RMS(mid[2048:]))
}

func TestPeakingEdgesClamped(t *testing.T) {
	tests := []struct {
		name     string
		freq, q  float64
		wantLow  float64
		wantHigh float64
	}{
		{"normal band", 1000, 1, 500, 1500},
		{"low edge clamped", 30, 1, minBandEdgeHz, 45},
		{"high edge clamped", 21000, 1, 10500, Nyquist(testRate) - 1},
		{"zero q defaults", 1000, 0, 500, 1500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			low, high := peakingEdges(testRate, tt.freq, tt.q)
			assert.InDelta(t, tt.wantLow, low, 1e-9)
			assert.InDelta(t, tt.wantHigh, high, 1e-9)
		})
	}
}
