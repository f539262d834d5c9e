package dsp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MasterBuilder91/MixMasterAi/internal/testutil"
)

func TestDBConversionRoundTrip(t *testing.T) {
	tests := []float64{-60, -20, -6, 0, 6}
	for _, db := range tests {
		assert.InDelta(t, db, LinearToDB(DBToLinear(db)), 1e-9)
	}
}

func TestLinearToDBSilenceFloor(t *testing.T) {
	assert.Equal(t, silenceFloorDB, LinearToDB(0))
	assert.Equal(t, silenceFloorDB, LinearToDB(-0.5))
}

func TestRMSOfSine(t *testing.T) {
	in := testutil.Sine(44100, testRate, 441, 1.0)
	assert.InDelta(t, 1/math.Sqrt2, RMS(in), 0.001)
}

func TestRMSEmpty(t *testing.T) {
	assert.Equal(t, 0.0, RMS(nil))
}

func TestPeakAbs(t *testing.T) {
	channels := [][]float64{{0.1, -0.9, 0.3}, {0.2, 0.5, -0.4}}
	assert.Equal(t, 0.9, PeakAbs(channels))
}

func TestAdjustLevelHitsTarget(t *testing.T) {
	channels := [][]float64{testutil.Sine(44100, testRate, 441, 0.1)}
	AdjustLevel(channels, -6)

	got := 20 * math.Log10(RMS(channels[0]))
	assert.InDelta(t, -6, got, testutil.DBTolerance)
}

func TestAdjustLevelLeavesSilenceAlone(t *testing.T) {
	channels := [][]float64{make([]float64, 1000)}
	AdjustLevel(channels, -6)
	testutil.AssertSlicesInDelta(t, make([]float64, 1000), channels[0], 0)
}

func TestNormalizeLoudnessAppliesProxyGain(t *testing.T) {
	channels := [][]float64{
		testutil.Sine(44100, testRate, 441, 0.05),
		testutil.Sine(44100, testRate, 441, 0.05),
	}
	before := RMS(channels[0])
	current := LoudnessProxy(Downmix(channels))

	NormalizeLoudness(channels, -14)

	wantGain := DBToLinear(-14 - current)
	assert.InDelta(t, before*wantGain, RMS(channels[0]), 1e-9)
}

func TestScale(t *testing.T) {
	channels := [][]float64{{1, 2}, {3, 4}}
	Scale(channels, 0.5)
	assert.Equal(t, [][]float64{{0.5, 1}, {1.5, 2}}, channels)
}
