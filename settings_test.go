package mixmaster

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVocalPresetCompressionKnobOverridesGenreRatio(t *testing.T) {
	// Every genre table sets its own ratio, but the user knob is
	// applied last and always wins.
	tests := []struct {
		genre  string
		amount float64
		want   float64
	}{
		{GenreTrap, 0, 2},
		{GenreTrap, 0.5, 5},
		{GenreHipHop, 1, 8},
		{GenrePop, 0.25, 3.5},
		{"unknown", 0.5, 5},
	}
	for _, tt := range tests {
		s := VocalPreset(tt.genre, 0.2, tt.amount)
		assert.InDelta(t, tt.want, s.CompRatio, 1e-9, "genre %s amount %f", tt.genre, tt.amount)
	}
}

func TestVocalPresetGenreAdjustments(t *testing.T) {
	trap := VocalPreset(GenreTrap, 0.2, 0.5)
	assert.Equal(t, 100.0, trap.EQLowCutHz)
	assert.Equal(t, 3.0, trap.EQHighShelfDB)
	assert.Equal(t, 3.0, trap.AttackMs)
	assert.Equal(t, 0.15, trap.DelayAmount)

	pop := VocalPreset(GenrePop, 0.2, 0.5)
	assert.Equal(t, 70.0, pop.EQLowCutHz)
	assert.Equal(t, 0.6, pop.StereoWidth)
	assert.Equal(t, 1.5, pop.EQMidGainDB)
}

func TestVocalPresetRAndBScalesReverb(t *testing.T) {
	s := VocalPreset(GenreRAndB, 0.5, 0.5)
	assert.InDelta(t, 0.6, s.ReverbAmount, 1e-9)

	other := VocalPreset(GenreTrap, 0.5, 0.5)
	assert.InDelta(t, 0.5, other.ReverbAmount, 1e-9)
}

func TestVocalPresetUnknownGenreUsesDefaults(t *testing.T) {
	s := VocalPreset("polka", 0.1, 0.5)
	d := DefaultVocalSettings()
	assert.Equal(t, d.EQLowCutHz, s.EQLowCutHz)
	assert.Equal(t, d.EQHighCutHz, s.EQHighCutHz)
	assert.Equal(t, d.DeEss, s.DeEss)
}

func TestBeatPresetTables(t *testing.T) {
	tests := []struct {
		genre       string
		lowBoost    float64
		midFreq     float64
		thresholdDB float64
		levelTarget float64
	}{
		{GenreTrap, 3, 600, -16, -5.5},
		{GenreHipHop, 2.5, 700, -17, -5.8},
		{GenrePop, 1.5, 800, -19, -6.5},
		{GenreRAndB, 2, 500, -20, -7},
		{"unknown", 2, 800, -18, -6},
	}
	for _, tt := range tests {
		s := BeatPreset(tt.genre)
		assert.Equal(t, tt.lowBoost, s.EQLowBoostDB, "genre %s", tt.genre)
		assert.Equal(t, tt.midFreq, s.EQMidFreqHz, "genre %s", tt.genre)
		assert.Equal(t, tt.thresholdDB, s.CompThresholdDB, "genre %s", tt.genre)
		assert.Equal(t, tt.levelTarget, s.LevelTargetDB, "genre %s", tt.genre)
	}
}

func TestMixPresetTables(t *testing.T) {
	tests := []struct {
		genre      string
		vocalLevel float64
		beatLevel  float64
		targetLUFS float64
	}{
		{GenreTrap, 0.5, -2.5, -12},
		{GenreHipHop, 0.0, -3.0, -13},
		{GenrePop, 1.0, -4.0, -13.5},
		{GenreRAndB, 0.0, -3.5, -14.5},
		{"unknown", 0.0, -3.0, -14},
	}
	for _, tt := range tests {
		s := MixPreset(tt.genre)
		assert.Equal(t, tt.vocalLevel, s.VocalLevelDB, "genre %s", tt.genre)
		assert.Equal(t, tt.beatLevel, s.BeatLevelDB, "genre %s", tt.genre)
		assert.Equal(t, tt.targetLUFS, s.TargetLUFS, "genre %s", tt.genre)
		assert.True(t, s.ReduceMasking)
		assert.True(t, s.BusProcessing)
	}
}

func TestMasterPresetTables(t *testing.T) {
	trap := MasterPreset(GenreTrap)
	assert.Equal(t, 1.5, trap.EQLowShelfDB)
	assert.Equal(t, -22.0, trap.MBLowThresholdDB)
	assert.Equal(t, 0.3, trap.StereoEnhance)
	assert.Equal(t, -0.8, trap.LimiterThresholdDB)
	assert.Equal(t, -12.0, trap.TargetLUFS)

	rnb := MasterPreset(GenreRAndB)
	assert.Equal(t, 0.8, rnb.EQLowShelfDB)
	assert.Equal(t, 1.0, rnb.EQHighShelfDB)
	assert.Equal(t, -25.0, rnb.MBLowThresholdDB)

	def := MasterPreset("unknown")
	assert.Equal(t, DefaultMasterSettings(), def)
}
