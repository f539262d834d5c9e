package mixmaster

import "github.com/MasterBuilder91/MixMasterAi/internal/dsp"

// Supported genre names. Anything else falls back to the neutral
// defaults.
const (
	GenreAuto   = "auto"
	GenreTrap   = "trap"
	GenreHipHop = "hip_hop"
	GenrePop    = "pop"
	GenreRAndB  = "r_and_b"
	GenreOther  = "other"
)

// User knob range and mapping for the vocal compression ratio.
const (
	// vocalRatioBase and vocalRatioSpan map the 0..1 compression knob
	// onto a 2:1 to 8:1 ratio. This overrides any genre ratio.
	vocalRatioBase = 2.0
	vocalRatioSpan = 6.0
)

// VocalSettings controls the vocal processing chain.
type VocalSettings struct {
	// EQ.
	EQLowCutHz    float64 // high-pass corner; 0 disables
	EQHighCutHz   float64 // low-pass corner; >= Nyquist disables
	EQLowShelfDB  float64 // shelf gain below 300 Hz
	EQHighShelfDB float64 // shelf gain above 8 kHz
	EQMidFreqHz   float64 // peaking center
	EQMidGainDB   float64
	EQMidQ        float64

	// Compression.
	CompThresholdDB float64
	CompRatio       float64
	AttackMs        float64
	ReleaseMs       float64

	// De-essing.
	DeEss            bool
	DeEssThresholdDB float64

	// Spatial effects.
	ReverbAmount float64
	ReverbSeed   int64
	DelayAmount  float64
	StereoWidth  float64
}

// BeatSettings controls the beat processing chain.
type BeatSettings struct {
	EQLowBoostDB  float64 // shelf gain below 200 Hz
	EQHighCutHz   float64
	EQMidScoopDB  float64 // peaking gain, negative scoops
	EQMidFreqHz   float64
	EQMidQ        float64

	CompThresholdDB float64
	CompRatio       float64
	AttackMs        float64
	ReleaseMs       float64

	LevelTargetDB float64 // RMS target after dynamics
}

// MixSettings controls how the processed stems are combined.
type MixSettings struct {
	VocalLevelDB    float64
	BeatLevelDB     float64
	ReduceMasking   bool
	StereoPlacement bool
	BusProcessing   bool
	TargetLUFS      float64
}

// MasterSettings controls the mastering chain.
type MasterSettings struct {
	UseReferenceMatching bool

	EQLowShelfDB  float64
	EQHighShelfDB float64

	MBLowThresholdDB  float64
	MBMidThresholdDB  float64
	MBHighThresholdDB float64

	StereoEnhance      float64
	LimiterThresholdDB float64
	TargetLUFS         float64
}

// DefaultVocalSettings returns the neutral vocal chain settings.
func DefaultVocalSettings() VocalSettings {
	return VocalSettings{
		EQLowCutHz:       80,
		EQHighCutHz:      18000,
		EQLowShelfDB:     -3,
		EQHighShelfDB:    2,
		EQMidFreqHz:      3000,
		EQMidGainDB:      2,
		EQMidQ:           1.0,
		CompThresholdDB:  -20,
		CompRatio:        4,
		AttackMs:         5,
		ReleaseMs:        50,
		DeEss:            true,
		DeEssThresholdDB: -10,
		ReverbSeed:       dsp.DefaultReverbSeed,
		DelayAmount:      0.1,
		StereoWidth:      0.5,
	}
}

// DefaultBeatSettings returns the neutral beat chain settings.
func DefaultBeatSettings() BeatSettings {
	return BeatSettings{
		EQLowBoostDB:    2,
		EQHighCutHz:     16000,
		EQMidScoopDB:    -1,
		EQMidFreqHz:     800,
		EQMidQ:          1,
		CompThresholdDB: -18,
		CompRatio:       2,
		AttackMs:        10,
		ReleaseMs:       100,
		LevelTargetDB:   -6,
	}
}

// DefaultMixSettings returns the neutral mix settings.
func DefaultMixSettings() MixSettings {
	return MixSettings{
		VocalLevelDB:    0.0,
		BeatLevelDB:     -3.0,
		ReduceMasking:   true,
		StereoPlacement: true,
		BusProcessing:   true,
		TargetLUFS:      -14,
	}
}

// DefaultMasterSettings returns the neutral mastering settings.
func DefaultMasterSettings() MasterSettings {
	return MasterSettings{
		EQLowShelfDB:       1.0,
		EQHighShelfDB:      1.5,
		MBLowThresholdDB:   -24,
		MBMidThresholdDB:   -18,
		MBHighThresholdDB:  -24,
		StereoEnhance:      0.2,
		LimiterThresholdDB: -1.0,
		TargetLUFS:         -14,
	}
}

// VocalPreset resolves vocal settings for a genre, then applies the
// user knobs. The order matters: genre adjustments first, then the
// user's reverb amount, and last the compression knob, which always
// recomputes the ratio regardless of genre.
func VocalPreset(genre string, reverbAmount, compressionAmount float64) VocalSettings {
	s := DefaultVocalSettings()
	s.ReverbAmount = reverbAmount

	switch genre {
	case GenreTrap:
		s.EQLowCutHz = 100
		s.EQHighShelfDB = 3
		s.CompRatio = 5
		s.AttackMs = 3
		s.DelayAmount = 0.15
	case GenreHipHop:
		s.EQLowCutHz = 90
		s.EQMidFreqHz = 2500
		s.CompRatio = 4.5
		s.DelayAmount = 0.12
	case GenrePop:
		s.EQLowCutHz = 70
		s.EQHighShelfDB = 2.5
		s.EQMidGainDB = 1.5
		s.CompRatio = 3.5
		s.StereoWidth = 0.6
	case GenreRAndB:
		s.EQLowCutHz = 60
		s.EQMidFreqHz = 2000
		s.EQMidGainDB = 1
		s.CompRatio = 3
		s.ReverbAmount = reverbAmount * 1.2
	}

	s.CompRatio = vocalRatioBase + compressionAmount*vocalRatioSpan
	return s
}

// BeatPreset resolves beat settings for a genre.
func BeatPreset(genre string) BeatSettings {
	s := DefaultBeatSettings()
	switch genre {
	case GenreTrap:
		s.EQLowBoostDB = 3
		s.EQMidFreqHz = 600
		s.EQMidScoopDB = -2
		s.CompThresholdDB = -16
		s.LevelTargetDB = -5.5
	case GenreHipHop:
		s.EQLowBoostDB = 2.5
		s.EQMidFreqHz = 700
		s.CompThresholdDB = -17
		s.LevelTargetDB = -5.8
	case GenrePop:
		s.EQLowBoostDB = 1.5
		s.EQHighCutHz = 17000
		s.EQMidScoopDB = -0.5
		s.CompThresholdDB = -19
		s.LevelTargetDB = -6.5
	case GenreRAndB:
		s.EQLowBoostDB = 2
		s.EQMidFreqHz = 500
		s.EQMidScoopDB = -1.5
		s.CompThresholdDB = -20
		s.LevelTargetDB = -7
	}
	return s
}

// MixPreset resolves mix settings for a genre.
func MixPreset(genre string) MixSettings {
	s := DefaultMixSettings()
	switch genre {
	case GenreTrap:
		s.VocalLevelDB = 0.5
		s.BeatLevelDB = -2.5
		s.TargetLUFS = -12
	case GenreHipHop:
		s.TargetLUFS = -13
	case GenrePop:
		s.VocalLevelDB = 1.0
		s.BeatLevelDB = -4.0
		s.TargetLUFS = -13.5
	case GenreRAndB:
		s.BeatLevelDB = -3.5
		s.TargetLUFS = -14.5
	}
	return s
}

// MasterPreset resolves mastering settings for a genre.
func MasterPreset(genre string) MasterSettings {
	s := DefaultMasterSettings()
	switch genre {
	case GenreTrap:
		s.EQLowShelfDB = 1.5
		s.MBLowThresholdDB = -22
		s.StereoEnhance = 0.3
		s.LimiterThresholdDB = -0.8
		s.TargetLUFS = -12
	case GenreHipHop:
		s.EQLowShelfDB = 1.2
		s.MBLowThresholdDB = -23
		s.StereoEnhance = 0.25
		s.TargetLUFS = -13
	case GenrePop:
		s.EQHighShelfDB = 2.0
		s.MBMidThresholdDB = -16
		s.StereoEnhance = 0.3
		s.TargetLUFS = -13.5
	case GenreRAndB:
		s.EQLowShelfDB = 0.8
		s.EQHighShelfDB = 1.0
		s.MBLowThresholdDB = -25
		s.StereoEnhance = 0.15
		s.TargetLUFS = -14.5
	}
	return s
}
