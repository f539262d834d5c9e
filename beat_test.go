package mixmaster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MasterBuilder91/MixMasterAi/internal/dsp"
	"github.com/MasterBuilder91/MixMasterAi/internal/testutil"
)

func TestProcessBeatHitsLevelTarget(t *testing.T) {
	in := sineBuffer(200, 0.5, 1)
	s := DefaultBeatSettings()

	out, err := ProcessBeat(in, s)
	require.NoError(t, err)

	// The final stage scales the whole signal so the RMS lands on the
	// target exactly, whatever the EQ and compression did before it.
	assert.InDelta(t, dsp.DBToLinear(s.LevelTargetDB), testutil.RMS(out.Channels[0]), 1e-9)
}

func TestProcessBeatDoesNotModifyInput(t *testing.T) {
	in := sineBuffer(200, 0.5, 1)
	orig := in.Clone()

	_, err := ProcessBeat(in, DefaultBeatSettings())
	require.NoError(t, err)

	testutil.AssertSlicesInDelta(t, orig.Channels[0], in.Channels[0], 0)
}

func TestProcessBeatLeavesSilenceSilent(t *testing.T) {
	in := &Buffer{Channels: [][]float64{make([]float64, 4410)}, Rate: 44100}

	out, err := ProcessBeat(in, DefaultBeatSettings())
	require.NoError(t, err)

	testutil.AssertPeakBelow(t, out.Channels[0], testutil.DefaultTolerance)
}

func TestProcessBeatGenrePresetsDiffer(t *testing.T) {
	in := sineBuffer(200, 0.5, 1)

	trap, err := ProcessBeat(in, BeatPreset(GenreTrap))
	require.NoError(t, err)
	rnb, err := ProcessBeat(in, BeatPreset(GenreRAndB))
	require.NoError(t, err)

	// Different level targets alone guarantee different output.
	assert.NotEqual(t, trap.Channels[0], rnb.Channels[0])
}

func TestProcessBeatRejectsInvalidInput(t *testing.T) {
	_, err := ProcessBeat(nil, DefaultBeatSettings())
	assert.ErrorIs(t, err, ErrInvalidInput)
}
