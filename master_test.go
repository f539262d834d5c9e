package mixmaster

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MasterBuilder91/MixMasterAi/internal/dsp"
	"github.com/MasterBuilder91/MixMasterAi/internal/testutil"
)

func TestMasterTrackRespectsLimiterCeiling(t *testing.T) {
	in := &Buffer{
		Channels: [][]float64{
			testutil.Sine(44100, 44100, 440, 0.9),
			testutil.Sine(44100, 44100, 220, 0.9),
		},
		Rate: 44100,
	}
	s := MasterPreset(GenreTrap)

	out, err := MasterTrack(in, s)
	require.NoError(t, err)

	ceiling := dsp.DBToLinear(s.LimiterThresholdDB)
	for _, ch := range out.Channels {
		testutil.AssertNoNaNOrInf(t, ch)
		testutil.AssertPeakBelow(t, ch, ceiling+1e-9)
	}
}

func TestMasterTrackDoesNotModifyInput(t *testing.T) {
	in := sineBuffer(440, 0.5, 1)
	orig := in.Clone()

	_, err := MasterTrack(in, DefaultMasterSettings())
	require.NoError(t, err)

	testutil.AssertSlicesInDelta(t, orig.Channels[0], in.Channels[0], 0)
}

func TestMasterTrackRejectsInvalidInput(t *testing.T) {
	_, err := MasterTrack(&Buffer{Rate: 44100}, DefaultMasterSettings())
	assert.ErrorIs(t, err, ErrInvalidInput)
}

type stubMatcher struct {
	out *Buffer
	err error
}

func (m stubMatcher) Match(_ context.Context, _, _ *Buffer) (*Buffer, error) {
	return m.out, m.err
}

func TestMasterWithReferenceUsesMatcher(t *testing.T) {
	target := sineBuffer(440, 0.5, 1)
	reference := sineBuffer(220, 0.5, 1)
	matched := sineBuffer(330, 0.5, 1)

	s := DefaultMasterSettings()
	s.UseReferenceMatching = true

	out, used, err := MasterWithReference(context.Background(), target, reference, s, stubMatcher{out: matched})
	require.NoError(t, err)
	assert.True(t, used)
	assert.Same(t, matched, out)
}

func TestMasterWithReferenceFallsBackOnMatcherError(t *testing.T) {
	target := sineBuffer(440, 0.5, 1)
	reference := sineBuffer(220, 0.5, 1)

	s := DefaultMasterSettings()
	s.UseReferenceMatching = true

	out, used, err := MasterWithReference(context.Background(), target, reference, s,
		stubMatcher{err: errors.New("service unavailable")})
	require.NoError(t, err)
	assert.False(t, used)
	require.NotNil(t, out)

	// The fallback is the standard chain, so the ceiling still holds.
	ceiling := dsp.DBToLinear(s.LimiterThresholdDB)
	for _, ch := range out.Channels {
		testutil.AssertPeakBelow(t, ch, ceiling+1e-9)
	}
}

func TestMasterWithReferenceSkipsMatchingWhenDisabled(t *testing.T) {
	target := sineBuffer(440, 0.5, 1)
	reference := sineBuffer(220, 0.5, 1)

	s := DefaultMasterSettings()
	s.UseReferenceMatching = false

	_, used, err := MasterWithReference(context.Background(), target, reference, s, stubMatcher{out: reference})
	require.NoError(t, err)
	assert.False(t, used)
}

func TestMasterWithReferenceHandlesNilReference(t *testing.T) {
	target := sineBuffer(440, 0.5, 1)

	s := DefaultMasterSettings()
	s.UseReferenceMatching = true

	out, used, err := MasterWithReference(context.Background(), target, nil, s, stubMatcher{out: target})
	require.NoError(t, err)
	assert.False(t, used)
	require.NotNil(t, out)
}
