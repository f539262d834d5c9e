package dsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MasterBuilder91/MixMasterAi/internal/testutil"
)

func TestSTFTRoundTrip(t *testing.T) {
	in := testutil.Sine(22050, testRate, 440, 0.7)

	stft := NewSTFT(DefaultFrameSize, DefaultHop)
	frames := stft.Analyze(in)
	out := stft.Synthesize(frames, len(in))

	require.Len(t, out, len(in))
	testutil.AssertNoNaNOrInf(t, out)
	// Interior samples reconstruct; edges suffer window tapering.
	testutil.AssertSlicesInDelta(t, in[DefaultFrameSize:len(in)-DefaultFrameSize],
		out[DefaultFrameSize:len(in)-DefaultFrameSize], 1e-6)
}

func TestSTFTNumBins(t *testing.T) {
	stft := NewSTFT(2048, 512)
	assert.Equal(t, 1025, stft.NumBins())
}

func TestSTFTBinFrequency(t *testing.T) {
	stft := NewSTFT(2048, 512)
	assert.InDelta(t, 0.0, stft.BinFrequency(0, testRate), 1e-9)
	assert.InDelta(t, float64(testRate)/2, stft.BinFrequency(1024, testRate), 1e-6)
}

func TestSTFTPeakBinMatchesTone(t *testing.T) {
	freq := 1000.0
	in := testutil.Sine(16384, testRate, freq, 0.8)

	stft := NewSTFT(DefaultFrameSize, DefaultHop)
	frames := stft.Analyze(in)
	require.NotEmpty(t, frames)

	// Check a frame from the middle of the signal.
	frame := frames[len(frames)/2]
	peakBin, peakMag := 0, 0.0
	for k, c := range frame {
		mag := real(c)*real(c) + imag(c)*imag(c)
		if mag > peakMag {
			peakMag = mag
			peakBin = k
		}
	}
	assert.InDelta(t, freq, stft.BinFrequency(peakBin, testRate),
		stft.BinFrequency(1, testRate)+1)
}

func TestSTFTDefaultsOnBadArgs(t *testing.T) {
	stft := NewSTFT(0, -1)
	assert.Equal(t, DefaultFrameSize/2+1, stft.NumBins())
}

func TestReflectIndex(t *testing.T) {
	tests := []struct {
		i, n, want int
	}{
		{0, 5, 0},
		{4, 5, 4},
		{5, 5, 3},
		{-1, 5, 1},
		{-2, 5, 2},
		{0, 1, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, reflectIndex(tt.i, tt.n), "reflectIndex(%d, %d)", tt.i, tt.n)
	}
}
