package dsp

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
)

// windowFloor guards the overlap-add normalization against division by
// vanishing window energy at the signal edges.
const windowFloor = 1e-12

// STFT computes forward and inverse short-time Fourier transforms with
// a periodic Hann window and centered frames. An instance is reusable
// across calls but not safe for concurrent use.
type STFT struct {
	frameSize int
	hop       int
	fft       *fourier.FFT
	window    []float64
}

// NewSTFT returns a transform with the given frame size and hop.
// Non-positive arguments fall back to the defaults (2048/512).
func NewSTFT(frameSize, hop int) *STFT {
	if frameSize <= 0 {
		frameSize = DefaultFrameSize
	}
	if hop <= 0 {
		hop = DefaultHop
	}
	window := make([]float64, frameSize)
	for i := range window {
		window[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(frameSize)))
	}
	return &STFT{
		frameSize: frameSize,
		hop:       hop,
		fft:       fourier.NewFFT(frameSize),
		window:    window,
	}
}

// NumBins returns the number of frequency bins per frame.
func (s *STFT) NumBins() int {
	return s.frameSize/2 + 1
}

// BinFrequency returns the center frequency of bin at the given rate.
func (s *STFT) BinFrequency(bin, rate int) float64 {
	return float64(bin) * float64(rate) / float64(s.frameSize)
}

// Analyze returns the complex spectrogram of x as frames of NumBins
// coefficients. Frames are centered: the signal is reflect-padded by
// half a frame on each side, so frame t covers samples around t*hop.
func (s *STFT) Analyze(x []float64) [][]complex128 {
	padded := reflectPad(x, s.frameSize/2)

	var frames [][]complex128
	buf := make([]float64, s.frameSize)
	for start := 0; start+s.frameSize <= len(padded); start += s.hop {
		for i := range buf {
			buf[i] = padded[start+i] * s.window[i]
		}
		frames = append(frames, s.fft.Coefficients(nil, buf))
	}
	return frames
}

// Synthesize reconstructs n samples from a spectrogram produced by
// Analyze, using windowed overlap-add with squared-window
// normalization.
func (s *STFT) Synthesize(frames [][]complex128, n int) []float64 {
	padLen := n + s.frameSize
	acc := make([]float64, padLen)
	norm := make([]float64, padLen)

	buf := make([]float64, s.frameSize)
	scale := 1.0 / float64(s.frameSize)
	for t, frame := range frames {
		start := t * s.hop
		if start+s.frameSize > padLen {
			break
		}
		buf = s.fft.Sequence(buf, frame)
		for i := range buf {
			// gonum's inverse transform is unnormalized.
			v := buf[i] * scale * s.window[i]
			acc[start+i] += v
			norm[start+i] += s.window[i] * s.window[i]
		}
	}

	for i := range acc {
		if norm[i] > windowFloor {
			acc[i] /= norm[i]
		}
	}

	out := make([]float64, n)
	half := s.frameSize / 2
	copy(out, acc[half:min(half+n, padLen)])
	return out
}

// reflectPad mirrors pad samples of x around each end.
func reflectPad(x []float64, pad int) []float64 {
	n := len(x)
	out := make([]float64, n+2*pad)
	copy(out[pad:], x)
	for i := 0; i < pad; i++ {
		out[pad-1-i] = x[reflectIndex(i+1, n)]
		out[pad+n+i] = x[reflectIndex(n-2-i, n)]
	}
	return out
}

// reflectIndex folds an out-of-range index back into [0, n).
func reflectIndex(i, n int) int {
	if n == 1 {
		return 0
	}
	period := 2 * (n - 1)
	i %= period
	if i < 0 {
		i += period
	}
	if i >= n {
		i = period - i
	}
	return i
}
