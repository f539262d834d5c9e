// Package wavio reads and writes PCM WAV files as per-channel float64
// sample slices normalized to [-1, 1]. It is the only package in the
// module that touches audio files on disk.
package wavio

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Full-scale values per PCM bit depth.
const (
	maxInt16 = 32767.0
	maxInt24 = 8388607.0
	maxInt32 = 2147483647.0

	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32
)

// ErrBadFile reports a file that is not decodable PCM WAV.
var ErrBadFile = errors.New("wavio: not a valid WAV file")

// Read decodes a WAV file into per-channel float64 slices in [-1, 1]
// and returns the sample rate.
func Read(path string) ([][]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, 0, fmt.Errorf("%w: %s", ErrBadFile, path)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	if buf.Format == nil || buf.Format.NumChannels <= 0 {
		return nil, 0, fmt.Errorf("%w: %s: missing format", ErrBadFile, path)
	}

	return deinterleave(buf, int(decoder.BitDepth)), buf.Format.SampleRate, nil
}

// Write encodes per-channel float64 slices as a 16-bit PCM WAV file.
// Samples outside [-1, 1] are clamped.
func Write(path string, channels [][]float64, rate int) (err error) {
	if len(channels) == 0 || len(channels[0]) == 0 {
		return fmt.Errorf("wavio: nothing to write to %s", path)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	w, err := newPCMWriter(f, rate, bitsPerSample16, len(channels))
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to start WAV writer for %s: %w", path, err)
	}
	defer func() {
		if closeErr := w.Close(); err == nil {
			err = closeErr
		}
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	if err := w.WriteSamples(interleave(channels, bitsPerSample16)); err != nil {
		return fmt.Errorf("failed to write samples to %s: %w", path, err)
	}
	return nil
}

// deinterleave converts an interleaved PCM buffer into normalized
// per-channel slices.
func deinterleave(buf *audio.IntBuffer, bitDepth int) [][]float64 {
	data := buf.Data
	numChannels := buf.Format.NumChannels
	perChannel := len(data) / numChannels
	out := make([][]float64, numChannels)
	for ch := range out {
		out[ch] = make([]float64, perChannel)
	}

	invMax := 1.0 / maxValue(bitDepth)
	for i := 0; i < perChannel; i++ {
		base := i * numChannels
		for ch := 0; ch < numChannels; ch++ {
			out[ch][i] = float64(data[base+ch]) * invMax
		}
	}
	return out
}

// interleave converts per-channel floats into clamped interleaved ints.
func interleave(channels [][]float64, bitDepth int) []int {
	numChannels := len(channels)
	perChannel := len(channels[0])
	out := make([]int, perChannel*numChannels)

	maxVal := maxValue(bitDepth)
	for i := 0; i < perChannel; i++ {
		base := i * numChannels
		for ch := 0; ch < numChannels; ch++ {
			s := channels[ch][i]
			if s > 1.0 {
				s = 1.0
			} else if s < -1.0 {
				s = -1.0
			}
			out[base+ch] = int(s * maxVal)
		}
	}
	return out
}

func maxValue(bitDepth int) float64 {
	switch bitDepth {
	case bitsPerSample24:
		return maxInt24
	case bitsPerSample32:
		return maxInt32
	default:
		return maxInt16
	}
}
