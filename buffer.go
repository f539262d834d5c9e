package mixmaster

import (
	"fmt"

	"github.com/MasterBuilder91/MixMasterAi/internal/dsp"
)

// Channel count limits.
const (
	minChannels = 1
	maxChannels = 2
)

// Buffer holds planar audio: one float64 slice per channel, samples
// normalized to [-1, 1], plus the sample rate. Mono buffers have one
// channel, stereo two.
type Buffer struct {
	Channels [][]float64
	Rate     int
}

// NewBuffer allocates a zeroed buffer with the given shape.
func NewBuffer(channels, frames, rate int) *Buffer {
	chs := make([][]float64, channels)
	for i := range chs {
		chs[i] = make([]float64, frames)
	}
	return &Buffer{Channels: chs, Rate: rate}
}

// Validate checks the buffer is processable: a positive sample rate,
// one or two channels, all non-empty and of equal length.
func (b *Buffer) Validate() error {
	if b == nil {
		return fmt.Errorf("%w: nil buffer", ErrInvalidInput)
	}
	if b.Rate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrInvalidInput, b.Rate)
	}
	if len(b.Channels) < minChannels || len(b.Channels) > maxChannels {
		return fmt.Errorf("%w: %d channels, want 1 or 2", ErrInvalidInput, len(b.Channels))
	}
	n := len(b.Channels[0])
	if n == 0 {
		return fmt.Errorf("%w: empty audio", ErrInvalidInput)
	}
	for ch, c := range b.Channels {
		if len(c) != n {
			return fmt.Errorf("%w: channel %d has %d samples, want %d",
				ErrInvalidInput, ch, len(c), n)
		}
	}
	return nil
}

// Frames returns the number of samples per channel.
func (b *Buffer) Frames() int {
	if len(b.Channels) == 0 {
		return 0
	}
	return len(b.Channels[0])
}

// Stereo reports whether the buffer has two channels.
func (b *Buffer) Stereo() bool {
	return len(b.Channels) == maxChannels
}

// Duration returns the buffer length in seconds.
func (b *Buffer) Duration() float64 {
	if b.Rate <= 0 {
		return 0
	}
	return float64(b.Frames()) / float64(b.Rate)
}

// Clone returns a deep copy.
func (b *Buffer) Clone() *Buffer {
	chs := make([][]float64, len(b.Channels))
	for i, c := range b.Channels {
		chs[i] = make([]float64, len(c))
		copy(chs[i], c)
	}
	return &Buffer{Channels: chs, Rate: b.Rate}
}

// Mono returns a mono downmix of the buffer's channels.
func (b *Buffer) Mono() []float64 {
	return dsp.Downmix(b.Channels)
}

// Peak returns the largest absolute sample value.
func (b *Buffer) Peak() float64 {
	return dsp.PeakAbs(b.Channels)
}

// promoteStereo returns a two-channel view of the buffer, duplicating
// the mono channel when needed. Stereo input is deep-copied so callers
// can mutate the result freely.
func promoteStereo(b *Buffer) *Buffer {
	if b.Stereo() {
		return b.Clone()
	}
	left := make([]float64, b.Frames())
	right := make([]float64, b.Frames())
	copy(left, b.Channels[0])
	copy(right, b.Channels[0])
	return &Buffer{Channels: [][]float64{left, right}, Rate: b.Rate}
}

// demoteMono collapses a stereo buffer back to mono by averaging.
func demoteMono(b *Buffer) *Buffer {
	return &Buffer{Channels: [][]float64{dsp.Downmix(b.Channels)}, Rate: b.Rate}
}
