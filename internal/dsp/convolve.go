package dsp

import (
	"github.com/tphakala/simd/c128"
	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Convolution constants.
const (
	// minKernelForFFT is the kernel length above which overlap-save FFT
	// convolution beats direct SIMD convolution. Reverb impulses run to
	// a full second of samples, so they always take the FFT path.
	minKernelForFFT = 400

	// baseFFTBlockSize is the smallest FFT block; it grows in powers of
	// two until it holds twice the kernel.
	baseFFTBlockSize = 512
)

// ConvolveSame convolves x with kernel and returns the centered
// len(x) samples of the full convolution, matching "same" mode.
func ConvolveSame(x, kernel []float64) []float64 {
	n, m := len(x), len(kernel)
	if n == 0 || m == 0 {
		return make([]float64, n)
	}

	// Sliding-dot convolution routines compute correlation, so the
	// kernel is reversed up front. Padding the signal by m-1 zeros on
	// both sides makes the valid output the full convolution.
	rev := make([]float64, m)
	for i := range kernel {
		rev[i] = kernel[m-1-i]
	}

	padded := make([]float64, n+2*(m-1))
	copy(padded[m-1:], x)

	full := make([]float64, n+m-1)
	if m < minKernelForFFT {
		f64.ConvolveValid(full, padded, rev)
	} else {
		newOverlapSave(rev).convolve(full, padded)
	}

	start := (m - 1) / 2
	return full[start : start+n]
}

// overlapSave performs block FFT convolution against a precomputed
// kernel spectrum. Each block of fftSize input samples yields
// fftSize - kernelLen + 1 valid outputs; the leading kernelLen-1
// samples of every block are circular-wrap artifacts and are dropped.
type overlapSave struct {
	fft       *fourier.FFT
	fftSize   int
	blockSize int

	kernelFFT []complex128
	kernelLen int
	scale     float64

	block      []float64
	blockFFT   []complex128
	productFFT []complex128
	ifftOut    []float64
}

func newOverlapSave(kernel []float64) *overlapSave {
	kernelLen := len(kernel)

	fftSize := baseFFTBlockSize
	for fftSize < 2*kernelLen {
		fftSize *= 2
	}
	blockSize := fftSize - kernelLen + 1

	// Circular convolution through the FFT computes x[(n-k) mod N]*h[k];
	// transforming the reversed kernel turns that into the same sliding
	// dot product f64.ConvolveValid computes.
	fft := fourier.NewFFT(fftSize)
	kernelPadded := make([]float64, fftSize)
	for i := range kernel {
		kernelPadded[i] = kernel[kernelLen-1-i]
	}

	bins := fftSize/2 + 1
	return &overlapSave{
		fft:        fft,
		fftSize:    fftSize,
		blockSize:  blockSize,
		kernelFFT:  fft.Coefficients(nil, kernelPadded),
		kernelLen:  kernelLen,
		scale:      1.0 / float64(fftSize),
		block:      make([]float64, fftSize),
		blockFFT:   make([]complex128, bins),
		productFFT: make([]complex128, bins),
		ifftOut:    make([]float64, fftSize),
	}
}

// convolve writes len(signal) - kernelLen + 1 samples into dst.
func (c *overlapSave) convolve(dst, signal []float64) {
	outputLen := len(signal) - c.kernelLen + 1
	if outputLen <= 0 || len(dst) < outputLen {
		return
	}

	overlap := c.kernelLen - 1
	outIdx := 0
	for outIdx < outputLen {
		for i := range c.block {
			c.block[i] = 0
		}
		copyLen := c.fftSize
		if outIdx+copyLen > len(signal) {
			copyLen = len(signal) - outIdx
		}
		copy(c.block, signal[outIdx:outIdx+copyLen])

		c.blockFFT = c.fft.Coefficients(c.blockFFT, c.block)
		c128.Mul(c.productFFT, c.blockFFT, c.kernelFFT)
		c.ifftOut = c.fft.Sequence(c.ifftOut, c.productFFT)

		// gonum's inverse transform is unnormalized.
		f64.Scale(c.ifftOut, c.ifftOut, c.scale)

		valid := c.blockSize
		if outIdx+valid > outputLen {
			valid = outputLen - outIdx
		}
		copy(dst[outIdx:outIdx+valid], c.ifftOut[overlap:overlap+valid])
		outIdx += valid
	}
}
