package mixmaster

import (
	"math"
	"math/cmplx"

	"github.com/MasterBuilder91/MixMasterAi/internal/dsp"
)

// Frequency bands and decision thresholds for track analysis.
const (
	sibilanceBandLowHz  = 5000.0
	sibilanceBandHighHz = 8000.0
	muddinessBandLowHz  = 200.0
	muddinessBandHighHz = 400.0
	bassBandLowHz       = 60.0
	bassBandHighHz      = 250.0

	sibilanceRatioLimit = 0.2
	muddinessRatioLimit = 0.3
	bassRatioLimit      = 0.25
)

// Tempo estimation bounds in beats per minute.
const (
	minTempoBPM = 60.0
	maxTempoBPM = 200.0
)

// Genre rule thresholds: tempo splits the field, spectral centroid
// decides brightness within each half.
const (
	fastTempoBPM       = 120.0
	midTempoBPM        = 90.0
	brightCentroidHz   = 3000.0
	moderateCentroidHz = 2000.0
)

// Features summarizes a track for preset selection and reporting.
type Features struct {
	RMS               float64 `json:"rms"`
	Peak              float64 `json:"peak"`
	Loudness          float64 `json:"loudness"`
	SpectralCentroid  float64 `json:"spectral_centroid"`
	SpectralBandwidth float64 `json:"spectral_bandwidth"`
	ZeroCrossingRate  float64 `json:"zero_crossing_rate"`
	TempoBPM          float64 `json:"tempo_bpm"`

	SibilanceRatio float64 `json:"sibilance_ratio"`
	MuddinessRatio float64 `json:"muddiness_ratio"`
	BassRatio      float64 `json:"bass_ratio"`

	NeedsDeEssing bool `json:"needs_de_essing"`
	IsMuddy       bool `json:"is_muddy"`
	BassHeavy     bool `json:"bass_heavy"`
}

// Analyze extracts features from the buffer's mono downmix.
func Analyze(b *Buffer) (*Features, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	mono := b.Mono()

	stft := dsp.NewSTFT(dsp.DefaultFrameSize, dsp.DefaultHop)
	mags := magnitudes(stft.Analyze(mono))

	centroid, bandwidth := spectralShape(stft, mags, b.Rate)
	f := &Features{
		RMS:               dsp.RMS(mono),
		Peak:              b.Peak(),
		Loudness:          dsp.LoudnessProxy(mono),
		SpectralCentroid:  centroid,
		SpectralBandwidth: bandwidth,
		ZeroCrossingRate:  zeroCrossingRate(mono),
		TempoBPM:          estimateTempo(mags, b.Rate),
		SibilanceRatio:    bandRatio(stft, mags, b.Rate, sibilanceBandLowHz, sibilanceBandHighHz),
		MuddinessRatio:    bandRatio(stft, mags, b.Rate, muddinessBandLowHz, muddinessBandHighHz),
		BassRatio:         bandRatio(stft, mags, b.Rate, bassBandLowHz, bassBandHighHz),
	}
	f.NeedsDeEssing = f.SibilanceRatio > sibilanceRatioLimit
	f.IsMuddy = f.MuddinessRatio > muddinessRatioLimit
	f.BassHeavy = f.BassRatio > bassRatioLimit
	return f, nil
}

// DetectGenre classifies a track from its beat features using tempo
// and brightness rules. Returns one of the preset genre names.
func DetectGenre(beat *Features) string {
	switch {
	case beat.TempoBPM > fastTempoBPM:
		if beat.SpectralCentroid > brightCentroidHz {
			return GenreTrap
		}
		return GenreHipHop
	case beat.TempoBPM > midTempoBPM:
		if beat.SpectralCentroid > moderateCentroidHz {
			return GenrePop
		}
		return GenreRAndB
	default:
		return GenreOther
	}
}

// magnitudes converts complex STFT frames to magnitude frames.
func magnitudes(frames [][]complex128) [][]float64 {
	mags := make([][]float64, len(frames))
	for t, frame := range frames {
		mags[t] = make([]float64, len(frame))
		for k, c := range frame {
			mags[t][k] = cmplx.Abs(c)
		}
	}
	return mags
}

// spectralShape returns the magnitude-weighted mean frequency and its
// spread, averaged over all frames.
func spectralShape(stft *dsp.STFT, mags [][]float64, rate int) (centroid, bandwidth float64) {
	var sumMag, sumFreqMag float64
	for _, frame := range mags {
		for k, m := range frame {
			sumMag += m
			sumFreqMag += m * stft.BinFrequency(k, rate)
		}
	}
	if sumMag == 0 {
		return 0, 0
	}
	centroid = sumFreqMag / sumMag

	var sumDev float64
	for _, frame := range mags {
		for k, m := range frame {
			d := stft.BinFrequency(k, rate) - centroid
			sumDev += m * d * d
		}
	}
	bandwidth = math.Sqrt(sumDev / sumMag)
	return centroid, bandwidth
}

// bandRatio returns the mean magnitude inside [lowHz, highHz] divided
// by the mean magnitude overall.
func bandRatio(stft *dsp.STFT, mags [][]float64, rate int, lowHz, highHz float64) float64 {
	var bandSum, totalSum float64
	var bandCount, totalCount int
	for _, frame := range mags {
		for k, m := range frame {
			freq := stft.BinFrequency(k, rate)
			totalSum += m
			totalCount++
			if freq >= lowHz && freq <= highHz {
				bandSum += m
				bandCount++
			}
		}
	}
	if bandCount == 0 || totalCount == 0 || totalSum == 0 {
		return 0
	}
	return (bandSum / float64(bandCount)) / (totalSum / float64(totalCount))
}

// zeroCrossingRate returns the fraction of adjacent sample pairs with
// opposite signs.
func zeroCrossingRate(x []float64) float64 {
	if len(x) < 2 {
		return 0
	}
	crossings := 0
	for i := 1; i < len(x); i++ {
		if (x[i] >= 0) != (x[i-1] >= 0) {
			crossings++
		}
	}
	return float64(crossings) / float64(len(x)-1)
}

// estimateTempo finds the dominant beat period by autocorrelating the
// onset strength envelope (positive spectral flux per frame).
func estimateTempo(mags [][]float64, rate int) float64 {
	if len(mags) < 2 {
		return 0
	}

	flux := make([]float64, len(mags)-1)
	for t := 1; t < len(mags); t++ {
		var sum float64
		for k := range mags[t] {
			if d := mags[t][k] - mags[t-1][k]; d > 0 {
				sum += d
			}
		}
		flux[t-1] = sum
	}

	// Remove the mean so silence does not correlate with itself.
	mean := 0.0
	for _, v := range flux {
		mean += v
	}
	mean /= float64(len(flux))
	for i := range flux {
		flux[i] -= mean
	}

	framesPerSec := float64(rate) / float64(dsp.DefaultHop)
	minLag := int(framesPerSec * 60 / maxTempoBPM)
	maxLag := int(framesPerSec * 60 / minTempoBPM)
	if minLag < 1 {
		minLag = 1
	}
	if maxLag >= len(flux) {
		maxLag = len(flux) - 1
	}
	if maxLag < minLag {
		return 0
	}

	bestLag, bestCorr := 0, 0.0
	for lag := minLag; lag <= maxLag; lag++ {
		var corr float64
		for i := lag; i < len(flux); i++ {
			corr += flux[i] * flux[i-lag]
		}
		if corr > bestCorr {
			bestCorr = corr
			bestLag = lag
		}
	}
	if bestLag == 0 {
		return 0
	}
	return 60 * framesPerSec / float64(bestLag)
}
