package dsp

// Envelope smoothing coefficients for the compressor gain curve.
// Attack reacts an order of magnitude faster than release: when the
// target gain drops (signal getting louder) the curve follows quickly,
// when it recovers the curve relaxes slowly.
const (
	attackHold  = 0.9
	attackFeed  = 0.1
	releaseHold = 0.99
	releaseFeed = 0.01
)

// De-esser band and envelope parameters.
const (
	// Sibilance lives in the 5-8 kHz band for typical vocal recordings.
	sibilanceLowHz  = 5000.0
	sibilanceHighHz = 8000.0

	// Cutoff for the low-pass that smooths the sibilance envelope.
	deEssEnvelopeHz = 100.0

	// Filter order for the sibilance band extraction.
	sibilanceOrder = 4
)

// Limiter parameters.
const (
	// limiterWindow is the total span of the minimum-gain smoothing
	// window in samples (half before, half after each point).
	limiterWindow = 100
)

// Filter design constants.
const (
	// defaultCutOrder is the roll-off order for hard high/low cuts.
	defaultCutOrder = 4

	// shelfSupportOrder is the order of the gentle support filter that
	// extracts the shelf band before recombination.
	shelfSupportOrder = 2

	// minBandEdgeHz is the lowest permitted band edge for peaking filters.
	minBandEdgeHz = 20.0

	// maxCutoffFraction keeps clamped cutoffs strictly below Nyquist so
	// the bilinear design stays numerically stable.
	maxCutoffFraction = 0.9999

	// minCutoffHz is the lowest permitted cutoff after clamping.
	minCutoffHz = 1.0
)

// Loudness measurement constants.
const (
	// silenceFloorDB is reported for signals with no measurable energy.
	silenceFloorDB = -100.0

	// loudnessEpsilon guards the log in the loudness proxy against
	// all-zero signals.
	loudnessEpsilon = 1e-10

	// loudnessOffsetDB anchors the simplified loudness proxy. This is an
	// approximation of LUFS, not a broadcast-standard measurement.
	loudnessOffsetDB = -23.0
)

// Synthetic reverb impulse parameters.
const (
	// reverbLengthSec is the total impulse length.
	reverbLengthSec = 1.0

	// reverbDecaySec is the exponential decay time constant.
	reverbDecaySec = 0.5

	// DefaultReverbSeed seeds the impulse noise source when the caller
	// does not supply one, keeping renders bit-reproducible.
	DefaultReverbSeed = 1
)

// Short-time Fourier transform defaults, matching common spectral
// analysis settings (2048-sample frames, 75% overlap).
const (
	DefaultFrameSize = 2048
	DefaultHop       = 512
)
