package dsp

// FilterKind selects the shape of an EQ move.
type FilterKind int

const (
	// FilterHighpass removes content below Freq.
	FilterHighpass FilterKind = iota
	// FilterLowpass removes content above Freq.
	FilterLowpass
	// FilterShelfLow scales content below Freq by GainDB.
	FilterShelfLow
	// FilterShelfHigh scales content above Freq by GainDB.
	FilterShelfHigh
	// FilterPeaking scales the band around Freq by GainDB, width set by Q.
	FilterPeaking
)

// FilterSpec describes a single EQ move.
type FilterSpec struct {
	Kind   FilterKind
	Freq   float64 // corner or center frequency, Hz
	GainDB float64 // shelf/peaking gain; ignored for cuts
	Q      float64 // peaking bandwidth = Freq/Q; ignored otherwise
	Order  int     // roll-off order for cuts; shelves use a fixed support order
}

// ApplyFilter applies one EQ move to a channel and returns a new slice.
// Shelves and peaking bells are additive: the band is extracted with a
// gentle support filter, scaled, and recombined as y - band + band*gain.
// This keeps the untouched region bit-exact, so a zero-dB move is a
// true no-op.
func ApplyFilter(x []float64, rate int, spec FilterSpec) []float64 {
	switch spec.Kind {
	case FilterHighpass:
		return Highpass(x, rate, spec.Freq, spec.Order)
	case FilterLowpass:
		return Lowpass(x, rate, spec.Freq, spec.Order)
	case FilterShelfLow:
		band := Lowpass(x, rate, spec.Freq, shelfSupportOrder)
		return recombine(x, band, spec.GainDB)
	case FilterShelfHigh:
		band := Highpass(x, rate, spec.Freq, shelfSupportOrder)
		return recombine(x, band, spec.GainDB)
	case FilterPeaking:
		low, high := peakingEdges(rate, spec.Freq, spec.Q)
		band := Bandpass(x, rate, low, high, shelfSupportOrder)
		return recombine(x, band, spec.GainDB)
	}
	out := make([]float64, len(x))
	copy(out, x)
	return out
}

// peakingEdges computes the band edges for a peaking move. Bandwidth is
// Freq/Q; edges are clamped to [20 Hz, Nyquist-1].
func peakingEdges(rate int, freq, q float64) (low, high float64) {
	if q <= 0 {
		q = 1
	}
	bw := freq / q
	low = freq - bw/2
	if low < minBandEdgeHz {
		low = minBandEdgeHz
	}
	high = freq + bw/2
	if limit := Nyquist(rate) - 1; high > limit {
		high = limit
	}
	return low, high
}

// recombine replaces the extracted band with a gain-scaled copy.
// A zero gain returns the input unchanged.
func recombine(x, band []float64, gainDB float64) []float64 {
	out := make([]float64, len(x))
	copy(out, x)
	if gainDB == 0 {
		return out
	}
	g := DBToLinear(gainDB)
	for i := range out {
		out[i] = out[i] - band[i] + band[i]*g
	}
	return out
}
