package design

import (
	"math"

	"github.com/cwbudde/algo-liveaudio/dsp/filter/biquad"
)

// DefaultQ is the one-octave bandwidth used by the equalizer bands.
const DefaultQ = math.Sqrt2

// Kind selects the response shape of a band.
type Kind int

const (
	// KindPeak is a bell curve around the center frequency.
	KindPeak Kind = iota
	// KindLowShelf boosts or cuts everything below the corner frequency.
	KindLowShelf
	// KindHighShelf boosts or cuts everything above the corner frequency.
	KindHighShelf
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindPeak:
		return "peak"
	case KindLowShelf:
		return "lowshelf"
	case KindHighShelf:
		return "highshelf"
	default:
		return "unknown"
	}
}

// Band designs coefficients for the given kind.
func Band(kind Kind, freq, gainDB, q, sampleRate float64) biquad.Coefficients {
	switch kind {
	case KindLowShelf:
		return LowShelf(freq, gainDB, q, sampleRate)
	case KindHighShelf:
		return HighShelf(freq, gainDB, q, sampleRate)
	default:
		return Peak(freq, gainDB, q, sampleRate)
	}
}

// Peak designs an RBJ peaking-EQ biquad with gain in dB. A gain of exactly
// 0 dB returns the identity section.
func Peak(freq, gainDB, q, sampleRate float64) biquad.Coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok || gainDB == 0 || !finite(gainDB) {
		return biquad.Identity()
	}

	q = normalizedQ(q)
	cw := math.Cos(w0)
	sw := math.Sin(w0)
	alpha := sw / (2 * q)
	a := math.Pow(10, gainDB/40)

	b0 := 1 + alpha*a
	b1 := -2 * cw
	b2 := 1 - alpha*a
	a0 := 1 + alpha/a
	a1 := -2 * cw
	a2 := 1 - alpha/a

	return normalizeBiquad(b0, b1, b2, a0, a1, a2)
}

// LowShelf designs an RBJ low-shelf biquad with gain in dB.
func LowShelf(freq, gainDB, q, sampleRate float64) biquad.Coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok || gainDB == 0 || !finite(gainDB) {
		return biquad.Identity()
	}

	q = normalizedQ(q)
	cw := math.Cos(w0)
	sw := math.Sin(w0)
	alpha := sw / (2 * q)
	a := math.Pow(10, gainDB/40)
	beta := 2 * math.Sqrt(a) * alpha

	b0 := a * ((a + 1) - (a-1)*cw + beta)
	b1 := 2 * a * ((a - 1) - (a+1)*cw)
	b2 := a * ((a + 1) - (a-1)*cw - beta)
	a0 := (a + 1) + (a-1)*cw + beta
	a1 := -2 * ((a - 1) + (a+1)*cw)
	a2 := (a + 1) + (a-1)*cw - beta

	return normalizeBiquad(b0, b1, b2, a0, a1, a2)
}

// HighShelf designs an RBJ high-shelf biquad with gain in dB.
func HighShelf(freq, gainDB, q, sampleRate float64) biquad.Coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok || gainDB == 0 || !finite(gainDB) {
		return biquad.Identity()
	}

	q = normalizedQ(q)
	cw := math.Cos(w0)
	sw := math.Sin(w0)
	alpha := sw / (2 * q)
	a := math.Pow(10, gainDB/40)
	beta := 2 * math.Sqrt(a) * alpha

	b0 := a * ((a + 1) + (a-1)*cw + beta)
	b1 := -2 * a * ((a - 1) + (a+1)*cw)
	b2 := a * ((a + 1) + (a-1)*cw - beta)
	a0 := (a + 1) - (a-1)*cw + beta
	a1 := 2 * ((a - 1) - (a+1)*cw)
	a2 := (a + 1) - (a-1)*cw - beta

	return normalizeBiquad(b0, b1, b2, a0, a1, a2)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func normalizedW0(freq, sampleRate float64) (float64, bool) {
	if sampleRate <= 0 || !finite(sampleRate) {
		return 0, false
	}

	if freq <= 0 || freq >= sampleRate/2 || !finite(freq) {
		return 0, false
	}

	return 2 * math.Pi * freq / sampleRate, true
}

func normalizedQ(q float64) float64 {
	if q <= 0 || !finite(q) {
		return DefaultQ
	}

	return q
}

func normalizeBiquad(b0, b1, b2, a0, a1, a2 float64) biquad.Coefficients {
	if a0 == 0 || !finite(a0) {
		return biquad.Identity()
	}

	return biquad.Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}
