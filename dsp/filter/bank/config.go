package bank

import (
	"github.com/cwbudde/algo-liveaudio/dsp/core"
	"github.com/cwbudde/algo-liveaudio/dsp/filter/design"
)

// NumBands is the band count of the standard equalizer.
const NumBands = 10

// Parameter ranges. Values outside are clamped, never rejected.
const (
	MinGainDB      = -12.0
	MaxGainDB      = 12.0
	MinQ           = 0.1
	MaxQ           = 10.0
	MinFrequencyHz = 20.0
	MaxFrequencyHz = 20000.0

	// DefaultQ is one octave of bandwidth.
	DefaultQ = design.DefaultQ
)

// ISOCenters are the nominal octave-band centers in Hz.
var ISOCenters = [NumBands]float64{31.5, 63, 125, 250, 500, 1000, 2000, 4000, 8000, 16000}

// BandConfig describes one equalizer band.
type BandConfig struct {
	FrequencyHz float64
	GainDB      float64
	Q           float64
}

// Clamp forces every field into range. A non-finite field takes its value
// from def.
func (b BandConfig) Clamp(def BandConfig) BandConfig {
	return BandConfig{
		FrequencyHz: core.ClampOr(b.FrequencyHz, MinFrequencyHz, MaxFrequencyHz, def.FrequencyHz),
		GainDB:      core.ClampOr(b.GainDB, MinGainDB, MaxGainDB, def.GainDB),
		Q:           core.ClampOr(b.Q, MinQ, MaxQ, def.Q),
	}
}

// IsFlat reports whether the band has no effect.
func (b BandConfig) IsFlat() bool {
	return b.GainDB == 0
}

// DefaultBand returns the flat band at the i-th ISO center. Indices past
// the ISO table fall back to 1 kHz.
func DefaultBand(i int) BandConfig {
	freq := 1000.0
	if i >= 0 && i < NumBands {
		freq = ISOCenters[i]
	}

	return BandConfig{FrequencyHz: freq, GainDB: 0, Q: DefaultQ}
}

// Config is the complete equalizer setting published to the audio thread.
type Config struct {
	Bands   [NumBands]BandConfig
	Enabled bool
}

// DefaultConfig returns a flat, enabled equalizer.
func DefaultConfig() Config {
	var c Config
	for i := range c.Bands {
		c.Bands[i] = DefaultBand(i)
	}

	c.Enabled = true

	return c
}

// Clamp returns c with every band clamped.
func (c Config) Clamp() Config {
	for i := range c.Bands {
		c.Bands[i] = c.Bands[i].Clamp(DefaultBand(i))
	}

	return c
}

// WithGains returns c with the band gains replaced by gains. Only the first
// min(len(gains), NumBands) bands change; the rest keep their gain.
// Non-finite gains become 0 dB.
func (c Config) WithGains(gains []float64) Config {
	for i := 0; i < len(gains) && i < NumBands; i++ {
		c.Bands[i].GainDB = core.ClampOr(gains[i], MinGainDB, MaxGainDB, 0)
	}

	return c
}

// Gains returns the band gains in dB, lowest band first.
func (c Config) Gains() []float64 {
	g := make([]float64, NumBands)
	for i, b := range c.Bands {
		g[i] = b.GainDB
	}

	return g
}

// IsFlat reports whether every band is at 0 dB.
func (c Config) IsFlat() bool {
	for _, b := range c.Bands {
		if !b.IsFlat() {
			return false
		}
	}

	return true
}
