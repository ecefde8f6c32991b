package denoise

import (
	"github.com/cwbudde/algo-liveaudio/dsp/core"
)

// Strength range and default.
const (
	MinStrength     = 0.0
	MaxStrength     = 1.0
	DefaultStrength = 0.5
)

// Config is a complete noise suppressor setting.
type Config struct {
	// Strength scales the subtracted noise estimate. 0 leaves the signal
	// untouched apart from the frame delay.
	Strength float64
	Enabled  bool
}

// DefaultConfig returns half strength, disabled.
func DefaultConfig() Config {
	return Config{Strength: DefaultStrength}
}

// Clamp forces Strength into range; a non-finite value takes the default.
func (c Config) Clamp() Config {
	return Config{
		Strength: core.ClampOr(c.Strength, MinStrength, MaxStrength, DefaultStrength),
		Enabled:  c.Enabled,
	}
}
