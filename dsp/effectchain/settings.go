package effectchain

import (
	"github.com/cwbudde/algo-liveaudio/dsp/effects/denoise"
	"github.com/cwbudde/algo-liveaudio/dsp/effects/dynamics"
	"github.com/cwbudde/algo-liveaudio/dsp/filter/bank"
)

// Settings is the complete configuration of every stage. The Enabled field
// of each stage config drives that stage's bypass fader.
type Settings struct {
	Noise      denoise.Config
	EQ         bank.Config
	AGC        dynamics.AGCConfig
	Compressor dynamics.CompressorConfig
	Limiter    dynamics.LimiterConfig
}

// DefaultSettings returns the stage defaults: flat equalizer, compressor
// and limiter enabled, AGC and noise suppression disabled.
func DefaultSettings() Settings {
	return Settings{
		Noise:      denoise.DefaultConfig(),
		EQ:         bank.DefaultConfig(),
		AGC:        dynamics.DefaultAGCConfig(),
		Compressor: dynamics.DefaultCompressorConfig(),
		Limiter:    dynamics.DefaultLimiterConfig(),
	}
}

// Clamp clamps every stage config.
func (s Settings) Clamp() Settings {
	return Settings{
		Noise:      s.Noise.Clamp(),
		EQ:         s.EQ.Clamp(),
		AGC:        s.AGC.Clamp(),
		Compressor: s.Compressor.Clamp(),
		Limiter:    s.Limiter.Clamp(),
	}
}

// Enabled reports whether stage is switched on.
func (s Settings) Enabled(stage Stage) bool {
	switch stage {
	case StageNoise:
		return s.Noise.Enabled
	case StageEQ:
		return s.EQ.Enabled
	case StageAGC:
		return s.AGC.Enabled
	case StageCompressor:
		return s.Compressor.Enabled
	case StageLimiter:
		return s.Limiter.Enabled
	default:
		return false
	}
}

// active returns a copy with every stage enabled. Stages always run their
// full processing; bypass is the chain's job.
func (s Settings) active() Settings {
	s.Noise.Enabled = true
	s.EQ.Enabled = true
	s.AGC.Enabled = true
	s.Compressor.Enabled = true
	s.Limiter.Enabled = true

	return s
}
