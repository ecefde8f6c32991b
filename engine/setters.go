package engine

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-liveaudio/dsp/effects/denoise"
	"github.com/cwbudde/algo-liveaudio/dsp/effects/dynamics"
	"github.com/cwbudde/algo-liveaudio/dsp/filter/bank"
	"github.com/cwbudde/algo-liveaudio/engine/params"
)

type stageConfig[T any] interface {
	comparable
	Clamp() T
}

// update publishes apply(current) on slot. When clamping changed a
// requested value the difference is logged at debug level.
func update[T stageConfig[T]](e *Engine, function string, slot *params.Slot[T], apply func(T) T) T {
	got := *slot.Update(apply)

	if req := apply(got); req != got {
		e.logClamped(function, req, got)
	}

	return got
}

func (e *Engine) logClamped(function string, requested, applied any) {
	e.logger.WithFields(logrus.Fields{
		"function":  function,
		"requested": fmt.Sprintf("%+v", requested),
		"applied":   fmt.Sprintf("%+v", applied),
	}).Debug("Parameter clamped")
}

// SetEqBandGains sets the band gains in dB, lowest band first. Extra
// values are ignored, missing ones leave their band unchanged and
// non-finite values become 0 dB. Gains are clamped to [-12, 12].
func (e *Engine) SetEqBandGains(gains []float64) {
	g := make([]float64, min(len(gains), bank.NumBands))
	copy(g, gains)

	got := update(e, "SetEqBandGains", e.store.EQ, func(c bank.Config) bank.Config {
		return c.WithGains(g)
	})

	for i, v := range g {
		if v != got.Bands[i].GainDB {
			e.logClamped("SetEqBandGains", g, got.Gains())
			break
		}
	}
}

// SetEqBand sets frequency, gain and Q of one band. Values are clamped;
// only an index outside [0, bank.NumBands) is an error.
func (e *Engine) SetEqBand(index int, frequencyHz, gainDB, q float64) error {
	if index < 0 || index >= bank.NumBands {
		return fmt.Errorf("%w: %d", ErrBandIndex, index)
	}

	update(e, "SetEqBand", e.store.EQ, func(c bank.Config) bank.Config {
		c.Bands[index] = bank.BandConfig{FrequencyHz: frequencyHz, GainDB: gainDB, Q: q}
		return c
	})

	return nil
}

// SetEqEnabled switches the equalizer on or off.
func (e *Engine) SetEqEnabled(enabled bool) {
	update(e, "SetEqEnabled", e.store.EQ, func(c bank.Config) bank.Config {
		c.Enabled = enabled
		return c
	})
}

// SetCompressor sets the compressor parameters. The knee and the enabled
// flag are kept.
func (e *Engine) SetCompressor(thresholdDB, ratio, attackMs, releaseMs, makeupGainDB float64) {
	update(e, "SetCompressor", e.store.Compressor, func(c dynamics.CompressorConfig) dynamics.CompressorConfig {
		c.ThresholdDB = thresholdDB
		c.Ratio = ratio
		c.AttackMs = attackMs
		c.ReleaseMs = releaseMs
		c.MakeupGainDB = makeupGainDB

		return c
	})
}

// SetCompressorKnee sets the soft-knee width in dB; 0 is a hard knee.
func (e *Engine) SetCompressorKnee(kneeDB float64) {
	update(e, "SetCompressorKnee", e.store.Compressor, func(c dynamics.CompressorConfig) dynamics.CompressorConfig {
		c.KneeDB = kneeDB
		return c
	})
}

// SetCompressorEnabled switches the compressor on or off.
func (e *Engine) SetCompressorEnabled(enabled bool) {
	update(e, "SetCompressorEnabled", e.store.Compressor, func(c dynamics.CompressorConfig) dynamics.CompressorConfig {
		c.Enabled = enabled
		return c
	})
}

// SetLimiter sets the limiter ceiling, release and lookahead.
func (e *Engine) SetLimiter(thresholdDB, releaseMs, lookaheadMs float64) {
	update(e, "SetLimiter", e.store.Limiter, func(c dynamics.LimiterConfig) dynamics.LimiterConfig {
		c.ThresholdDB = thresholdDB
		c.ReleaseMs = releaseMs
		c.LookaheadMs = lookaheadMs

		return c
	})
}

// SetLimiterEnabled switches the limiter on or off.
func (e *Engine) SetLimiterEnabled(enabled bool) {
	update(e, "SetLimiterEnabled", e.store.Limiter, func(c dynamics.LimiterConfig) dynamics.LimiterConfig {
		c.Enabled = enabled
		return c
	})
}

// SetAGC sets the AGC target level and the largest gain it may apply in
// either direction.
func (e *Engine) SetAGC(targetDB, maxGainDB float64) {
	update(e, "SetAGC", e.store.AGC, func(c dynamics.AGCConfig) dynamics.AGCConfig {
		c.TargetDB = targetDB
		c.MaxGainDB = maxGainDB

		return c
	})
}

// SetAGCTimes sets the AGC level follower attack and release.
func (e *Engine) SetAGCTimes(attackMs, releaseMs float64) {
	update(e, "SetAGCTimes", e.store.AGC, func(c dynamics.AGCConfig) dynamics.AGCConfig {
		c.AttackMs = attackMs
		c.ReleaseMs = releaseMs

		return c
	})
}

// SetAGCEnabled switches the AGC on or off.
func (e *Engine) SetAGCEnabled(enabled bool) {
	update(e, "SetAGCEnabled", e.store.AGC, func(c dynamics.AGCConfig) dynamics.AGCConfig {
		c.Enabled = enabled
		return c
	})
}

// SetNoiseSuppression sets the suppression strength in [0, 1].
func (e *Engine) SetNoiseSuppression(strength float64) {
	update(e, "SetNoiseSuppression", e.store.Noise, func(c denoise.Config) denoise.Config {
		c.Strength = strength
		return c
	})
}

// SetNoiseSuppressionEnabled switches noise suppression on or off.
func (e *Engine) SetNoiseSuppressionEnabled(enabled bool) {
	update(e, "SetNoiseSuppressionEnabled", e.store.Noise, func(c denoise.Config) denoise.Config {
		c.Enabled = enabled
		return c
	})
}
