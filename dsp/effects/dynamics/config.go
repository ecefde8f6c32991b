package dynamics

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-liveaudio/dsp/core"
)

// log2Of10Div20 converts dB to the log2 domain: log2(10) / 20.
const log2Of10Div20 = 0.166096404744

// Compressor parameter ranges and defaults.
const (
	MinCompressorThresholdDB = -60.0
	MaxCompressorThresholdDB = 0.0
	MinCompressorRatio       = 1.0
	MaxCompressorRatio       = 20.0
	MinCompressorAttackMs    = 0.1
	MaxCompressorAttackMs    = 1000.0
	MinCompressorReleaseMs   = 1.0
	MaxCompressorReleaseMs   = 5000.0
	MinCompressorMakeupDB    = 0.0
	MaxCompressorMakeupDB    = 24.0
	MinCompressorKneeDB      = 0.0
	MaxCompressorKneeDB      = 24.0

	DefaultCompressorThresholdDB = -20.0
	DefaultCompressorRatio       = 4.0
	DefaultCompressorAttackMs    = 10.0
	DefaultCompressorReleaseMs   = 100.0
	DefaultCompressorMakeupDB    = 0.0
	DefaultCompressorKneeDB      = 0.0
)

// Limiter parameter ranges and defaults.
const (
	MinLimiterThresholdDB = -24.0
	MaxLimiterThresholdDB = 0.0
	MinLimiterReleaseMs   = 1.0
	MaxLimiterReleaseMs   = 5000.0
	MinLimiterLookaheadMs = 0.0
	MaxLimiterLookaheadMs = 20.0

	DefaultLimiterThresholdDB = -1.0
	DefaultLimiterReleaseMs   = 50.0
	DefaultLimiterLookaheadMs = 5.0
)

// AGC parameter ranges and defaults.
const (
	MinAGCTargetDB  = -40.0
	MaxAGCTargetDB  = -3.0
	MinAGCMaxGainDB = 0.0
	MaxAGCMaxGainDB = 30.0
	MinAGCAttackMs  = 1.0
	MaxAGCAttackMs  = 5000.0
	MinAGCReleaseMs = 10.0
	MaxAGCReleaseMs = 10000.0

	DefaultAGCTargetDB  = -18.0
	DefaultAGCMaxGainDB = 12.0
	DefaultAGCAttackMs  = 50.0
	DefaultAGCReleaseMs = 1000.0

	// AGCSilenceFloorDB is the level below which the AGC holds its gain.
	AGCSilenceFloorDB = -60.0
)

// CompressorConfig is a complete compressor setting.
type CompressorConfig struct {
	ThresholdDB  float64
	Ratio        float64
	AttackMs     float64
	ReleaseMs    float64
	MakeupGainDB float64
	KneeDB       float64
	Enabled      bool
}

// DefaultCompressorConfig returns a hard-knee 4:1 compressor at -20 dB,
// enabled.
func DefaultCompressorConfig() CompressorConfig {
	return CompressorConfig{
		ThresholdDB:  DefaultCompressorThresholdDB,
		Ratio:        DefaultCompressorRatio,
		AttackMs:     DefaultCompressorAttackMs,
		ReleaseMs:    DefaultCompressorReleaseMs,
		MakeupGainDB: DefaultCompressorMakeupDB,
		KneeDB:       DefaultCompressorKneeDB,
		Enabled:      true,
	}
}

// Clamp forces every field into range; non-finite fields take the default.
func (c CompressorConfig) Clamp() CompressorConfig {
	return CompressorConfig{
		ThresholdDB:  core.ClampOr(c.ThresholdDB, MinCompressorThresholdDB, MaxCompressorThresholdDB, DefaultCompressorThresholdDB),
		Ratio:        core.ClampOr(c.Ratio, MinCompressorRatio, MaxCompressorRatio, DefaultCompressorRatio),
		AttackMs:     core.ClampOr(c.AttackMs, MinCompressorAttackMs, MaxCompressorAttackMs, DefaultCompressorAttackMs),
		ReleaseMs:    core.ClampOr(c.ReleaseMs, MinCompressorReleaseMs, MaxCompressorReleaseMs, DefaultCompressorReleaseMs),
		MakeupGainDB: core.ClampOr(c.MakeupGainDB, MinCompressorMakeupDB, MaxCompressorMakeupDB, DefaultCompressorMakeupDB),
		KneeDB:       core.ClampOr(c.KneeDB, MinCompressorKneeDB, MaxCompressorKneeDB, DefaultCompressorKneeDB),
		Enabled:      c.Enabled,
	}
}

// LimiterConfig is a complete limiter setting.
type LimiterConfig struct {
	ThresholdDB float64
	ReleaseMs   float64
	LookaheadMs float64
	Enabled     bool
}

// DefaultLimiterConfig returns a -1 dB limiter with 5 ms lookahead, enabled.
func DefaultLimiterConfig() LimiterConfig {
	return LimiterConfig{
		ThresholdDB: DefaultLimiterThresholdDB,
		ReleaseMs:   DefaultLimiterReleaseMs,
		LookaheadMs: DefaultLimiterLookaheadMs,
		Enabled:     true,
	}
}

// Clamp forces every field into range; non-finite fields take the default.
func (c LimiterConfig) Clamp() LimiterConfig {
	return LimiterConfig{
		ThresholdDB: core.ClampOr(c.ThresholdDB, MinLimiterThresholdDB, MaxLimiterThresholdDB, DefaultLimiterThresholdDB),
		ReleaseMs:   core.ClampOr(c.ReleaseMs, MinLimiterReleaseMs, MaxLimiterReleaseMs, DefaultLimiterReleaseMs),
		LookaheadMs: core.ClampOr(c.LookaheadMs, MinLimiterLookaheadMs, MaxLimiterLookaheadMs, DefaultLimiterLookaheadMs),
		Enabled:     c.Enabled,
	}
}

// AGCConfig is a complete automatic gain control setting.
type AGCConfig struct {
	TargetDB  float64
	MaxGainDB float64
	AttackMs  float64
	ReleaseMs float64
	Enabled   bool
}

// DefaultAGCConfig returns the AGC defaults, disabled.
func DefaultAGCConfig() AGCConfig {
	return AGCConfig{
		TargetDB:  DefaultAGCTargetDB,
		MaxGainDB: DefaultAGCMaxGainDB,
		AttackMs:  DefaultAGCAttackMs,
		ReleaseMs: DefaultAGCReleaseMs,
	}
}

// Clamp forces every field into range; non-finite fields take the default.
func (c AGCConfig) Clamp() AGCConfig {
	return AGCConfig{
		TargetDB:  core.ClampOr(c.TargetDB, MinAGCTargetDB, MaxAGCTargetDB, DefaultAGCTargetDB),
		MaxGainDB: core.ClampOr(c.MaxGainDB, MinAGCMaxGainDB, MaxAGCMaxGainDB, DefaultAGCMaxGainDB),
		AttackMs:  core.ClampOr(c.AttackMs, MinAGCAttackMs, MaxAGCAttackMs, DefaultAGCAttackMs),
		ReleaseMs: core.ClampOr(c.ReleaseMs, MinAGCReleaseMs, MaxAGCReleaseMs, DefaultAGCReleaseMs),
		Enabled:   c.Enabled,
	}
}

func validateSampleRate(sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("sample rate must be positive and finite: %f", sampleRate)
	}

	return nil
}

// reductionDB converts a linear gain to a non-negative reduction in dB.
func reductionDB(gain float64) float64 {
	if gain <= 0 {
		return -core.SilenceFloorDB
	}

	return math.Max(0, -20*math.Log10(gain))
}
