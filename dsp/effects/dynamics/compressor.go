package dynamics

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-liveaudio/dsp/core"
	"github.com/cwbudde/algo-liveaudio/dsp/envelope"
)

// Compressor is a feed-forward peak compressor. The detector runs a peak
// follower over |x|; the gain computer works in the log2 domain:
//
//	reductionDb = max(0, (levelDb - thresholdDb) * (1 - 1/ratio))
//
// for a hard knee, with a quadratic blend across KneeDB for a soft knee.
// Makeup gain is applied after the reduction.
//
// A disabled compressor passes audio through and leaves its detector
// untouched. Owners that bypass it from outside, such as the effect chain,
// call Reset before switching it back on, so it restarts from a cleared
// envelope.
type Compressor struct {
	sampleRate float64
	cfg        CompressorConfig

	env envelope.Follower

	thresholdLog2    float64
	kneeWidthLog2    float64
	invKneeWidthLog2 float64
	slope            float64 // 1 - 1/ratio
	makeupGainLin    float64

	lastGain    float64
	blockPeakGR float64
}

// NewCompressor returns a compressor with DefaultCompressorConfig.
func NewCompressor(sampleRate float64) (*Compressor, error) {
	if err := validateSampleRate(sampleRate); err != nil {
		return nil, fmt.Errorf("compressor: %w", err)
	}

	c := &Compressor{sampleRate: sampleRate, lastGain: 1}
	if err := c.env.Configure(sampleRate, DefaultCompressorAttackMs, DefaultCompressorReleaseMs); err != nil {
		return nil, err
	}

	c.SetConfig(DefaultCompressorConfig())

	return c, nil
}

// SetConfig clamps and applies cfg. The detector envelope is kept.
func (c *Compressor) SetConfig(cfg CompressorConfig) {
	cfg = cfg.Clamp()
	c.cfg = cfg

	c.env.SetTimes(cfg.AttackMs, cfg.ReleaseMs)
	c.thresholdLog2 = cfg.ThresholdDB * log2Of10Div20
	c.kneeWidthLog2 = cfg.KneeDB * log2Of10Div20

	c.invKneeWidthLog2 = 0
	if c.kneeWidthLog2 > 0 {
		c.invKneeWidthLog2 = 1 / c.kneeWidthLog2
	}

	c.slope = 1 - 1/cfg.Ratio
	c.makeupGainLin = mathPower2(cfg.MakeupGainDB * log2Of10Div20)
}

// Config returns the active (clamped) configuration.
func (c *Compressor) Config() CompressorConfig { return c.cfg }

// SampleRate returns the sample rate.
func (c *Compressor) SampleRate() float64 { return c.sampleRate }

// ReductionDB evaluates the static curve: the gain reduction in dB, as a
// positive number, for a detector level in dBFS.
func (c *Compressor) ReductionDB(levelDB float64) float64 {
	return reductionDB(c.GainForLevel(core.DBToLinear(levelDB)))
}

// GainForLevel evaluates the static curve for a linear detector level and
// returns the linear gain before makeup.
func (c *Compressor) GainForLevel(level float64) float64 {
	if level <= 0 {
		return 1
	}

	overshoot := mathLog2(level) - c.thresholdLog2

	if c.kneeWidthLog2 <= 0 {
		if overshoot <= 0 {
			return 1
		}

		return mathPower2(-overshoot * c.slope)
	}

	halfWidth := c.kneeWidthLog2 * 0.5
	if overshoot < -halfWidth {
		return 1
	}

	effective := overshoot
	if overshoot <= halfWidth {
		scratch := overshoot + halfWidth
		effective = scratch * scratch * 0.5 * c.invKneeWidthLog2
	}

	return mathPower2(-effective * c.slope)
}

// ProcessSample compresses one sample.
func (c *Compressor) ProcessSample(x float64) float64 {
	if !c.cfg.Enabled {
		return x
	}

	return c.process(x)
}

func (c *Compressor) process(x float64) float64 {
	level := c.env.Update(math.Abs(x))
	gain := c.GainForLevel(level)
	c.lastGain = gain

	return x * gain * c.makeupGainLin
}

// ProcessBlock compresses buf in place and records the block's peak gain
// reduction. Zero-alloc.
func (c *Compressor) ProcessBlock(buf []float64) {
	if !c.cfg.Enabled {
		c.blockPeakGR = 0
		return
	}

	minGain := 1.0
	for i, x := range buf {
		buf[i] = c.process(x)
		if c.lastGain < minGain {
			minGain = c.lastGain
		}
	}

	c.env.SetLevel(core.FlushDenormals(c.env.Level()))
	c.blockPeakGR = reductionDB(minGain)
}

// GainReductionDB returns the largest reduction applied during the most
// recent block, as a positive number of dB. 0 when disabled.
func (c *Compressor) GainReductionDB() float64 {
	if !c.cfg.Enabled {
		return 0
	}

	return c.blockPeakGR
}

// CurrentGainReductionDB returns the reduction applied to the last sample.
func (c *Compressor) CurrentGainReductionDB() float64 {
	return reductionDB(c.lastGain)
}

// Envelope returns the current detector level.
func (c *Compressor) Envelope() float64 { return c.env.Level() }

// Reset clears detector state and metering.
func (c *Compressor) Reset() {
	c.env.Reset()
	c.lastGain = 1
	c.blockPeakGR = 0
}
