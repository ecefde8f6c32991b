package effectchain

import (
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-liveaudio/dsp/core"
)

// Process runs src through the chain into dst and returns the number of
// samples written, min(len(dst), len(src)). dst and src may be the same
// slice. Process does not allocate, lock or block.
func (c *Chain) Process(dst, src []float64) int {
	n := min(len(dst), len(src))
	c.metrics = Metrics{InputPeak: peakAbs(src[:n])}

	if n == 0 {
		return 0
	}

	copy(dst[:n], src[:n])

	maxBlock := c.ctx.MaxBlockSize
	for start := 0; start < n; start += maxBlock {
		c.processChunk(dst[start:min(start+maxBlock, n)])
	}

	c.metrics.OutputPeak = peakAbs(dst[:n])

	return n
}

// ProcessInPlace runs buf through the chain.
func (c *Chain) ProcessInPlace(buf []float64) {
	c.Process(buf, buf)
}

func (c *Chain) processChunk(buf []float64) {
	if core.SanitizeBlock(buf) > 0 {
		c.fault()
	}

	for i := range c.slots {
		sl := &c.slots[i]
		if sl.fader.bypassed() {
			continue
		}

		if sl.fader.start {
			sl.rt.Reset()
			sl.fader.start = false
			sl.fader.hold = sl.rt.LatencySamples()
		}

		if sl.fader.settled() {
			sl.rt.Process(buf)
		} else {
			c.crossfade(sl, buf)
		}

		if core.SanitizeBlock(buf) > 0 {
			sl.rt.Reset()
			c.fault()
		}

		if sl.meter != nil && sl.fader.on() {
			sl.meter.Meter(&c.metrics)
		}
	}
}

// crossfade runs the stage and mixes its output with its input along the
// fader ramp.
func (c *Chain) crossfade(sl *slot, buf []float64) {
	n := len(buf)
	dry := c.dry[:n]
	wetGain := c.wetGain[:n]
	dryGain := c.dryGain[:n]

	copy(dry, buf)
	sl.rt.Process(buf)

	sl.fader.fill(wetGain)
	for i, g := range wetGain {
		dryGain[i] = 1 - g
	}

	vecmath.MulBlockInPlace(buf, wetGain)
	vecmath.MulBlockInPlace(dry, dryGain)
	vecmath.AddBlockInPlace(buf, dry)
}

func (c *Chain) fault() {
	c.metrics.Faults++
	c.faults++
}
