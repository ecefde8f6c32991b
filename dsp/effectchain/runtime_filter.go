package effectchain

import (
	"math"

	"github.com/cwbudde/algo-liveaudio/dsp/effects/denoise"
	"github.com/cwbudde/algo-liveaudio/dsp/filter/bank"
)

type eqRuntime struct {
	fx *bank.Equalizer
}

func (r *eqRuntime) Configure(s *Settings) { r.fx.Apply(s.EQ) }

func (r *eqRuntime) Process(block []float64) { r.fx.ProcessBlock(block) }

func (r *eqRuntime) Reset() { r.fx.Reset() }

// LatencySamples is zero: the equalizer is minimum phase and adds only
// frequency-dependent group delay.
func (r *eqRuntime) LatencySamples() int { return 0 }

type noiseRuntime struct {
	fx *denoise.Suppressor
}

func (r *noiseRuntime) Configure(s *Settings) { r.fx.SetConfig(s.Noise) }

func (r *noiseRuntime) Process(block []float64) { r.fx.ProcessBlock(block) }

func (r *noiseRuntime) Reset() { r.fx.Reset() }

func (r *noiseRuntime) LatencySamples() int { return r.fx.LatencySamples() }

func (r *noiseRuntime) Meter(m *Metrics) {
	m.NoiseReductionDB = math.Max(m.NoiseReductionDB, r.fx.ReductionDB())
}
