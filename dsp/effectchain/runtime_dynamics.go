package effectchain

import (
	"math"

	"github.com/cwbudde/algo-liveaudio/dsp/effects/dynamics"
)

type compressorRuntime struct {
	fx *dynamics.Compressor
}

func (r *compressorRuntime) Configure(s *Settings) { r.fx.SetConfig(s.Compressor) }

func (r *compressorRuntime) Process(block []float64) { r.fx.ProcessBlock(block) }

func (r *compressorRuntime) Reset() { r.fx.Reset() }

func (r *compressorRuntime) LatencySamples() int { return 0 }

func (r *compressorRuntime) Meter(m *Metrics) {
	m.CompressorGainReductionDB = math.Max(m.CompressorGainReductionDB, r.fx.GainReductionDB())
}

type limiterRuntime struct {
	fx *dynamics.Limiter
}

func (r *limiterRuntime) Configure(s *Settings) { r.fx.SetConfig(s.Limiter) }

func (r *limiterRuntime) Process(block []float64) { r.fx.ProcessBlock(block) }

func (r *limiterRuntime) Reset() { r.fx.Reset() }

func (r *limiterRuntime) LatencySamples() int { return r.fx.LatencySamples() }

func (r *limiterRuntime) Meter(m *Metrics) {
	m.LimiterGainReductionDB = math.Max(m.LimiterGainReductionDB, r.fx.GainReductionDB())
	m.LimiterState = max(m.LimiterState, r.fx.State())
}

type agcRuntime struct {
	fx *dynamics.AGC
}

func (r *agcRuntime) Configure(s *Settings) { r.fx.SetConfig(s.AGC) }

func (r *agcRuntime) Process(block []float64) { r.fx.ProcessBlock(block) }

func (r *agcRuntime) Reset() { r.fx.Reset() }

func (r *agcRuntime) LatencySamples() int { return 0 }

func (r *agcRuntime) Meter(m *Metrics) { m.AGCGainDB = r.fx.GainDB() }
