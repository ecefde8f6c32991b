package effectchain

import (
	"math"
)

// gainRuntime multiplies every sample by a fixed gain and records calls.
type gainRuntime struct {
	gain         float64
	latency      int
	processCalls int
	resetCalls   int
	maxBlock     int
	configured   int
	log          *[]Stage
	stage        Stage
}

func (g *gainRuntime) Configure(_ *Settings) { g.configured++ }

func (g *gainRuntime) Process(block []float64) {
	g.processCalls++
	g.maxBlock = max(g.maxBlock, len(block))

	if g.log != nil {
		*g.log = append(*g.log, g.stage)
	}

	for i := range block {
		block[i] *= g.gain
	}
}

func (g *gainRuntime) Reset() { g.resetCalls++ }

func (g *gainRuntime) LatencySamples() int { return g.latency }

// nanRuntime emits NaN for its first poisoned blocks, then passes through.
type nanRuntime struct {
	poisoned   int
	resetCalls int
}

func (n *nanRuntime) Configure(_ *Settings) {}

func (n *nanRuntime) Process(block []float64) {
	if n.poisoned > 0 {
		n.poisoned--
		block[len(block)/2] = math.NaN()
		block[0] = math.Inf(1)
	}
}

func (n *nanRuntime) Reset() { n.resetCalls++ }

func (n *nanRuntime) LatencySamples() int { return 0 }

// gainRegistry returns a registry where every stage is a gainRuntime with
// unity gain. The runtimes are returned by stage.
func gainRegistry(log *[]Stage) (*Registry, *[NumStages]*gainRuntime) {
	r := NewRegistry()
	var rts [NumStages]*gainRuntime

	for _, stage := range Stages() {
		rt := &gainRuntime{gain: 1, log: log, stage: stage}
		rts[stage] = rt
		r.MustRegister(stage, func(Context) (Runtime, error) { return rt, nil })
	}

	return r, &rts
}

// allOff returns settings with every stage switched off.
func allOff() Settings {
	s := DefaultSettings()
	s.Noise.Enabled = false
	s.EQ.Enabled = false
	s.AGC.Enabled = false
	s.Compressor.Enabled = false
	s.Limiter.Enabled = false

	return s
}

func withStage(s Settings, stage Stage, on bool) Settings {
	switch stage {
	case StageNoise:
		s.Noise.Enabled = on
	case StageEQ:
		s.EQ.Enabled = on
	case StageAGC:
		s.AGC.Enabled = on
	case StageCompressor:
		s.Compressor.Enabled = on
	case StageLimiter:
		s.Limiter.Enabled = on
	}

	return s
}

func maxStep(data []float64) float64 {
	m := 0.0
	for i := 1; i < len(data); i++ {
		m = math.Max(m, math.Abs(data[i]-data[i-1]))
	}

	return m
}
