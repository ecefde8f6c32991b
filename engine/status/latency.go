package status

import (
	"time"

	"github.com/cwbudde/algo-liveaudio/dsp/core"
	"github.com/cwbudde/algo-liveaudio/dsp/effectchain"
	"github.com/cwbudde/algo-liveaudio/dsp/effects/denoise"
	"github.com/cwbudde/algo-liveaudio/dsp/filter/bank"
)

// ProbeHz is the frequency at which the equalizer group delay is measured.
const ProbeHz = 1000.0

// Layout is the part of the chain construction that affects latency.
type Layout struct {
	ShelvingEdges bool
	// NoiseFrameSize is the suppressor STFT length; 0 means
	// denoise.DefaultFrameSize.
	NoiseFrameSize int
}

// Breakdown is the latency contribution of each stage in milliseconds.
type Breakdown struct {
	EQMs      float64
	LimiterMs float64
	NoiseMs   float64
}

// Total returns the summed latency.
func (b Breakdown) Total() float64 {
	return b.EQMs + b.LimiterMs + b.NoiseMs
}

// LatencyBreakdown computes the per-stage latency of s. Disabled stages
// contribute nothing.
func LatencyBreakdown(s effectchain.Settings, sampleRate float64, layout Layout) Breakdown {
	var b Breakdown
	if !core.ValidSampleRate(sampleRate) {
		return b
	}

	s = s.Clamp()

	if s.EQ.Enabled {
		b.EQMs = bank.GroupDelayMs(s.EQ, sampleRate, ProbeHz, layout.ShelvingEdges)
	}

	if s.Limiter.Enabled {
		b.LimiterMs = core.SamplesToMs(core.MsToSamples(s.Limiter.LookaheadMs, sampleRate), sampleRate)
	}

	if s.Noise.Enabled {
		frame := layout.NoiseFrameSize
		if frame <= 0 {
			frame = denoise.DefaultFrameSize
		}

		b.NoiseMs = core.SamplesToMs(frame, sampleRate)
	}

	return b
}

// LatencyMs returns the total latency of s in milliseconds.
func LatencyMs(s effectchain.Settings, sampleRate float64, layout Layout) float64 {
	return LatencyBreakdown(s, sampleRate, layout).Total()
}

// BlockBudget returns the wall-clock time available to process n samples
// in real time.
func BlockBudget(n int, sampleRate float64) time.Duration {
	if n <= 0 || sampleRate <= 0 {
		return 0
	}

	return time.Duration(float64(n) * float64(time.Second) / sampleRate)
}
