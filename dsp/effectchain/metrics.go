package effectchain

import (
	"github.com/cwbudde/algo-liveaudio/dsp/core"
	"github.com/cwbudde/algo-liveaudio/dsp/effects/dynamics"
)

// Metrics is the metering of the most recent Process call. Gain reductions
// are non-negative dB values; peaks are linear.
type Metrics struct {
	InputPeak                 float64
	OutputPeak                float64
	NoiseReductionDB          float64
	AGCGainDB                 float64
	CompressorGainReductionDB float64
	LimiterGainReductionDB    float64
	LimiterState              dynamics.LimiterState
	// Faults counts stages that produced non-finite output during the call.
	Faults int
}

// peakAbs returns the largest finite magnitude in buf. NaN and Inf samples
// are replaced by silence downstream, so they do not count.
func peakAbs(buf []float64) float64 {
	peak := 0.0
	for _, v := range buf {
		if !core.IsFinite(v) {
			continue
		}

		if v < 0 {
			v = -v
		}

		if v > peak {
			peak = v
		}
	}

	return peak
}
