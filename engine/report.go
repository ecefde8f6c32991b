package engine

import (
	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-liveaudio/dsp/effectchain"
	"github.com/cwbudde/algo-liveaudio/dsp/effects/dynamics"
	"github.com/cwbudde/algo-liveaudio/dsp/filter/bank"
	"github.com/cwbudde/algo-liveaudio/engine/status"
)

// EngineStatus is a point-in-time report for the control plane.
type EngineStatus struct {
	State      State
	Running    bool
	SampleRate float64
	LatencyMs  float64

	LimiterGainReductionDB    float64
	LimiterState              dynamics.LimiterState
	CompressorGainReductionDB float64
	AGCGainDB                 float64
	NoiseReductionDB          float64
	InputPeakDB               float64
	OutputPeakDB              float64

	BlocksProcessed uint64
	NumericFaults   uint64
	Overruns        uint64
}

// Settings returns a copy of the published settings.
func (e *Engine) Settings() effectchain.Settings {
	return e.store.Settings()
}

// LimiterGainReductionDB returns the peak limiter reduction of the most
// recent block, or 0 when the limiter is disabled.
func (e *Engine) LimiterGainReductionDB() float64 {
	if !e.store.Limiter.Load().Enabled {
		return 0
	}

	return e.meters.LimiterGainReductionDB()
}

// CurrentLatencyMs returns the processing latency implied by the published
// settings. It is 0 before Initialize and after Release.
func (e *Engine) CurrentLatencyMs() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.latencyMsLocked()
}

// LatencyBreakdown returns the latency contribution of each stage.
func (e *Engine) LatencyBreakdown() status.Breakdown {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.State() {
	case StateUninitialized, StateReleased:
		return status.Breakdown{}
	}

	return status.LatencyBreakdown(e.store.Settings(), e.sampleRate, e.layout())
}

// Status returns latency, metering and counters.
func (e *Engine) Status() EngineStatus {
	e.mu.Lock()
	latency := e.latencyMsLocked()
	sampleRate := e.sampleRate
	e.mu.Unlock()

	settings := e.store.Settings()
	r := e.meters.Snapshot()
	st := e.State()

	s := EngineStatus{
		State:                     st,
		Running:                   st == StateRunning,
		SampleRate:                sampleRate,
		LatencyMs:                 latency,
		LimiterGainReductionDB:    r.LimiterGainReductionDB,
		LimiterState:              r.LimiterState,
		CompressorGainReductionDB: r.CompressorGainReductionDB,
		AGCGainDB:                 r.AGCGainDB,
		NoiseReductionDB:          r.NoiseReductionDB,
		InputPeakDB:               r.InputPeakDB,
		OutputPeakDB:              r.OutputPeakDB,
		BlocksProcessed:           r.BlocksProcessed,
		NumericFaults:             r.NumericFaults,
		Overruns:                  r.Overruns,
	}

	if !settings.Limiter.Enabled {
		s.LimiterGainReductionDB = 0
		s.LimiterState = dynamics.LimiterDisabled
	}

	if !settings.Compressor.Enabled {
		s.CompressorGainReductionDB = 0
	}

	if !settings.AGC.Enabled {
		s.AGCGainDB = 0
	}

	if !settings.Noise.Enabled {
		s.NoiseReductionDB = 0
	}

	return s
}

// EQResponseDB returns the analytic magnitude response of the published
// equalizer at each frequency. A disabled equalizer reports 0 dB.
func (e *Engine) EQResponseDB(freqsHz []float64) ([]float64, error) {
	e.mu.Lock()
	st := e.State()
	sampleRate := e.sampleRate
	e.mu.Unlock()

	switch st {
	case StateUninitialized:
		return nil, ErrNotInitialized
	case StateReleased:
		return nil, ErrReleased
	}

	out := make([]float64, len(freqsHz))

	cfg := *e.store.EQ.Load()
	if !cfg.Enabled {
		return out, nil
	}

	bank.ResponseDB(out, cfg, sampleRate, e.opts.shelvingEdges, freqsHz)

	return out, nil
}

// PollDiagnostics logs the current status at info level and returns it.
// Meant to be called periodically from the control plane.
func (e *Engine) PollDiagnostics() EngineStatus {
	s := e.Status()

	e.logger.WithFields(logrus.Fields{
		"function":         "PollDiagnostics",
		"state":            s.State.String(),
		"latency_ms":       s.LatencyMs,
		"input_peak_db":    s.InputPeakDB,
		"output_peak_db":   s.OutputPeakDB,
		"limiter_gr_db":    s.LimiterGainReductionDB,
		"limiter_state":    s.LimiterState.String(),
		"compressor_gr_db": s.CompressorGainReductionDB,
		"agc_gain_db":      s.AGCGainDB,
		"noise_red_db":     s.NoiseReductionDB,
		"blocks":           s.BlocksProcessed,
		"numeric_faults":   s.NumericFaults,
		"overruns":         s.Overruns,
	}).Info("Engine diagnostics")

	if s.NumericFaults > 0 {
		e.logger.WithFields(logrus.Fields{
			"function":       "PollDiagnostics",
			"numeric_faults": s.NumericFaults,
		}).Warn("Non-finite samples were replaced")
	}

	return s
}
