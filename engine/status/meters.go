package status

import (
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-liveaudio/dsp/core"
	"github.com/cwbudde/algo-liveaudio/dsp/effectchain"
	"github.com/cwbudde/algo-liveaudio/dsp/effects/dynamics"
)

type atomicFloat struct {
	bits atomic.Uint64
}

func (f *atomicFloat) Store(v float64) { f.bits.Store(math.Float64bits(v)) }

func (f *atomicFloat) Load() float64 { return math.Float64frombits(f.bits.Load()) }

// Meters is written by the audio thread and read by the control plane.
// The zero value is ready to use.
type Meters struct {
	inputPeak    atomicFloat
	outputPeak   atomicFloat
	noiseDB      atomicFloat
	agcGainDB    atomicFloat
	compGRDB     atomicFloat
	limiterGRDB  atomicFloat
	limiterState atomic.Int32

	blocks   atomic.Uint64
	faults   atomic.Uint64
	overruns atomic.Uint64
}

// Record stores the metering of one processed block.
func (m *Meters) Record(v effectchain.Metrics) {
	m.inputPeak.Store(v.InputPeak)
	m.outputPeak.Store(v.OutputPeak)
	m.noiseDB.Store(v.NoiseReductionDB)
	m.agcGainDB.Store(v.AGCGainDB)
	m.compGRDB.Store(v.CompressorGainReductionDB)
	m.limiterGRDB.Store(v.LimiterGainReductionDB)
	m.limiterState.Store(int32(v.LimiterState))
	m.blocks.Add(1)

	if v.Faults > 0 {
		m.faults.Add(uint64(v.Faults))
	}
}

// AddOverrun counts a block that exceeded its real-time budget.
func (m *Meters) AddOverrun() {
	m.overruns.Add(1)
}

// LimiterGainReductionDB returns the most recent limiter reduction.
func (m *Meters) LimiterGainReductionDB() float64 {
	return m.limiterGRDB.Load()
}

// Reset clears levels and counters.
func (m *Meters) Reset() {
	m.Record(effectchain.Metrics{})
	m.blocks.Store(0)
	m.faults.Store(0)
	m.overruns.Store(0)
}

// Reading is a copy of the meters. Each field is read atomically; the set
// as a whole may span two blocks.
type Reading struct {
	InputPeakDB               float64
	OutputPeakDB              float64
	NoiseReductionDB          float64
	AGCGainDB                 float64
	CompressorGainReductionDB float64
	LimiterGainReductionDB    float64
	LimiterState              dynamics.LimiterState
	BlocksProcessed           uint64
	NumericFaults             uint64
	Overruns                  uint64
}

// Snapshot reads every meter. Peaks are converted to dBFS with a floor at
// core.SilenceFloorDB.
func (m *Meters) Snapshot() Reading {
	return Reading{
		InputPeakDB:               core.LinearToDBFloor(m.inputPeak.Load()),
		OutputPeakDB:              core.LinearToDBFloor(m.outputPeak.Load()),
		NoiseReductionDB:          m.noiseDB.Load(),
		AGCGainDB:                 m.agcGainDB.Load(),
		CompressorGainReductionDB: m.compGRDB.Load(),
		LimiterGainReductionDB:    m.limiterGRDB.Load(),
		LimiterState:              dynamics.LimiterState(m.limiterState.Load()),
		BlocksProcessed:           m.blocks.Load(),
		NumericFaults:             m.faults.Load(),
		Overruns:                  m.overruns.Load(),
	}
}
