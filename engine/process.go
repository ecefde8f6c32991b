package engine

import (
	"time"

	"github.com/cwbudde/algo-liveaudio/dsp/core"
	"github.com/cwbudde/algo-liveaudio/dsp/effectchain"
	"github.com/cwbudde/algo-liveaudio/engine/status"
)

// ProcessBlock processes src into dst and returns min(len(dst), len(src)).
// dst and src may alias. When the engine is not running dst is silenced.
func (e *Engine) ProcessBlock(dst, src []float64) int {
	n := min(len(dst), len(src))

	a := e.acquire()
	if a == nil {
		core.Zero(dst[:n])
		return n
	}

	start := e.startTimer()

	a.chain.Process(dst[:n], src[:n])
	e.meters.Record(a.chain.Metrics())
	e.checkDeadline(start, n, a.sampleRate)

	return n
}

// ProcessInPlace processes buf in place.
func (e *Engine) ProcessInPlace(buf []float64) {
	e.ProcessBlock(buf, buf)
}

// ProcessFloat32 processes single-precision audio. Conversion runs through
// a scratch buffer of the chain's maximum block size, so any length is
// accepted without allocation.
func (e *Engine) ProcessFloat32(dst, src []float32) int {
	n := min(len(dst), len(src))

	a := e.acquire()
	if a == nil {
		clear(dst[:n])
		return n
	}

	start := e.startTimer()

	var m effectchain.Metrics

	for off := 0; off < n; off += len(a.scratch) {
		end := min(off+len(a.scratch), n)
		buf := a.scratch[:end-off]

		core.Float32ToFloat64(buf, src[off:end])
		a.chain.ProcessInPlace(buf)
		core.Float64ToFloat32(dst[off:end], buf)

		m = mergeMetrics(m, a.chain.Metrics(), off == 0)
	}

	e.meters.Record(m)
	e.checkDeadline(start, n, a.sampleRate)

	return n
}

// acquire returns the audio state for one block, or nil when the engine
// is not running. It applies a pending reset and the latest snapshot.
func (e *Engine) acquire() *audio {
	if State(e.state.Load()) != StateRunning {
		return nil
	}

	a := e.audio.Load()
	if a == nil {
		return nil
	}

	if snap := e.store.Snapshot(); snap != a.last {
		a.last = snap
		a.chain.Configure(snap.Settings())
	}

	if a.resetPending.Load() {
		a.resetPending.Store(false)
		a.chain.Reset()
	}

	return a
}

func (e *Engine) startTimer() time.Time {
	if !e.opts.deadline {
		return time.Time{}
	}

	return time.Now()
}

func (e *Engine) checkDeadline(start time.Time, n int, sampleRate float64) {
	if !e.opts.deadline {
		return
	}

	if time.Since(start) > status.BlockBudget(n, sampleRate) {
		e.meters.AddOverrun()
	}
}

// mergeMetrics folds the metering of one chunk into the block total:
// peaks and gain reductions take the maximum, faults add up, levels that
// describe a state take the latest chunk.
func mergeMetrics(acc, m effectchain.Metrics, first bool) effectchain.Metrics {
	if first {
		return m
	}

	acc.InputPeak = max(acc.InputPeak, m.InputPeak)
	acc.OutputPeak = max(acc.OutputPeak, m.OutputPeak)
	acc.CompressorGainReductionDB = max(acc.CompressorGainReductionDB, m.CompressorGainReductionDB)
	acc.LimiterGainReductionDB = max(acc.LimiterGainReductionDB, m.LimiterGainReductionDB)
	acc.LimiterState = max(acc.LimiterState, m.LimiterState)
	acc.NoiseReductionDB = m.NoiseReductionDB
	acc.AGCGainDB = m.AGCGainDB
	acc.Faults += m.Faults

	return acc
}
