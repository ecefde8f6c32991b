package engine

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-liveaudio/dsp/core"
	"github.com/cwbudde/algo-liveaudio/dsp/effectchain"
	"github.com/cwbudde/algo-liveaudio/engine/params"
	"github.com/cwbudde/algo-liveaudio/engine/status"
)

// audio is the state owned by the audio thread. Release detaches it from
// the engine; a block already in flight finishes on its own reference.
type audio struct {
	chain      *effectchain.Chain
	last       params.Snapshot
	sampleRate float64
	scratch    []float64

	resetPending atomic.Bool
}

// Engine is a live mono processing chain with a lock-free control surface.
// Control-plane methods may be called from any goroutine. The Process*
// methods must be called from a single audio goroutine at a time.
type Engine struct {
	mu         sync.Mutex
	opts       options
	logger     *logrus.Logger
	sampleRate float64

	state  atomic.Int32
	store  *params.Store
	meters status.Meters
	audio  atomic.Pointer[audio]
}

// New returns an uninitialized engine holding the default settings.
func New(opts ...Option) *Engine {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return &Engine{
		opts:   o,
		logger: o.logger,
		store:  params.NewStore(),
	}
}

// State returns the lifecycle state.
func (e *Engine) State() State {
	return State(e.state.Load())
}

// Initialize builds the processing chain at sampleRate. Settings published
// before Initialize are kept.
func (e *Engine) Initialize(sampleRate float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.State() {
	case StateReleased:
		return ErrReleased
	case StateUninitialized:
	default:
		return ErrAlreadyInitialized
	}

	if !core.ValidSampleRate(sampleRate) {
		e.logger.WithFields(logrus.Fields{
			"function":    "Initialize",
			"sample_rate": sampleRate,
		}).Warn("Rejected sample rate")

		return fmt.Errorf("%w: %g Hz (want %g to %g)", ErrUnsupportedSampleRate,
			sampleRate, core.MinSampleRate, core.MaxSampleRate)
	}

	chain, err := effectchain.New(sampleRate, e.opts.chainOptions()...)
	if err != nil {
		return fmt.Errorf("engine: build chain: %w", err)
	}

	snap := e.store.Snapshot()
	chain.Configure(snap.Settings())
	chain.Reset()

	a := &audio{
		chain:      chain,
		last:       snap,
		sampleRate: sampleRate,
		scratch:    make([]float64, chain.Context().MaxBlockSize),
	}

	e.sampleRate = sampleRate
	e.meters.Reset()
	e.audio.Store(a)
	e.state.Store(int32(StateStopped))

	e.logger.WithFields(logrus.Fields{
		"function":       "Initialize",
		"sample_rate":    sampleRate,
		"max_block_size": chain.Context().MaxBlockSize,
		"fade_ms":        chain.FadeMs(),
		"latency_ms":     e.latencyMsLocked(),
	}).Info("Engine initialized")

	return nil
}

// Start begins processing. The chain is cleared before the first block so
// no stale tail from an earlier run is heard.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.State() {
	case StateUninitialized:
		return ErrNotInitialized
	case StateReleased:
		return ErrReleased
	case StateRunning:
		return nil
	}

	if a := e.audio.Load(); a != nil {
		a.resetPending.Store(true)
	}

	e.state.Store(int32(StateRunning))

	e.logger.WithFields(logrus.Fields{
		"function":    "Start",
		"sample_rate": e.sampleRate,
	}).Info("Engine started")

	return nil
}

// Stop halts processing. A block in flight completes; later blocks are
// silent. Stop is a no-op unless the engine is running.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.state.CompareAndSwap(int32(StateRunning), int32(StateStopped)) {
		return
	}

	e.logger.WithFields(logrus.Fields{
		"function":         "Stop",
		"blocks_processed": e.meters.Snapshot().BlocksProcessed,
	}).Info("Engine stopped")
}

// Release detaches the chain and makes the engine unusable. It is safe to
// call while a block is being processed, and more than once.
func (e *Engine) Release() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.State() == StateReleased {
		return
	}

	e.state.Store(int32(StateReleased))
	e.audio.Store(nil)

	e.logger.WithFields(logrus.Fields{
		"function": "Release",
	}).Info("Engine released")
}

// SampleRate returns the initialized sample rate, or 0.
func (e *Engine) SampleRate() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.sampleRate
}

func (e *Engine) layout() status.Layout {
	return status.Layout{
		ShelvingEdges:  e.opts.shelvingEdges,
		NoiseFrameSize: e.opts.noiseFrameSize,
	}
}

func (e *Engine) latencyMsLocked() float64 {
	switch e.State() {
	case StateUninitialized, StateReleased:
		return 0
	}

	return status.LatencyMs(e.store.Settings(), e.sampleRate, e.layout())
}
