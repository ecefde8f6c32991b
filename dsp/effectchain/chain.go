package effectchain

import (
	"fmt"

	"github.com/cwbudde/algo-liveaudio/dsp/core"
)

const (
	// DefaultMaxBlockSize is the default chunk length.
	DefaultMaxBlockSize = 1024
	// DefaultFadeMs is the default bypass crossfade time.
	DefaultFadeMs = 10.0
)

// Option configures a Chain.
type Option func(*options)

type options struct {
	ctx      Context
	registry *Registry
	fadeMs   float64
}

// WithMaxBlockSize sets the longest chunk handed to a stage.
func WithMaxBlockSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.ctx.MaxBlockSize = n
		}
	}
}

// WithFadeTime sets the bypass crossfade time in milliseconds. Zero
// switches instantly.
func WithFadeTime(ms float64) Option {
	return func(o *options) {
		if core.IsFinite(ms) && ms >= 0 {
			o.fadeMs = ms
		}
	}
}

// WithShelvingEdges makes the outer equalizer bands shelves.
func WithShelvingEdges() Option {
	return func(o *options) {
		o.ctx.ShelvingEdges = true
	}
}

// WithNoiseFrameSize sets the noise suppressor STFT length.
func WithNoiseFrameSize(n int) Option {
	return func(o *options) {
		o.ctx.NoiseFrameSize = n
	}
}

// WithRegistry builds the stages from r instead of DefaultRegistry.
func WithRegistry(r *Registry) Option {
	return func(o *options) {
		if r != nil {
			o.registry = r
		}
	}
}

type slot struct {
	rt    Runtime
	meter Meter
	fader fader
}

// Chain owns the stage runtimes, their bypass faders and the scratch
// buffers of the crossfade. All buffers are sized at construction.
type Chain struct {
	ctx    Context
	fadeMs float64
	slots  [NumStages]slot

	settings Settings
	active   Settings

	dry     []float64
	wetGain []float64
	dryGain []float64

	metrics Metrics
	faults  uint64
}

// New creates a Chain at sampleRate configured with DefaultSettings.
func New(sampleRate float64, opts ...Option) (*Chain, error) {
	if !core.ValidSampleRate(sampleRate) {
		return nil, fmt.Errorf("effectchain: sample rate must be in [%g, %g]: %f",
			core.MinSampleRate, core.MaxSampleRate, sampleRate)
	}

	o := options{
		ctx:    Context{SampleRate: sampleRate, MaxBlockSize: DefaultMaxBlockSize},
		fadeMs: DefaultFadeMs,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	if o.registry == nil {
		o.registry = DefaultRegistry()
	}

	c := &Chain{
		ctx:     o.ctx,
		fadeMs:  o.fadeMs,
		dry:     make([]float64, o.ctx.MaxBlockSize),
		wetGain: make([]float64, o.ctx.MaxBlockSize),
		dryGain: make([]float64, o.ctx.MaxBlockSize),
	}

	fadeSamples := core.MsToSamples(o.fadeMs, sampleRate)

	for _, stage := range Stages() {
		factory := o.registry.Lookup(stage)
		if factory == nil {
			return nil, fmt.Errorf("effectchain: no runtime registered for stage %s", stage)
		}

		rt, err := factory(c.ctx)
		if err != nil {
			return nil, err
		}

		meter, _ := rt.(Meter)
		c.slots[stage] = slot{rt: rt, meter: meter, fader: newFader(fadeSamples)}
	}

	c.Configure(DefaultSettings())
	c.Reset()

	return c, nil
}

// Context returns the chain context.
func (c *Chain) Context() Context { return c.ctx }

// SampleRate returns the sample rate in Hz.
func (c *Chain) SampleRate() float64 { return c.ctx.SampleRate }

// FadeMs returns the bypass crossfade time.
func (c *Chain) FadeMs() float64 { return c.fadeMs }

// Settings returns the active (clamped) settings.
func (c *Chain) Settings() Settings { return c.settings }

// Runtime returns the runtime of stage, or nil.
func (c *Chain) Runtime(stage Stage) Runtime {
	if stage < 0 || stage >= NumStages {
		return nil
	}

	return c.slots[stage].rt
}

// Configure clamps s and hands it to every stage. Stages whose Enabled
// flag changed start their bypass crossfade. Configure does not allocate.
func (c *Chain) Configure(s Settings) {
	c.settings = s.Clamp()
	c.active = c.settings.active()

	for i := range c.slots {
		c.slots[i].rt.Configure(&c.active)
		c.slots[i].fader.set(c.settings.Enabled(Stage(i)))
	}
}

// Reset clears every stage's state and completes pending crossfades.
func (c *Chain) Reset() {
	for i := range c.slots {
		c.slots[i].rt.Reset()
		c.slots[i].fader.snap()
	}

	c.metrics = Metrics{}
}

// StageGain returns the current wet share of stage's bypass fader.
func (c *Chain) StageGain(stage Stage) float64 {
	if stage < 0 || stage >= NumStages {
		return 0
	}

	return c.slots[stage].fader.gain
}

// LatencySamples returns the integer program delay of the enabled stages.
func (c *Chain) LatencySamples() int {
	total := 0
	for i := range c.slots {
		if c.slots[i].fader.on() {
			total += c.slots[i].rt.LatencySamples()
		}
	}

	return total
}

// Metrics returns the metering of the most recent Process call. Stages
// that are switched off report zero.
func (c *Chain) Metrics() Metrics { return c.metrics }

// Faults returns the number of non-finite stage outputs since creation.
func (c *Chain) Faults() uint64 { return c.faults }
