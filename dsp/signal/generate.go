package signal

import (
	"fmt"
	"math/rand"

	"github.com/cwbudde/algo-liveaudio/dsp/core"
)

// Generator renders whole test signals at a fixed sample rate.
type Generator struct {
	cfg  core.ProcessorConfig
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGeneratorWithOptions creates a generator from processor options and
// signal options.
func NewGeneratorWithOptions(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := &Generator{
		cfg:  core.ApplyProcessorOptions(coreOpts...),
		seed: 1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// SetSeed replaces the noise seed.
func (g *Generator) SetSeed(seed int64) {
	g.seed = seed
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude].
// The same seed always yields the same samples.
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if err := g.validate("noise", samples); err != nil {
		return nil, err
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("noise amplitude must be >= 0: %f", amplitude)
	}
	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out, nil
}

// ImpulseTrain generates impulses every periodMs milliseconds, starting at
// sample 0.
func (g *Generator) ImpulseTrain(amplitude, periodMs float64, samples int) ([]float64, error) {
	if err := g.validate("impulse train", samples); err != nil {
		return nil, err
	}
	period := core.MsToSamples(periodMs, g.cfg.SampleRate)
	if period <= 0 {
		return nil, fmt.Errorf("impulse train period must be > 0: %f ms", periodMs)
	}
	out := make([]float64, samples)
	for i := 0; i < samples; i += period {
		out[i] = amplitude
	}
	return out, nil
}

func (g *Generator) validate(kind string, samples int) error {
	if samples <= 0 {
		return fmt.Errorf("%s samples must be > 0: %d", kind, samples)
	}
	if g.cfg.SampleRate <= 0 {
		return fmt.Errorf("%s sample rate must be > 0: %f", kind, g.cfg.SampleRate)
	}
	return nil
}

// Mix adds src scaled by gain into dst.
func Mix(dst, src []float64, gain float64) error {
	if len(dst) != len(src) {
		return fmt.Errorf("mix length mismatch: %d != %d", len(dst), len(src))
	}
	for i, v := range src {
		dst[i] += gain * v
	}
	return nil
}
