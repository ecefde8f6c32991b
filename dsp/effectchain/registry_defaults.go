package effectchain

import (
	"fmt"

	"github.com/cwbudde/algo-liveaudio/dsp/effects/denoise"
	"github.com/cwbudde/algo-liveaudio/dsp/effects/dynamics"
	"github.com/cwbudde/algo-liveaudio/dsp/filter/bank"
)

// DefaultRegistry returns a registry with the built-in stage runtimes.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	registerDefaultStages(r)

	return r
}

func registerDefaultStages(r *Registry) {
	r.MustRegister(StageNoise, func(ctx Context) (Runtime, error) {
		var opts []denoise.Option
		if ctx.NoiseFrameSize > 0 {
			opts = append(opts, denoise.WithFrameSize(ctx.NoiseFrameSize))
		}

		fx, err := denoise.New(ctx.SampleRate, opts...)
		if err != nil {
			return nil, fmt.Errorf("effectchain: create noise suppressor: %w", err)
		}

		return &noiseRuntime{fx: fx}, nil
	})

	r.MustRegister(StageEQ, func(ctx Context) (Runtime, error) {
		var opts []bank.Option
		if ctx.ShelvingEdges {
			opts = append(opts, bank.WithShelvingEdges())
		}

		fx, err := bank.New(ctx.SampleRate, opts...)
		if err != nil {
			return nil, fmt.Errorf("effectchain: create equalizer: %w", err)
		}

		return &eqRuntime{fx: fx}, nil
	})

	r.MustRegister(StageAGC, func(ctx Context) (Runtime, error) {
		fx, err := dynamics.NewAGC(ctx.SampleRate)
		if err != nil {
			return nil, fmt.Errorf("effectchain: create agc: %w", err)
		}

		return &agcRuntime{fx: fx}, nil
	})

	r.MustRegister(StageCompressor, func(ctx Context) (Runtime, error) {
		fx, err := dynamics.NewCompressor(ctx.SampleRate)
		if err != nil {
			return nil, fmt.Errorf("effectchain: create compressor: %w", err)
		}

		return &compressorRuntime{fx: fx}, nil
	})

	r.MustRegister(StageLimiter, func(ctx Context) (Runtime, error) {
		fx, err := dynamics.NewLimiter(ctx.SampleRate)
		if err != nil {
			return nil, fmt.Errorf("effectchain: create limiter: %w", err)
		}

		return &limiterRuntime{fx: fx}, nil
	})
}
