package main

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-liveaudio/engine"
)

var errBlockSize = errors.New("block size must be positive")

// EngineFlags configure the processing chain.
type EngineFlags struct {
	EQ       []float64 `name:"eq" sep:"," placeholder:"DB,..." help:"Equalizer band gains in dB, lowest band first."`
	Shelving bool      `help:"Use shelving filters for the outer equalizer bands."`

	Compressor bool    `negatable:"" default:"true" help:"Enable the compressor."`
	Threshold  float64 `default:"-20" help:"Compressor threshold in dBFS."`
	Ratio      float64 `default:"4" help:"Compressor ratio."`
	Knee       float64 `default:"0" help:"Compressor knee width in dB."`
	Makeup     float64 `default:"0" help:"Compressor makeup gain in dB."`

	Limiter   bool    `negatable:"" default:"true" help:"Enable the limiter."`
	Ceiling   float64 `default:"-1" help:"Limiter ceiling in dBFS."`
	Lookahead float64 `default:"5" help:"Limiter lookahead in ms."`

	AGC       bool    `name:"agc" help:"Enable automatic gain control."`
	AGCTarget float64 `name:"agc-target" default:"-18" help:"AGC target level in dBFS."`

	Noise float64 `default:"0" help:"Noise suppression strength in [0, 1]; 0 disables."`

	Fade float64 `default:"10" help:"Stage bypass crossfade in ms."`
}

func (f *EngineFlags) options(g *Globals, log *logrus.Logger) []engine.Option {
	opts := []engine.Option{
		engine.WithLogger(log),
		engine.WithMaxBlockSize(g.BlockSize),
		engine.WithFadeTime(f.Fade),
	}
	if f.Shelving {
		opts = append(opts, engine.WithShelvingEdges())
	}

	return opts
}

// apply publishes the flag settings to e.
func (f *EngineFlags) apply(e *engine.Engine) {
	e.SetEqBandGains(f.EQ)

	e.SetCompressor(f.Threshold, f.Ratio, 10, 100, f.Makeup)
	e.SetCompressorKnee(f.Knee)
	e.SetCompressorEnabled(f.Compressor)

	e.SetLimiter(f.Ceiling, 50, f.Lookahead)
	e.SetLimiterEnabled(f.Limiter)

	e.SetAGC(f.AGCTarget, 12)
	e.SetAGCEnabled(f.AGC)

	if f.Noise > 0 {
		e.SetNoiseSuppression(f.Noise)
	}

	e.SetNoiseSuppressionEnabled(f.Noise > 0)
}

// newEngine builds, configures and starts an engine.
func (f *EngineFlags) newEngine(g *Globals, log *logrus.Logger) (*engine.Engine, error) {
	if g.BlockSize <= 0 {
		return nil, fmt.Errorf("%w: %d", errBlockSize, g.BlockSize)
	}

	e := engine.New(f.options(g, log)...)
	if err := e.Initialize(g.SampleRate); err != nil {
		return nil, fmt.Errorf("initialize engine: %w", err)
	}

	f.apply(e)

	if err := e.Start(); err != nil {
		e.Release()
		return nil, fmt.Errorf("start engine: %w", err)
	}

	return e, nil
}
