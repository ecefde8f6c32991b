package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/cwbudde/algo-liveaudio/dsp/core"
	"github.com/cwbudde/algo-liveaudio/dsp/signal"
	"github.com/cwbudde/algo-liveaudio/engine"
)

// RenderCmd processes a generated test signal and reports the metering of each
// segment.
type RenderCmd struct {
	EngineFlags `embed:""`

	Source     string        `default:"tone" enum:"tone,noise,impulses" help:"Test signal: tone, noise or impulses."`
	Frequency  float64       `default:"1000" help:"Test tone frequency in Hz."`
	Amplitude  float64       `default:"0.5" help:"Peak amplitude of the test signal."`
	PeriodMs   float64       `name:"period-ms" default:"20" help:"Impulse spacing in ms."`
	NoiseLevel float64       `name:"noise-level" default:"0" help:"Peak amplitude of added white noise."`
	Duration   time.Duration `default:"2s" help:"Length of the rendered signal."`
	Segments   int           `default:"4" help:"Number of report rows."`
	Seed       int64         `default:"1" help:"Noise seed."`
}

// segment is one row of the render report.
type segment struct {
	Start  time.Duration
	Status engine.EngineStatus
}

// Run renders the signal and prints the report.
func (c *RenderCmd) Run(g *Globals) error {
	log := g.logger()

	e, err := c.newEngine(g, log)
	if err != nil {
		return err
	}
	defer e.Release()

	rows, err := c.render(e, g)
	if err != nil {
		return err
	}

	fmt.Print(renderReport(c, g, rows))
	e.PollDiagnostics()

	return nil
}

// render drives e with the configured source and collects one status per
// segment.
func (c *RenderCmd) render(e *engine.Engine, g *Globals) ([]segment, error) {
	if g.BlockSize <= 0 {
		return nil, fmt.Errorf("%w: %d", errBlockSize, g.BlockSize)
	}

	total := int(c.Duration.Seconds() * g.SampleRate)
	if total <= 0 {
		return nil, fmt.Errorf("duration too short: %s", c.Duration)
	}

	segments := max(1, c.Segments)
	perSegment := (total + segments - 1) / segments

	fill, err := c.source(g, total)
	if err != nil {
		return nil, err
	}

	buf := make([]float64, g.BlockSize)
	rows := make([]segment, 0, segments)

	for start := 0; start < total; start += perSegment {
		end := min(start+perSegment, total)

		for pos := start; pos < end; pos += len(buf) {
			block := buf[:min(len(buf), end-pos)]
			fill(block, pos)
			e.ProcessInPlace(block)
		}

		rows = append(rows, segment{
			Start:  time.Duration(float64(start) / g.SampleRate * float64(time.Second)),
			Status: e.Status(),
		})
	}

	return rows, nil
}

// source returns a function writing the test signal from sample pos on
// into block.
func (c *RenderCmd) source(g *Globals, total int) (func(block []float64, pos int), error) {
	if c.Source == "" || c.Source == "tone" {
		osc := signal.NewOscillator(g.SampleRate, c.Frequency, c.Amplitude, c.Seed)
		osc.SetNoise(c.NoiseLevel)

		return func(block []float64, _ int) { osc.Fill(block) }, nil
	}

	gen := signal.NewGeneratorWithOptions(
		[]core.ProcessorOption{core.WithSampleRate(g.SampleRate), core.WithBlockSize(g.BlockSize)},
		signal.WithSeed(c.Seed),
	)

	var (
		x   []float64
		err error
	)

	switch c.Source {
	case "noise":
		x, err = gen.WhiteNoise(c.Amplitude, total)
	case "impulses":
		x, err = gen.ImpulseTrain(c.Amplitude, c.PeriodMs, total)
	default:
		return nil, fmt.Errorf("unknown source %q", c.Source)
	}

	if err != nil {
		return nil, fmt.Errorf("generate %s: %w", c.Source, err)
	}

	if c.NoiseLevel > 0 {
		gen.SetSeed(c.Seed + 1)

		noise, err := gen.WhiteNoise(c.NoiseLevel, total)
		if err != nil {
			return nil, fmt.Errorf("generate noise: %w", err)
		}

		if err := signal.Mix(x, noise, 1); err != nil {
			return nil, err
		}
	}

	return func(block []float64, pos int) { copy(block, x[pos:]) }, nil
}

func renderReport(c *RenderCmd, g *Globals, rows []segment) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(fmt.Sprintf("liveaudio render: %s, amplitude %.2f, %s at %.0f Hz",
		c.describeSource(), c.Amplitude, c.Duration, g.SampleRate)))
	sb.WriteString("\n")

	sb.WriteString(headerStyle.Render(fmt.Sprintf("%8s %9s %9s %8s %8s %8s %8s %-9s",
		"start", "in dB", "out dB", "comp GR", "lim GR", "agc dB", "nr dB", "limiter")))
	sb.WriteString("\n")

	for _, r := range rows {
		s := r.Status
		sb.WriteString(valueStyle.Render(fmt.Sprintf("%8s %9.2f %9.2f %8.2f %8.2f %8.2f %8.2f %-9s",
			r.Start.Round(time.Millisecond), s.InputPeakDB, s.OutputPeakDB, s.CompressorGainReductionDB,
			s.LimiterGainReductionDB, s.AGCGainDB, s.NoiseReductionDB, s.LimiterState)))
		sb.WriteString("\n")
	}

	if len(rows) > 0 {
		last := rows[len(rows)-1].Status

		sb.WriteString("\n")
		sb.WriteString(dimStyle.Render(fmt.Sprintf("latency %.2f ms, %d blocks", last.LatencyMs, last.BlocksProcessed)))
		sb.WriteString("\n")

		if last.NumericFaults > 0 {
			sb.WriteString(warnStyle.Render(fmt.Sprintf("%d non-finite samples replaced", last.NumericFaults)))
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func (c *RenderCmd) describeSource() string {
	switch c.Source {
	case "noise":
		return "white noise"
	case "impulses":
		return fmt.Sprintf("impulses every %g ms", c.PeriodMs)
	default:
		return fmt.Sprintf("%g Hz tone", c.Frequency)
	}
}
