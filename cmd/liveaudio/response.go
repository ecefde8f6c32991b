package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-liveaudio/engine"
)

// ResponseCmd prints the analytic magnitude response of an equalizer
// setting.
type ResponseCmd struct {
	EQ       []float64 `name:"eq" sep:"," placeholder:"DB,..." help:"Equalizer band gains in dB, lowest band first."`
	Shelving bool      `help:"Use shelving filters for the outer equalizer bands."`
	Points   int       `default:"31" help:"Number of log-spaced frequencies."`
	MinHz    float64   `name:"min-hz" default:"20" help:"Lowest frequency."`
	MaxHz    float64   `name:"max-hz" default:"20000" help:"Highest frequency."`
}

// Run evaluates and prints the response.
func (c *ResponseCmd) Run(g *Globals) error {
	opts := []engine.Option{engine.WithLogger(g.logger())}
	if c.Shelving {
		opts = append(opts, engine.WithShelvingEdges())
	}

	e := engine.New(opts...)
	if err := e.Initialize(g.SampleRate); err != nil {
		return fmt.Errorf("initialize engine: %w", err)
	}
	defer e.Release()

	e.SetEqBandGains(c.EQ)

	freqs, err := logSpaced(c.MinHz, c.MaxHz, c.Points)
	if err != nil {
		return err
	}

	resp, err := e.EQResponseDB(freqs)
	if err != nil {
		return err
	}

	fmt.Print(renderResponse(freqs, resp, e.LatencyBreakdown().EQMs))

	return nil
}

// logSpaced returns n frequencies spaced evenly on a log axis.
func logSpaced(lo, hi float64, n int) ([]float64, error) {
	if n < 2 || lo <= 0 || hi <= lo {
		return nil, fmt.Errorf("need at least 2 points and 0 < min-hz < max-hz, got %d points in [%g, %g]", n, lo, hi)
	}

	out := make([]float64, n)
	ratio := math.Log(hi / lo)

	for i := range out {
		out[i] = lo * math.Exp(ratio*float64(i)/float64(n-1))
	}

	return out, nil
}

// barScale is the number of characters per dB in the response plot.
const barScale = 2

func renderResponse(freqs, resp []float64, groupDelayMs float64) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Equalizer response"))
	sb.WriteString("\n")

	for i, f := range freqs {
		db := resp[i]
		width := int(math.Round(math.Abs(db) * barScale))

		left := strings.Repeat(" ", 24)
		right := ""

		if db < 0 {
			left = strings.Repeat(" ", max(0, 24-width)) + cutStyle.Render(strings.Repeat("█", min(width, 24)))
		} else {
			right = boostStyle.Render(strings.Repeat("█", min(width, 24)))
		}

		fmt.Fprintf(&sb, "%9.1f Hz %+7.2f dB %s|%s\n", f, db, left, right)
	}

	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(fmt.Sprintf("group delay at 1 kHz: %.3f ms", groupDelayMs)))
	sb.WriteString("\n")

	return sb.String()
}
