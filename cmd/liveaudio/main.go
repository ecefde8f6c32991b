// Command liveaudio drives the processing engine with generated test
// signals.
//
// Usage:
//
//	liveaudio render [flags]     process a test signal and print per-segment metering
//	liveaudio response [flags]   print the analytic equalizer response
//	liveaudio tui [flags]        adjust a running engine interactively
//
// Examples:
//
//	liveaudio render --eq=0,0,0,0,0,6 --frequency=1000 --amplitude=0.9
//	liveaudio render --noise=0.7 --noise-level=0.05 --duration=5s
//	liveaudio render --source=impulses --period-ms=10 --lookahead=10
//	liveaudio response --eq=-6,-3,0,3,6 --shelving
//	liveaudio tui --agc
package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"
)

var version = "0.1.0"

// Globals are the flags shared by every command.
type Globals struct {
	SampleRate float64 `name:"sample-rate" short:"r" default:"48000" help:"Sample rate in Hz."`
	BlockSize  int     `name:"block-size" short:"b" default:"256" help:"Samples per processing block."`
	Verbose    bool    `short:"v" help:"Log debug messages, including clamped parameters."`
	JSONLog    bool    `name:"json-log" help:"Write logs as JSON."`
}

// CLI defines the command-line interface.
type CLI struct {
	Globals

	Version  kong.VersionFlag `help:"Show version information."`
	Render   RenderCmd        `cmd:"" help:"Process a generated test signal and print per-segment metering."`
	Response ResponseCmd      `cmd:"" help:"Print the analytic equalizer response."`
	TUI      TUICmd           `cmd:"" name:"tui" help:"Adjust a running engine interactively."`
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("liveaudio"),
		kong.Description("Real-time EQ and dynamics engine demo"),
		kong.UsageOnError(),
		kong.Vars{
			"version": version,
		},
	)

	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

// logger returns a logger writing to stderr at the level the flags ask for.
func (g *Globals) logger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)

	if g.Verbose {
		l.SetLevel(logrus.DebugLevel)
	}

	if g.JSONLog {
		l.SetFormatter(&logrus.JSONFormatter{})
	}

	return l
}
