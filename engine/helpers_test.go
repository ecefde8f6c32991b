package engine

import (
	"math"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

const testSampleRate = 48000.0

func quietLogger() *logrus.Logger {
	l, _ := logtest.NewNullLogger()
	return l
}

// runningEngine returns an initialized engine. setup runs before Start so
// its settings apply without a crossfade.
func runningEngine(t *testing.T, setup func(e *Engine), opts ...Option) *Engine {
	t.Helper()

	e := New(append([]Option{WithLogger(quietLogger())}, opts...)...)
	require.NoError(t, e.Initialize(testSampleRate))

	if setup != nil {
		setup(e)
	}

	require.NoError(t, e.Start())
	t.Cleanup(e.Release)

	return e
}

func bypassDynamics(e *Engine) {
	e.SetCompressorEnabled(false)
	e.SetLimiterEnabled(false)
}

// process runs x through e in blocks of size block.
func process(e *Engine, x []float64, block int) []float64 {
	y := make([]float64, len(x))
	for off := 0; off < len(x); off += block {
		end := min(off+block, len(x))
		e.ProcessBlock(y[off:end], x[off:end])
	}

	return y
}

func gainDB(out, in float64) float64 {
	return 20 * math.Log10(out/in)
}
