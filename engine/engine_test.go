package engine

import (
	"math"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-liveaudio/dsp/effects/dynamics"
	"github.com/cwbudde/algo-liveaudio/internal/testutil"
)

func TestLifecycle(t *testing.T) {
	e := New(WithLogger(quietLogger()))
	assert.Equal(t, StateUninitialized, e.State())
	require.ErrorIs(t, e.Start(), ErrNotInitialized)

	err := e.Initialize(1000)
	require.ErrorIs(t, err, ErrUnsupportedSampleRate)
	require.ErrorIs(t, e.Initialize(math.NaN()), ErrUnsupportedSampleRate)
	assert.Equal(t, StateUninitialized, e.State())

	require.NoError(t, e.Initialize(testSampleRate))
	assert.Equal(t, StateStopped, e.State())
	assert.InDelta(t, testSampleRate, e.SampleRate(), 0)
	require.ErrorIs(t, e.Initialize(testSampleRate), ErrAlreadyInitialized)

	require.NoError(t, e.Start())
	assert.Equal(t, StateRunning, e.State())
	require.NoError(t, e.Start())

	e.Stop()
	assert.Equal(t, StateStopped, e.State())
	e.Stop()

	require.NoError(t, e.Start())
	e.Release()
	assert.Equal(t, StateReleased, e.State())
	e.Release()

	require.ErrorIs(t, e.Start(), ErrReleased)
	require.ErrorIs(t, e.Initialize(testSampleRate), ErrReleased)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "uninitialized", StateUninitialized.String())
	assert.Equal(t, "stopped", StateStopped.String())
	assert.Equal(t, "running", StateRunning.String())
	assert.Equal(t, "released", StateReleased.String())
	assert.Equal(t, "unknown", State(42).String())
}

func TestInitializeRejectsBadNoiseFrame(t *testing.T) {
	e := New(WithLogger(quietLogger()), WithNoiseFrameSize(100))
	require.Error(t, e.Initialize(testSampleRate))
	assert.Equal(t, StateUninitialized, e.State())
}

func TestProcessingWhenNotRunningIsSilent(t *testing.T) {
	e := New(WithLogger(quietLogger()))
	x := testutil.DC(0.5, 64)

	y := testutil.DC(1, 64)
	assert.Equal(t, 64, e.ProcessBlock(y, x))
	assert.Equal(t, make([]float64, 64), y)

	require.NoError(t, e.Initialize(testSampleRate))

	y = testutil.DC(1, 64)
	e.ProcessBlock(y, x)
	assert.Equal(t, make([]float64, 64), y)

	f := []float32{1, 1, 1}
	assert.Equal(t, 3, e.ProcessFloat32(f, []float32{0.5, 0.5, 0.5}))
	assert.Equal(t, []float32{0, 0, 0}, f)

	require.NoError(t, e.Start())
	e.Stop()

	y = testutil.DC(1, 64)
	e.ProcessBlock(y, x)
	assert.Equal(t, make([]float64, 64), y)
	assert.Zero(t, e.Status().BlocksProcessed)
}

func TestFlatChainIsIdentity(t *testing.T) {
	e := runningEngine(t, bypassDynamics)

	x := testutil.DeterministicNoise(7, 0.9, 4000)
	y := process(e, x, 256)

	assert.Equal(t, x, y)
	assert.InDelta(t, 0.0, e.CurrentLatencyMs(), 1e-12)
}

func TestProcessLengths(t *testing.T) {
	e := runningEngine(t, bypassDynamics)

	x := testutil.DC(0.25, 10)
	y := make([]float64, 4)
	assert.Equal(t, 4, e.ProcessBlock(y, x))
	assert.Equal(t, x[:4], y)
	assert.Equal(t, 0, e.ProcessBlock(nil, x))
}

func TestProcessFloat32LongBlock(t *testing.T) {
	e := runningEngine(t, bypassDynamics, WithMaxBlockSize(64))

	src := make([]float32, 1000)
	for i := range src {
		src[i] = float32(math.Sin(float64(i) * 0.05))
	}

	dst := make([]float32, len(src))
	assert.Equal(t, len(src), e.ProcessFloat32(dst, src))
	assert.Equal(t, src, dst)
	assert.Equal(t, uint64(1), e.Status().BlocksProcessed)
}

func TestProcessFloat32MergesPeaks(t *testing.T) {
	e := runningEngine(t, bypassDynamics, WithMaxBlockSize(64))

	src := make([]float32, 256)
	src[10] = 0.5
	src[200] = -0.25

	dst := make([]float32, len(src))
	e.ProcessFloat32(dst, src)

	s := e.Status()
	assert.InDelta(t, 20*math.Log10(0.5), s.InputPeakDB, 1e-6)
	assert.InDelta(t, 20*math.Log10(0.5), s.OutputPeakDB, 1e-6)
}

func TestSetEqBandGainsClampsAndIsIdempotent(t *testing.T) {
	e := New(WithLogger(quietLogger()))

	e.SetEqBandGains([]float64{20, -20, 12, -12, math.NaN(), math.Inf(1), 3})
	eq := e.Settings().EQ

	want := []float64{12, -12, 12, -12, 0, 0, 3, 0, 0, 0}
	assert.Equal(t, want, eq.Gains())

	e.SetEqBandGains([]float64{20, -20, 12, -12, math.NaN(), math.Inf(1), 3})
	assert.Equal(t, eq, e.Settings().EQ)

	e.SetEqBandGains(make([]float64, 15))
	assert.True(t, e.Settings().EQ.IsFlat())
}

func TestSetEqBand(t *testing.T) {
	e := New(WithLogger(quietLogger()))

	require.ErrorIs(t, e.SetEqBand(-1, 100, 0, 1), ErrBandIndex)
	require.ErrorIs(t, e.SetEqBand(10, 100, 0, 1), ErrBandIndex)

	require.NoError(t, e.SetEqBand(2, math.NaN(), 30, 0))
	b := e.Settings().EQ.Bands[2]
	assert.InDelta(t, 125.0, b.FrequencyHz, 0)
	assert.InDelta(t, 12.0, b.GainDB, 0)
	assert.InDelta(t, 0.1, b.Q, 0)

	require.NoError(t, e.SetEqBand(9, 30000, -3, 2))
	b = e.Settings().EQ.Bands[9]
	assert.InDelta(t, 20000.0, b.FrequencyHz, 0)
	assert.InDelta(t, -3.0, b.GainDB, 0)
}

func TestDynamicsSettersClamp(t *testing.T) {
	e := New(WithLogger(quietLogger()))

	e.SetCompressor(-100, 50, math.NaN(), 10000, 30)
	c := e.Settings().Compressor
	assert.InDelta(t, -60.0, c.ThresholdDB, 0)
	assert.InDelta(t, 20.0, c.Ratio, 0)
	assert.InDelta(t, dynamics.DefaultCompressorAttackMs, c.AttackMs, 0)
	assert.InDelta(t, 5000.0, c.ReleaseMs, 0)
	assert.InDelta(t, 24.0, c.MakeupGainDB, 0)
	assert.True(t, c.Enabled)

	e.SetCompressorKnee(6)
	assert.InDelta(t, 6.0, e.Settings().Compressor.KneeDB, 0)
	e.SetCompressorKnee(100)
	assert.InDelta(t, 24.0, e.Settings().Compressor.KneeDB, 0)

	e.SetLimiter(3, 0, 50)
	l := e.Settings().Limiter
	assert.InDelta(t, 0.0, l.ThresholdDB, 0)
	assert.InDelta(t, 1.0, l.ReleaseMs, 0)
	assert.InDelta(t, 20.0, l.LookaheadMs, 0)

	e.SetAGC(0, 100)
	e.SetAGCTimes(math.Inf(-1), 20)
	e.SetAGCEnabled(true)
	a := e.Settings().AGC
	assert.InDelta(t, -3.0, a.TargetDB, 0)
	assert.InDelta(t, 30.0, a.MaxGainDB, 0)
	assert.InDelta(t, dynamics.DefaultAGCAttackMs, a.AttackMs, 0)
	assert.InDelta(t, 20.0, a.ReleaseMs, 0)
	assert.True(t, a.Enabled)

	e.SetNoiseSuppression(2)
	e.SetNoiseSuppressionEnabled(true)
	n := e.Settings().Noise
	assert.InDelta(t, 1.0, n.Strength, 0)
	assert.True(t, n.Enabled)
}

func TestClampedInputIsLogged(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	e := New(WithLogger(logger))
	require.NoError(t, e.Initialize(testSampleRate))
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "Engine initialized", hook.LastEntry().Message)
	assert.InDelta(t, testSampleRate, hook.LastEntry().Data["sample_rate"], 0)

	hook.Reset()
	e.SetCompressor(-30, 3, 5, 80, 2)
	assert.Empty(t, hook.AllEntries())

	e.SetEqBandGains([]float64{20})
	require.Len(t, hook.AllEntries(), 1)
	assert.Equal(t, logrus.DebugLevel, hook.LastEntry().Level)
	assert.Equal(t, "SetEqBandGains", hook.LastEntry().Data["function"])

	e.SetLimiter(math.NaN(), 50, 5)
	require.Len(t, hook.AllEntries(), 2)
	assert.Equal(t, "SetLimiter", hook.LastEntry().Data["function"])
}

func TestLatencyReporting(t *testing.T) {
	e := New(WithLogger(quietLogger()))
	assert.Zero(t, e.CurrentLatencyMs())

	require.NoError(t, e.Initialize(testSampleRate))
	assert.InDelta(t, 5.0, e.CurrentLatencyMs(), 1e-9)

	e.SetNoiseSuppressionEnabled(true)
	assert.InDelta(t, 5+512.0/48, e.CurrentLatencyMs(), 1e-9)

	e.SetLimiterEnabled(false)
	assert.InDelta(t, 512.0/48, e.CurrentLatencyMs(), 1e-9)

	b := e.LatencyBreakdown()
	assert.Zero(t, b.LimiterMs)
	assert.InDelta(t, 512.0/48, b.NoiseMs, 1e-9)

	e.Release()
	assert.Zero(t, e.CurrentLatencyMs())
	assert.Equal(t, 0.0, e.LatencyBreakdown().Total())
}

func TestEQResponseDB(t *testing.T) {
	e := New(WithLogger(quietLogger()))

	_, err := e.EQResponseDB([]float64{1000})
	require.ErrorIs(t, err, ErrNotInitialized)

	require.NoError(t, e.Initialize(testSampleRate))
	e.SetEqBandGains([]float64{0, 0, 0, 0, 0, 12})

	resp, err := e.EQResponseDB([]float64{1000, 15000})
	require.NoError(t, err)
	require.Len(t, resp, 2)
	assert.InDelta(t, 12.0, resp[0], 1e-6)
	assert.Less(t, math.Abs(resp[1]), 0.5)

	e.SetEqEnabled(false)
	resp, err = e.EQResponseDB([]float64{1000})
	require.NoError(t, err)
	assert.Equal(t, []float64{0}, resp)

	e.Release()
	_, err = e.EQResponseDB([]float64{1000})
	require.ErrorIs(t, err, ErrReleased)
}

func TestStatusReportsOnlyEnabledStages(t *testing.T) {
	e := runningEngine(t, func(e *Engine) {
		e.SetLimiter(-6, 50, 0)
		e.SetCompressorEnabled(false)
	})

	process(e, testutil.DC(0.9, 4800), 480)

	s := e.Status()
	assert.True(t, s.Running)
	assert.Equal(t, StateRunning, s.State)
	assert.InDelta(t, testSampleRate, s.SampleRate, 0)
	assert.Equal(t, uint64(10), s.BlocksProcessed)
	assert.Equal(t, dynamics.LimiterLimiting, s.LimiterState)
	assert.Greater(t, s.LimiterGainReductionDB, 5.0)
	assert.InDelta(t, s.LimiterGainReductionDB, e.LimiterGainReductionDB(), 0)
	assert.Zero(t, s.CompressorGainReductionDB)
	assert.InDelta(t, 20*math.Log10(0.9), s.InputPeakDB, 1e-9)

	e.SetLimiterEnabled(false)

	s = e.Status()
	assert.Zero(t, s.LimiterGainReductionDB)
	assert.Zero(t, e.LimiterGainReductionDB())
	assert.Equal(t, dynamics.LimiterDisabled, s.LimiterState)
}

func TestStatusInputPeakSkipsInfinities(t *testing.T) {
	e := runningEngine(t, nil)

	x := testutil.DC(0.5, 960)
	x[100] = math.Inf(1)
	x[600] = math.Inf(-1)
	process(e, x, 480)

	s := e.Status()
	assert.InDelta(t, 20*math.Log10(0.5), s.InputPeakDB, 1e-9)
	assert.False(t, math.IsInf(s.OutputPeakDB, 0) || math.IsNaN(s.OutputPeakDB))
}

func TestPollDiagnosticsLogs(t *testing.T) {
	logger, hook := logtest.NewNullLogger()

	e := New(WithLogger(logger))
	require.NoError(t, e.Initialize(testSampleRate))
	require.NoError(t, e.Start())

	x := testutil.DC(0.1, 256)
	x[3] = math.NaN()
	e.ProcessInPlace(x)

	s := e.PollDiagnostics()
	assert.Equal(t, uint64(1), s.NumericFaults)

	entries := hook.AllEntries()
	require.GreaterOrEqual(t, len(entries), 2)
	assert.Equal(t, "Engine diagnostics", entries[len(entries)-2].Message)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	testutil.RequireFinite(t, x)
}

func TestDeadlineTrackingDoesNotDisturbOutput(t *testing.T) {
	e := runningEngine(t, bypassDynamics, WithDeadlineTracking(true))

	x := testutil.DeterministicNoise(3, 0.5, 2048)
	y := process(e, x, 512)

	assert.Equal(t, x, y)
	s := e.Status()
	assert.Equal(t, uint64(4), s.BlocksProcessed)
	assert.LessOrEqual(t, s.Overruns, s.BlocksProcessed)
}
