package status

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-liveaudio/dsp/core"
	"github.com/cwbudde/algo-liveaudio/dsp/effectchain"
	"github.com/cwbudde/algo-liveaudio/dsp/effects/dynamics"
	"github.com/cwbudde/algo-liveaudio/dsp/filter/bank"
)

const sr = 48000.0

func TestLatencyDefaults(t *testing.T) {
	s := effectchain.DefaultSettings()

	b := LatencyBreakdown(s, sr, Layout{})
	assert.InDelta(t, 0.0, b.EQMs, 1e-9)
	assert.InDelta(t, 5.0, b.LimiterMs, 1e-12)
	assert.InDelta(t, 0.0, b.NoiseMs, 0)
	assert.InDelta(t, 5.0, LatencyMs(s, sr, Layout{}), 1e-9)
}

func TestLatencyFollowsEnabledStages(t *testing.T) {
	s := effectchain.DefaultSettings()
	s.Noise.Enabled = true

	assert.InDelta(t, 5+512.0/48, LatencyMs(s, sr, Layout{}), 1e-9)
	assert.InDelta(t, 5+256.0/48, LatencyMs(s, sr, Layout{NoiseFrameSize: 256}), 1e-9)

	s.Limiter.Enabled = false
	s.Noise.Enabled = false
	s.EQ.Enabled = false
	assert.InDelta(t, 0.0, LatencyMs(s, sr, Layout{}), 0)
}

func TestLatencyLimiterRoundsToSamples(t *testing.T) {
	s := effectchain.DefaultSettings()

	s.Limiter.LookaheadMs = 0.01
	assert.InDelta(t, 0.0, LatencyBreakdown(s, sr, Layout{}).LimiterMs, 0)

	s.Limiter.LookaheadMs = 100
	assert.InDelta(t, dynamics.MaxLimiterLookaheadMs, LatencyBreakdown(s, sr, Layout{}).LimiterMs, 1e-9)

	s.Limiter.LookaheadMs = 1
	assert.InDelta(t, core.SamplesToMs(44, 44100), LatencyBreakdown(s, 44100, Layout{}).LimiterMs, 1e-12)
}

func TestLatencyIncludesEQGroupDelay(t *testing.T) {
	s := effectchain.DefaultSettings()
	s.Limiter.Enabled = false
	s.EQ = s.EQ.WithGains([]float64{0, 0, 0, 0, 6, 12, 6, 0, 0, 0})

	want := bank.GroupDelayMs(s.EQ, sr, ProbeHz, false)
	require.Positive(t, want)
	assert.InDelta(t, want, LatencyMs(s, sr, Layout{}), 1e-12)

	wantShelf := bank.GroupDelayMs(s.EQ, sr, ProbeHz, true)
	assert.InDelta(t, wantShelf, LatencyMs(s, sr, Layout{ShelvingEdges: true}), 1e-12)
}

func TestLatencyInvalidSampleRate(t *testing.T) {
	assert.Zero(t, LatencyMs(effectchain.DefaultSettings(), 0, Layout{}))
}

func TestBlockBudget(t *testing.T) {
	assert.Equal(t, 10*time.Millisecond, BlockBudget(480, sr))
	assert.Equal(t, time.Duration(0), BlockBudget(0, sr))
	assert.Equal(t, time.Duration(0), BlockBudget(480, 0))
}

func TestMetersRecordAndSnapshot(t *testing.T) {
	var m Meters

	r := m.Snapshot()
	assert.InDelta(t, core.SilenceFloorDB, r.InputPeakDB, 0)
	assert.Equal(t, dynamics.LimiterDisabled, r.LimiterState)

	m.Record(effectchain.Metrics{
		InputPeak:                 1,
		OutputPeak:                0.5,
		NoiseReductionDB:          3,
		AGCGainDB:                 -2,
		CompressorGainReductionDB: 4,
		LimiterGainReductionDB:    1.5,
		LimiterState:              dynamics.LimiterLimiting,
		Faults:                    2,
	})
	m.AddOverrun()

	r = m.Snapshot()
	assert.InDelta(t, 0.0, r.InputPeakDB, 1e-12)
	assert.InDelta(t, -6.0206, r.OutputPeakDB, 1e-4)
	assert.InDelta(t, 3.0, r.NoiseReductionDB, 0)
	assert.InDelta(t, -2.0, r.AGCGainDB, 0)
	assert.InDelta(t, 4.0, r.CompressorGainReductionDB, 0)
	assert.InDelta(t, 1.5, r.LimiterGainReductionDB, 0)
	assert.InDelta(t, 1.5, m.LimiterGainReductionDB(), 0)
	assert.Equal(t, dynamics.LimiterLimiting, r.LimiterState)
	assert.Equal(t, uint64(1), r.BlocksProcessed)
	assert.Equal(t, uint64(2), r.NumericFaults)
	assert.Equal(t, uint64(1), r.Overruns)

	m.Reset()
	assert.Equal(t, Reading{
		InputPeakDB:  core.SilenceFloorDB,
		OutputPeakDB: core.SilenceFloorDB,
	}, m.Snapshot())
}

func TestMetersConcurrentAccess(t *testing.T) {
	var (
		m  Meters
		wg sync.WaitGroup
	)

	wg.Add(2)

	go func() {
		defer wg.Done()

		for i := 0; i < 1000; i++ {
			m.Record(effectchain.Metrics{LimiterGainReductionDB: float64(i % 7)})
		}
	}()

	go func() {
		defer wg.Done()

		for i := 0; i < 1000; i++ {
			r := m.Snapshot()
			if r.LimiterGainReductionDB < 0 || r.LimiterGainReductionDB > 6 {
				t.Errorf("unexpected reading %v", r.LimiterGainReductionDB)
			}
		}
	}()

	wg.Wait()
	assert.Equal(t, uint64(1000), m.Snapshot().BlocksProcessed)
}

func TestRecordDoesNotAllocate(t *testing.T) {
	var m Meters

	v := effectchain.Metrics{InputPeak: 0.3, LimiterState: dynamics.LimiterTracking}
	allocs := testing.AllocsPerRun(100, func() {
		m.Record(v)
	})
	assert.Zero(t, allocs)
}
