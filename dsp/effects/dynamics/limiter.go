package dynamics

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-liveaudio/dsp/core"
	"github.com/cwbudde/algo-liveaudio/dsp/envelope"
)

// LimiterState is the coarse state of the limiter as seen by metering.
type LimiterState int

const (
	// LimiterDisabled means the limiter passes audio through.
	LimiterDisabled LimiterState = iota
	// LimiterTracking means the envelope is followed but no reduction is applied.
	LimiterTracking
	// LimiterLimiting means gain reduction is being applied.
	LimiterLimiting
)

// String returns the lowercase state name.
func (s LimiterState) String() string {
	switch s {
	case LimiterDisabled:
		return "disabled"
	case LimiterTracking:
		return "tracking"
	case LimiterLimiting:
		return "limiting"
	default:
		return "unknown"
	}
}

// limitingEpsilonDB is the reduction above which the limiter counts as
// limiting.
const limitingEpsilonDB = 1e-4

// lookaheadFadeMs is the crossfade between delay taps when the lookahead
// changes.
const lookaheadFadeMs = 5.0

// Limiter is a brick-wall peak limiter.
//
// For every input sample the gain needed to keep it under the threshold is
// g = min(1, threshold/|x|). The gain path takes the minimum of g over the
// lookahead window (L+1 samples), follows the resulting reduction with an
// instant-attack release envelope, then averages it over L samples. The
// program path is delayed by L samples. Every gain in the average is at or
// below the required gain of the sample leaving the delay line, so the
// output never exceeds the threshold; a final clamp absorbs rounding.
//
// With zero lookahead the window collapses to the current sample and the
// limiter acts as an instant-attack clipper-free peak follower.
type Limiter struct {
	sampleRate float64
	cfg        LimiterConfig
	threshold  float64

	maxLookahead int
	lookahead    int

	// Program delay line, maxLookahead+1 samples.
	delay    []float64
	writePos int

	// Tap crossfade after a lookahead change.
	oldLookahead int
	fadePos      int
	fadeLen      int

	// Monotonic deque for the sliding minimum of required gains.
	dqVal   []float64
	dqIdx   []int64
	dqHead  int
	dqLen   int
	counter int64

	release envelope.Follower

	// Ring of smoothed gains feeding the box average.
	hist    []float64
	histPos int
	boxSum  float64

	blockPeakGR float64
	state       LimiterState
}

// NewLimiter returns a limiter with DefaultLimiterConfig. All buffers are
// sized for the maximum lookahead so later configuration never allocates.
func NewLimiter(sampleRate float64) (*Limiter, error) {
	if err := validateSampleRate(sampleRate); err != nil {
		return nil, fmt.Errorf("limiter: %w", err)
	}

	maxL := int(math.Ceil(MaxLimiterLookaheadMs * 0.001 * sampleRate))
	l := &Limiter{
		sampleRate:   sampleRate,
		maxLookahead: maxL,
		delay:        make([]float64, maxL+1),
		dqVal:        make([]float64, maxL+2),
		dqIdx:        make([]int64, maxL+2),
		hist:         make([]float64, max(maxL, 1)),
		fadeLen:      max(core.MsToSamples(lookaheadFadeMs, sampleRate), 1),
	}

	if err := l.release.Configure(sampleRate, 0, DefaultLimiterReleaseMs); err != nil {
		return nil, err
	}

	l.cfg = DefaultLimiterConfig()
	l.applyConfig(l.cfg, true)

	return l, nil
}

// SetConfig clamps and applies cfg. A lookahead change crossfades from the
// old delay tap to the new one.
func (l *Limiter) SetConfig(cfg LimiterConfig) {
	l.applyConfig(cfg.Clamp(), false)
}

func (l *Limiter) applyConfig(cfg LimiterConfig, initial bool) {
	l.cfg = cfg
	l.threshold = core.DBToLinear(cfg.ThresholdDB)
	l.release.SetTimes(0, cfg.ReleaseMs)

	lookahead := min(core.MsToSamples(cfg.LookaheadMs, l.sampleRate), l.maxLookahead)
	if initial {
		l.lookahead = lookahead
		l.Reset()

		return
	}

	if lookahead == l.lookahead {
		return
	}

	l.oldLookahead = l.lookahead
	l.lookahead = lookahead
	l.fadePos = 0
	l.recomputeBoxSum()
}

// Config returns the active (clamped) configuration.
func (l *Limiter) Config() LimiterConfig { return l.cfg }

// LookaheadSamples returns the current program delay in samples.
func (l *Limiter) LookaheadSamples() int { return l.lookahead }

// LatencySamples returns the delay the limiter adds, 0 when disabled.
func (l *Limiter) LatencySamples() int {
	if !l.cfg.Enabled {
		return 0
	}

	return l.lookahead
}

// Threshold returns the linear ceiling.
func (l *Limiter) Threshold() float64 { return l.threshold }

// ProcessSample limits one sample.
func (l *Limiter) ProcessSample(x float64) float64 {
	if !l.cfg.Enabled {
		return x
	}

	y, _ := l.process(x)

	return y
}

func (l *Limiter) process(x float64) (y, gain float64) {
	required := 1.0
	if ax := math.Abs(x); ax > l.threshold {
		required = l.threshold / ax
	}

	windowMin := l.pushMin(required)
	reduction := l.release.Update(1 - windowMin)
	smoothed := 1 - reduction

	gain = smoothed
	if l.lookahead > 0 {
		n := len(l.hist)
		tail := l.histPos - l.lookahead
		if tail < 0 {
			tail += n
		}

		l.boxSum += smoothed - l.hist[tail]
		l.hist[l.histPos] = smoothed
		l.advanceHist()

		gain = l.boxSum / float64(l.lookahead)
	} else {
		l.hist[l.histPos] = smoothed
		l.advanceHist()
	}

	l.delay[l.writePos] = x
	delayed := l.tap(l.lookahead)

	if l.fadePos < l.fadeLen && l.oldLookahead != l.lookahead {
		w := float64(l.fadePos+1) / float64(l.fadeLen)
		delayed = (1-w)*l.tap(l.oldLookahead) + w*delayed
		l.fadePos++
	}

	l.writePos++
	if l.writePos == len(l.delay) {
		l.writePos = 0
	}

	y = core.Clamp(delayed*gain, -l.threshold, l.threshold)

	return y, gain
}

func (l *Limiter) tap(lookahead int) float64 {
	pos := l.writePos - lookahead
	if pos < 0 {
		pos += len(l.delay)
	}

	return l.delay[pos]
}

func (l *Limiter) advanceHist() {
	l.histPos++
	if l.histPos == len(l.hist) {
		l.histPos = 0
		l.recomputeBoxSum()
	}
}

// recomputeBoxSum rebuilds the running sum from the ring to stop rounding
// drift.
func (l *Limiter) recomputeBoxSum() {
	n := len(l.hist)
	sum := 0.0

	for k := 1; k <= l.lookahead; k++ {
		pos := l.histPos - k
		if pos < 0 {
			pos += n
		}
		sum += l.hist[pos]
	}

	l.boxSum = sum
}

// pushMin adds v to the sliding window of the last lookahead+1 required
// gains and returns the window minimum.
func (l *Limiter) pushMin(v float64) float64 {
	capacity := len(l.dqVal)
	window := int64(l.lookahead + 1)

	for l.dqLen > 0 && l.dqIdx[l.dqHead] <= l.counter-window {
		l.dqHead++
		if l.dqHead == capacity {
			l.dqHead = 0
		}
		l.dqLen--
	}

	for l.dqLen > 0 {
		back := l.dqHead + l.dqLen - 1
		if back >= capacity {
			back -= capacity
		}
		if l.dqVal[back] < v {
			break
		}
		l.dqLen--
	}

	pos := l.dqHead + l.dqLen
	if pos >= capacity {
		pos -= capacity
	}

	l.dqVal[pos] = v
	l.dqIdx[pos] = l.counter
	l.dqLen++
	l.counter++

	return l.dqVal[l.dqHead]
}

// ProcessBlock limits buf in place, records the block's peak reduction and
// updates the state. Zero-alloc.
func (l *Limiter) ProcessBlock(buf []float64) {
	if !l.cfg.Enabled {
		l.blockPeakGR = 0
		l.state = LimiterDisabled

		return
	}

	minGain := 1.0
	for i, x := range buf {
		y, gain := l.process(x)
		buf[i] = y
		if gain < minGain {
			minGain = gain
		}
	}

	l.release.SetLevel(core.FlushDenormals(l.release.Level()))
	l.blockPeakGR = reductionDB(minGain)

	l.state = LimiterTracking
	if l.blockPeakGR > limitingEpsilonDB {
		l.state = LimiterLimiting
	}
}

// GainReductionDB returns the peak reduction of the most recent block as a
// positive number of dB, 0 when disabled.
func (l *Limiter) GainReductionDB() float64 {
	if !l.cfg.Enabled {
		return 0
	}

	return l.blockPeakGR
}

// State returns the limiter state after the most recent block.
func (l *Limiter) State() LimiterState {
	if !l.cfg.Enabled {
		return LimiterDisabled
	}

	return l.state
}

// Reset clears the delay line, the gain path and metering.
func (l *Limiter) Reset() {
	clear(l.delay)
	l.writePos = 0

	for i := range l.hist {
		l.hist[i] = 1
	}

	l.histPos = 0
	l.dqHead = 0
	l.dqLen = 0
	l.counter = 0
	l.oldLookahead = l.lookahead
	l.fadePos = l.fadeLen
	l.release.Reset()
	l.recomputeBoxSum()
	l.blockPeakGR = 0
	l.state = LimiterTracking
}
