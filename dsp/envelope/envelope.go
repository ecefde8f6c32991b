// Package envelope provides the one-pole attack/release level follower shared
// by the compressor, the limiter and the automatic gain control.
//
// Each time constant maps to a smoothing coefficient
//
//	coefficient = exp(-1 / (timeConstantMs * 0.001 * sampleRate))
//
// and the follower moves toward its input with
//
//	level = input + coefficient*(level - input)
//
// using the attack coefficient while the input rises above the current level
// and the release coefficient while it falls. A time constant of 0 ms gives a
// coefficient of 0, so the follower tracks instantly in that direction.
package envelope

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-liveaudio/dsp/core"
)

// Coefficient returns the one-pole smoothing coefficient for a time constant
// in milliseconds. Non-positive or non-finite times yield 0 (instant).
func Coefficient(timeMs, sampleRate float64) float64 {
	if timeMs <= 0 || sampleRate <= 0 || !core.IsFinite(timeMs) || !core.IsFinite(sampleRate) {
		return 0
	}

	return math.Exp(-1 / (timeMs * 0.001 * sampleRate))
}

// Follower tracks a level with independent attack and release times.
// The zero value tracks instantly in both directions.
type Follower struct {
	sampleRate   float64
	attackMs     float64
	releaseMs    float64
	attackCoeff  float64
	releaseCoeff float64
	level        float64
}

// New returns a follower at rest (level 0).
func New(sampleRate, attackMs, releaseMs float64) (*Follower, error) {
	f := &Follower{}
	if err := f.Configure(sampleRate, attackMs, releaseMs); err != nil {
		return nil, err
	}

	return f, nil
}

// Configure sets the sample rate and both time constants. The current level
// is kept.
func (f *Follower) Configure(sampleRate, attackMs, releaseMs float64) error {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return fmt.Errorf("envelope: sample rate must be positive and finite: %f", sampleRate)
	}

	f.sampleRate = sampleRate
	f.SetTimes(attackMs, releaseMs)

	return nil
}

// SetTimes updates both time constants without touching the current level.
// Negative or non-finite times are treated as 0 ms.
func (f *Follower) SetTimes(attackMs, releaseMs float64) {
	f.attackMs = sanitizeMs(attackMs)
	f.releaseMs = sanitizeMs(releaseMs)
	f.attackCoeff = Coefficient(f.attackMs, f.sampleRate)
	f.releaseCoeff = Coefficient(f.releaseMs, f.sampleRate)
}

func sanitizeMs(ms float64) float64 {
	if ms <= 0 || !core.IsFinite(ms) {
		return 0
	}

	return ms
}

// Update feeds one input level and returns the new envelope level.
func (f *Follower) Update(input float64) float64 {
	coeff := f.releaseCoeff
	if input > f.level {
		coeff = f.attackCoeff
	}

	f.level = input + coeff*(f.level-input)

	return f.level
}

// UpdateBlock replaces every level in buf with the envelope after feeding it.
func (f *Follower) UpdateBlock(buf []float64) {
	for i, x := range buf {
		buf[i] = f.Update(x)
	}

	f.level = core.FlushDenormals(f.level)
}

// Level returns the current envelope level.
func (f *Follower) Level() float64 { return f.level }

// SetLevel forces the envelope to v.
func (f *Follower) SetLevel(v float64) { f.level = v }

// Reset returns the envelope to 0.
func (f *Follower) Reset() { f.level = 0 }

// AttackMs returns the attack time constant in milliseconds.
func (f *Follower) AttackMs() float64 { return f.attackMs }

// ReleaseMs returns the release time constant in milliseconds.
func (f *Follower) ReleaseMs() float64 { return f.releaseMs }

// AttackCoeff returns the smoothing coefficient used while rising.
func (f *Follower) AttackCoeff() float64 { return f.attackCoeff }

// ReleaseCoeff returns the smoothing coefficient used while falling.
func (f *Follower) ReleaseCoeff() float64 { return f.releaseCoeff }
