package dynamics

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-liveaudio/dsp/core"
	"github.com/cwbudde/algo-liveaudio/dsp/envelope"
)

// AGC steers the level of its input toward TargetDB.
//
// A peak follower on |x| (AttackMs/ReleaseMs) estimates the input level.
// The desired gain is TargetDB minus that level, bounded to ±MaxGainDB.
// While the level sits under AGCSilenceFloorDB the gain is held so that
// pauses are not pumped up to full gain. The applied gain moves toward the
// desired gain through a second follower in the dB domain: cuts follow the
// attack time, boosts the release time.
type AGC struct {
	sampleRate float64
	cfg        AGCConfig

	level envelope.Follower
	gain  envelope.Follower // dB domain

	silenceFloor float64
}

// NewAGC returns an AGC with DefaultAGCConfig at unity gain.
func NewAGC(sampleRate float64) (*AGC, error) {
	if err := validateSampleRate(sampleRate); err != nil {
		return nil, fmt.Errorf("agc: %w", err)
	}

	a := &AGC{
		sampleRate:   sampleRate,
		silenceFloor: core.DBToLinear(AGCSilenceFloorDB),
	}

	if err := a.level.Configure(sampleRate, DefaultAGCAttackMs, DefaultAGCReleaseMs); err != nil {
		return nil, err
	}

	if err := a.gain.Configure(sampleRate, DefaultAGCReleaseMs, DefaultAGCAttackMs); err != nil {
		return nil, err
	}

	a.SetConfig(DefaultAGCConfig())
	a.Reset()

	return a, nil
}

// SetConfig clamps and applies cfg. Level and gain state are kept.
func (a *AGC) SetConfig(cfg AGCConfig) {
	cfg = cfg.Clamp()
	a.cfg = cfg
	a.level.SetTimes(cfg.AttackMs, cfg.ReleaseMs)
	// The gain follower rises when boosting; boosts take the release time.
	a.gain.SetTimes(cfg.ReleaseMs, cfg.AttackMs)
}

// Config returns the active (clamped) configuration.
func (a *AGC) Config() AGCConfig { return a.cfg }

// GainDB returns the gain currently applied, in dB.
func (a *AGC) GainDB() float64 {
	return a.gain.Level()
}

func (a *AGC) process(x float64) float64 {
	level := a.level.Update(math.Abs(x))

	target := a.GainDB()
	if level > a.silenceFloor {
		levelDB := mathLog2(level) / log2Of10Div20
		target = core.Clamp(a.cfg.TargetDB-levelDB, -a.cfg.MaxGainDB, a.cfg.MaxGainDB)
	}

	gainDB := a.gain.Update(target)

	return x * mathPower2(gainDB*log2Of10Div20)
}

// ProcessSample applies the AGC to one sample.
func (a *AGC) ProcessSample(x float64) float64 {
	if !a.cfg.Enabled {
		return x
	}

	return a.process(x)
}

// ProcessBlock applies the AGC to buf in place. Zero-alloc.
func (a *AGC) ProcessBlock(buf []float64) {
	if !a.cfg.Enabled {
		return
	}

	for i, x := range buf {
		buf[i] = a.process(x)
	}

	a.level.SetLevel(core.FlushDenormals(a.level.Level()))
}

// Reset returns the AGC to unity gain with an empty detector.
func (a *AGC) Reset() {
	a.level.Reset()
	a.gain.Reset()
}
