package params

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/cwbudde/algo-liveaudio/dsp/effectchain"
	"github.com/cwbudde/algo-liveaudio/dsp/effects/denoise"
	"github.com/cwbudde/algo-liveaudio/dsp/effects/dynamics"
	"github.com/cwbudde/algo-liveaudio/dsp/filter/bank"
)

var (
	// ErrConfigType is returned when a config does not match its stage.
	ErrConfigType = errors.New("params: config type does not match stage")
	// ErrUnknownStage is returned for a stage outside the chain.
	ErrUnknownStage = errors.New("params: unknown stage")
)

// Store groups the slots of every chain stage.
type Store struct {
	gen atomic.Uint64

	Noise      *Slot[denoise.Config]
	EQ         *Slot[bank.Config]
	AGC        *Slot[dynamics.AGCConfig]
	Compressor *Slot[dynamics.CompressorConfig]
	Limiter    *Slot[dynamics.LimiterConfig]
}

// NewStore returns a store holding effectchain.DefaultSettings.
func NewStore() *Store {
	return NewStoreWith(effectchain.DefaultSettings())
}

// NewStoreWith returns a store holding the clamped settings s.
func NewStoreWith(s effectchain.Settings) *Store {
	st := &Store{}
	st.Noise = newSlot(s.Noise, &st.gen)
	st.EQ = newSlot(s.EQ, &st.gen)
	st.AGC = newSlot(s.AGC, &st.gen)
	st.Compressor = newSlot(s.Compressor, &st.gen)
	st.Limiter = newSlot(s.Limiter, &st.gen)

	return st
}

// Generation counts the publications since the store was created.
func (s *Store) Generation() uint64 {
	return s.gen.Load()
}

// Publish stores cfg in the slot of stage. cfg is the stage's config value
// or a pointer to one. Out-of-range fields are clamped; only a type
// mismatch or an unknown stage is an error.
func (s *Store) Publish(stage effectchain.Stage, cfg any) error {
	switch stage {
	case effectchain.StageNoise:
		return publishAs(s.Noise, stage, cfg)
	case effectchain.StageEQ:
		return publishAs(s.EQ, stage, cfg)
	case effectchain.StageAGC:
		return publishAs(s.AGC, stage, cfg)
	case effectchain.StageCompressor:
		return publishAs(s.Compressor, stage, cfg)
	case effectchain.StageLimiter:
		return publishAs(s.Limiter, stage, cfg)
	default:
		return fmt.Errorf("%w: %d", ErrUnknownStage, int(stage))
	}
}

func publishAs[T Clamper[T]](slot *Slot[T], stage effectchain.Stage, cfg any) error {
	switch v := cfg.(type) {
	case T:
		slot.Publish(v)
	case *T:
		if v == nil {
			return fmt.Errorf("%w: nil %T for %s", ErrConfigType, cfg, stage)
		}

		slot.Publish(*v)
	default:
		return fmt.Errorf("%w: %T for %s", ErrConfigType, cfg, stage)
	}

	return nil
}

// Snapshot loads the current pointer of every slot.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		Noise:      s.Noise.Load(),
		EQ:         s.EQ.Load(),
		AGC:        s.AGC.Load(),
		Compressor: s.Compressor.Load(),
		Limiter:    s.Limiter.Load(),
	}
}

// Settings returns a copy of the current settings.
func (s *Store) Settings() effectchain.Settings {
	return s.Snapshot().Settings()
}

// Snapshot is a set of slot pointers. Two snapshots compare equal with ==
// exactly when no slot was republished between them.
type Snapshot struct {
	Noise      *denoise.Config
	EQ         *bank.Config
	AGC        *dynamics.AGCConfig
	Compressor *dynamics.CompressorConfig
	Limiter    *dynamics.LimiterConfig
}

// Settings copies the pointed-to configs into a chain settings value.
func (s Snapshot) Settings() effectchain.Settings {
	return effectchain.Settings{
		Noise:      *s.Noise,
		EQ:         *s.EQ,
		AGC:        *s.AGC,
		Compressor: *s.Compressor,
		Limiter:    *s.Limiter,
	}
}
