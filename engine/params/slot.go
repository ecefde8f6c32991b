package params

import "sync/atomic"

// Clamper is a config that can force its own fields into range.
type Clamper[T any] interface {
	Clamp() T
}

// Slot holds the current snapshot of one config type.
type Slot[T Clamper[T]] struct {
	ptr atomic.Pointer[T]
	gen *atomic.Uint64
}

func newSlot[T Clamper[T]](def T, gen *atomic.Uint64) *Slot[T] {
	s := &Slot[T]{gen: gen}
	v := def.Clamp()
	s.ptr.Store(&v)

	return s
}

// Load returns the current snapshot. The returned value must not be
// modified.
func (s *Slot[T]) Load() *T {
	return s.ptr.Load()
}

// Publish clamps cfg, stores a copy and returns the new snapshot.
func (s *Slot[T]) Publish(cfg T) *T {
	v := cfg.Clamp()
	s.ptr.Store(&v)
	s.gen.Add(1)

	return &v
}

// Update applies fn to the current snapshot and publishes the result.
// Concurrent updates are serialized by retrying, so no write is lost.
func (s *Slot[T]) Update(fn func(T) T) *T {
	for {
		old := s.ptr.Load()

		v := fn(*old).Clamp()
		if s.ptr.CompareAndSwap(old, &v) {
			s.gen.Add(1)
			return &v
		}
	}
}
