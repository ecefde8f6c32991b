package engine

import "errors"

// Lifecycle errors.
var (
	// ErrNotInitialized indicates Initialize has not been called.
	ErrNotInitialized = errors.New("engine: not initialized")

	// ErrReleased indicates the engine was released.
	ErrReleased = errors.New("engine: released")

	// ErrAlreadyInitialized indicates Initialize was called twice.
	ErrAlreadyInitialized = errors.New("engine: already initialized")

	// ErrUnsupportedSampleRate indicates a sample rate outside
	// [core.MinSampleRate, core.MaxSampleRate].
	ErrUnsupportedSampleRate = errors.New("engine: unsupported sample rate")
)

// ErrBandIndex indicates an equalizer band index out of range.
var ErrBandIndex = errors.New("engine: band index out of range")
