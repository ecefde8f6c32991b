package engine

import (
	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-liveaudio/dsp/effectchain"
)

// Option configures an Engine.
type Option func(*options)

type options struct {
	logger         *logrus.Logger
	maxBlockSize   int
	fadeMs         float64
	deadline       bool
	noiseFrameSize int
	shelvingEdges  bool
}

func defaultOptions() options {
	return options{
		logger:       logrus.StandardLogger(),
		maxBlockSize: effectchain.DefaultMaxBlockSize,
		fadeMs:       effectchain.DefaultFadeMs,
	}
}

// WithLogger sets the control-plane logger. The audio path never logs.
func WithLogger(l *logrus.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMaxBlockSize sets the longest chunk processed in one pass. Longer
// blocks are split.
func WithMaxBlockSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxBlockSize = n
		}
	}
}

// WithFadeTime sets the stage bypass crossfade in milliseconds.
func WithFadeTime(ms float64) Option {
	return func(o *options) {
		if ms >= 0 {
			o.fadeMs = ms
		}
	}
}

// WithDeadlineTracking enables per-block timing. A block that takes longer
// than its real-time duration counts as an overrun.
func WithDeadlineTracking(enabled bool) Option {
	return func(o *options) {
		o.deadline = enabled
	}
}

// WithNoiseFrameSize sets the noise suppressor STFT length. It must be a
// power of two; Initialize fails otherwise.
func WithNoiseFrameSize(n int) Option {
	return func(o *options) {
		o.noiseFrameSize = n
	}
}

// WithShelvingEdges makes the lowest equalizer band a low shelf and the
// highest a high shelf.
func WithShelvingEdges() Option {
	return func(o *options) {
		o.shelvingEdges = true
	}
}

func (o options) chainOptions() []effectchain.Option {
	opts := []effectchain.Option{
		effectchain.WithMaxBlockSize(o.maxBlockSize),
		effectchain.WithFadeTime(o.fadeMs),
	}
	if o.noiseFrameSize > 0 {
		opts = append(opts, effectchain.WithNoiseFrameSize(o.noiseFrameSize))
	}

	if o.shelvingEdges {
		opts = append(opts, effectchain.WithShelvingEdges())
	}

	return opts
}
