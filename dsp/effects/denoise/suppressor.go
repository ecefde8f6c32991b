package denoise

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-liveaudio/dsp/core"
	"github.com/cwbudde/algo-liveaudio/dsp/window"
)

const (
	// DefaultFrameSize is the STFT length in samples.
	DefaultFrameSize = 512
	MinFrameSize     = 64
	MaxFrameSize     = 8192

	overSubtraction = 2.0
	spectralFloor   = 0.1
	gainSmoothing   = 0.5
	// Bins more than presenceRatio above the noise estimate are treated as
	// signal; the estimate then rises with noisePresentRiseMs instead.
	presenceRatio      = 4.0
	noiseFallMs        = 40.0
	noiseRiseMs        = 1500.0
	noisePresentRiseMs = 30000.0
	// Frames with a mean windowed power below silencePower (-120 dBFS) hold
	// the noise estimate.
	silencePower = 1e-12
	magEpsilon   = 1e-12
	// The first learningFrames non-silent frames average the estimate
	// symmetrically.
	learningFrames    = 10
	learningSmoothing = 0.8
)

// Option configures a Suppressor.
type Option func(*options)

type options struct {
	frameSize int
}

// WithFrameSize sets the STFT length. It must be a power of two in
// [MinFrameSize, MaxFrameSize]. The hop is always half a frame.
func WithFrameSize(n int) Option {
	return func(o *options) {
		o.frameSize = n
	}
}

// Suppressor is a streaming STFT noise suppressor. Its latency is one frame
// while enabled.
//
// It is single-threaded: SetConfig and the Process methods must be called
// from the same goroutine.
type Suppressor struct {
	sampleRate float64
	frameSize  int
	hop        int
	cfg        Config

	plan     *algofft.Plan[complex128]
	win      []float64 // analysis
	synth    []float64
	spectrum []complex128
	frame    []complex128
	scratch  []float64

	in  []float64
	out []float64
	pos int

	noise   []float64
	gain    []float64
	learned int

	fall, rise, presentRise float64
	reductionDB             float64
	dropped                 uint64
}

// New returns a Suppressor with DefaultConfig.
func New(sampleRate float64, opts ...Option) (*Suppressor, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("denoise: sample rate must be positive and finite: %f", sampleRate)
	}

	o := options{frameSize: DefaultFrameSize}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	n := o.frameSize
	if n < MinFrameSize || n > MaxFrameSize || n&(n-1) != 0 {
		return nil, fmt.Errorf("denoise: frame size must be a power of two in [%d, %d]: %d",
			MinFrameSize, MaxFrameSize, n)
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("denoise: fft plan: %w", err)
	}

	bins := n/2 + 1
	hop := n / 2

	win := window.Generate(window.TypeSqrtHann, n, window.WithPeriodic())

	lo, hi, err := window.OverlapAddGain(win, win, hop)
	if err != nil {
		return nil, fmt.Errorf("denoise: window: %w", err)
	}

	if hi <= 0 || hi-lo > 1e-9*hi {
		return nil, fmt.Errorf("denoise: window overlap-add gain varies in [%g, %g]", lo, hi)
	}

	synth := make([]float64, n)
	for i, w := range win {
		synth[i] = w / hi
	}

	hopMs := core.SamplesToMs(hop, sampleRate)

	s := &Suppressor{
		sampleRate:  sampleRate,
		frameSize:   n,
		hop:         hop,
		plan:        plan,
		win:         win,
		synth:       synth,
		spectrum:    make([]complex128, n),
		frame:       make([]complex128, n),
		scratch:     make([]float64, n),
		in:          make([]float64, n),
		out:         make([]float64, n),
		noise:       make([]float64, bins),
		gain:        make([]float64, bins),
		fall:        math.Exp(-hopMs / noiseFallMs),
		rise:        math.Exp(-hopMs / noiseRiseMs),
		presentRise: math.Exp(-hopMs / noisePresentRiseMs),
	}

	if err := s.plan.Forward(s.spectrum, s.spectrum); err != nil {
		return nil, fmt.Errorf("denoise: forward transform: %w", err)
	}

	if err := s.plan.Inverse(s.frame, s.spectrum); err != nil {
		return nil, fmt.Errorf("denoise: inverse transform: %w", err)
	}

	s.SetConfig(DefaultConfig())
	s.Reset()

	return s, nil
}

// SampleRate returns the sample rate in Hz.
func (s *Suppressor) SampleRate() float64 { return s.sampleRate }

// FrameSize returns the STFT length in samples.
func (s *Suppressor) FrameSize() int { return s.frameSize }

// HopSize returns the STFT hop in samples.
func (s *Suppressor) HopSize() int { return s.hop }

// Config returns the active configuration.
func (s *Suppressor) Config() Config { return s.cfg }

// SetConfig clamps and applies cfg. Switching from disabled to enabled
// clears the frame buffers and the noise estimate.
func (s *Suppressor) SetConfig(cfg Config) {
	cfg = cfg.Clamp()
	if cfg.Enabled && !s.cfg.Enabled {
		s.Reset()
	}

	s.cfg = cfg
}

// LatencySamples returns the delay added by the suppressor: one frame when
// enabled, zero otherwise.
func (s *Suppressor) LatencySamples() int {
	if !s.cfg.Enabled {
		return 0
	}

	return s.frameSize
}

// ReductionDB returns the energy-weighted gain reduction of the most
// recent frame as a non-negative dB value.
func (s *Suppressor) ReductionDB() float64 {
	if !s.cfg.Enabled {
		return 0
	}

	return s.reductionDB
}

// ProcessSample processes one sample. A frame is transformed every
// HopSize samples.
func (s *Suppressor) ProcessSample(x float64) float64 {
	if !s.cfg.Enabled {
		return x
	}

	s.in[s.frameSize-s.hop+s.pos] = x
	y := s.out[s.pos]

	s.pos++
	if s.pos == s.hop {
		s.processFrame()
		s.pos = 0
	}

	return y
}

// ProcessBlock processes buf in place.
func (s *Suppressor) ProcessBlock(buf []float64) {
	if !s.cfg.Enabled {
		return
	}

	for i, x := range buf {
		buf[i] = s.ProcessSample(x)
	}
}

// Reset clears the frame buffers, the noise estimate and the gains.
func (s *Suppressor) Reset() {
	core.Zero(s.in)
	core.Zero(s.out)

	for i := range s.gain {
		s.gain[i] = 1
		s.noise[i] = 0
	}

	s.pos = 0
	s.learned = 0
	s.reductionDB = 0
}

// processFrame transforms the current input frame, applies the bin gains
// and overlap-adds the result into the output queue. The window and
// scratch buffers all hold frameSize samples.
func (s *Suppressor) processFrame() {
	n := s.frameSize

	vecmath.MulBlock(s.scratch, s.in, s.win)

	power := 0.0
	for i, v := range s.scratch {
		s.spectrum[i] = complex(v, 0)
		power += v * v
	}

	copy(s.in, s.in[s.hop:])
	copy(s.out, s.out[s.hop:])
	core.Zero(s.out[n-s.hop:])

	// New ran both transforms on these buffers, so an error here means the
	// plan itself broke. The frame is dropped and the hop plays silence.
	if err := s.plan.Forward(s.spectrum, s.spectrum); err != nil {
		s.dropFrame()
		return
	}

	s.updateGains(power/float64(n) < silencePower)

	if err := s.plan.Inverse(s.frame, s.spectrum); err != nil {
		s.dropFrame()
		return
	}

	for i := range s.scratch {
		s.scratch[i] = real(s.frame[i])
	}

	vecmath.MulBlockInPlace(s.scratch, s.synth)
	vecmath.AddBlockInPlace(s.out, s.scratch)
}

func (s *Suppressor) dropFrame() {
	core.Zero(s.out[:s.hop])
	s.dropped++
}

// DroppedFrames returns the number of frames lost to transform errors.
func (s *Suppressor) DroppedFrames() uint64 { return s.dropped }

// updateGains tracks the noise floor and scales each bin.
func (s *Suppressor) updateGains(silent bool) {
	n := s.frameSize
	strength := s.cfg.Strength

	var inEnergy, outEnergy float64

	for k := range s.gain {
		mag := math.Hypot(real(s.spectrum[k]), imag(s.spectrum[k]))

		switch {
		case silent:
		case s.learned == 0:
			s.noise[k] = mag
		case s.learned < learningFrames:
			s.noise[k] = learningSmoothing*s.noise[k] + (1-learningSmoothing)*mag
		case mag < s.noise[k]:
			s.noise[k] = s.fall*s.noise[k] + (1-s.fall)*mag
		case mag < presenceRatio*s.noise[k]:
			s.noise[k] = s.rise*s.noise[k] + (1-s.rise)*mag
		default:
			s.noise[k] = s.presentRise*s.noise[k] + (1-s.presentRise)*mag
		}

		s.noise[k] = core.FlushDenormals(s.noise[k])

		target := 1.0
		if strength > 0 {
			target = spectralFloor
			if mag > magEpsilon {
				target = math.Max(spectralFloor, 1-overSubtraction*strength*s.noise[k]/mag)
			}
		}

		g := s.gain[k] + (target-s.gain[k])*gainSmoothing
		s.gain[k] = g

		s.spectrum[k] *= complex(g, 0)
		if k > 0 && k < n/2 {
			s.spectrum[n-k] *= complex(g, 0)
		}

		p := mag * mag
		inEnergy += p
		outEnergy += g * g * p
	}

	if !silent && s.learned < learningFrames {
		s.learned++
	}

	s.reductionDB = 0
	if inEnergy > magEpsilon && outEnergy > 0 {
		s.reductionDB = math.Max(0, -10*math.Log10(outEnergy/inEnergy))
	}
}
