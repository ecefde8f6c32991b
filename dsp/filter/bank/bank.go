package bank

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-liveaudio/dsp/core"
	"github.com/cwbudde/algo-liveaudio/dsp/filter/biquad"
	"github.com/cwbudde/algo-liveaudio/dsp/filter/design"
)

type bankConfig struct {
	centers  []float64
	shelving bool
}

// Option configures an Equalizer.
type Option func(*bankConfig)

// WithShelvingEdges turns the first band into a low shelf and the last band
// into a high shelf. All bands are peaking filters by default.
func WithShelvingEdges() Option {
	return func(cfg *bankConfig) { cfg.shelving = true }
}

// WithCenters replaces the ISO centers with custom band frequencies. The
// band count follows len(centers). Ignored when empty.
func WithCenters(centers ...float64) Option {
	return func(cfg *bankConfig) {
		if len(centers) > 0 {
			cfg.centers = append([]float64(nil), centers...)
		}
	}
}

type band struct {
	cfg     BandConfig
	def     BandConfig
	kind    design.Kind
	section biquad.Section
}

// idle reports whether the band can be skipped without changing the output.
func (b *band) idle() bool {
	return b.section.Coefficients.IsIdentity() && b.section.State() == [2]float64{}
}

// Equalizer is a cascade of independently tunable biquad bands.
type Equalizer struct {
	sampleRate float64
	bands      []band
	order      []int // band indices by ascending frequency
}

// New builds a flat equalizer for sampleRate.
func New(sampleRate float64, opts ...Option) (*Equalizer, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("bank: sample rate must be positive and finite: %f", sampleRate)
	}

	cfg := bankConfig{centers: ISOCenters[:]}
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}

	n := len(cfg.centers)
	eq := &Equalizer{
		sampleRate: sampleRate,
		bands:      make([]band, n),
		order:      make([]int, n),
	}

	for i, fc := range cfg.centers {
		def := BandConfig{
			FrequencyHz: core.ClampOr(fc, MinFrequencyHz, MaxFrequencyHz, 1000),
			Q:           DefaultQ,
		}
		eq.bands[i] = band{
			cfg:     def,
			def:     def,
			kind:    kindFor(i, n, cfg.shelving),
			section: biquad.Section{Coefficients: biquad.Identity()},
		}
		eq.order[i] = i
	}

	eq.sortOrder()

	return eq, nil
}

func kindFor(i, n int, shelving bool) design.Kind {
	switch {
	case !shelving || n < 2:
		return design.KindPeak
	case i == 0:
		return design.KindLowShelf
	case i == n-1:
		return design.KindHighShelf
	default:
		return design.KindPeak
	}
}

// NumBands returns the number of bands.
func (e *Equalizer) NumBands() int { return len(e.bands) }

// SampleRate returns the sample rate the equalizer was built for.
func (e *Equalizer) SampleRate() float64 { return e.sampleRate }

// Band returns the stored (clamped) configuration of band i.
func (e *Equalizer) Band(i int) BandConfig { return e.bands[i].cfg }

// Kind returns the response shape of band i.
func (e *Equalizer) Kind(i int) design.Kind { return e.bands[i].kind }

// Coefficients returns the current coefficients of band i.
func (e *Equalizer) Coefficients(i int) biquad.Coefficients {
	return e.bands[i].section.Coefficients
}

// ConfigureBand clamps the parameters, designs band index and swaps the
// coefficients in without touching the band's delay memory. It returns the
// stored configuration. Out-of-range indices are ignored.
func (e *Equalizer) ConfigureBand(index int, frequencyHz, gainDB, q float64) BandConfig {
	if index < 0 || index >= len(e.bands) {
		return BandConfig{}
	}

	b := &e.bands[index]
	cfg := BandConfig{FrequencyHz: frequencyHz, GainDB: gainDB, Q: q}.Clamp(b.def)
	if cfg == b.cfg {
		return cfg
	}

	resort := cfg.FrequencyHz != b.cfg.FrequencyHz
	b.cfg = cfg
	b.section.SetCoefficients(design.Band(b.kind, cfg.FrequencyHz, cfg.GainDB, cfg.Q, e.sampleRate))

	if resort {
		e.sortOrder()
	}

	return cfg
}

// Apply configures the first min(NumBands, e.NumBands()) bands from cfg.
// Bands whose configuration did not change are left alone.
func (e *Equalizer) Apply(cfg Config) {
	for i := 0; i < len(cfg.Bands) && i < len(e.bands); i++ {
		b := cfg.Bands[i]
		e.ConfigureBand(i, b.FrequencyHz, b.GainDB, b.Q)
	}
}

// sortOrder is an insertion sort so retuning never allocates.
func (e *Equalizer) sortOrder() {
	for i := 1; i < len(e.order); i++ {
		key := e.order[i]
		j := i - 1
		for j >= 0 && e.bands[e.order[j]].cfg.FrequencyHz > e.bands[key].cfg.FrequencyHz {
			e.order[j+1] = e.order[j]
			j--
		}
		e.order[j+1] = key
	}
}

// ProcessSample runs x through every active band in ascending frequency
// order.
func (e *Equalizer) ProcessSample(x float64) float64 {
	for _, i := range e.order {
		b := &e.bands[i]
		if b.idle() {
			continue
		}
		x = b.section.ProcessSample(x)
	}

	return x
}

// ProcessBlock filters buf in place. Zero-alloc.
func (e *Equalizer) ProcessBlock(buf []float64) {
	for _, i := range e.order {
		b := &e.bands[i]
		if b.idle() {
			continue
		}
		b.section.ProcessBlock(buf)
	}
}

// Reset clears the delay memory of every band.
func (e *Equalizer) Reset() {
	for i := range e.bands {
		e.bands[i].section.Reset()
	}
}

// ActiveBands returns how many bands currently do work.
func (e *Equalizer) ActiveBands() int {
	n := 0
	for i := range e.bands {
		if !e.bands[i].idle() {
			n++
		}
	}

	return n
}

// Response evaluates the complex response of the whole cascade.
func (e *Equalizer) Response(freqHz float64) complex128 {
	h := complex(1, 0)
	for i := range e.bands {
		h *= e.bands[i].section.Response(freqHz, e.sampleRate)
	}

	return h
}

// ResponseDB returns the cascade magnitude in dB.
func (e *Equalizer) ResponseDB(freqHz float64) float64 {
	return core.LinearToDBFloor(cmplx.Abs(e.Response(freqHz)))
}

// GroupDelaySamples returns the cascade group delay at freqHz in samples.
func (e *Equalizer) GroupDelaySamples(freqHz float64) float64 {
	sum := 0.0
	for i := range e.bands {
		sum += e.bands[i].section.GroupDelay(freqHz, e.sampleRate)
	}

	return sum
}

// DesignConfig returns the coefficients cfg designs to at sampleRate,
// without building an Equalizer. Used by control-plane code that reasons
// about a published configuration.
func DesignConfig(cfg Config, sampleRate float64, shelving bool) [NumBands]biquad.Coefficients {
	var out [NumBands]biquad.Coefficients

	cfg = cfg.Clamp()
	for i, b := range cfg.Bands {
		out[i] = design.Band(kindFor(i, NumBands, shelving), b.FrequencyHz, b.GainDB, b.Q, sampleRate)
	}

	return out
}

// GroupDelayMs returns the analytic group delay of cfg at freqHz in
// milliseconds. Negative group delay is reported as 0.
func GroupDelayMs(cfg Config, sampleRate, freqHz float64, shelving bool) float64 {
	if sampleRate <= 0 {
		return 0
	}

	sum := 0.0
	for _, c := range DesignConfig(cfg, sampleRate, shelving) {
		sum += c.GroupDelay(freqHz, sampleRate)
	}

	return math.Max(0, sum*1000/sampleRate)
}

// ResponseDB returns the analytic cascade magnitude of cfg at each of
// freqsHz in dB, written into dst. dst must be at least len(freqsHz) long.
func ResponseDB(dst []float64, cfg Config, sampleRate float64, shelving bool, freqsHz []float64) {
	coeffs := DesignConfig(cfg, sampleRate, shelving)
	for i, f := range freqsHz {
		h := complex(1, 0)
		for _, c := range coeffs {
			h *= c.Response(f, sampleRate)
		}

		dst[i] = core.LinearToDBFloor(cmplx.Abs(h))
	}
}
