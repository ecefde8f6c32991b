package signal

import (
	"math"
	"math/rand"
)

// Oscillator is a streaming test source: a sine with continuous phase plus
// optional white noise. Fill never allocates, so it can feed a block loop.
type Oscillator struct {
	sampleRate float64
	freq       float64
	amplitude  float64
	noise      float64
	phase      float64
	rng        *rand.Rand
}

// NewOscillator returns a sine source at freqHz.
func NewOscillator(sampleRate, freqHz, amplitude float64, seed int64) *Oscillator {
	return &Oscillator{
		sampleRate: sampleRate,
		freq:       freqHz,
		amplitude:  amplitude,
		rng:        rand.New(rand.NewSource(seed)),
	}
}

// SetNoise sets the peak amplitude of the added white noise.
func (o *Oscillator) SetNoise(amplitude float64) { o.noise = amplitude }

// Fill writes the next len(dst) samples.
func (o *Oscillator) Fill(dst []float64) {
	step := 2 * math.Pi * o.freq / o.sampleRate
	for i := range dst {
		v := o.amplitude * math.Sin(o.phase)
		if o.noise > 0 {
			v += (o.rng.Float64()*2 - 1) * o.noise
		}
		dst[i] = v

		o.phase += step
		if o.phase >= 2*math.Pi {
			o.phase -= 2 * math.Pi
		}
	}
}
