package effectchain

// fader is a linear bypass crossfade. gain is the wet share in [0, 1].
//
// A stage switched on from full bypass starts from reset state. Its first
// output samples are the silence its delay line was cleared to, so the ramp
// holds at zero until the stage's latency has elapsed.
type fader struct {
	gain   float64
	target float64
	step   float64

	start bool // stage must be reset before the next fade-in
	hold  int  // samples to keep the wet share at zero
}

func newFader(fadeSamples int) fader {
	f := fader{step: 1}
	if fadeSamples > 1 {
		f.step = 1 / float64(fadeSamples)
	}

	return f
}

func (f *fader) set(on bool) {
	if on && f.gain == 0 && f.target == 0 {
		f.start = true
	}

	f.target = 0
	if on {
		f.target = 1
	}
}

func (f *fader) on() bool { return f.target == 1 }

// bypassed reports a stage that is fully off and staying off.
func (f *fader) bypassed() bool { return f.gain == 0 && f.target == 0 }

func (f *fader) settled() bool { return f.gain == f.target && f.hold == 0 }

func (f *fader) snap() {
	f.gain = f.target
	f.start = false
	f.hold = 0
}

// fill writes the per-sample wet gain for the next len(ramp) samples and
// advances the fader.
func (f *fader) fill(ramp []float64) {
	g := f.gain
	for i := range ramp {
		switch {
		case f.hold > 0:
			f.hold--
		case g < f.target:
			g = min(g+f.step, f.target)
		case g > f.target:
			g = max(g-f.step, f.target)
		}

		ramp[i] = g
	}

	f.gain = g
}
