package signal

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-liveaudio/dsp/core"
)

func newTestGenerator(seed int64) *Generator {
	return NewGeneratorWithOptions([]core.ProcessorOption{core.WithSampleRate(48000)}, WithSeed(seed))
}

func TestWhiteNoiseDeterministic(t *testing.T) {
	n1, err := newTestGenerator(42).WhiteNoise(1, 16)
	if err != nil {
		t.Fatalf("WhiteNoise() error = %v", err)
	}
	n2, err := newTestGenerator(42).WhiteNoise(1, 16)
	if err != nil {
		t.Fatalf("WhiteNoise() error = %v", err)
	}

	for i := range n1 {
		if n1[i] != n2[i] {
			t.Fatalf("noise mismatch at %d: %v != %v", i, n1[i], n2[i])
		}
		if math.Abs(n1[i]) > 1 {
			t.Fatalf("noise out of range at %d: %v", i, n1[i])
		}
	}
}

func TestSetSeed(t *testing.T) {
	g := newTestGenerator(99)

	a, err := g.WhiteNoise(1, 8)
	if err != nil {
		t.Fatalf("WhiteNoise() error = %v", err)
	}
	g.SetSeed(100)
	b, err := g.WhiteNoise(1, 8)
	if err != nil {
		t.Fatalf("WhiteNoise() error = %v", err)
	}

	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("expected different seeds to produce different noise")
	}
}

func TestImpulseTrainSpacing(t *testing.T) {
	out, err := newTestGenerator(1).ImpulseTrain(2, 10, 4800)
	if err != nil {
		t.Fatalf("ImpulseTrain() error = %v", err)
	}

	count := 0
	for i, v := range out {
		if v == 0 {
			continue
		}
		if i%480 != 0 || v != 2 {
			t.Fatalf("unexpected impulse at %d: %v", i, v)
		}
		count++
	}
	if count != 10 {
		t.Fatalf("impulses=%d, want 10", count)
	}
}

func TestMix(t *testing.T) {
	a := []float64{0.5, 0.5, 0.5, 0.5}
	b := []float64{1, 1, 1, 1}

	if err := Mix(a, b, 0.25); err != nil {
		t.Fatal(err)
	}
	for i, v := range a {
		if v != 0.75 {
			t.Fatalf("a[%d]=%v, want 0.75", i, v)
		}
	}

	if err := Mix(a, b[:2], 1); err == nil {
		t.Fatal("expected length mismatch error")
	}
}

func TestValidation(t *testing.T) {
	g := newTestGenerator(1)
	if _, err := g.WhiteNoise(1, 0); err == nil {
		t.Fatal("expected error for zero samples")
	}
	if _, err := g.WhiteNoise(-1, 8); err == nil {
		t.Fatal("expected error for negative amplitude")
	}
	if _, err := g.ImpulseTrain(1, 0, 8); err == nil {
		t.Fatal("expected error for zero period")
	}
}

func TestOscillatorPhaseIsContinuous(t *testing.T) {
	const (
		sampleRate = 48000.0
		freq       = 997.0
	)

	osc := NewOscillator(sampleRate, freq, 0.5, 1)
	got := make([]float64, 1000)
	osc.Fill(got[:300])
	osc.Fill(got[300:])

	for i, v := range got {
		want := 0.5 * math.Sin(2*math.Pi*freq*float64(i)/sampleRate)
		if math.Abs(v-want) > 1e-9 {
			t.Fatalf("sample %d: got %v want %v", i, v, want)
		}
	}
}

func TestOscillatorFillDoesNotAllocate(t *testing.T) {
	osc := NewOscillator(48000, 440, 0.5, 1)
	osc.SetNoise(0.1)
	buf := make([]float64, 256)

	allocs := testing.AllocsPerRun(100, func() {
		osc.Fill(buf)
	})
	if allocs != 0 {
		t.Fatalf("Fill allocs = %v, want 0", allocs)
	}
}
