package envelope

import (
	"math"
	"testing"
)

func TestCoefficient(t *testing.T) {
	tests := []struct {
		name       string
		ms, sr     float64
		want       float64
		wantIsZero bool
	}{
		{name: "10ms at 48k", ms: 10, sr: 48000, want: math.Exp(-1.0 / 480)},
		{name: "1ms at 44.1k", ms: 1, sr: 44100, want: math.Exp(-1.0 / 44.1)},
		{name: "zero", ms: 0, sr: 48000, wantIsZero: true},
		{name: "negative", ms: -5, sr: 48000, wantIsZero: true},
		{name: "nan", ms: math.NaN(), sr: 48000, wantIsZero: true},
		{name: "bad rate", ms: 10, sr: 0, wantIsZero: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Coefficient(tt.ms, tt.sr)
			if tt.wantIsZero {
				if got != 0 {
					t.Fatalf("Coefficient = %v, want 0", got)
				}
				return
			}
			if math.Abs(got-tt.want) > 1e-15 {
				t.Fatalf("Coefficient = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewRejectsBadSampleRate(t *testing.T) {
	if _, err := New(0, 1, 1); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
	if _, err := New(math.Inf(1), 1, 1); err == nil {
		t.Fatal("expected error for infinite sample rate")
	}
}

func TestStepResponseTimeConstant(t *testing.T) {
	const sr = 48000.0

	f, err := New(sr, 10, 100)
	if err != nil {
		t.Fatal(err)
	}

	n := int(10 * 0.001 * sr)
	var level float64
	for i := 0; i < n; i++ {
		level = f.Update(1)
	}

	want := 1 - math.Exp(-1)
	if math.Abs(level-want) > 1e-3 {
		t.Fatalf("after one attack time constant level = %v, want %v", level, want)
	}

	f.SetLevel(1)
	n = int(100 * 0.001 * sr)
	for i := 0; i < n; i++ {
		level = f.Update(0)
	}

	if math.Abs(level-math.Exp(-1)) > 1e-3 {
		t.Fatalf("after one release time constant level = %v, want %v", level, math.Exp(-1))
	}
}

func TestInstantAttack(t *testing.T) {
	f, _ := New(48000, 0, 50)
	if got := f.Update(0.7); got != 0.7 {
		t.Fatalf("instant attack level = %v, want 0.7", got)
	}
	if got := f.Update(0.2); got <= 0.2 || got >= 0.7 {
		t.Fatalf("release should fall gradually, got %v", got)
	}
}

func TestSetTimesKeepsLevel(t *testing.T) {
	f, _ := New(48000, 5, 50)
	for i := 0; i < 100; i++ {
		f.Update(0.5)
	}

	before := f.Level()
	f.SetTimes(20, 200)
	if f.Level() != before {
		t.Fatalf("SetTimes changed level %v -> %v", before, f.Level())
	}
	if f.AttackMs() != 20 || f.ReleaseMs() != 200 {
		t.Fatalf("times = %v/%v", f.AttackMs(), f.ReleaseMs())
	}

	f.SetTimes(math.NaN(), -1)
	if f.AttackCoeff() != 0 || f.ReleaseCoeff() != 0 {
		t.Fatal("invalid times should track instantly")
	}
}

func TestUpdateBlockMatchesUpdate(t *testing.T) {
	a, _ := New(48000, 1, 10)
	b, _ := New(48000, 1, 10)

	buf := []float64{0, 0.5, 1, 0.25, 0, 0, 0.9}
	want := make([]float64, len(buf))
	for i, x := range buf {
		want[i] = a.Update(x)
	}

	b.UpdateBlock(buf)
	for i := range buf {
		if buf[i] != want[i] {
			t.Fatalf("index %d: %v != %v", i, buf[i], want[i])
		}
	}

	b.Reset()
	if b.Level() != 0 {
		t.Fatal("Reset did not clear level")
	}
}

func TestZeroValueTracksInstantly(t *testing.T) {
	var f Follower
	if f.Update(0.3) != 0.3 || f.Update(0.1) != 0.1 {
		t.Fatal("zero-value follower should track instantly")
	}
}
