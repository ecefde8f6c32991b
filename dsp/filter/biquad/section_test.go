package biquad

import (
	"testing"

	"github.com/cwbudde/algo-liveaudio/internal/testutil"
)

// lowpass1k is an RBJ lowpass at 1 kHz, Q=0.707, fs=48 kHz.
var lowpass1k = Coefficients{
	B0: 0.003916126660547371,
	B1: 0.007832253321094742,
	B2: 0.003916126660547371,
	A1: -1.8153396116625289,
	A2: 0.8310041183047184,
}

func TestIdentityPassesInput(t *testing.T) {
	s := NewSection(Identity())
	in := testutil.DeterministicNoise(1, 1, 256)
	buf := append([]float64(nil), in...)
	s.ProcessBlock(buf)
	testutil.RequireSliceNearlyEqual(t, buf, in, 0)

	if !Identity().IsIdentity() || lowpass1k.IsIdentity() {
		t.Fatal("IsIdentity misclassified coefficients")
	}
}

func TestProcessBlockMatchesProcessSample(t *testing.T) {
	in := testutil.DeterministicNoise(7, 1, 1023)

	ref := NewSection(lowpass1k)
	want := make([]float64, len(in))
	for i, x := range in {
		want[i] = ref.ProcessSample(x)
	}

	s := NewSection(lowpass1k)
	got := append([]float64(nil), in...)
	s.ProcessBlock(got[:500])
	s.ProcessBlock(got[500:])

	testutil.RequireSliceNearlyEqual(t, got, want, 1e-12)
}

func TestSetCoefficientsKeepsState(t *testing.T) {
	s := NewSection(lowpass1k)
	for i := 0; i < 64; i++ {
		s.ProcessSample(1)
	}

	before := s.State()
	s.SetCoefficients(Identity())

	if s.State() != before {
		t.Fatalf("state changed on coefficient swap: %v -> %v", before, s.State())
	}
	if s.Coefficients != Identity() {
		t.Fatal("coefficients not replaced")
	}
}

func TestResetAndState(t *testing.T) {
	s := NewSection(lowpass1k)
	s.SetState([2]float64{0.5, -0.25})
	if got := s.State(); got != [2]float64{0.5, -0.25} {
		t.Fatalf("State = %v", got)
	}

	s.Reset()
	if got := s.State(); got != [2]float64{} {
		t.Fatalf("State after Reset = %v", got)
	}
}

func TestProcessBlockFlushesDenormals(t *testing.T) {
	s := NewSection(lowpass1k)
	s.SetState([2]float64{1e-300, 1e-300})
	s.ProcessBlock(make([]float64, 4))

	st := s.State()
	if st[0] != 0 || st[1] != 0 {
		t.Fatalf("denormal state not flushed: %v", st)
	}
}

func TestProcessBlockZeroAlloc(t *testing.T) {
	s := NewSection(lowpass1k)
	buf := make([]float64, 512)
	allocs := testing.AllocsPerRun(100, func() {
		s.ProcessBlock(buf)
	})
	if allocs != 0 {
		t.Fatalf("ProcessBlock allocated %v times", allocs)
	}
}

func BenchmarkSectionProcessBlock(b *testing.B) {
	s := NewSection(lowpass1k)
	buf := testutil.DeterministicNoise(1, 1, 512)

	b.ReportAllocs()
	b.SetBytes(int64(len(buf) * 8))

	for i := 0; i < b.N; i++ {
		s.ProcessBlock(buf)
	}
}
