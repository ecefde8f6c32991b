package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		min      float64
		max      float64
		expected float64
	}{
		{name: "inside", value: 0.5, min: 0, max: 1, expected: 0.5},
		{name: "below", value: -1, min: 0, max: 1, expected: 0},
		{name: "above", value: 2, min: 0, max: 1, expected: 1},
		{name: "swapped", value: 2, min: 1, max: 0, expected: 1},
		{name: "lower edge", value: -12, min: -12, max: 12, expected: -12},
		{name: "upper edge", value: 12, min: -12, max: 12, expected: 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.value, tt.min, tt.max)
			if got != tt.expected {
				t.Fatalf("Clamp() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestClampOr(t *testing.T) {
	if got := ClampOr(math.NaN(), -12, 12, 0); got != 0 {
		t.Fatalf("ClampOr(NaN) = %v, want default 0", got)
	}
	if got := ClampOr(math.Inf(1), -12, 12, 3); got != 3 {
		t.Fatalf("ClampOr(+Inf) = %v, want default 3", got)
	}
	if got := ClampOr(20, -12, 12, 0); got != 12 {
		t.Fatalf("ClampOr(20) = %v, want 12", got)
	}
}

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-13, 1e-12) {
		t.Fatal("expected values to be nearly equal")
	}
	if NearlyEqual(1.0, 1.1, 1e-3) {
		t.Fatal("expected values to differ")
	}
}

func TestFlushDenormals(t *testing.T) {
	if got := FlushDenormals(1e-35); got != 0 {
		t.Fatalf("FlushDenormals(1e-35) = %v, want 0", got)
	}
	if got := FlushDenormals(-1e-35); got != 0 {
		t.Fatalf("FlushDenormals(-1e-35) = %v, want 0", got)
	}
	if got := FlushDenormals(1e-6); got != 1e-6 {
		t.Fatalf("FlushDenormals(1e-6) = %v, want unchanged", got)
	}
}

func TestDBConversions(t *testing.T) {
	linear := DBToLinear(-6)
	db := LinearToDB(linear)
	if !NearlyEqual(db, -6, 1e-10) {
		t.Fatalf("LinearToDB(DBToLinear(-6)) = %v, want -6", db)
	}
	if !math.IsInf(LinearToDB(0), -1) {
		t.Fatal("expected -Inf for zero")
	}
	if !math.IsNaN(LinearToDB(-1)) {
		t.Fatal("expected NaN for negative amplitude")
	}
}

func TestLinearToDBFloor(t *testing.T) {
	if got := LinearToDBFloor(0); got != SilenceFloorDB {
		t.Fatalf("LinearToDBFloor(0) = %v, want %v", got, SilenceFloorDB)
	}
	if got := LinearToDBFloor(math.NaN()); got != SilenceFloorDB {
		t.Fatalf("LinearToDBFloor(NaN) = %v, want %v", got, SilenceFloorDB)
	}
	if got := LinearToDBFloor(-0.5); !NearlyEqual(got, 20*math.Log10(0.5), 1e-12) {
		t.Fatalf("LinearToDBFloor(-0.5) = %v", got)
	}
}

func TestMsSampleConversions(t *testing.T) {
	if got := MsToSamples(10, 48000); got != 480 {
		t.Fatalf("MsToSamples(10, 48k) = %d, want 480", got)
	}
	if got := MsToSamples(-1, 48000); got != 0 {
		t.Fatalf("MsToSamples(-1) = %d, want 0", got)
	}
	if got := SamplesToMs(480, 48000); !NearlyEqual(got, 10, 1e-12) {
		t.Fatalf("SamplesToMs(480, 48k) = %v, want 10", got)
	}
	if got := SamplesToMs(480, 0); got != 0 {
		t.Fatalf("SamplesToMs with zero rate = %v, want 0", got)
	}
}
