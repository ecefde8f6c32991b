package core

import "math"

const (
	defaultEpsilon = 1e-12

	// denormalThreshold is the magnitude below which state values are
	// flushed to zero.
	denormalThreshold = 1e-30

	// SilenceFloorDB is the level reported for digital silence.
	SilenceFloorDB = -120.0
)

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// ClampOr limits value to [min, max] and substitutes def when value is NaN
// or infinite. def itself is not clamped.
func ClampOr(value, min, max, def float64) float64 {
	if !IsFinite(value) {
		return def
	}

	return Clamp(value, min, max)
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// FlushDenormals converts tiny denormal-like values to exact zero.
// This can reduce denormal-related CPU slowdowns in hot DSP loops.
func FlushDenormals(x float64) float64 {
	if x > -denormalThreshold && x < denormalThreshold {
		return 0
	}

	return x
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}

// LinearToDBFloor converts linear amplitude to dB and never reports less
// than SilenceFloorDB. Negative input is treated as its magnitude.
func LinearToDBFloor(linear float64) float64 {
	linear = math.Abs(linear)
	if linear == 0 || math.IsNaN(linear) {
		return SilenceFloorDB
	}

	return math.Max(20*math.Log10(linear), SilenceFloorDB)
}

// MsToSamples converts a duration in milliseconds to a whole number of
// samples, rounding to nearest and never returning a negative count.
func MsToSamples(ms, sampleRate float64) int {
	n := int(math.Round(ms * 0.001 * sampleRate))
	if n < 0 {
		return 0
	}

	return n
}

// SamplesToMs converts a sample count to milliseconds.
func SamplesToMs(samples int, sampleRate float64) float64 {
	if sampleRate <= 0 {
		return 0
	}

	return float64(samples) * 1000 / sampleRate
}
