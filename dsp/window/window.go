package window

import "math"

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	// TypeSqrtHann is the square root of Hann. Used for both analysis and
	// synthesis its squared periodic form sums to one at 50% overlap.
	TypeSqrtHann
)

var typeNames = map[Type]string{
	TypeRectangular: "Rectangular",
	TypeHann:        "Hann",
	TypeSqrtHann:    "Sqrt-Hann",
}

// String returns the window name.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}

	return "Unknown"
}

// Option configures window generation.
type Option func(*config)

type config struct {
	periodic bool
}

// WithPeriodic configures periodic form (FFT framing) instead of symmetric form.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// Generate returns window coefficients of the given length, or nil for a
// length below one.
func Generate(t Type, length int, opts ...Option) []float64 {
	if length <= 0 {
		return nil
	}

	var cfg config

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	out := make([]float64, length)
	for i := range out {
		out[i] = evalWindow(t, samplePosition(i, length, cfg.periodic))
	}

	return out
}

// OverlapAddGain returns the minimum and maximum of the sum of
// analysis*synthesis products over all frames overlapping one output sample
// when frames advance by hop. For perfect reconstruction both are 1.
func OverlapAddGain(analysis, synthesis []float64, hop int) (lo, hi float64, err error) {
	if len(analysis) != len(synthesis) {
		return 0, 0, errMismatchedLength
	}

	if err := validateHop(len(analysis), hop); err != nil {
		return 0, 0, err
	}

	lo = math.Inf(1)
	hi = math.Inf(-1)

	for n := range hop {
		sum := 0.0
		for k := n; k < len(analysis); k += hop {
			sum += analysis[k] * synthesis[k]
		}

		lo = math.Min(lo, sum)
		hi = math.Max(hi, sum)
	}

	return lo, hi, nil
}

func evalWindow(t Type, x float64) float64 {
	x = math.Min(math.Max(x, 0), 1)
	hann := 0.5 - 0.5*math.Cos(2*math.Pi*x)

	switch t {
	case TypeHann:
		return hann
	case TypeSqrtHann:
		return math.Sqrt(math.Max(0, hann))
	default:
		return 1
	}
}

func samplePosition(n, size int, periodic bool) float64 {
	if size <= 1 {
		return 0
	}

	den := float64(size - 1)
	if periodic {
		den = float64(size)
	}

	return float64(n) / den
}
