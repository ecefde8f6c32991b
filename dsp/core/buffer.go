package core

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}

// Zero sets all values in buf to 0.
func Zero(buf []float64) {
	for i := range buf {
		buf[i] = 0
	}
}

// SanitizeBlock replaces every NaN or infinite sample in buf with 0 and
// reports how many samples were replaced.
func SanitizeBlock(buf []float64) int {
	bad := 0
	for i, v := range buf {
		if !IsFinite(v) {
			buf[i] = 0
			bad++
		}
	}
	return bad
}

// Float32ToFloat64 widens src into dst and returns the number of converted
// samples.
func Float32ToFloat64(dst []float64, src []float32) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = float64(src[i])
	}
	return n
}

// Float64ToFloat32 narrows src into dst and returns the number of converted
// samples.
func Float64ToFloat32(dst []float32, src []float64) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = float32(src[i])
	}
	return n
}
