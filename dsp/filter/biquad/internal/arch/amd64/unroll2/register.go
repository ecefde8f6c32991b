//go:build amd64 && !purego

// Package unroll2 registers a biquad kernel that handles two samples per
// loop iteration. Every amd64 host has SSE2, so it always outranks the
// reference kernel there.
package unroll2

import (
	"github.com/cwbudde/algo-liveaudio/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

func init() {
	registry.Global.Register(registry.OpEntry{
		Name:         "unroll2",
		SIMDLevel:    cpu.SIMDSSE2,
		Priority:     10,
		ProcessBlock: ProcessBlock,
	})
}

// ProcessBlock runs one DF-II-T section over buf in sample pairs. The
// arithmetic per sample is the same as the reference kernel, so results
// are bit-identical.
func ProcessBlock(c registry.Coefficients, d0, d1 float64, buf []float64) (newD0, newD1 float64) {
	b0, b1, b2, a1, a2 := c.B0, c.B1, c.B2, c.A1, c.A2

	pairs := len(buf) &^ 1
	for i := 0; i < pairs; i += 2 {
		x := buf[i]
		y := b0*x + d0
		d0 = b1*x - a1*y + d1
		d1 = b2*x - a2*y
		buf[i] = y

		x = buf[i+1]
		y = b0*x + d0
		d0 = b1*x - a1*y + d1
		d1 = b2*x - a2*y
		buf[i+1] = y
	}

	if pairs < len(buf) {
		x := buf[pairs]
		y := b0*x + d0
		d0 = b1*x - a1*y + d1
		d1 = b2*x - a2*y
		buf[pairs] = y
	}

	return d0, d1
}
