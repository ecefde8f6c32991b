//go:build amd64 && !purego

package biquad

import (
	_ "github.com/cwbudde/algo-liveaudio/dsp/filter/biquad/internal/arch/amd64/unroll2" // register pairwise kernel
	_ "github.com/cwbudde/algo-liveaudio/dsp/filter/biquad/internal/arch/generic"       // register reference kernel
)
