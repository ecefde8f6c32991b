package bank_test

import (
	"fmt"

	"github.com/cwbudde/algo-liveaudio/dsp/filter/bank"
)

func ExampleEqualizer_ConfigureBand() {
	eq, err := bank.New(48000)
	if err != nil {
		panic(err)
	}

	stored := eq.ConfigureBand(0, 31.5, 20, bank.DefaultQ)
	fmt.Printf("stored gain: %.0f dB\n", stored.GainDB)
	fmt.Printf("response at 31.5 Hz: %.1f dB\n", eq.ResponseDB(31.5))
	fmt.Printf("response at 1 kHz: %.1f dB\n", eq.ResponseDB(1000))
	// Output:
	// stored gain: 12 dB
	// response at 31.5 Hz: 12.0 dB
	// response at 1 kHz: 0.0 dB
}
