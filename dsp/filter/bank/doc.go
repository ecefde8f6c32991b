// Package bank implements the graphic equalizer: a cascade of peaking
// biquads, one per band, at the ISO octave centers
//
//	31.5, 63, 125, 250, 500, 1k, 2k, 4k, 8k, 16k Hz
//
// with a default Q of sqrt(2) (one octave).
//
// Bands run in ascending frequency order. A band whose gain is exactly
// 0 dB has an identity transfer function; once its delay memory has drained
// it is skipped entirely. Retuning a band swaps its coefficients and keeps
// the delay memory so parameter changes do not click.
//
// Basic usage:
//
//	eq, _ := bank.New(48000)
//	eq.ConfigureBand(0, 31.5, 6, bank.DefaultQ)
//	eq.ProcessBlock(buf)
package bank
