// Package status reports engine latency and the metering written by the
// audio thread.
//
// Latency is a pure function of the published settings, so the control
// plane can report it without touching processing state. Meters are plain
// atomics: the audio thread stores once per block, readers load at will.
package status
