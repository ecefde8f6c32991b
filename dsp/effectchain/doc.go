// Package effectchain runs the live processing chain: noise suppression,
// equalizer, automatic gain control, compressor and limiter, always in that
// order.
//
// Every stage sits behind a bypass fader. Toggling a stage crossfades
// linearly between its input and its output over a short fade; a stage that
// is fully bypassed is not executed. After each stage non-finite samples are
// replaced with silence, the stage is reset and a fault is counted.
//
// A Chain is owned by one goroutine. Configure, Process and the meter
// accessors must not be called concurrently.
package effectchain
