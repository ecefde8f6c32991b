// Package dynamics provides the level-dependent gain stages of the live
// chain.
//
// Included processors:
//   - Compressor: feed-forward compressor with a log2-domain gain computer,
//     hard knee by default and an optional quadratic soft knee.
//   - Limiter: brick-wall peak limiter with an optional lookahead delay.
//     Its output never exceeds the threshold.
//   - AGC: automatic gain control steering a smoothed, bounded gain toward
//     a target level.
//
// All processors share the one-pole follower from dsp/envelope. They are
// single-threaded: configuration is handed in as complete snapshots via
// SetConfig from the goroutine that also calls ProcessBlock.
//
// Building with the fastmath tag swaps the log2/exp2 kernels of the gain
// computers for the approximations in algo-approx.
package dynamics
