// Package design computes biquad coefficients for equalizer bands using the
// RBJ Audio EQ Cookbook formulas.
//
// All designers return [biquad.Coefficients] with a0 normalized to 1.
// Coefficients are always computed in float64. A request that cannot be
// realized at the given sample rate (frequency at or above Nyquist,
// non-finite input) designs to the identity section rather than failing.
package design
