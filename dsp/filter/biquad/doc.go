// Package biquad provides the second-order IIR runtime used by the
// equalizer.
//
// A [Section] implements Direct Form II Transposed processing for one
// second-order section defined by [Coefficients]. Swapping coefficients
// with [Section.SetCoefficients] leaves the delay memory untouched, so a
// running filter can be retuned without a click.
//
// Coefficient design lives in dsp/filter/design.
package biquad
