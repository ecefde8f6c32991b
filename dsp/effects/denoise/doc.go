// Package denoise provides a streaming spectral-subtraction noise
// suppressor.
//
// The Suppressor runs a short-time Fourier transform with periodic
// square-root Hann analysis and synthesis windows at 50% overlap, so an
// all-pass gain reconstructs the input exactly, delayed by one frame. Per
// bin it tracks a noise floor that falls quickly and rises slowly, and only
// while the bin is not far above the current estimate. Each bin is then
// scaled by an over-subtracted gain bounded below by a spectral floor and
// smoothed across frames.
package denoise
