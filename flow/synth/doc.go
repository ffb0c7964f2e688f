// Package synth generates deterministic synthetic traffic-flow days.
//
// The built-in mix models a congested urban day as six sinusoidal
// ingredients of increasing frequency, a daily trend riding on a constant
// base load down to short random disturbances, summed and clamped at zero.
// It serves as a workbook-free data source for the demo pipeline and as a
// known-composition input for decomposition tests.
package synth
