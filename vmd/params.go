package vmd

import "fmt"

// Initialization strategies for the mode center frequencies.
const (
	// InitZero starts every center at frequency zero.
	InitZero = 0

	// InitUniform spreads the centers uniformly over the positive band.
	InitUniform = 1

	// InitRandom draws the centers log-uniformly between one cycle per
	// signal and Nyquist, seeded by Params.Seed.
	InitRandom = 2
)

// Params configures a decomposition.
type Params struct {
	K       int     // number of modes to extract
	Alpha   float64 // bandwidth penalty, larger values give narrower modes
	Tau     float64 // dual-ascent step, 0 disables the exactness constraint
	DCMode  bool    // pin the first mode's center frequency at 0
	Init    int     // center-frequency initialization strategy
	Tol     float64 // convergence tolerance on the summed relative mode change
	MaxIter int     // iteration cap
	Seed    int64   // random seed for InitRandom
}

// DefaultParams returns the fixed demo parameterization: six modes, a
// bandwidth penalty of 2000, no dual ascent, uniform initialization, and a
// 1e-7 convergence tolerance capped at 500 iterations.
func DefaultParams() Params {
	return Params{
		K:       6,
		Alpha:   2000,
		Tau:     0,
		DCMode:  false,
		Init:    InitUniform,
		Tol:     1e-7,
		MaxIter: 500,
		Seed:    1,
	}
}

func (p Params) validate() error {
	if p.K < 1 {
		return fmt.Errorf("mode count must be >= 1: %d", p.K)
	}
	if p.Alpha < 0 {
		return fmt.Errorf("bandwidth penalty must be >= 0: %g", p.Alpha)
	}
	if p.Tol <= 0 {
		return fmt.Errorf("convergence tolerance must be > 0: %g", p.Tol)
	}
	if p.MaxIter < 1 {
		return fmt.Errorf("iteration cap must be >= 1: %d", p.MaxIter)
	}
	if p.Init < InitZero || p.Init > InitRandom {
		return fmt.Errorf("init mode must be 0, 1, or 2: %d", p.Init)
	}
	return nil
}
