package vmd

import (
	"errors"
	"fmt"
)

// Errors returned by the reconstruction functions.
var (
	// ErrNoModes indicates an empty mode set.
	ErrNoModes = errors.New("vmd: no modes to reconstruct")

	// ErrLengthMismatch indicates that weights, include flags, and modes do
	// not agree in shape.
	ErrLengthMismatch = errors.New("vmd: reconstruction shape mismatch")
)

// Reconstruct returns the weighted sum of the included modes,
//
//	out[t] = sum over k of include[k] * weights[k] * modes[k][t].
//
// A weight of 0 and include=false remove a mode identically. Excluding
// every mode yields an all-zero series. The raw sum may dip below zero;
// use ReconstructClamped for a physical flow.
func Reconstruct(modes [][]float64, weights []float64, include []bool) ([]float64, error) {
	if len(modes) == 0 {
		return nil, ErrNoModes
	}
	if len(weights) != len(modes) {
		return nil, fmt.Errorf("%w: %d weights for %d modes",
			ErrLengthMismatch, len(weights), len(modes))
	}
	if len(include) != len(modes) {
		return nil, fmt.Errorf("%w: %d include flags for %d modes",
			ErrLengthMismatch, len(include), len(modes))
	}
	n := len(modes[0])
	for k, mode := range modes {
		if len(mode) != n {
			return nil, fmt.Errorf("%w: mode %d has %d samples, mode 0 has %d",
				ErrLengthMismatch, k, len(mode), n)
		}
	}

	out := make([]float64, n)
	for k, mode := range modes {
		if !include[k] || weights[k] == 0 {
			continue
		}
		w := weights[k]
		for i, v := range mode {
			out[i] += w * v
		}
	}
	return out, nil
}

// ReconstructClamped is Reconstruct with a zero floor applied elementwise;
// traffic flow cannot be negative.
func ReconstructClamped(modes [][]float64, weights []float64, include []bool) ([]float64, error) {
	out, err := Reconstruct(modes, weights, include)
	if err != nil {
		return nil, err
	}
	for i, v := range out {
		if v < 0 {
			out[i] = 0
		}
	}
	return out, nil
}

// Reconstruct recombines the result's modes. See the package-level
// Reconstruct.
func (r *Result) Reconstruct(weights []float64, include []bool) ([]float64, error) {
	return Reconstruct(r.Modes, weights, include)
}

// ReconstructClamped recombines the result's modes with a zero floor. See
// the package-level ReconstructClamped.
func (r *Result) ReconstructClamped(weights []float64, include []bool) ([]float64, error) {
	return ReconstructClamped(r.Modes, weights, include)
}
