package vmd

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"math/rand"
	"sort"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by Decompose.
var (
	// ErrShortSignal indicates that the signal has fewer than 2*K samples,
	// too few to attribute spectral content to K modes.
	ErrShortSignal = errors.New("vmd: signal too short for requested mode count")

	// ErrNonFinite indicates a NaN or Inf sample in the input.
	ErrNonFinite = errors.New("vmd: signal contains non-finite samples")
)

// Result holds the outcome of a decomposition.
type Result struct {
	// Modes contains the K band-limited components, each of input length,
	// ordered by ascending center frequency. Their sum approximates the
	// input signal.
	Modes [][]float64

	// Omega holds the final center frequency of each mode in cycles per
	// sample, aligned with Modes.
	Omega []float64

	// Iterations is the number of update sweeps performed before
	// convergence or the iteration cap.
	Iterations int
}

// Decompose splits signal into p.K band-limited modes. It returns
// ErrShortSignal when the signal holds fewer than 2*p.K samples and
// ErrNonFinite when any sample is NaN or Inf. The output is deterministic
// for a fixed signal and parameter set.
func Decompose(signal []float64, p Params) (*Result, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	if len(signal) < 2*p.K {
		return nil, fmt.Errorf("%w: %d samples, need at least %d for %d modes",
			ErrShortSignal, len(signal), 2*p.K, p.K)
	}
	for i, v := range signal {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: sample %d", ErrNonFinite, i)
		}
	}

	s, err := newSolver(len(signal), p)
	if err != nil {
		return nil, err
	}
	return s.run(signal)
}

// solver holds the spectral working state of one decomposition.
type solver struct {
	p     Params
	n     int // input length
	size  int // FFT frame length, power of two >= 2*n
	start int // offset of the input inside the extended frame
	plan  *algofft.Plan[complex128]

	// Centered frequency axis of the frame: freqs[i] = i/size - 0.5, so the
	// nonnegative half starts at index size/2.
	freqs []float64

	fHat     []complex128   // analytic input spectrum, centered bin order
	prev     [][]complex128 // per-mode spectra after the previous sweep
	cur      [][]complex128 // per-mode spectra of the current sweep
	sumModes []complex128   // running sum of the other modes' spectra
	lagrange []complex128   // dual variable of the exactness constraint

	omegaPrev []float64
	omegaCur  []float64

	re, im, pow []float64 // split-parts scratch for power computations
}

func newSolver(n int, p Params) (*solver, error) {
	size := nextPowerOf2(2 * n)
	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("vmd: failed to create FFT plan: %w", err)
	}

	s := &solver{
		p:         p,
		n:         n,
		size:      size,
		start:     (size - n) / 2,
		plan:      plan,
		freqs:     make([]float64, size),
		fHat:      make([]complex128, size),
		prev:      make([][]complex128, p.K),
		cur:       make([][]complex128, p.K),
		sumModes:  make([]complex128, size),
		lagrange:  make([]complex128, size),
		omegaPrev: make([]float64, p.K),
		omegaCur:  make([]float64, p.K),
		re:        make([]float64, size),
		im:        make([]float64, size),
		pow:       make([]float64, size),
	}
	for k := 0; k < p.K; k++ {
		s.prev[k] = make([]complex128, size)
		s.cur[k] = make([]complex128, size)
	}
	for i := range s.freqs {
		s.freqs[i] = float64(i)/float64(size) - 0.5
	}
	return s, nil
}

func (s *solver) run(signal []float64) (*Result, error) {
	if err := s.analyticSpectrum(signal); err != nil {
		return nil, err
	}
	s.initOmega()

	eps := math.Nextafter(1, 2) - 1
	uDiff := s.p.Tol + eps
	iter := 0
	for uDiff > s.p.Tol && iter < s.p.MaxIter-1 {
		s.sweep()
		uDiff = eps + s.modeDelta()
		s.prev, s.cur = s.cur, s.prev
		s.omegaPrev, s.omegaCur = s.omegaCur, s.omegaPrev
		iter++
	}

	modes, err := s.extractModes()
	if err != nil {
		return nil, err
	}
	omega := append([]float64(nil), s.omegaPrev...)
	sortByOmega(modes, omega)

	return &Result{Modes: modes, Omega: omega, Iterations: iter}, nil
}

// analyticSpectrum mirrors the signal into the frame, transforms it, and
// keeps only the nonnegative-frequency half in centered bin order.
func (s *solver) analyticSpectrum(signal []float64) error {
	ext := make([]complex128, s.size)
	for i := range ext {
		ext[i] = complex(signal[reflectIndex(i-s.start, s.n)], 0)
	}

	spec := make([]complex128, s.size)
	if err := s.plan.Forward(spec, ext); err != nil {
		return fmt.Errorf("vmd: forward FFT failed: %w", err)
	}

	half := s.size / 2
	for i := range s.fHat {
		s.fHat[i] = spec[(i+half)%s.size]
	}
	for i := 0; i < half; i++ {
		s.fHat[i] = 0
	}
	return nil
}

func (s *solver) initOmega() {
	switch s.p.Init {
	case InitUniform:
		for k := range s.omegaPrev {
			s.omegaPrev[k] = 0.5 / float64(s.p.K) * float64(k)
		}
	case InitRandom:
		rng := rand.New(rand.NewSource(s.p.Seed))
		lowest := 1 / float64(s.n)
		for k := range s.omegaPrev {
			s.omegaPrev[k] = math.Exp(math.Log(lowest) +
				(math.Log(0.5)-math.Log(lowest))*rng.Float64())
		}
		sort.Float64s(s.omegaPrev)
	}
	if s.p.DCMode {
		s.omegaPrev[0] = 0
	}
}

// sweep performs one update pass over all modes: for each mode a Wiener
// filter against the residual of the others, then a center-frequency
// reestimate, and finally the dual-ascent step when Tau is nonzero.
func (s *solver) sweep() {
	last := s.p.K - 1
	for k := 0; k <= last; k++ {
		// Maintain the running residual sum: modes below k are already
		// updated this sweep, modes above k still carry the previous sweep.
		if k == 0 {
			for i := range s.sumModes {
				s.sumModes[i] += s.prev[last][i] - s.prev[0][i]
			}
		} else {
			for i := range s.sumModes {
				s.sumModes[i] += s.cur[k-1][i] - s.prev[k][i]
			}
		}

		omega := s.omegaPrev[k]
		for i := range s.cur[k] {
			df := s.freqs[i] - omega
			gain := 1 / (1 + s.p.Alpha*df*df)
			s.cur[k][i] = (s.fHat[i] - s.sumModes[i] - 0.5*s.lagrange[i]) * complex(gain, 0)
		}

		if k == 0 && s.p.DCMode {
			s.omegaCur[0] = 0
		} else {
			s.omegaCur[k] = s.centroid(s.cur[k], s.omegaPrev[k])
		}
	}

	if s.p.Tau != 0 {
		for i := range s.lagrange {
			sum := s.sumModes[i] + s.cur[last][i]
			s.lagrange[i] += complex(s.p.Tau, 0) * (sum - s.fHat[i])
		}
	}
}

// centroid returns the power-weighted mean frequency of the mode over the
// nonnegative band. A mode without any energy keeps its previous center.
func (s *solver) centroid(u []complex128, fallback float64) float64 {
	half := s.size / 2
	re, im, pow := s.re[:half], s.im[:half], s.pow[:half]
	for i := 0; i < half; i++ {
		c := u[half+i]
		re[i] = real(c)
		im[i] = imag(c)
	}
	vecmath.Power(pow, re, im)

	var num, den float64
	for i, p := range pow {
		num += s.freqs[half+i] * p
		den += p
	}
	if den == 0 {
		return fallback
	}
	return num / den
}

// modeDelta returns the summed relative spectral change of all modes
// between the current and the previous sweep.
func (s *solver) modeDelta() float64 {
	var total float64
	for k := range s.cur {
		for i := range s.cur[k] {
			d := s.cur[k][i] - s.prev[k][i]
			s.re[i] = real(d)
			s.im[i] = imag(d)
		}
		vecmath.Power(s.pow, s.re, s.im)

		var acc float64
		for _, v := range s.pow {
			acc += v
		}
		total += acc / float64(s.size)
	}
	return total
}

// extractModes completes each mode's spectrum to Hermitian symmetry,
// transforms it back, and crops the frame to the original signal window.
func (s *solver) extractModes() ([][]float64, error) {
	half := s.size / 2
	full := make([]complex128, s.size)
	buf := make([]complex128, s.size)

	modes := make([][]float64, s.p.K)
	for k := range modes {
		u := s.prev[k]
		for i := half; i < s.size; i++ {
			full[i] = u[i]
		}
		for m := 0; m < half; m++ {
			full[half-m] = cmplx.Conj(u[half+m])
		}
		full[0] = cmplx.Conj(full[s.size-1])

		// Undo the bin centering before the inverse transform.
		for i := range buf {
			buf[i] = full[(i+half)%s.size]
		}
		if err := s.plan.Inverse(buf, buf); err != nil {
			return nil, fmt.Errorf("vmd: inverse FFT failed: %w", err)
		}

		mode := make([]float64, s.n)
		for i := range mode {
			mode[i] = real(buf[s.start+i])
		}
		modes[k] = mode
	}
	return modes, nil
}

// sortByOmega reorders modes and omega in place by ascending center
// frequency.
func sortByOmega(modes [][]float64, omega []float64) {
	idx := make([]int, len(omega))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return omega[idx[a]] < omega[idx[b]] })

	sortedModes := make([][]float64, len(modes))
	sortedOmega := make([]float64, len(omega))
	for i, j := range idx {
		sortedModes[i] = modes[j]
		sortedOmega[i] = omega[j]
	}
	copy(modes, sortedModes)
	copy(omega, sortedOmega)
}

// reflectIndex maps any frame position onto [0, n) by half-sample
// symmetric reflection, so f[-1] == f[0] and f[n] == f[n-1].
func reflectIndex(i, n int) int {
	if n == 1 {
		return 0
	}
	period := 2 * n
	i %= period
	if i < 0 {
		i += period
	}
	if i >= n {
		i = period - 1 - i
	}
	return i
}

// nextPowerOf2 returns the next power of 2 >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
