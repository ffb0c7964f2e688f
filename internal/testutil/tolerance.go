package testutil

import (
	"fmt"
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		diff := math.Abs(got[i] - want[i])
		if diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// MaxAbsDiff returns the maximum absolute difference between two slices.
// Returns an error if the slices differ in length.
func MaxAbsDiff(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}
	maxDiff := 0.0
	for i := range a {
		d := math.Abs(a[i] - b[i])
		if d > maxDiff {
			maxDiff = d
		}
	}
	return maxDiff, nil
}

// RelativeRMS returns the RMS of (got - want) divided by the RMS of want.
// It measures reconstruction error independent of signal scale. A zero
// reference with a nonzero residual yields +Inf.
func RelativeRMS(got, want []float64) (float64, error) {
	if len(got) != len(want) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(got), len(want))
	}
	if len(want) == 0 {
		return 0, fmt.Errorf("empty input")
	}
	var errSq, refSq float64
	for i := range want {
		d := got[i] - want[i]
		errSq += d * d
		refSq += want[i] * want[i]
	}
	if refSq == 0 {
		if errSq == 0 {
			return 0, nil
		}
		return math.Inf(1), nil
	}
	return math.Sqrt(errSq / refSq), nil
}

// Correlation returns the normalized dot product of a and b in [-1, 1].
// Either input being all zero yields 0.
func Correlation(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}
	var dot, aSq, bSq float64
	for i := range a {
		dot += a[i] * b[i]
		aSq += a[i] * a[i]
		bSq += b[i] * b[i]
	}
	if aSq == 0 || bSq == 0 {
		return 0, nil
	}
	return dot / math.Sqrt(aSq*bSq), nil
}
