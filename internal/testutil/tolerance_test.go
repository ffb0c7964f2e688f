package testutil

import (
	"math"
	"testing"
)

func TestMaxAbsDiff(t *testing.T) {
	a := []float64{1.0, 2.0, 3.0}
	b := []float64{1.0, 2.1, 3.0}

	d, err := MaxAbsDiff(a, b)
	if err != nil {
		t.Fatalf("MaxAbsDiff error: %v", err)
	}

	if math.Abs(d-0.1) > 1e-15 {
		t.Fatalf("MaxAbsDiff = %v, want 0.1", d)
	}
}

func TestMaxAbsDiffLengthMismatch(t *testing.T) {
	_, err := MaxAbsDiff([]float64{1}, []float64{1, 2})
	if err == nil {
		t.Fatal("expected error for length mismatch")
	}
}

func TestMaxAbsDiffIdentical(t *testing.T) {
	a := []float64{1, 2, 3}

	d, err := MaxAbsDiff(a, a)
	if err != nil {
		t.Fatalf("MaxAbsDiff error: %v", err)
	}

	if d != 0 {
		t.Fatalf("MaxAbsDiff = %v, want 0 for identical slices", d)
	}
}

func TestRelativeRMS(t *testing.T) {
	want := []float64{3, 4, 0}
	got := []float64{3, 4, 1}

	// Error RMS = 1/sqrt(3), reference RMS = 5/sqrt(3).
	r, err := RelativeRMS(got, want)
	if err != nil {
		t.Fatalf("RelativeRMS error: %v", err)
	}
	if math.Abs(r-0.2) > 1e-12 {
		t.Fatalf("RelativeRMS = %v, want 0.2", r)
	}
}

func TestRelativeRMSZeroReference(t *testing.T) {
	r, err := RelativeRMS([]float64{0, 0}, []float64{0, 0})
	if err != nil || r != 0 {
		t.Fatalf("RelativeRMS = %v, %v, want 0 for identical zeros", r, err)
	}

	r, err = RelativeRMS([]float64{1, 0}, []float64{0, 0})
	if err != nil || !math.IsInf(r, 1) {
		t.Fatalf("RelativeRMS = %v, %v, want +Inf against a zero reference", r, err)
	}
}

func TestCorrelation(t *testing.T) {
	a := []float64{1, 2, 3}

	r, err := Correlation(a, a)
	if err != nil {
		t.Fatalf("Correlation error: %v", err)
	}
	if math.Abs(r-1) > 1e-12 {
		t.Fatalf("self correlation = %v, want 1", r)
	}

	neg := []float64{-1, -2, -3}
	r, err = Correlation(a, neg)
	if err != nil {
		t.Fatalf("Correlation error: %v", err)
	}
	if math.Abs(r+1) > 1e-12 {
		t.Fatalf("anti correlation = %v, want -1", r)
	}

	r, err = Correlation(a, []float64{0, 0, 0})
	if err != nil || r != 0 {
		t.Fatalf("zero-signal correlation = %v, %v, want 0", r, err)
	}
}
