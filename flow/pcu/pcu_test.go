package pcu

import (
	"math"
	"testing"
)

func TestFlowCoefficients(t *testing.T) {
	// One vehicle per category isolates each coefficient.
	cases := []struct {
		cat  Category
		want float64
	}{
		{PassengerCar, 1.0},
		{Bus, 1.5},
		{LightTruck, 1.0},
		{HeavyTruck, 2.0},
		{Trailer, 3.0},
		{Motorcycle, 1.0},
	}
	for _, c := range cases {
		var counts Counts
		counts[c.cat] = 1
		if got := counts.Flow(); got != c.want {
			t.Errorf("%s: flow = %g, want %g", c.cat, got, c.want)
		}
		if got := c.cat.Coefficient(); got != c.want {
			t.Errorf("%s: coefficient = %g, want %g", c.cat, got, c.want)
		}
	}
}

func TestFlowWeightedSum(t *testing.T) {
	counts := Counts{10, 2, 4, 3, 1, 5}
	want := 10*1.0 + 2*1.5 + 4*1.0 + 3*2.0 + 1*3.0 + 5*1.0
	if got := counts.Flow(); got != want {
		t.Fatalf("flow = %g, want %g", got, want)
	}
}

func TestFlowAllZero(t *testing.T) {
	var counts Counts
	if got := counts.Flow(); got != 0 {
		t.Fatalf("flow = %g, want 0", got)
	}
}

func TestCoefficientOutOfRange(t *testing.T) {
	if got := Category(-1).Coefficient(); got != 0 {
		t.Fatalf("coefficient = %g, want 0", got)
	}
	if got := Category(CategoryCount).Coefficient(); got != 0 {
		t.Fatalf("coefficient = %g, want 0", got)
	}
}

func TestCategoryString(t *testing.T) {
	if got := HeavyTruck.String(); got != "heavy_truck" {
		t.Fatalf("String() = %q, want %q", got, "heavy_truck")
	}
	if got := Category(99).String(); got != "unknown" {
		t.Fatalf("String() = %q, want %q", got, "unknown")
	}
}

func TestCategoriesOrder(t *testing.T) {
	cats := Categories()
	if len(cats) != CategoryCount {
		t.Fatalf("len = %d, want %d", len(cats), CategoryCount)
	}
	for i, c := range cats {
		if int(c) != i {
			t.Fatalf("cats[%d] = %v, want %v", i, c, Category(i))
		}
	}
}

func TestParseCount(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
	}{
		{"12", 12},
		{" 12.5 ", 12.5},
		{"0", 0},
		{"-3", -3},
		{"", 0},
		{"n/a", 0},
		{"12a", 0},
		{"--", 0},
		{"NaN", 0},
		{"+Inf", 0},
	}
	for _, c := range cases {
		if got := ParseCount(c.raw); got != c.want {
			t.Errorf("ParseCount(%q) = %g, want %g", c.raw, got, c.want)
		}
	}
}

func TestParseCountNeverNonFinite(t *testing.T) {
	for _, raw := range []string{"NaN", "nan", "Inf", "-Inf", "1e999"} {
		got := ParseCount(raw)
		if math.IsNaN(got) || math.IsInf(got, 0) {
			t.Errorf("ParseCount(%q) = %v, want finite", raw, got)
		}
	}
}

func TestParseSlot(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{"1", 1},
		{"288", 288},
		{"12.0", 12},
		{"12.9", 12},
		{"bogus", 0},
		{"", 0},
	}
	for _, c := range cases {
		if got := ParseSlot(c.raw); got != c.want {
			t.Errorf("ParseSlot(%q) = %d, want %d", c.raw, got, c.want)
		}
	}
}
