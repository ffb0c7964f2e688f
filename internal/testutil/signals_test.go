package testutil

import (
	"math"
	"testing"
)

func TestTone(t *testing.T) {
	s := Tone(4, 1.0, 64)
	if len(s) != 64 {
		t.Fatalf("len = %d, want 64", len(s))
	}
	// First sample of a sine at phase 0 should be 0.
	if math.Abs(s[0]) > 1e-15 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}
	// All values in [-1, 1].
	for i, v := range s {
		if v < -1 || v > 1 {
			t.Fatalf("s[%d] = %v out of range", i, v)
		}
	}
	// 4 cycles over 64 samples: one period is 16 samples.
	if math.Abs(s[16]-s[0]) > 1e-12 {
		t.Fatalf("s[16] = %v, want %v (periodic)", s[16], s[0])
	}
}

func TestMix(t *testing.T) {
	out := Mix([]float64{1, 2}, []float64{10, 20}, []float64{100, 200})
	if out[0] != 111 || out[1] != 222 {
		t.Fatalf("Mix = %v, want [111 222]", out)
	}
	if Mix() != nil {
		t.Fatal("Mix() of nothing should be nil")
	}
}

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise(42, 1.0, 64)
	b := DeterministicNoise(42, 1.0, 64)
	if len(a) != 64 {
		t.Fatalf("len = %d, want 64", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("noise not deterministic at index %d", i)
		}
	}
}

func TestDeterministicNoiseDifferentSeeds(t *testing.T) {
	a := DeterministicNoise(1, 1.0, 16)
	b := DeterministicNoise(2, 1.0, 16)
	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different seeds produced identical noise")
	}
}

func TestDC(t *testing.T) {
	d := DC(0.5, 4)
	for i, v := range d {
		if v != 0.5 {
			t.Fatalf("DC[%d] = %v, want 0.5", i, v)
		}
	}
}
