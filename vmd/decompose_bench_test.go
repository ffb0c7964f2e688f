package vmd

import (
	"strconv"
	"testing"

	"github.com/cwbudde/traffic-vmd/internal/testutil"
)

func BenchmarkDecompose(b *testing.B) {
	sizes := []int{288, 576}
	for _, n := range sizes {
		b.Run("n_"+strconv.Itoa(n), func(b *testing.B) {
			signal := testutil.Mix(
				testutil.DC(250, n),
				testutil.Tone(3, 40, n),
				testutil.Tone(24, 10, n),
				testutil.DeterministicNoise(1, 4, n),
			)
			p := DefaultParams()

			b.ReportAllocs()
			b.ResetTimer()

			for range b.N {
				if _, err := Decompose(signal, p); err != nil {
					b.Fatalf("Decompose() error = %v", err)
				}
			}
		})
	}
}

func BenchmarkReconstruct(b *testing.B) {
	const n = 576
	modes := make([][]float64, 6)
	for k := range modes {
		modes[k] = testutil.Tone(float64(3*(k+1)), 10, n)
	}
	weights := []float64{1, 1, 1, 1, 1, 1}
	include := []bool{true, true, true, true, true, true}

	b.ReportAllocs()
	b.ResetTimer()

	for range b.N {
		if _, err := Reconstruct(modes, weights, include); err != nil {
			b.Fatalf("Reconstruct() error = %v", err)
		}
	}
}
