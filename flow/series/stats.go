package series

import "math"

// Summary holds one-pass statistics of a value slice.
type Summary struct {
	Length   int
	Mean     float64
	Variance float64
	RMS      float64
	Min      float64
	MinAt    int
	Max      float64
	MaxAt    int
	Peak     float64 // max absolute value
	Total    float64 // plain sum; for flow values this is PCU volume per slot summed
}

// Summarize computes a Summary in a single pass. Welford's update keeps the
// variance stable for long series.
func Summarize(values []float64) Summary {
	n := len(values)
	if n == 0 {
		return Summary{}
	}

	var (
		mean  float64
		m2    float64
		sumSq float64
		total float64
	)
	minVal, maxVal := values[0], values[0]
	minAt, maxAt := 0, 0

	for i, x := range values {
		delta := x - mean
		mean += delta / float64(i+1)
		m2 += delta * (x - mean)

		sumSq += x * x
		total += x

		if x < minVal {
			minVal = x
			minAt = i
		}
		if x > maxVal {
			maxVal = x
			maxAt = i
		}
	}

	return Summary{
		Length:   n,
		Mean:     mean,
		Variance: m2 / float64(n),
		RMS:      math.Sqrt(sumSq / float64(n)),
		Min:      minVal,
		MinAt:    minAt,
		Max:      maxVal,
		MaxAt:    maxAt,
		Peak:     math.Max(math.Abs(minVal), math.Abs(maxVal)),
		Total:    total,
	}
}

// Summary returns the one-pass statistics of the series values.
func (s *Series) Summary() Summary {
	return Summarize(s.values)
}
