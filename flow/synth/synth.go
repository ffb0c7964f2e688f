package synth

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/cwbudde/traffic-vmd/flow/series"
)

// Component is one sinusoidal ingredient of a synthetic flow signal.
type Component struct {
	Frequency float64 // cycles per day
	Amplitude float64
	Offset    float64 // constant load carried by this ingredient
	Noise     float64 // sigma of Gaussian noise riding on this ingredient
}

// DefaultComponents returns the six-ingredient congested-day mix, from the
// daily commuter trend down to short random disturbances. The slowest
// ingredient carries the base load, the fastest the measurement noise.
func DefaultComponents() []Component {
	return []Component{
		{Frequency: 1.5, Amplitude: 60, Offset: 250},
		{Frequency: 5, Amplitude: 40},
		{Frequency: 12, Amplitude: 25},
		{Frequency: 25, Amplitude: 15},
		{Frequency: 60, Amplitude: 10},
		{Frequency: 120, Amplitude: 8, Noise: 4},
	}
}

// Generator creates deterministic synthetic flow signals from a fixed
// component mix.
type Generator struct {
	components []Component
	seed       int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets the deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// WithComponents replaces the default component mix.
func WithComponents(components ...Component) Option {
	return func(g *Generator) {
		g.components = components
	}
}

// NewGenerator creates a configured generator. Without options it produces
// the default congested-day mix with seed 1.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		components: DefaultComponents(),
		seed:       1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Components renders every ingredient separately at 5-minute resolution,
// one slice per component. Noise is drawn from the generator seed, so
// repeated calls yield identical output.
func (g *Generator) Components(samples int) ([][]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("synth samples must be > 0: %d", samples)
	}
	if len(g.components) == 0 {
		return nil, fmt.Errorf("synth generator has no components")
	}
	rng := rand.New(rand.NewSource(g.seed))
	out := make([][]float64, len(g.components))
	for k, c := range g.components {
		values := make([]float64, samples)
		step := 2 * math.Pi * c.Frequency / float64(series.SlotsPerDay)
		for i := range values {
			values[i] = c.Offset + c.Amplitude*math.Sin(step*float64(i))
			if c.Noise > 0 {
				values[i] += rng.NormFloat64() * c.Noise
			}
		}
		out[k] = values
	}
	return out, nil
}

// Flow sums all ingredients into one mixed signal and clamps it at zero;
// traffic flow cannot be negative.
func (g *Generator) Flow(samples int) ([]float64, error) {
	components, err := g.Components(samples)
	if err != nil {
		return nil, err
	}
	out := make([]float64, samples)
	for _, values := range components {
		for i, v := range values {
			out[i] += v
		}
	}
	for i, v := range out {
		out[i] = math.Max(0, v)
	}
	return out, nil
}

// Series places generated flow days on the 5-minute grid starting at the
// given day's midnight.
func (g *Generator) Series(day time.Time, days int) (*series.Series, error) {
	if days < 1 {
		return nil, fmt.Errorf("synth days must be >= 1: %d", days)
	}
	values, err := g.Flow(days * series.SlotsPerDay)
	if err != nil {
		return nil, err
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	return series.New(start, values), nil
}
