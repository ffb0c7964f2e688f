package demo

import (
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"sync"
	"time"

	"github.com/cwbudde/traffic-vmd/flow/ingest"
	"github.com/cwbudde/traffic-vmd/flow/series"
	"github.com/cwbudde/traffic-vmd/flow/synth"
	"github.com/cwbudde/traffic-vmd/internal/store"
	"github.com/cwbudde/traffic-vmd/vmd"
)

var (
	// ErrUnknownDate indicates a start date outside the loaded series.
	ErrUnknownDate = errors.New("demo: start date not in data set")

	// ErrDateRange indicates a window size that is not offered, or a
	// start date that leaves no room for the requested window.
	ErrDateRange = errors.New("demo: invalid date range")

	// ErrRecombination indicates weights or inclusion flags that do not
	// fit the mode count.
	ErrRecombination = errors.New("demo: invalid recombination")
)

// SyntheticYear selects the built-in signal generator instead of a
// workbook year.
const SyntheticYear = 0

// The generator covers a fixed week; its dates behave like workbook
// dates everywhere else in the pipeline.
var syntheticStart = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

const syntheticDays = 7

// Decomposer separates a signal into band-limited modes. The demo
// injects the variational solver; tests substitute counting stubs.
type Decomposer interface {
	Decompose(signal []float64, p vmd.Params) (*vmd.Result, error)
}

// DecomposeFunc adapts a plain function to the Decomposer interface.
type DecomposeFunc func(signal []float64, p vmd.Params) (*vmd.Result, error)

// Decompose calls f.
func (f DecomposeFunc) Decompose(signal []float64, p vmd.Params) (*vmd.Result, error) {
	return f(signal, p)
}

// Engine runs the decomposition pipeline with process-wide caches.
type Engine struct {
	dataDir    string
	prefix     string
	params     vmd.Params
	decomposer Decomposer
	generator  *synth.Generator
	persist    *store.Store

	mu        sync.Mutex
	series    map[string]*series.Series
	results   map[string]*vmd.Result
	synthetic *series.Series
}

// Option configures an Engine.
type Option func(*Engine)

// WithFilePrefix overrides the workbook file prefix.
func WithFilePrefix(prefix string) Option {
	return func(e *Engine) {
		if prefix != "" {
			e.prefix = prefix
		}
	}
}

// WithParams overrides the solver parameters.
func WithParams(p vmd.Params) Option {
	return func(e *Engine) { e.params = p }
}

// WithDecomposer substitutes the mode decomposer.
func WithDecomposer(d Decomposer) Option {
	return func(e *Engine) {
		if d != nil {
			e.decomposer = d
		}
	}
}

// WithGenerator substitutes the synthetic signal generator.
func WithGenerator(g *synth.Generator) Option {
	return func(e *Engine) {
		if g != nil {
			e.generator = g
		}
	}
}

// WithStore attaches a persistent result store. Series and
// decompositions are then written through to it and a restarted
// session warm-starts from it. Store failures never fail a request.
func WithStore(s *store.Store) Option {
	return func(e *Engine) { e.persist = s }
}

// NewEngine creates an engine reading workbooks from dataDir.
func NewEngine(dataDir string, opts ...Option) *Engine {
	e := &Engine{
		dataDir:    dataDir,
		prefix:     ingest.DefaultPrefix,
		params:     vmd.DefaultParams(),
		decomposer: DecomposeFunc(vmd.Decompose),
		generator:  synth.NewGenerator(),
		series:     make(map[string]*series.Series),
		results:    make(map[string]*vmd.Result),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Params returns the solver parameters the engine runs with.
func (e *Engine) Params() vmd.Params { return e.params }

// Years lists the workbook years available in the data directory,
// ascending. The synthetic year is always available and not listed.
func (e *Engine) Years() ([]int, error) {
	return ingest.ListYears(e.dataDir, e.prefix)
}

// Dates returns the start dates selectable for a window of the given
// day count, ascending.
func (e *Engine) Dates(year, days int) ([]time.Time, error) {
	if days != 1 && days != 2 {
		return nil, fmt.Errorf("%w: days must be 1 or 2: %d", ErrDateRange, days)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	sr, err := e.loadSeries(year)
	if err != nil {
		return nil, err
	}
	return sr.SelectableStartDates(days), nil
}

// View runs the full pipeline for one request: load, window,
// decompose, recombine.
func (e *Engine) View(req ViewRequest) (*View, error) {
	if req.Days != 1 && req.Days != 2 {
		return nil, fmt.Errorf("%w: days must be 1 or 2: %d", ErrDateRange, req.Days)
	}
	weights, include, err := e.recombination(req)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	sr, err := e.loadSeries(req.Year)
	if err != nil {
		return nil, err
	}

	day := dayOf(req.StartDate)
	if err := checkStart(sr, day, req.Days); err != nil {
		return nil, err
	}
	win, err := sr.Window(day, req.Days)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDateRange, err)
	}

	res, err := e.decompose(win.Values())
	if err != nil {
		return nil, err
	}
	recon, err := res.ReconstructClamped(weights, include)
	if err != nil {
		return nil, err
	}

	return buildView(win, res, recon), nil
}

// recombination applies the default weights and inclusion mask and
// validates explicit ones against the mode count.
func (e *Engine) recombination(req ViewRequest) ([]float64, []bool, error) {
	k := e.params.K

	weights := req.Weights
	if weights == nil {
		weights = make([]float64, k)
		for i := range weights {
			weights[i] = 1
		}
	}
	if len(weights) != k {
		return nil, nil, fmt.Errorf("%w: weight count must be %d: %d", ErrRecombination, k, len(weights))
	}
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, nil, fmt.Errorf("%w: weight %d must be non-negative and finite: %g", ErrRecombination, i, w)
		}
	}

	include := req.Include
	if include == nil {
		include = make([]bool, k)
		for i := range include {
			include[i] = true
		}
	}
	if len(include) != k {
		return nil, nil, fmt.Errorf("%w: include count must be %d: %d", ErrRecombination, k, len(include))
	}
	return weights, include, nil
}

// loadSeries returns the aligned series for a year, from cache, the
// persistent store or the workbook, in that order. Callers hold e.mu.
func (e *Engine) loadSeries(year int) (*series.Series, error) {
	if year == SyntheticYear {
		return e.syntheticSeries()
	}

	path, err := ingest.Locate(e.dataDir, e.prefix, year)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("demo: stat %s: %w", path, err)
	}
	key := store.FileKey(path, info.Size(), info.ModTime())

	if sr, ok := e.series[key]; ok {
		return sr, nil
	}
	if e.persist != nil {
		sr, ok, err := e.persist.GetSeries(key)
		if err != nil {
			log.Printf("demo: series cache read: %v", err)
		} else if ok {
			e.series[key] = sr
			return sr, nil
		}
	}

	records, err := ingest.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sr := series.Align(ingest.Samples(records))
	e.series[key] = sr
	if e.persist != nil {
		if err := e.persist.PutSeries(key, sr); err != nil {
			log.Printf("demo: series cache write: %v", err)
		}
	}
	return sr, nil
}

// syntheticSeries lazily builds the generator week. Callers hold e.mu.
func (e *Engine) syntheticSeries() (*series.Series, error) {
	if e.synthetic != nil {
		return e.synthetic, nil
	}
	sr, err := e.generator.Series(syntheticStart, syntheticDays)
	if err != nil {
		return nil, fmt.Errorf("demo: synthetic series: %w", err)
	}
	e.synthetic = sr
	return sr, nil
}

// decompose returns the mode decomposition of a window, from cache,
// the persistent store or the solver, in that order. Callers hold e.mu.
func (e *Engine) decompose(values []float64) (*vmd.Result, error) {
	key := store.WindowKey(values, e.params)

	if res, ok := e.results[key]; ok {
		return res, nil
	}
	if e.persist != nil {
		res, ok, err := e.persist.GetDecomposition(key)
		if err != nil {
			log.Printf("demo: decomposition cache read: %v", err)
		} else if ok {
			e.results[key] = res
			return res, nil
		}
	}

	res, err := e.decomposer.Decompose(values, e.params)
	if err != nil {
		return nil, err
	}
	e.results[key] = res
	if e.persist != nil {
		if err := e.persist.PutDecomposition(key, res); err != nil {
			log.Printf("demo: decomposition cache write: %v", err)
		}
	}
	return res, nil
}

// checkStart verifies that day starts a valid window of the given size.
func checkStart(sr *series.Series, day time.Time, days int) error {
	for _, d := range sr.SelectableStartDates(days) {
		if d.Equal(day) {
			return nil
		}
	}
	for _, d := range sr.Dates() {
		if d.Equal(day) {
			return fmt.Errorf("%w: %s leaves no room for a %d-day window",
				ErrDateRange, day.Format("2006-01-02"), days)
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownDate, day.Format("2006-01-02"))
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
