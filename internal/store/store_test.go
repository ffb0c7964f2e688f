package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cwbudde/traffic-vmd/flow/series"
	"github.com/cwbudde/traffic-vmd/vmd"
)

func openTemp(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenCreatesDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(path); err != nil {
		t.Errorf("database file not created: %v", err)
	}
}

func TestOpenEmptyPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Error("expected error for empty path")
	}
}

func TestSeriesRoundTrip(t *testing.T) {
	s := openTemp(t)

	start := time.Date(2021, time.March, 1, 0, 0, 0, 0, time.UTC)
	want := series.New(start, []float64{12.5, 0, 7, 3.25})
	if err := s.PutSeries("k1", want); err != nil {
		t.Fatalf("PutSeries: %v", err)
	}

	got, ok, err := s.GetSeries("k1")
	if err != nil {
		t.Fatalf("GetSeries: %v", err)
	}
	if !ok {
		t.Fatal("entry not found after put")
	}
	if !got.Start().Equal(want.Start()) {
		t.Errorf("start = %v, want %v", got.Start(), want.Start())
	}
	if got.Len() != want.Len() {
		t.Fatalf("length = %d, want %d", got.Len(), want.Len())
	}
	for i, v := range got.Values() {
		if v != want.Values()[i] {
			t.Errorf("value %d = %v, want %v", i, v, want.Values()[i])
		}
	}
}

func TestGetSeriesMissing(t *testing.T) {
	s := openTemp(t)

	got, ok, err := s.GetSeries("absent")
	if err != nil {
		t.Fatalf("GetSeries: %v", err)
	}
	if ok || got != nil {
		t.Errorf("expected miss, got ok=%v series=%v", ok, got)
	}
}

func TestPutSeriesReplaces(t *testing.T) {
	s := openTemp(t)

	start := time.Date(2021, time.March, 1, 0, 0, 0, 0, time.UTC)
	if err := s.PutSeries("k", series.New(start, []float64{1, 2})); err != nil {
		t.Fatalf("PutSeries: %v", err)
	}
	if err := s.PutSeries("k", series.New(start, []float64{9, 8, 7})); err != nil {
		t.Fatalf("PutSeries (replace): %v", err)
	}

	got, ok, err := s.GetSeries("k")
	if err != nil || !ok {
		t.Fatalf("GetSeries: ok=%v err=%v", ok, err)
	}
	if got.Len() != 3 || got.Values()[0] != 9 {
		t.Errorf("replacement not stored: %v", got.Values())
	}
}

func TestPutSeriesValidation(t *testing.T) {
	s := openTemp(t)

	start := time.Date(2021, time.March, 1, 0, 0, 0, 0, time.UTC)
	if err := s.PutSeries("", series.New(start, []float64{1})); err == nil {
		t.Error("expected error for empty key")
	}
	if err := s.PutSeries("k", nil); err == nil {
		t.Error("expected error for nil series")
	}
}

func TestDecompositionRoundTrip(t *testing.T) {
	s := openTemp(t)

	want := &vmd.Result{
		Modes:      [][]float64{{1, 2, 3}, {4, 5, 6}},
		Omega:      []float64{0.01, 0.2},
		Iterations: 42,
	}
	if err := s.PutDecomposition("d1", want); err != nil {
		t.Fatalf("PutDecomposition: %v", err)
	}

	got, ok, err := s.GetDecomposition("d1")
	if err != nil {
		t.Fatalf("GetDecomposition: %v", err)
	}
	if !ok {
		t.Fatal("entry not found after put")
	}
	if got.Iterations != want.Iterations {
		t.Errorf("iterations = %d, want %d", got.Iterations, want.Iterations)
	}
	if len(got.Modes) != len(want.Modes) {
		t.Fatalf("mode count = %d, want %d", len(got.Modes), len(want.Modes))
	}
	for k, mode := range got.Modes {
		for i, v := range mode {
			if v != want.Modes[k][i] {
				t.Errorf("mode %d sample %d = %v, want %v", k, i, v, want.Modes[k][i])
			}
		}
	}
	for k, w := range got.Omega {
		if w != want.Omega[k] {
			t.Errorf("omega %d = %v, want %v", k, w, want.Omega[k])
		}
	}
}

func TestGetDecompositionMissing(t *testing.T) {
	s := openTemp(t)

	got, ok, err := s.GetDecomposition("absent")
	if err != nil {
		t.Fatalf("GetDecomposition: %v", err)
	}
	if ok || got != nil {
		t.Errorf("expected miss, got ok=%v result=%v", ok, got)
	}
}

func TestReopenKeepsEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	start := time.Date(2021, time.March, 1, 0, 0, 0, 0, time.UTC)
	if err := s.PutSeries("persist", series.New(start, []float64{5, 6})); err != nil {
		t.Fatalf("PutSeries: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	got, ok, err := s.GetSeries("persist")
	if err != nil || !ok {
		t.Fatalf("GetSeries after reopen: ok=%v err=%v", ok, err)
	}
	if got.Len() != 2 || got.Values()[1] != 6 {
		t.Errorf("entry corrupted across reopen: %v", got.Values())
	}
}

func TestFileKey(t *testing.T) {
	mod := time.Date(2021, time.June, 1, 12, 0, 0, 0, time.UTC)

	a := FileKey("/data/traffic_2021.xlsx", 1024, mod)
	if b := FileKey("/data/traffic_2021.xlsx", 1024, mod); b != a {
		t.Error("key not deterministic")
	}
	if b := FileKey("/data/traffic_2020.xlsx", 1024, mod); b == a {
		t.Error("key ignores path")
	}
	if b := FileKey("/data/traffic_2021.xlsx", 2048, mod); b == a {
		t.Error("key ignores size")
	}
	if b := FileKey("/data/traffic_2021.xlsx", 1024, mod.Add(time.Second)); b == a {
		t.Error("key ignores modification time")
	}
}

func TestWindowKey(t *testing.T) {
	values := []float64{1, 2, 3, 4}
	p := vmd.DefaultParams()

	a := WindowKey(values, p)
	if b := WindowKey([]float64{1, 2, 3, 4}, p); b != a {
		t.Error("key not deterministic")
	}
	if b := WindowKey([]float64{1, 2, 3, 5}, p); b == a {
		t.Error("key ignores window content")
	}

	q := p
	q.Alpha = 500
	if b := WindowKey(values, q); b == a {
		t.Error("key ignores solver parameters")
	}
}
