package series

import (
	"errors"
	"fmt"
	"time"
)

// Step is the fixed grid resolution of a flow series.
const Step = 5 * time.Minute

// SlotsPerDay is the number of grid slots covering one calendar day.
const SlotsPerDay = int(24 * time.Hour / Step)

// ErrWindowOutside is returned when a requested date window does not
// intersect the series range.
var ErrWindowOutside = errors.New("series: window outside series range")

// Sample is one timestamped flow observation prior to grid alignment.
type Sample struct {
	Time time.Time
	Flow float64
}

// Series is a uniform flow series: values at exactly Step spacing starting
// at Start. The zero value is the empty series.
type Series struct {
	start  time.Time
	values []float64
}

// New builds a series from a start time and values. The start time is
// truncated onto the Step grid.
func New(start time.Time, values []float64) *Series {
	if len(values) == 0 {
		return &Series{}
	}
	return &Series{start: start.UTC().Truncate(Step), values: values}
}

// Align folds samples onto the uniform grid: duplicate timestamps are
// summed (never overwritten), the inclusive [min, max] observed range is
// spanned at Step spacing, and slots without observations hold 0.
//
// Sample times off the Step lattice are truncated onto it before grouping.
// An empty input yields the empty series.
func Align(samples []Sample) *Series {
	if len(samples) == 0 {
		return &Series{}
	}

	stepSec := int64(Step / time.Second)
	sums := make(map[int64]float64, len(samples))
	var minTS, maxTS int64
	for i, s := range samples {
		ts := s.Time.Truncate(Step).Unix()
		sums[ts] += s.Flow
		if i == 0 || ts < minTS {
			minTS = ts
		}
		if i == 0 || ts > maxTS {
			maxTS = ts
		}
	}

	n := int((maxTS-minTS)/stepSec) + 1
	values := make([]float64, n)
	for ts, v := range sums {
		values[(ts-minTS)/stepSec] = v
	}

	return &Series{start: time.Unix(minTS, 0).UTC(), values: values}
}

// Len returns the number of grid slots.
func (s *Series) Len() int { return len(s.values) }

// Start returns the timestamp of the first slot. Zero for the empty series.
func (s *Series) Start() time.Time { return s.start }

// End returns the timestamp of the last slot. Zero for the empty series.
func (s *Series) End() time.Time {
	if len(s.values) == 0 {
		return time.Time{}
	}
	return s.start.Add(time.Duration(len(s.values)-1) * Step)
}

// Time returns the timestamp of slot i.
func (s *Series) Time(i int) time.Time {
	return s.start.Add(time.Duration(i) * Step)
}

// Values returns the underlying value slice. Callers must treat it as
// read-only; use [Series.Window] to obtain an independent copy of a range.
func (s *Series) Values() []float64 { return s.values }

// Window returns an independent sub-series covering the intersection of
// [day 00:00, day+days*24h) with the series range. It returns
// ErrWindowOutside when the intersection is empty.
func (s *Series) Window(day time.Time, days int) (*Series, error) {
	if days < 1 {
		return nil, fmt.Errorf("series: window days must be >= 1: %d", days)
	}
	if len(s.values) == 0 {
		return nil, ErrWindowOutside
	}

	from := midnight(day)
	to := from.Add(time.Duration(days) * 24 * time.Hour)

	i0 := int(from.Sub(s.start) / Step)
	i1 := int(to.Sub(s.start) / Step)
	if i0 < 0 {
		i0 = 0
	}
	if i1 > len(s.values) {
		i1 = len(s.values)
	}
	if i0 >= i1 {
		return nil, ErrWindowOutside
	}

	values := make([]float64, i1-i0)
	copy(values, s.values[i0:i1])
	return &Series{start: s.start.Add(time.Duration(i0) * Step), values: values}, nil
}

// Dates returns the calendar days (as UTC midnights, ascending) that the
// series range touches.
func (s *Series) Dates() []time.Time {
	if len(s.values) == 0 {
		return nil
	}
	first := midnight(s.start)
	last := midnight(s.End())
	var out []time.Time
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out
}

// SelectableStartDates returns the dates that may start a window of the
// given day count: the last days-1 dates are excluded so the window never
// runs past the data. A two-day window therefore cannot start on the final
// available date.
func (s *Series) SelectableStartDates(days int) []time.Time {
	dates := s.Dates()
	drop := days - 1
	if drop <= 0 {
		return dates
	}
	if len(dates) <= drop {
		return nil
	}
	return dates[:len(dates)-drop]
}

func midnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
