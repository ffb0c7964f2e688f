package demo

import (
	"fmt"
	"time"

	"github.com/cwbudde/traffic-vmd/flow/series"
	"github.com/cwbudde/traffic-vmd/vmd"
)

// ViewRequest selects the data window and the recombination settings.
type ViewRequest struct {
	// Year selects the workbook, or SyntheticYear for generated data.
	Year int
	// StartDate is the first day of the window; only the calendar day
	// is used.
	StartDate time.Time
	// Days is the window length, 1 or 2.
	Days int
	// Weights scales each mode in the reconstruction. Nil means all 1.
	Weights []float64
	// Include removes modes from the reconstruction. Nil means all true.
	Include []bool
}

// ModeStats summarizes one mode for display.
type ModeStats struct {
	Mean float64 `json:"mean"`
	RMS  float64 `json:"rms"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Peak float64 `json:"peak"`
}

// ModeView carries one decomposed mode.
type ModeView struct {
	Label        string    `json:"label"`
	Values       []float64 `json:"values"`
	CyclesPerDay float64   `json:"cycles_per_day"`
	Stats        ModeStats `json:"stats"`
}

// View is the complete pipeline response for one request.
type View struct {
	Timestamps    []time.Time `json:"timestamps"`
	Original      []float64   `json:"original"`
	Modes         []ModeView  `json:"modes"`
	Reconstructed []float64   `json:"reconstructed"`
	Iterations    int         `json:"iterations"`
}

// buildView assembles the response. Cached modes are shared between
// requests, so the view receives copies.
func buildView(win *series.Series, res *vmd.Result, recon []float64) *View {
	timestamps := make([]time.Time, win.Len())
	for i := range timestamps {
		timestamps[i] = win.Time(i)
	}

	modes := make([]ModeView, len(res.Modes))
	for k, mode := range res.Modes {
		values := append([]float64(nil), mode...)
		s := series.Summarize(values)
		modes[k] = ModeView{
			Label:        modeLabel(k, len(res.Modes)),
			Values:       values,
			CyclesPerDay: res.Omega[k] * float64(series.SlotsPerDay),
			Stats: ModeStats{
				Mean: s.Mean,
				RMS:  s.RMS,
				Min:  s.Min,
				Max:  s.Max,
				Peak: s.Peak,
			},
		}
	}

	return &View{
		Timestamps:    timestamps,
		Original:      win.Values(),
		Modes:         modes,
		Reconstructed: recon,
		Iterations:    res.Iterations,
	}
}

// modeLabel names modes from the slowest to the fastest.
func modeLabel(k, total int) string {
	switch {
	case k == 0:
		return "trend"
	case k == total-1:
		return "high-frequency"
	default:
		return fmt.Sprintf("mode %d", k+1)
	}
}
