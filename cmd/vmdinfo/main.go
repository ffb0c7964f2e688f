// Command vmdinfo decomposes a day of traffic flow and prints per-mode
// properties.
//
// Usage:
//
//	vmdinfo [flags]
//
// Without -file it analyzes a synthetic congested day. With -file it reads
// a traffic workbook, picks the first selectable day unless -date is given,
// and decomposes the measured flow.
//
// Examples:
//
//	vmdinfo
//	vmdinfo -modes 4 -alpha 500
//	vmdinfo -file data/traffic_2021.xlsx -dates
//	vmdinfo -file data/traffic_2021.xlsx -date 2021-03-01 -days 2
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/cwbudde/traffic-vmd/flow/ingest"
	"github.com/cwbudde/traffic-vmd/flow/series"
	"github.com/cwbudde/traffic-vmd/flow/synth"
	"github.com/cwbudde/traffic-vmd/vmd"
)

const dateLayout = "2006-01-02"

func main() {
	file := flag.String("file", "", "traffic workbook to analyze (empty: synthetic day)")
	date := flag.String("date", "", "start date as YYYY-MM-DD (default: first selectable)")
	days := flag.Int("days", 1, "window length in days (1 or 2)")
	listDates := flag.Bool("dates", false, "list selectable start dates of the workbook")
	modes := flag.Int("modes", 6, "number of modes to extract")
	alpha := flag.Float64("alpha", 2000, "bandwidth penalty")
	tol := flag.Float64("tol", 1e-7, "convergence tolerance")
	maxIter := flag.Int("maxiter", 500, "iteration cap")
	seed := flag.Int64("seed", 1, "noise seed for the synthetic day")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: vmdinfo [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Decomposes a day of traffic flow into band-limited modes and\n")
		fmt.Fprintf(os.Stderr, "prints center frequency and amplitude statistics per mode.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  vmdinfo -modes 4\n")
		fmt.Fprintf(os.Stderr, "  vmdinfo -file data/traffic_2021.xlsx -date 2021-03-01\n")
		fmt.Fprintf(os.Stderr, "  vmdinfo -file data/traffic_2021.xlsx -dates\n")
	}
	flag.Parse()

	if *days < 1 || *days > 2 {
		fatalf("window length must be 1 or 2 days: %d", *days)
	}

	if *listDates {
		if *file == "" {
			fatalf("-dates requires -file")
		}
		sr, err := loadWorkbook(*file)
		if err != nil {
			fatalf("%v", err)
		}
		for _, d := range sr.SelectableStartDates(*days) {
			fmt.Println(d.Format(dateLayout))
		}
		return
	}

	win, err := loadWindow(*file, *date, *days, *seed)
	if err != nil {
		fatalf("%v", err)
	}

	p := vmd.DefaultParams()
	p.K = *modes
	p.Alpha = *alpha
	p.Tol = *tol
	p.MaxIter = *maxIter

	res, err := vmd.Decompose(win.Values(), p)
	if err != nil {
		fatalf("decompose: %v", err)
	}

	fmt.Printf("%d samples starting %s, %d iterations\n\n",
		win.Len(), win.Start().Format(dateLayout), res.Iterations)
	printModes(res)
}

// loadWindow returns the flow window to decompose, either generated or cut
// from a workbook.
func loadWindow(file, date string, days int, seed int64) (*series.Series, error) {
	if file == "" {
		day := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
		if date != "" {
			var err error
			day, err = time.Parse(dateLayout, date)
			if err != nil {
				return nil, fmt.Errorf("parse date %q: %w", date, err)
			}
		}
		return synth.NewGenerator(synth.WithSeed(seed)).Series(day, days)
	}

	sr, err := loadWorkbook(file)
	if err != nil {
		return nil, err
	}
	selectable := sr.SelectableStartDates(days)
	if len(selectable) == 0 {
		return nil, fmt.Errorf("workbook has no day that fits a %d-day window", days)
	}
	day := selectable[0]
	if date != "" {
		day, err = time.Parse(dateLayout, date)
		if err != nil {
			return nil, fmt.Errorf("parse date %q: %w", date, err)
		}
	}
	return sr.Window(day, days)
}

func loadWorkbook(path string) (*series.Series, error) {
	records, err := ingest.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return series.Align(ingest.Samples(records)), nil
}

func printModes(res *vmd.Result) {
	// Mean squares per mode give the energy split.
	summaries := make([]series.Summary, len(res.Modes))
	var total float64
	for k, mode := range res.Modes {
		summaries[k] = series.Summarize(mode)
		total += summaries[k].RMS * summaries[k].RMS
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Mode\tCenter [cyc/day]\tPeriod [h]\tMean\tRMS\tPeak\tEnergy [%%]\n")
	fmt.Fprintf(tw, "----\t----------------\t----------\t----\t---\t----\t----------\n")
	for k, s := range summaries {
		cpd := res.Omega[k] * float64(series.SlotsPerDay)
		period := "-"
		if cpd > 1e-3 {
			period = fmt.Sprintf("%.2f", 24/cpd)
		}
		share := 0.0
		if total > 0 {
			share = 100 * s.RMS * s.RMS / total
		}
		fmt.Fprintf(tw, "%d\t%.3f\t%s\t%.2f\t%.2f\t%.2f\t%.1f\n",
			k+1, cpd, period, s.Mean, s.RMS, s.Peak, share)
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "error: flush output: %v\n", err)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(1)
}
