package series_test

import (
	"fmt"
	"time"

	"github.com/cwbudde/traffic-vmd/flow/series"
)

func ExampleAlign() {
	base := time.Date(2021, 3, 1, 8, 0, 0, 0, time.UTC)
	s := series.Align([]series.Sample{
		{Time: base, Flow: 12},
		{Time: base.Add(15 * time.Minute), Flow: 8},
		{Time: base, Flow: 3}, // same slot, summed
	})

	fmt.Println("length:", s.Len())
	fmt.Println("values:", s.Values())
	// Output:
	// length: 4
	// values: [15 0 0 8]
}

func ExampleSeries_Window() {
	day := time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)
	values := make([]float64, 2*series.SlotsPerDay)
	for i := range values {
		values[i] = float64(i % series.SlotsPerDay)
	}
	s := series.New(day, values)

	w, err := s.Window(day.AddDate(0, 0, 1), 1)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("length:", w.Len())
	fmt.Println("start:", w.Start().Format("2006-01-02 15:04"))
	// Output:
	// length: 288
	// start: 2021-03-02 00:00
}
