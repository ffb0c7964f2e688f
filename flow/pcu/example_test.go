package pcu_test

import (
	"fmt"

	"github.com/cwbudde/traffic-vmd/flow/pcu"
)

func ExampleCounts_Flow() {
	counts := pcu.Counts{
		pcu.PassengerCar: 10,
		pcu.Bus:          2,
		pcu.HeavyTruck:   1,
	}
	fmt.Printf("%.1f\n", counts.Flow())
	// Output:
	// 15.0
}

func ExampleParseCount() {
	fmt.Println(pcu.ParseCount("42"), pcu.ParseCount("n/a"))
	// Output:
	// 42 0
}
