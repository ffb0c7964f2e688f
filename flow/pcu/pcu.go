package pcu

import (
	"math"
	"strconv"
	"strings"
)

// Category identifies a vehicle category column in the source data.
type Category int

const (
	PassengerCar Category = iota
	Bus
	LightTruck
	HeavyTruck
	Trailer
	Motorcycle
)

// CategoryCount is the number of vehicle categories in a raw record.
const CategoryCount = 6

var coefficients = [CategoryCount]float64{
	PassengerCar: 1.0,
	Bus:          1.5,
	LightTruck:   1.0,
	HeavyTruck:   2.0,
	Trailer:      3.0,
	Motorcycle:   1.0,
}

var names = [CategoryCount]string{
	PassengerCar: "passenger_car",
	Bus:          "bus",
	LightTruck:   "light_truck",
	HeavyTruck:   "heavy_truck",
	Trailer:      "trailer",
	Motorcycle:   "motorcycle",
}

// Categories returns all vehicle categories in source-column order.
func Categories() []Category {
	return []Category{PassengerCar, Bus, LightTruck, HeavyTruck, Trailer, Motorcycle}
}

// String returns the canonical source-column name of the category.
func (c Category) String() string {
	if c < 0 || int(c) >= CategoryCount {
		return "unknown"
	}
	return names[c]
}

// Coefficient returns the fixed PCU weight of one vehicle of the category.
// Out-of-range categories weigh 0.
func (c Category) Coefficient() float64 {
	if c < 0 || int(c) >= CategoryCount {
		return 0
	}
	return coefficients[c]
}

// Counts holds the per-category vehicle counts of one raw record,
// indexed by [Category].
type Counts [CategoryCount]float64

// Flow returns the PCU-weighted flow value of the counts:
//
//	1.0*passenger + 1.5*bus + 1.0*light + 2.0*heavy + 3.0*trailer + 1.0*motorcycle
//
// All-zero counts yield 0.
func (c Counts) Flow() float64 {
	var sum float64
	for i, n := range c {
		sum += n * coefficients[i]
	}
	return sum
}

// ParseCount converts a raw cell value to a count. It returns the parsed
// number, or 0 when the value does not parse as a finite number. It never
// fails; malformed fields degrade to a zero contribution instead of
// aborting ingestion. Surrounding whitespace is ignored.
func ParseCount(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ParseSlot converts a raw time-slot cell to its integer slot index using
// the same lenient rules as [ParseCount]: malformed values become slot 0.
// Fractional values truncate toward zero.
func ParseSlot(raw string) int {
	return int(ParseCount(raw))
}
