// Package pcu converts per-category vehicle counts into passenger-car-unit
// flow values.
//
// The passenger-car-unit (PCU) metric expresses mixed traffic as an
// equivalent volume of passenger cars. Each vehicle category carries a
// fixed survey coefficient; the flow value of one record is the weighted
// sum of its category counts. Coefficients are constants of the metric
// and are not configurable.
package pcu
