package world

import "math"

const (
	populationGrowthPerYear = 0.015
	secondsPerYear          = 365.0
)

// advancePopulation compounds population growth continuously, so the rate is
// independent of tick cadence. Bodies are visited in spawn order.
func (w *World) advancePopulation(dt float64) {
	growth := math.Pow(1+populationGrowthPerYear, dt/secondsPerYear)
	for _, id := range w.entities {
		data, ok := w.bodies[id]
		if !ok || data.Population <= 0 {
			continue
		}
		data.Population *= growth
	}
}
