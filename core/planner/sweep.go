package planner

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"precal/core/fleet"
)

// SweepPoint is one sample of a requirement curve.
type SweepPoint struct {
	ExportVolume float64 `json:"export_volume"`
	TotalVessels int     `json:"total_vessels"`
	Charter      int     `json:"charter_vessels_needed"`
}

// Sweep samples the requirement curve for one route and year over an evenly
// spaced volume span. It feeds charting UIs; the core stays chart-agnostic.
// Both bounds must be positive and min < max; steps is the number of samples
// and must be at least two.
func Sweep(table *fleet.PolicyTable, routeKey string, year int, minVolume, maxVolume float64, steps int) ([]SweepPoint, error) {
	if minVolume <= 0 {
		return nil, InvalidVolumeError{Volume: minVolume}
	}
	if maxVolume <= minVolume {
		return nil, fmt.Errorf("sweep upper bound %v must exceed lower bound %v", maxVolume, minVolume)
	}
	if steps < 2 {
		return nil, fmt.Errorf("sweep needs at least 2 steps, got %d", steps)
	}
	span := floats.Span(make([]float64, steps), minVolume, maxVolume)
	points := make([]SweepPoint, 0, len(span))
	for _, v := range span {
		res, err := Calculate(table, routeKey, year, v)
		if err != nil {
			return nil, err
		}
		points = append(points, SweepPoint{
			ExportVolume: v,
			TotalVessels: res.TotalVessels,
			Charter:      res.Charter,
		})
	}
	return points, nil
}
