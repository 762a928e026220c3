package planner

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"precal/core/fleet"
)

// YearOptions returns the supported planning horizons. Years outside this
// set are still computable but fall back to an empty fixed-vessel schedule.
func YearOptions() []int { return []int{2030, 2040, 2050} }

// SupportedYear reports whether year is one of the planning horizons.
func SupportedYear(year int) bool {
	for _, y := range YearOptions() {
		if y == year {
			return true
		}
	}
	return false
}

// InvalidVolumeError reports a non-positive export volume. Callers recover
// by prompting for a corrected value.
type InvalidVolumeError struct {
	Volume float64
}

func (e InvalidVolumeError) Error() string {
	return fmt.Sprintf("export volume must be positive, got %v", e.Volume)
}

// Result is the vessel breakdown for one route, year and volume.
type Result struct {
	RouteKey     string  `json:"route_key"`
	Year         int     `json:"year"`
	ExportVolume float64 `json:"export_volume"`
	// TotalVessels is ceil(ExportVolume / divisor).
	TotalVessels int `json:"total_vessels"`
	// NewBuilds and Existing are copied from the fixed-vessel schedule.
	NewBuilds int `json:"new_builds_needed"`
	Existing  int `json:"existing_vessels"`
	// Charter is the open requirement beyond committed supply, never
	// negative even when fixed supply exceeds the computed total.
	Charter int `json:"charter_vessels_needed"`
}

// Calculate computes the vessel requirement for one route. Capacity is
// always rounded up: a partial vessel becomes a whole one, so declared
// capacity is never under-provisioned for the given volume.
func Calculate(table *fleet.PolicyTable, routeKey string, year int, exportVolume float64) (Result, error) {
	if exportVolume <= 0 {
		return Result{}, InvalidVolumeError{Volume: exportVolume}
	}
	divisor, err := table.DivisorFor(routeKey)
	if err != nil {
		return Result{}, err
	}
	fixed, err := table.FixedVesselsFor(routeKey, year)
	if err != nil {
		return Result{}, err
	}

	total := int(math.Ceil(exportVolume / divisor))
	charter := total - fixed.NewBuilds - fixed.Existing
	if charter < 0 {
		// Committed supply already exceeds demand; overprovisioning is
		// absorbed, not reported as a negative charter need.
		charter = 0
	}
	return Result{
		RouteKey:     routeKey,
		Year:         year,
		ExportVolume: exportVolume,
		TotalVessels: total,
		NewBuilds:    fixed.NewBuilds,
		Existing:     fixed.Existing,
		Charter:      charter,
	}, nil
}

// Report aggregates per-route results of a batch plan.
type Report struct {
	PlanID    string            `json:"plan_id"`
	Year      int               `json:"year"`
	CreatedAt time.Time         `json:"created_at"`
	Results   map[string]Result `json:"results"`
	// Errors holds the failure for each route whose input was invalid.
	// A failed route never aborts the others.
	Errors map[string]error `json:"-"`
}

// RouteKeys returns the keys of successful results in sorted order.
func (r Report) RouteKeys() []string {
	keys := make([]string, 0, len(r.Results))
	for k := range r.Results {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Plan evaluates every route independently against the shared target year.
// Each route uses its own export volume; failures are collected per route.
func Plan(table *fleet.PolicyTable, year int, volumes map[string]float64) Report {
	rep := Report{
		PlanID:    uuid.NewString(),
		Year:      year,
		CreatedAt: time.Now().UTC(),
		Results:   make(map[string]Result, len(volumes)),
		Errors:    make(map[string]error),
	}
	for key, vol := range volumes {
		res, err := Calculate(table, key, year, vol)
		if err != nil {
			rep.Errors[key] = err
			recordCalculation(key, false)
			continue
		}
		rep.Results[key] = res
		recordCalculation(key, true)
		observeCharter(key, year, res.Charter)
	}
	return rep
}
