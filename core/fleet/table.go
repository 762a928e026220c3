package fleet

import "fmt"

// RouteDefinition describes a shipping lane available for planning.
type RouteDefinition struct {
	// Key is the stable identifier used by callers, e.g. "vlcc_china".
	Key string `json:"key"`
	// DisplayName is the human readable label shown by UIs.
	DisplayName string `json:"display_name"`
	// Divisor is the annual cargo capacity of one vessel on this route,
	// in MM bbl/year. Must be positive.
	Divisor float64 `json:"divisor"`
}

// Validate checks that the route definition is sound.
// In particular Divisor must be positive.
func (r RouteDefinition) Validate() error {
	if r.Key == "" {
		return fmt.Errorf("route key is required")
	}
	if r.Divisor <= 0 {
		return fmt.Errorf("route %s: divisor must be positive, got %v", r.Key, r.Divisor)
	}
	return nil
}

// FixedVessels is the committed supply for a route in a given year.
type FixedVessels struct {
	// NewBuilds counts vessels already committed or under construction.
	NewBuilds int `json:"new_builds"`
	// Existing counts vessels already in service.
	Existing int `json:"existing"`
}

// UnknownRouteError reports a lookup against a route key that was never
// registered in the policy table. It indicates a configuration or caller
// bug, not bad user input.
type UnknownRouteError struct {
	Key string
}

func (e UnknownRouteError) Error() string {
	return fmt.Sprintf("unknown route %q", e.Key)
}

// ScheduleKey addresses one entry of the fixed-vessel schedule.
type ScheduleKey struct {
	RouteKey string
	Year     int
}

// PolicyTable holds the per-route divisors and the (route, year) fixed-vessel
// schedule. It is pure static data: lookups never mutate it, and a missing
// schedule entry defaults to zero committed vessels.
type PolicyTable struct {
	routes   []RouteDefinition
	byKey    map[string]RouteDefinition
	schedule map[ScheduleKey]FixedVessels
}

// NewPolicyTable builds a table from route definitions and a schedule.
// Routes keep their registration order for listing. Schedule entries that
// reference an unregistered route are rejected.
func NewPolicyTable(routes []RouteDefinition, schedule map[ScheduleKey]FixedVessels) (*PolicyTable, error) {
	t := &PolicyTable{
		byKey:    make(map[string]RouteDefinition, len(routes)),
		schedule: make(map[ScheduleKey]FixedVessels, len(schedule)),
	}
	for _, r := range routes {
		if err := r.Validate(); err != nil {
			return nil, err
		}
		if _, dup := t.byKey[r.Key]; dup {
			return nil, fmt.Errorf("duplicate route %s", r.Key)
		}
		t.byKey[r.Key] = r
		t.routes = append(t.routes, r)
	}
	for k, v := range schedule {
		if _, ok := t.byKey[k.RouteKey]; !ok {
			return nil, fmt.Errorf("schedule entry for %s/%d: %w", k.RouteKey, k.Year, UnknownRouteError{Key: k.RouteKey})
		}
		if v.NewBuilds < 0 || v.Existing < 0 {
			return nil, fmt.Errorf("schedule entry for %s/%d: vessel counts must not be negative", k.RouteKey, k.Year)
		}
		t.schedule[k] = v
	}
	return t, nil
}

// Routes returns the registered routes in registration order.
func (t *PolicyTable) Routes() []RouteDefinition {
	out := make([]RouteDefinition, len(t.routes))
	copy(out, t.routes)
	return out
}

// Route returns the definition for the given key.
func (t *PolicyTable) Route(key string) (RouteDefinition, error) {
	r, ok := t.byKey[key]
	if !ok {
		return RouteDefinition{}, UnknownRouteError{Key: key}
	}
	return r, nil
}

// DivisorFor returns the per-vessel annual capacity for the route.
func (t *PolicyTable) DivisorFor(key string) (float64, error) {
	r, err := t.Route(key)
	if err != nil {
		return 0, err
	}
	return r.Divisor, nil
}

// FixedVesselsFor returns the committed supply for the route in the given
// year. Missing (route, year) combinations yield the zero value; only an
// unregistered route is an error.
func (t *PolicyTable) FixedVesselsFor(key string, year int) (FixedVessels, error) {
	if _, ok := t.byKey[key]; !ok {
		return FixedVessels{}, UnknownRouteError{Key: key}
	}
	return t.schedule[ScheduleKey{RouteKey: key, Year: year}], nil
}
