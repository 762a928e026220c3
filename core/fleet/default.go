package fleet

// Default fleet policy for the 050 pre-calculation project: minimum export
// volume planning per route, 2025-2050. Divisors are MM bbl/year per vessel.
// New-builds committed for 2030 are counted as existing vessels from 2040 on.
func DefaultRoutes() []RouteDefinition {
	return []RouteDefinition{
		{Key: "vlcc_china", DisplayName: "Brazil to China (Crude Oil)", Divisor: 9.95},
		{Key: "suez_sing", DisplayName: "Brazil to Singapore (Crude Oil)", Divisor: 6.42},
		{Key: "prod_seasia", DisplayName: "Brazil to SE Asia (Oil Product)", Divisor: 6.42},
	}
}

// DefaultSchedule returns the committed fixed-vessel counts per route and
// target year.
func DefaultSchedule() map[ScheduleKey]FixedVessels {
	return map[ScheduleKey]FixedVessels{
		{RouteKey: "vlcc_china", Year: 2030}: {NewBuilds: 18, Existing: 0},
		{RouteKey: "vlcc_china", Year: 2040}: {NewBuilds: 0, Existing: 18},
		{RouteKey: "vlcc_china", Year: 2050}: {NewBuilds: 0, Existing: 18},

		{RouteKey: "suez_sing", Year: 2030}: {NewBuilds: 10, Existing: 10},
		{RouteKey: "suez_sing", Year: 2040}: {NewBuilds: 0, Existing: 20},
		{RouteKey: "suez_sing", Year: 2050}: {NewBuilds: 0, Existing: 17},

		{RouteKey: "prod_seasia", Year: 2030}: {NewBuilds: 9, Existing: 0},
		{RouteKey: "prod_seasia", Year: 2040}: {NewBuilds: 0, Existing: 9},
		{RouteKey: "prod_seasia", Year: 2050}: {NewBuilds: 0, Existing: 9},
	}
}

// NewDefaultTable builds the built-in policy table. It is used when the
// configuration does not override the fleet section.
func NewDefaultTable() *PolicyTable {
	t, err := NewPolicyTable(DefaultRoutes(), DefaultSchedule())
	if err != nil {
		// The built-in data is validated by tests; a failure here is a
		// programming error.
		panic(err)
	}
	return t
}
