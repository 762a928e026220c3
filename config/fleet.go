package config

import (
	"fmt"

	"precal/core/fleet"
)

// ScheduleEntry is one committed fixed-vessel count for a route and year.
type ScheduleEntry struct {
	Route     string `json:"route"`
	Year      int    `json:"year"`
	NewBuilds int    `json:"new_builds"`
	Existing  int    `json:"existing"`
}

// FleetConfig defines the policy table as configuration data. Adding a route
// or a year entry is a data change, not a code change. An empty routes list
// selects the built-in default fleet.
type FleetConfig struct {
	Routes   []fleet.RouteDefinition `json:"routes"`
	Schedule []ScheduleEntry         `json:"schedule"`
}

// SetDefaults falls back to the built-in fleet when no routes are configured.
func (c *FleetConfig) SetDefaults() {
	if len(c.Routes) == 0 {
		c.Routes = fleet.DefaultRoutes()
		sched := fleet.DefaultSchedule()
		c.Schedule = c.Schedule[:0]
		for _, r := range c.Routes {
			for _, y := range []int{2030, 2040, 2050} {
				if v, ok := sched[fleet.ScheduleKey{RouteKey: r.Key, Year: y}]; ok {
					c.Schedule = append(c.Schedule, ScheduleEntry{
						Route: r.Key, Year: y, NewBuilds: v.NewBuilds, Existing: v.Existing,
					})
				}
			}
		}
	}
}

// Validate checks the route definitions and schedule references.
func (c FleetConfig) Validate() error {
	_, err := c.Table()
	return err
}

// Table builds the policy table from the configuration.
func (c FleetConfig) Table() (*fleet.PolicyTable, error) {
	schedule := make(map[fleet.ScheduleKey]fleet.FixedVessels, len(c.Schedule))
	for _, e := range c.Schedule {
		k := fleet.ScheduleKey{RouteKey: e.Route, Year: e.Year}
		if _, dup := schedule[k]; dup {
			return nil, fmt.Errorf("duplicate schedule entry for %s/%d", e.Route, e.Year)
		}
		schedule[k] = fleet.FixedVessels{NewBuilds: e.NewBuilds, Existing: e.Existing}
	}
	return fleet.NewPolicyTable(c.Routes, schedule)
}
