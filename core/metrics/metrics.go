package metrics

import (
	"time"

	"precal/core/planner"
)

// CalculationEvent represents one computed vessel requirement to be recorded.
type CalculationEvent struct {
	PlanID    string
	Result    planner.Result
	Component string
	Time      time.Time
}

// PlanSink records calculation events for observability purposes.
type PlanSink interface {
	RecordCalculation(ev CalculationEvent) error
}

// PlanReportEvent captures an entire batch plan.
type PlanReportEvent struct {
	Report    planner.Report
	Component string
	Time      time.Time
}

// PlanReportRecorder records finished batch plans.
type PlanReportRecorder interface {
	RecordPlanReport(ev PlanReportEvent) error
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) RecordCalculation(CalculationEvent) error { return nil }
func (NopSink) RecordPlanReport(PlanReportEvent) error   { return nil }
