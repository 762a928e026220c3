package metrics

import coremetrics "precal/core/metrics"

// MultiSink fanouts calculation events to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.PlanSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.PlanSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordCalculation forwards the event to all sinks, returning the first error encountered.
func (m *MultiSink) RecordCalculation(ev coremetrics.CalculationEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordCalculation(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordPlanReport forwards plan reports to sinks that support them.
func (m *MultiSink) RecordPlanReport(ev coremetrics.PlanReportEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.PlanReportRecorder); ok {
			if err := rec.RecordPlanReport(ev); err != nil {
				return err
			}
		}
	}
	return nil
}
