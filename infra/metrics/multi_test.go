package metrics

import (
	"fmt"
	"testing"

	coremetrics "precal/core/metrics"
)

type recordingSink struct {
	calcs   int
	reports int
	fail    bool
}

func (r *recordingSink) RecordCalculation(coremetrics.CalculationEvent) error {
	if r.fail {
		return fmt.Errorf("sink down")
	}
	r.calcs++
	return nil
}

func (r *recordingSink) RecordPlanReport(coremetrics.PlanReportEvent) error {
	r.reports++
	return nil
}

func TestMultiSink_Fanout(t *testing.T) {
	a := &recordingSink{}
	b := &recordingSink{}
	m := NewMultiSink(a, b, coremetrics.NopSink{})
	if err := m.RecordCalculation(coremetrics.CalculationEvent{}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := m.RecordPlanReport(coremetrics.PlanReportEvent{}); err != nil {
		t.Fatalf("report: %v", err)
	}
	if a.calcs != 1 || b.calcs != 1 {
		t.Fatalf("fanout missed a sink: %d/%d", a.calcs, b.calcs)
	}
	if a.reports != 1 || b.reports != 1 {
		t.Fatalf("report fanout missed a sink: %d/%d", a.reports, b.reports)
	}
}

func TestMultiSink_FirstError(t *testing.T) {
	a := &recordingSink{fail: true}
	b := &recordingSink{}
	m := NewMultiSink(a, b)
	if err := m.RecordCalculation(coremetrics.CalculationEvent{}); err == nil {
		t.Fatalf("expected error from failing sink")
	}
	if b.calcs != 0 {
		t.Fatalf("expected fanout to stop at first error")
	}
}
