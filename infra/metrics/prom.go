package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "precal/core/metrics"
)

// PromSink records calculation events in Prometheus metrics.
type PromSink struct {
	totals  *prometheus.GaugeVec
	charter *prometheus.GaugeVec
	plans   prometheus.Counter
}

// NewPromSink registers planner metrics on the default Prometheus registerer.
// The Prometheus server should be started separately using cfg.PrometheusAddr.
func NewPromSink(cfg coremetrics.Config) (coremetrics.PlanSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(cfg coremetrics.Config, reg prometheus.Registerer) (coremetrics.PlanSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	totals := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "vessel_requirement_total",
		Help: "Total vessels required per route and year from the last calculation",
	}, []string{"route", "year"})
	charter := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "vessel_requirement_charter",
		Help: "Charter vessels needed per route and year from the last calculation",
	}, []string{"route", "year"})
	plans := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fleet_plans_total",
		Help: "Number of batch fleet plans computed",
	})

	if err := reg.Register(totals); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			totals = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(charter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			charter = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(plans); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			plans = are.ExistingCollector.(prometheus.Counter)
		} else {
			return nil, err
		}
	}

	return &PromSink{totals: totals, charter: charter, plans: plans}, nil
}

// RecordCalculation updates the per-route gauges.
func (s *PromSink) RecordCalculation(ev coremetrics.CalculationEvent) error {
	year := strconv.Itoa(ev.Result.Year)
	s.totals.WithLabelValues(ev.Result.RouteKey, year).Set(float64(ev.Result.TotalVessels))
	s.charter.WithLabelValues(ev.Result.RouteKey, year).Set(float64(ev.Result.Charter))
	return nil
}

// RecordPlanReport increments the plan counter.
func (s *PromSink) RecordPlanReport(coremetrics.PlanReportEvent) error {
	if s.plans != nil {
		s.plans.Inc()
	}
	return nil
}
