package planner

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	calculations   *prometheus.CounterVec
	charterVessels *prometheus.GaugeVec
)

// newCollectors creates new metric collectors.
func newCollectors() (*prometheus.CounterVec, *prometheus.GaugeVec) {
	calc := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vessel_calculations_total",
			Help: "Number of vessel requirement calculations per route",
		},
		[]string{"route", "ok"},
	)
	charter := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "charter_vessels_needed",
			Help: "Open charter requirement from the last plan per route and year",
		},
		[]string{"route", "year"},
	)
	return calc, charter
}

func init() {
	calculations, charterVessels = newCollectors()
	MustRegisterMetrics(nil)
}

// MustRegisterMetrics registers planner metrics on the provided registry.
// If reg is nil, prometheus.DefaultRegisterer is used.
func MustRegisterMetrics(reg prometheus.Registerer) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(calculations, charterVessels)
}

// ResetMetrics reinitializes metrics collectors for testing purposes and
// registers them on the provided registry if not nil.
func ResetMetrics(reg prometheus.Registerer) {
	calculations, charterVessels = newCollectors()
	if reg != nil {
		MustRegisterMetrics(reg)
	}
}

func recordCalculation(route string, ok bool) {
	calculations.WithLabelValues(route, strconv.FormatBool(ok)).Inc()
}

func observeCharter(route string, year, charter int) {
	charterVessels.WithLabelValues(route, strconv.Itoa(year)).Set(float64(charter))
}
