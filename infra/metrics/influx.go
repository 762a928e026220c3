package metrics

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "precal/core/metrics"
	"precal/infra/logger"
)

// InfluxSink writes calculation events to an InfluxDB instance using the
// official client. Downstream dashboards chart the requirement breakdown
// from these points.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(cfg coremetrics.Config) *InfluxSink {
	base := strings.TrimSuffix(cfg.InfluxURL, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, cfg.InfluxToken,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.InfluxOrg, cfg.InfluxBucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(cfg coremetrics.Config) coremetrics.PlanSink {
	sink := NewInfluxSink(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordCalculation writes the vessel breakdown as a line protocol point.
func (s *InfluxSink) RecordCalculation(ev coremetrics.CalculationEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	r := ev.Result
	p := write.NewPointWithMeasurement("vessel_requirement").
		AddTag("route", r.RouteKey).
		AddTag("year", strconv.Itoa(r.Year)).
		AddTag("component", componentOr(ev.Component, "planner"))
	if ev.PlanID != "" {
		p = p.AddTag("plan_id", ev.PlanID)
	}
	p = p.AddField("export_volume", r.ExportVolume).
		AddField("total_vessels", r.TotalVessels).
		AddField("new_builds", r.NewBuilds).
		AddField("existing", r.Existing).
		AddField("charter", r.Charter).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordPlanReport writes a summary point for the batch plan.
func (s *InfluxSink) RecordPlanReport(ev coremetrics.PlanReportEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	rep := ev.Report
	p := write.NewPointWithMeasurement("fleet_plan").
		AddTag("plan_id", rep.PlanID).
		AddTag("year", strconv.Itoa(rep.Year)).
		AddTag("component", componentOr(ev.Component, "planner")).
		AddField("routes_ok", len(rep.Results)).
		AddField("routes_failed", len(rep.Errors)).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the underlying HTTP client.
func (s *InfluxSink) Close() { s.client.Close() }

func componentOr(c, fallback string) string {
	if c != "" {
		return c
	}
	return fallback
}
