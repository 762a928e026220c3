package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"precal/api/plans"
	"precal/config"
	"precal/core/fleet"
	coremetrics "precal/core/metrics"
	"precal/core/planner"
	"precal/infra/broadcast"
	"precal/infra/logger"
	"precal/infra/metrics"
)

// Service wires the policy table, metrics sinks, plan broadcaster and the
// HTTP API together.
type Service struct {
	Table       *fleet.PolicyTable
	sink        coremetrics.PlanSink
	publisher   broadcast.Publisher
	log         logger.Logger
	addr        string
	promEnabled bool
	promAddr    string
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")
	table, err := cfg.Fleet.Table()
	if err != nil {
		return nil, fmt.Errorf("fleet table: %w", err)
	}

	var sinks []coremetrics.PlanSink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	var sink coremetrics.PlanSink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	var pub broadcast.Publisher
	if cfg.Broadcast.Enabled {
		pub, err = broadcast.NewPahoPublisher(cfg.Broadcast)
		if err != nil {
			return nil, fmt.Errorf("plan broadcast: %w", err)
		}
	}

	return &Service{
		Table:       table,
		sink:        sink,
		publisher:   pub,
		log:         logg,
		addr:        cfg.Server.Addr,
		promEnabled: cfg.Metrics.PrometheusEnabled,
		promAddr:    cfg.Metrics.PrometheusAddr,
	}, nil
}

// Plan computes a batch plan, records it on the sinks and broadcasts it.
// Sink and broadcast failures are logged, never surfaced to the caller: the
// plan itself is already computed.
func (s *Service) Plan(year int, volumes map[string]float64) planner.Report {
	if !planner.SupportedYear(year) {
		s.log.Warnf("year %d outside supported horizons, schedule defaults to zero", year)
	}
	rep := planner.Plan(s.Table, year, volumes)
	now := time.Now().UTC()
	for _, res := range rep.Results {
		ev := coremetrics.CalculationEvent{PlanID: rep.PlanID, Result: res, Component: "service", Time: now}
		if err := s.sink.RecordCalculation(ev); err != nil {
			s.log.Errorf("record calculation %s: %v", res.RouteKey, err)
		}
	}
	if rec, ok := s.sink.(coremetrics.PlanReportRecorder); ok {
		if err := rec.RecordPlanReport(coremetrics.PlanReportEvent{Report: rep, Component: "service", Time: now}); err != nil {
			s.log.Errorf("record plan %s: %v", rep.PlanID, err)
		}
	}
	if s.publisher != nil {
		if err := s.publisher.PublishPlan(rep); err != nil {
			s.log.Errorf("broadcast plan %s: %v", rep.PlanID, err)
		}
	}
	return rep
}

// Handler returns the HTTP API routes.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/routes", plans.NewRoutesHandler(s.Table))
	mux.Handle("/api/calculate", plans.NewCalculateHandler(s.Table))
	mux.Handle("/api/plans", plans.NewPlanHandler(s))
	return mux
}

// Run starts the HTTP API and, if enabled, the Prometheus server. It blocks
// until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	if s.promEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promAddr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	srv := &http.Server{Addr: s.addr, Handler: s.Handler()}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("api server shutdown: %v", err)
		}
	}()
	s.log.Infof("api listening on %s", s.addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	if s.publisher != nil {
		return s.publisher.Close()
	}
	return nil
}
