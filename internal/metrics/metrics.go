// Package metrics exposes Prometheus metrics for indicator computation runs.
package metrics

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the indicator engine.
type Metrics struct {
	// Indicator engine metrics
	IndicatorComputeDur *prometheus.HistogramVec // labels: indicator
	IndicatorsTotal     *prometheus.CounterVec   // labels: indicator
	FailuresTotal       *prometheus.CounterVec   // labels: indicator, kind

	// Run metrics
	RunsTotal     prometheus.Counter
	RunDur        prometheus.Histogram
	BarsProcessed prometheus.Counter
	WarmupBars    *prometheus.GaugeVec // labels: indicator
}

// NewMetrics creates all metrics and registers them with reg.
// Pass prometheus.DefaultRegisterer for the process-wide registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		IndicatorComputeDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ta_indicator_compute_duration_seconds",
			Help:    "Time to validate and compute one indicator over a data set",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}, []string{"indicator"}),
		IndicatorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ta_indicators_total",
			Help: "Indicator results computed",
		}, []string{"indicator"}),
		FailuresTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ta_indicator_failures_total",
			Help: "Indicator calculations rejected, by error kind",
		}, []string{"indicator", "kind"}),

		RunsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ta_engine_runs_total",
			Help: "Engine compute runs started",
		}),
		RunDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ta_engine_run_duration_seconds",
			Help:    "Wall time of a full engine run",
			Buckets: prometheus.DefBuckets,
		}),
		BarsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ta_engine_bars_total",
			Help: "Input bars fed through the engine",
		}),
		WarmupBars: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "ta_indicator_warmup_bars",
			Help: "Leading NaN positions in the last result of each indicator",
		}, []string{"indicator"}),
	}

	reg.MustRegister(
		m.IndicatorComputeDur,
		m.IndicatorsTotal,
		m.FailuresTotal,
		m.RunsTotal,
		m.RunDur,
		m.BarsProcessed,
		m.WarmupBars,
	)

	return m
}

// ObserveIndicator records one successful indicator calculation.
func (m *Metrics) ObserveIndicator(name string, dur time.Duration, warmup int) {
	m.IndicatorComputeDur.WithLabelValues(name).Observe(dur.Seconds())
	m.IndicatorsTotal.WithLabelValues(name).Inc()
	m.WarmupBars.WithLabelValues(name).Set(float64(warmup))
}

// ObserveFailure records one rejected calculation.
func (m *Metrics) ObserveFailure(name, kind string) {
	m.FailuresTotal.WithLabelValues(name, kind).Inc()
}

// Server runs an HTTP server exposing /metrics and /healthz.
type Server struct {
	addr string
	srv  *http.Server
	ln   net.Listener
}

// NewServer creates a metrics server backed by gatherer.
func NewServer(addr string, gatherer prometheus.Gatherer) *Server {
	started := time.Now()
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"status": "healthy",
			"uptime": time.Since(started).Round(time.Second).String(),
		})
	})

	return &Server{
		addr: addr,
		srv: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler { return s.srv.Handler }

// Start binds the listen address and serves in a goroutine. Bind failures
// (port in use, bad address) are returned to the caller.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("metrics listen %s: %w", s.addr, err)
	}
	s.ln = ln
	slog.Info("metrics server listening", "addr", ln.Addr().String())
	go func() {
		if err := s.srv.Serve(ln); err != http.ErrServerClosed {
			slog.Error("metrics server error", "error", err)
		}
	}()
	return nil
}

// Addr returns the bound address once started, otherwise the configured one.
func (s *Server) Addr() string {
	if s.ln != nil {
		return s.ln.Addr().String()
	}
	return s.addr
}

// Stop gracefully shuts down the metrics server.
func (s *Server) Stop(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
