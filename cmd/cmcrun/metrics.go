package main

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

var (
	sweepsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "cmcrun",
		Name:      "sweeps_total",
		Help:      "Total CMC sweeps executed across the run.",
	})

	acceptanceRatio = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "cmcrun",
		Name:      "acceptance_ratio",
		Help:      "successes / total_trials over the run so far.",
	})

	sphereRejectRatio = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "cmcrun",
		Name:      "sphere_reject_ratio",
		Help:      "sphere_rejects / total_trials over the run so far.",
	})

	magnetizationAlongConstraint = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "cmcrun",
		Name:      "magnetization_constraint_projection",
		Help:      "(M/N)·c, the fraction of saturation along the constraint axis.",
	})
)

// maybeServeMetrics starts a Prometheus HTTP endpoint when addr is
// non-empty and returns a func that shuts it down. When addr is empty it
// returns a no-op shutdown func.
func maybeServeMetrics(addr string, log *zap.Logger) func() {
	if addr == "" {
		return func() {}
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn("metrics server stopped", zap.Error(err))
		}
	}()
	log.Info("serving metrics", zap.String("addr", addr))
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
