package main

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"fenrir/internal/matching"
)

// metricsSink is a matching.Sink backed by a small set of Prometheus
// counters: one per terminal disposition the engine actually emits.
type metricsSink struct {
	ordersTotal  *prometheus.CounterVec
	fillsTotal   prometheus.Counter
	fillVolume   prometheus.Counter
	cancelsTotal *prometheus.CounterVec
	modifysTotal *prometheus.CounterVec
}

func newMetricsSink() *metricsSink {
	m := &metricsSink{
		ordersTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "fenrir",
				Subsystem: "orders",
				Name:      "total",
				Help:      "Total number of orders submitted, by disposition.",
			},
			[]string{"disposition"},
		),
		fillsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "fenrir",
				Subsystem: "matching",
				Name:      "fills_total",
				Help:      "Total number of fill events emitted.",
			},
		),
		fillVolume: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "fenrir",
				Subsystem: "matching",
				Name:      "fill_volume_total",
				Help:      "Total quantity matched across all fills.",
			},
		),
		cancelsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "fenrir",
				Subsystem: "orders",
				Name:      "cancels_total",
				Help:      "Total number of cancel requests, by outcome.",
			},
			[]string{"outcome"},
		),
		modifysTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "fenrir",
				Subsystem: "orders",
				Name:      "modifies_total",
				Help:      "Total number of modify requests, by outcome.",
			},
			[]string{"outcome"},
		),
	}
	prometheus.MustRegister(m.ordersTotal, m.fillsTotal, m.fillVolume, m.cancelsTotal, m.modifysTotal)
	return m
}

func (m *metricsSink) Emit(e matching.Event) {
	switch ev := e.(type) {
	case matching.OrderAccepted:
		m.ordersTotal.WithLabelValues("accepted").Inc()
	case matching.OrderRejected:
		m.ordersTotal.WithLabelValues("rejected").Inc()
	case matching.OrderFilled:
		m.fillsTotal.Inc()
		m.fillVolume.Add(float64(ev.Fill.Quantity))
	case matching.OrderCancelled:
		m.cancelsTotal.WithLabelValues("success").Inc()
	case matching.CancelNotFoundEvent:
		m.cancelsTotal.WithLabelValues("not_found").Inc()
	case matching.OrderModified:
		m.modifysTotal.WithLabelValues(ev.Outcome.String()).Inc()
	}
}

// serveMetrics starts a /metrics HTTP endpoint and runs until ctx is
// cancelled.
func serveMetrics(ctx context.Context, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()

	log.Info().Str("addr", addr).Msg("serving metrics")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error().Err(err).Msg("metrics server exited")
	}
}
