// Package metrics exports dispatcher, refresh and cache metrics to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sony/gobreaker"

	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/domain"
	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/ports"
)

type Recorder struct {
	registry *prometheus.Registry
	actions  *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	refresh  *prometheus.CounterVec
	entities *prometheus.GaugeVec
}

var _ ports.ActionRecorder = (*Recorder)(nil)

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hotel_sync",
			Name:      "actions_total",
			Help:      "Dispatcher actions by outcome.",
		}, []string{"action", "outcome"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hotel_sync",
			Name:      "action_duration_seconds",
			Help:      "Dispatcher action latency including the backend round trip.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"action"}),
		refresh: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hotel_sync",
			Name:      "refresh_total",
			Help:      "Collection refreshes by kind and outcome.",
		}, []string{"kind", "outcome"}),
		entities: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "hotel_sync",
			Name:      "cached_entities",
			Help:      "Entities currently held in the cache.",
		}, []string{"kind"}),
	}
	r.registry.MustRegister(r.actions, r.latency, r.refresh, r.entities)
	return r
}

func (r *Recorder) RecordAction(action, outcome string, elapsed time.Duration) {
	r.actions.WithLabelValues(action, outcome).Inc()
	r.latency.WithLabelValues(action).Observe(elapsed.Seconds())
}

func (r *Recorder) RecordRefresh(kind, outcome string) {
	r.refresh.WithLabelValues(kind, outcome).Inc()
}

// ObserveCache sets the entity gauges from counts.
func (r *Recorder) ObserveCache(counts map[domain.Kind]int) {
	for kind, n := range counts {
		r.entities.WithLabelValues(string(kind)).Set(float64(n))
	}
}

// RegisterBreaker exports the state of a circuit breaker (0 closed,
// 1 half-open, 2 open).
func (r *Recorder) RegisterBreaker(name string, state func() gobreaker.State) {
	r.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace:   "hotel_sync",
		Name:        "circuit_breaker_state",
		Help:        "Circuit breaker state: 0 closed, 1 half-open, 2 open.",
		ConstLabels: prometheus.Labels{"breaker": name},
	}, func() float64 {
		return float64(state())
	}))
}

func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
