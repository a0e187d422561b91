package observability

import (
	"context"

	"github.com/aretw0/entitystore/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeApplied  = "applied"
	outcomeRejected = "rejected"
)

// Metrics records dispatch outcomes, latencies and collection sizes.
type Metrics struct {
	dispatched *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	entities   *prometheus.GaugeVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		dispatched: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "entitystore_actions_total",
				Help: "Total number of dispatched actions by outcome",
			},
			[]string{"path", "op", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "entitystore_action_duration_seconds",
				Help:    "Duration of action handling, lock wait included",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
			},
			[]string{"path", "op"},
		),
		entities: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "entitystore_entities",
				Help: "Number of entities held per collection",
			},
			[]string{"path"},
		),
	}

	for _, c := range []prometheus.Collector{m.dispatched, m.duration, m.entities} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks feeding the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnApplied: func(_ context.Context, e *domain.DispatchEvent) {
			m.dispatched.WithLabelValues(e.Path, e.Op, outcomeApplied).Inc()
			m.duration.WithLabelValues(e.Path, e.Op).Observe(e.Duration.Seconds())
			if v, ok := e.After.(domain.Viewer); ok {
				m.entities.WithLabelValues(e.Path).Set(float64(v.View().Size()))
			}
		},
		OnRejected: func(_ context.Context, e *domain.DispatchEvent) {
			m.dispatched.WithLabelValues(e.Path, e.Op, outcomeRejected).Inc()
			m.duration.WithLabelValues(e.Path, e.Op).Observe(e.Duration.Seconds())
		},
	}
}
