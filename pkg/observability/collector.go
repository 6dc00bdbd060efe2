package observability

import (
	"context"

	"github.com/aretw0/riposte/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Collector turns engine lifecycle events into Prometheus metrics. Wire its
// Hooks into the engine and register the collector with a registry.
type Collector struct {
	steps       *prometheus.CounterVec
	suspensions *prometheus.CounterVec
	resumes     *prometheus.CounterVec
	completions *prometheus.CounterVec
	aborts      *prometheus.CounterVec
}

// NewCollector creates the metric set and registers it with reg. Pass
// prometheus.DefaultRegisterer for process-global metrics.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		steps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "riposte_steps_total",
				Help: "Total number of operations executed",
			},
			[]string{"script"},
		),
		suspensions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "riposte_suspensions_total",
				Help: "Total number of interaction suspensions",
			},
			[]string{"script", "source"},
		),
		resumes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "riposte_resumes_total",
				Help: "Total number of interaction resumptions",
			},
			[]string{"script", "source"},
		),
		completions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "riposte_completions_total",
				Help: "Total number of interactions run to completion",
			},
			[]string{"script"},
		),
		aborts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "riposte_aborts_total",
				Help: "Total number of aborted interactions",
			},
			[]string{"script", "reason"},
		),
	}
	reg.MustRegister(c.steps, c.suspensions, c.resumes, c.completions, c.aborts)
	return c
}

// Hooks returns the lifecycle hooks that feed this collector. Merge them
// with any other hook set the engine carries.
func (c *Collector) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(_ context.Context, e *domain.StepEvent) {
			c.steps.WithLabelValues(e.Script).Inc()
		},
		OnSuspend: func(_ context.Context, e *domain.SuspendEvent) {
			c.suspensions.WithLabelValues(e.Script, string(e.Source)).Inc()
		},
		OnResume: func(_ context.Context, e *domain.ResumeEvent) {
			c.resumes.WithLabelValues(e.Script, string(e.Source)).Inc()
		},
		OnComplete: func(_ context.Context, e *domain.EndEvent) {
			c.completions.WithLabelValues(e.Script).Inc()
		},
		OnAbort: func(_ context.Context, e *domain.EndEvent) {
			c.aborts.WithLabelValues(e.Script, e.Reason).Inc()
		},
	}
}

// RegisterActiveGauge exposes the current number of live interactions as a
// gauge sampled on scrape. count is typically Manager.Len.
func RegisterActiveGauge(reg prometheus.Registerer, count func() int) {
	reg.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "riposte_active_interactions",
			Help: "Number of interactions currently in flight",
		},
		func() float64 { return float64(count()) },
	))
}
