// Package metrics holds the Prometheus collectors for the monitor.
// Nothing is stored beyond the process; /metrics exposes the current values.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/hamed0406/statuswatch/internal/domain"
)

const namespace = "statuswatch"

type Metrics struct {
	Registry      *prometheus.Registry
	Checks        *prometheus.CounterVec
	ProbeLatency  prometheus.Histogram
	Notifications *prometheus.CounterVec
	Up            prometheus.Gauge
}

// New builds a registry with the Go and process collectors plus the monitor's own.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Checks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "checks_total",
				Help:      "Checks performed, by classified status",
			},
			[]string{"status"},
		),
		ProbeLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "probe_latency_seconds",
			Help:      "Latency of healthy probes in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}),
		Notifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "notifications_total",
				Help:      "Status notifications by delivery outcome",
			},
			[]string{"outcome"},
		),
		Up: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "up",
			Help:      "1 when the target is online, 0 when offline, -1 before the first check",
		}),
	}
	m.Up.Set(-1)
	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.Checks, m.ProbeLatency, m.Notifications, m.Up,
	)
	return m
}

// ObserveCheck records one classified probe result.
func (m *Metrics) ObserveCheck(r domain.CheckResult) {
	if m == nil {
		return
	}
	m.Checks.WithLabelValues(r.Status.String()).Inc()
	if r.Status == domain.StatusHealthy {
		m.ProbeLatency.Observe(r.Latency.Seconds())
		m.Up.Set(1)
		return
	}
	m.Up.Set(0)
}

// ObserveNotification records a delivery attempt.
func (m *Metrics) ObserveNotification(sent bool) {
	if m == nil {
		return
	}
	outcome := "failed"
	if sent {
		outcome = "sent"
	}
	m.Notifications.WithLabelValues(outcome).Inc()
}
