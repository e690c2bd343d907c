// Package metrics holds the Prometheus collectors for engine actions and the
// HTTP surface. A nil *Collector is valid and records nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mainframe"

type Collector struct {
	registry *prometheus.Registry

	actions         *prometheus.CounterVec
	gachaPulls      *prometheus.CounterVec
	achievements    prometheus.Counter
	requestDuration *prometheus.SummaryVec
}

func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		actions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "actions_total",
				Help:      "Inbound actions by name and result",
			},
			[]string{"action", "result"},
		),
		gachaPulls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "gacha_pulls_total",
				Help:      "Resolved gacha pulls by outcome",
			},
			[]string{"outcome"},
		),
		achievements: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "achievements_unlocked_total",
				Help:      "Achievement tiers unlocked",
			},
		),
		requestDuration: prometheus.NewSummaryVec(
			prometheus.SummaryOpts{
				Namespace:  namespace,
				Name:       "http_request_duration_seconds",
				Help:       "HTTP request latency by route and status",
				Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
			},
			[]string{"route", "status"},
		),
	}

	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.actions,
		c.gachaPulls,
		c.achievements,
		c.requestDuration,
	)
	return c
}

func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

func (c *Collector) ObserveAction(action string, err error) {
	if c == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.actions.WithLabelValues(action, result).Inc()
}

func (c *Collector) ObservePull(outcome string) {
	if c == nil {
		return
	}
	c.gachaPulls.WithLabelValues(outcome).Inc()
}

func (c *Collector) ObserveAchievements(n int) {
	if c == nil || n <= 0 {
		return
	}
	c.achievements.Add(float64(n))
}

func (c *Collector) ObserveRequest(route string, status int, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.requestDuration.WithLabelValues(route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}
