// Package metrics exposes Prometheus counters for policy checks.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the gate.
type Metrics struct {
	checksTotal     *prometheus.CounterVec
	violationsTotal *prometheus.CounterVec
	ruleHitsTotal   prometheus.Counter
	configReloads   *prometheus.CounterVec

	registry *prometheus.Registry
}

// New creates a metrics instance on its own registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		checksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "policygate_checks_total",
				Help: "Total number of task checks by outcome",
			},
			[]string{"compliant"},
		),
		violationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "policygate_violations_total",
				Help: "Total number of structural violation tags raised",
			},
			[]string{"tag"},
		),
		ruleHitsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "policygate_rule_hits_total",
				Help: "Total number of informational hard-rule keyword hits",
			},
		),
		configReloads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "policygate_config_reloads_total",
				Help: "Total number of configuration reloads by status",
			},
			[]string{"status"},
		),
		registry: registry,
	}

	registry.MustRegister(
		m.checksTotal,
		m.violationsTotal,
		m.ruleHitsTotal,
		m.configReloads,
	)

	return m
}

// RecordCheck counts one check with its tags and rule-hit count.
func (m *Metrics) RecordCheck(compliant bool, tags []string, ruleHits int) {
	if m == nil {
		return
	}
	m.checksTotal.WithLabelValues(strconv.FormatBool(compliant)).Inc()
	for _, tag := range tags {
		m.violationsTotal.WithLabelValues(tag).Inc()
	}
	m.ruleHitsTotal.Add(float64(ruleHits))
}

// RecordReload counts a configuration reload attempt.
func (m *Metrics) RecordReload(err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.configReloads.WithLabelValues(status).Inc()
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
