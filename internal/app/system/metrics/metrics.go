// internal/app/system/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "tujitume"

// Metrics groups the application's collectors on a private registry.
// All methods are no-ops on a nil *Metrics so components can run without it.
type Metrics struct {
	registry        *prometheus.Registry
	mutations       *prometheus.CounterVec
	persistFailures *prometheus.CounterVec
	logins          *prometheus.CounterVec
	submissions     *prometheus.CounterVec
	notifications   *prometheus.CounterVec
}

// New builds and registers the collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_mutations_total",
			Help:      "Record store mutations by aggregate, operation and result.",
		}, []string{"aggregate", "op", "result"}),
		persistFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "slot_persist_failures_total",
			Help:      "Failed slot writes by slot key.",
		}, []string{"key"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "admin_logins_total",
			Help:      "Admin login attempts by outcome.",
		}, []string{"outcome"}),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "form_submissions_total",
			Help:      "Public form submissions by form type and outcome.",
		}, []string{"form_type", "outcome"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Notification emails by kind and outcome.",
		}, []string{"kind", "outcome"}),
	}
	m.registry.MustRegister(
		m.mutations,
		m.persistFailures,
		m.logins,
		m.submissions,
		m.notifications,
		collectors.NewGoCollector(),
	)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Mutation counts a store mutation. result is "found" or "not_found".
func (m *Metrics) Mutation(aggregate, op, result string) {
	if m == nil {
		return
	}
	m.mutations.WithLabelValues(aggregate, op, result).Inc()
}

// PersistFailure counts a failed write of a slot.
func (m *Metrics) PersistFailure(key string) {
	if m == nil {
		return
	}
	m.persistFailures.WithLabelValues(key).Inc()
}

// Login counts a login attempt. outcome is "success", "failure" or "limited".
func (m *Metrics) Login(outcome string) {
	if m == nil {
		return
	}
	m.logins.WithLabelValues(outcome).Inc()
}

// Submission counts a form submission. outcome is "accepted", "invalid" or "error".
func (m *Metrics) Submission(formType, outcome string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(formType, outcome).Inc()
}

// Notification counts an email handed to the sender.
func (m *Metrics) Notification(kind, outcome string) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(kind, outcome).Inc()
}

// WriteTextfile writes the registry in the text exposition format, for the
// node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.registry)
}
