// Package metrics registers the daemon's Prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	intentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "linkdock_intents_total",
			Help: "Intents dispatched, labeled by type, action and outcome.",
		},
		[]string{"type", "action", "outcome"},
	)

	sessionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "linkdock_sessions_active",
			Help: "Sessions currently tracked by the daemon.",
		},
	)

	hostCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "linkdock_host_calls_total",
			Help: "Editor bridge calls, labeled by operation and outcome.",
		},
		[]string{"op", "outcome"},
	)
)

func init() {
	prometheus.MustRegister(intentsTotal, sessionsActive, hostCallsTotal)
}

// Outcome labels for IntentDispatched and HostCall.
const (
	OutcomeOK      = "ok"
	OutcomeError   = "error"
	OutcomeIgnored = "ignored"
)

// IntentDispatched records one dispatched intent.
func IntentDispatched(intentType, action, outcome string) {
	intentsTotal.WithLabelValues(intentType, action, outcome).Inc()
}

// SessionOpened increments the active session gauge.
func SessionOpened() {
	sessionsActive.Inc()
}

// SessionClosed decrements the active session gauge.
func SessionClosed() {
	sessionsActive.Dec()
}

// HostCall records one bridge call to the editor.
func HostCall(op, outcome string) {
	hostCallsTotal.WithLabelValues(op, outcome).Inc()
}

// Handler returns the HTTP handler serving the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
