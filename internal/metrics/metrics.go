// TravelMap - Map-Based Pin Sharing Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelmap

// Package metrics holds the Prometheus instrumentation for TravelMap:
// calls to the pin API and user service, the circuit breaker guarding them,
// the local view server and its WebSocket stream, and the session state.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Remote (pin API / user service) metrics
	RemoteRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pinapi_requests_total",
			Help: "Total number of requests to the pin API and user service",
		},
		[]string{"operation", "result"}, // result: "success", "error"
	)

	RemoteRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pinapi_request_duration_seconds",
			Help:    "Pin API and user service request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"operation"},
	)

	RemoteStatusCodes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pinapi_responses_total",
			Help: "Responses from the pin API and user service by HTTP status class",
		},
		[]string{"operation", "status_class"}, // "2xx", "4xx", "5xx", "none"
	)

	RemoteRateLimitWaits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pinapi_rate_limit_waits_total",
			Help: "Requests that waited on the client-side rate limiter",
		},
	)

	// Local view server metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of local view server requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Local view server request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active local view server requests",
		},
	)

	// WebSocket Metrics
	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_connections",
			Help: "Current number of active WebSocket connections",
		},
	)

	WSMessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_messages_sent_total",
			Help: "Total number of WebSocket messages sent",
		},
	)

	WSBroadcastsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_broadcasts_dropped_total",
			Help: "State snapshots dropped because the broadcast channel was full",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Client state metrics
	SessionLoggedIn = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "session_logged_in",
			Help: "1 when a username is stored in the session, 0 otherwise",
		},
	)

	PinsLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pins_loaded",
			Help: "Number of pins currently held by the view controller",
		},
	)

	ControllerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "controller_errors_total",
			Help: "Failures surfaced by the view controller, by operation",
		},
		[]string{"operation"},
	)
)

// RecordRemoteRequest records one call to the pin API or user service.
// statusCode is 0 when no response was received.
func RecordRemoteRequest(operation string, statusCode int, duration time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	RemoteRequestsTotal.WithLabelValues(operation, result).Inc()
	RemoteRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
	RemoteStatusCodes.WithLabelValues(operation, statusClass(statusCode)).Inc()
}

func statusClass(code int) string {
	switch {
	case code >= 200 && code < 300:
		return "2xx"
	case code >= 300 && code < 400:
		return "3xx"
	case code >= 400 && code < 500:
		return "4xx"
	case code >= 500 && code < 600:
		return "5xx"
	default:
		return "none"
	}
}

// RecordAPIRequest records a local view server request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the active request gauge.
func TrackActiveRequest(start bool) {
	if start {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// SetSessionLoggedIn updates the session gauge.
func SetSessionLoggedIn(loggedIn bool) {
	if loggedIn {
		SessionLoggedIn.Set(1)
	} else {
		SessionLoggedIn.Set(0)
	}
}

// RecordControllerError counts a failure reported by the view controller.
func RecordControllerError(operation string) {
	ControllerErrors.WithLabelValues(operation).Inc()
}
