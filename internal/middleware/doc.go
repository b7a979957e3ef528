// TravelMap - Map-Based Pin Sharing Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelmap

/*
Package middleware provides the HTTP middleware used by the local view server.

All middleware has the chi signature func(http.Handler) http.Handler:

  - RequestID: reuses or generates X-Request-ID and seeds the logging context
  - PrometheusMetrics: request count, latency and in-flight gauge, labeled by
    chi route pattern so pin ids never become label values
  - AccessLog: one debug line per request with status and duration

Order matters: RequestID first so later middleware can log the id.

	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog)
	r.With(middleware.PrometheusMetrics).Get("/api/v1/state", h.State)
*/
package middleware
