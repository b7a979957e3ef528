// TravelMap - Map-Based Pin Sharing Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelmap

package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/travelmap/internal/logging"
	"github.com/tomtom215/travelmap/internal/metrics"
)

func TestRequestID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{name: "generates when missing", incoming: "", keep: false},
		{name: "preserves upstream id", incoming: "abc-123", keep: true},
		{name: "replaces oversized id", incoming: strings.Repeat("x", maxRequestIDLength+1), keep: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seenRequestID, seenCorrelationID string
			handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seenRequestID = logging.RequestIDFromContext(r.Context())
				seenCorrelationID = logging.CorrelationIDFromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			header := rec.Header().Get(RequestIDHeader)
			if header == "" || header != seenRequestID {
				t.Errorf("header %q does not match context %q", header, seenRequestID)
			}
			if tt.keep && header != tt.incoming {
				t.Errorf("id = %q, want %q", header, tt.incoming)
			}
			if !tt.keep && header == tt.incoming {
				t.Errorf("id %q should have been replaced", header)
			}
			if seenCorrelationID == "" {
				t.Error("correlation id missing from context")
			}
		})
	}
}

func TestPrometheusMetrics_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(PrometheusMetrics)
	r.Post("/api/v1/pins/{id}/select", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	counter := metrics.APIRequestsTotal.WithLabelValues(http.MethodPost, "/api/v1/pins/{id}/select", "404")
	before := testutil.ToFloat64(counter)

	for _, id := range []string{"a", "b"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/pins/"+id+"/select", nil))
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d", rec.Code)
		}
	}

	if got := testutil.ToFloat64(counter) - before; got != 2 {
		t.Errorf("counter delta = %v, want 2", got)
	}
	if got := testutil.ToFloat64(metrics.APIActiveRequests); got != 0 {
		t.Errorf("active requests = %v, want 0", got)
	}
}

func TestStatusRecorder(t *testing.T) {
	rec := httptest.NewRecorder()
	sr := &statusRecorder{ResponseWriter: rec, statusCode: http.StatusOK}

	sr.WriteHeader(http.StatusCreated)
	sr.WriteHeader(http.StatusInternalServerError)

	if sr.statusCode != http.StatusCreated {
		t.Errorf("statusCode = %d, want first written 201", sr.statusCode)
	}
	if sr.Unwrap() != rec {
		t.Error("Unwrap should return the wrapped writer")
	}
}

func TestAccessLog(t *testing.T) {
	var buf bytes.Buffer
	logging.Init(logging.Config{Level: "debug", Output: &buf})
	t.Cleanup(func() { logging.Init(logging.DefaultConfig()) })

	handler := RequestID(AccessLog(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/state", nil))

	out := buf.String()
	for _, want := range []string{`"status":418`, `"path":"/api/v1/state"`, `"request_id"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %s: %s", want, out)
		}
	}
}

func TestStatusRecorder_Hijack(t *testing.T) {
	t.Run("unsupported", func(t *testing.T) {
		rec := &statusRecorder{ResponseWriter: httptest.NewRecorder(), statusCode: http.StatusOK}
		if _, _, err := rec.Hijack(); err == nil {
			t.Error("Hijack() on a recorder should fail")
		}
	})

	t.Run("supported", func(t *testing.T) {
		hijacked := make(chan int, 1)
		srv := httptest.NewServer(AccessLog(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			conn, _, err := http.NewResponseController(w).Hijack()
			if err != nil {
				hijacked <- 0
				return
			}
			_ = conn.Close()
			hijacked <- 1
		})))
		t.Cleanup(srv.Close)

		resp, err := http.Get(srv.URL)
		if err == nil {
			_ = resp.Body.Close()
		}
		if got := <-hijacked; got != 1 {
			t.Error("Hijack() through AccessLog failed")
		}
	})
}
