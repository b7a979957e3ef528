// TravelMap - Map-Based Pin Sharing Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelmap

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/travelmap/internal/middleware"
)

// Router owns the handler and middleware factories.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. A nil middleware factory uses the defaults.
func NewRouter(handler *Handler, mw *ChiMiddleware) *Router {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}
	return &Router{handler: handler, chiMiddleware: mw}
}

// SetupChi builds the chi route tree.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// Global, in order. CORS must be global to answer OPTIONS preflight.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.AccessLog)
	r.Use(router.chiMiddleware.CORS())

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(APISecurityHeaders)

		r.Get("/health/live", router.handler.HealthLive)

		// The upgrade must reach the raw connection, so no compression here.
		r.With(middleware.PrometheusMetrics).Get("/ws", router.handler.WebSocket)

		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimit())
			r.Use(middleware.PrometheusMetrics)
			r.Use(chimiddleware.Compress(5, "application/json"))

			r.Get("/state", router.handler.State)
			r.Get("/map", router.handler.Map)
			r.Get("/pins", router.handler.Pins)
			r.Put("/viewport", router.handler.Viewport)
			r.Post("/pins/{id}/select", router.handler.SelectPin)
			r.Delete("/popup", router.handler.ClosePopup)

			r.Route("/draft", func(r chi.Router) {
				r.Post("/", router.handler.BeginDraft)
				r.Patch("/", router.handler.UpdateDraft)
				r.Delete("/", router.handler.CancelDraft)
				r.Post("/submit", router.handler.SubmitDraft)
			})

			r.Put("/panels/{panel}", router.handler.SetPanel)

			r.Route("/auth", func(r chi.Router) {
				r.With(router.chiMiddleware.RateLimitAuth()).Post("/login", router.handler.Login)
				r.With(router.chiMiddleware.RateLimitAuth()).Post("/register", router.handler.Register)
				r.Post("/logout", router.handler.Logout)
			})
		})
	})

	return r
}
