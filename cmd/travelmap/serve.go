// TravelMap - Map-Based Pin Sharing Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelmap

package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/travelmap/internal/api"
	"github.com/tomtom215/travelmap/internal/logging"
	"github.com/tomtom215/travelmap/internal/supervisor"
	"github.com/tomtom215/travelmap/internal/supervisor/services"
	ws "github.com/tomtom215/travelmap/internal/websocket"
)

func runServe(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("serve", e.stderr)
	addr := fs.String("addr", e.cfg.Server.Addr(), "listen address")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	if e.cfg.Server.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}
	for _, origin := range e.cfg.Server.CORSOrigins {
		if origin == "*" {
			logging.Warn().Msg("CORS allows any origin (CORS_ORIGINS=*); set specific origins if the server is reachable from other machines")
			break
		}
	}

	hub := ws.NewHub(ws.WithSnapshot(func() interface{} { return e.ctrl.View() }))
	handler := api.NewHandler(e.ctrl, hub, &e.cfg.Server)
	router := api.NewRouter(handler, api.NewChiMiddlewareFromServer(e.cfg.Server))

	srv := &http.Server{
		Addr:              *addr,
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: e.cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return err
	}
	tree.AddStateService(services.NewHubService(hub))
	tree.AddStateService(services.NewViewBridgeService(e.ctrl, hub))
	tree.AddStateService(services.NewPinLoaderService(e.ctrl))
	tree.AddAPIService(services.NewHTTPServerService(srv, e.cfg.Server.ShutdownTimeout))

	logging.Info().
		Str("addr", *addr).
		Str("api_url", e.cfg.API.BaseURL).
		Str("session_store", e.cfg.Session.Store).
		Bool("circuit_breaker", e.cfg.Client.CircuitBreaker).
		Msg("Starting TravelMap view server")

	err = tree.Serve(ctx)
	if report, rerr := tree.UnstoppedServiceReport(); rerr == nil && len(report) > 0 {
		for _, svc := range report {
			logging.Warn().Str("service", svc.Name).Msg("Service did not stop within the shutdown timeout")
		}
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logging.Info().Msg("TravelMap view server stopped")
	return nil
}
