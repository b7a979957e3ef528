// TravelMap - Map-Based Pin Sharing Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelmap

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomtom215/travelmap/internal/app"
	"github.com/tomtom215/travelmap/internal/config"
	"github.com/tomtom215/travelmap/internal/logging"
	ws "github.com/tomtom215/travelmap/internal/websocket"
)

// Service names used in upstream error responses.
const (
	servicePinAPI = "pin API"
	serviceAuth   = "user service"
)

// registerTimeout bounds the wait for a stopped or busy hub.
const registerTimeout = 5 * time.Second

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers.go: Handler struct, constructor, WebSocket upgrade (this file)
//   - handlers_health.go: liveness
//   - handlers_view.go: state, map, pins, viewport, popup
//   - handlers_draft.go: pin draft flow
//   - handlers_auth.go: auth panels, login, register, logout
type Handler struct {
	ctrl        *app.Controller
	wsHub       *ws.Hub
	corsOrigins []string
	startTime   time.Time
}

// NewHandler creates a handler over ctrl. hub may be nil, in which case the
// state stream answers 503.
func NewHandler(ctrl *app.Controller, hub *ws.Hub, cfg *config.ServerConfig) *Handler {
	h := &Handler{
		ctrl:      ctrl,
		wsHub:     hub,
		startTime: time.Now(),
	}
	if cfg != nil {
		h.corsOrigins = cfg.CORSOrigins
	}
	return h
}

// WebSocket upgrades the connection and registers the client with the hub,
// which sends it the current state and every later push.
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	if h.wsHub == nil {
		logging.Warn().Msg("WebSocket connection rejected: hub not initialized")
		NewResponseWriter(w, r).Fail(http.StatusServiceUnavailable, ErrHubUnavailable.Error())
		return
	}

	upgrader := h.getUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("WebSocket upgrade error")
		return
	}

	client := ws.NewClient(h.wsHub, conn)
	select {
	case h.wsHub.Register <- client:
	case <-h.wsHub.Done():
		_ = conn.Close()
		return
	case <-time.After(registerTimeout):
		logging.Ctx(r.Context()).Warn().Msg("WebSocket hub not accepting clients")
		_ = conn.Close()
		return
	}
	client.Start()
}

// getUpgrader creates a WebSocket upgrader with origin checking and timeouts.
func (h *Handler) getUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  4096,
		CheckOrigin:      h.checkWebSocketOrigin,
		HandshakeTimeout: 10 * time.Second,
	}
}

// checkWebSocketOrigin accepts same-host pages, configured origins, and
// non-browser clients that send no Origin.
func (h *Handler) checkWebSocketOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	if strings.TrimPrefix(strings.TrimPrefix(origin, "http://"), "https://") == r.Host {
		return true
	}
	for _, allowed := range h.corsOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	logging.Warn().Str("origin", sanitizeLogValue(origin)).Msg("WebSocket connection rejected from unauthorized origin")
	return false
}

// sanitizeLogValue strips control characters and bounds the length of a
// caller-supplied value before it is logged.
func sanitizeLogValue(s string) string {
	const maxLen = 200
	s = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
	if len(s) > maxLen {
		s = s[:maxLen] + "..."
	}
	return s
}
