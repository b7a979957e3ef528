// TravelMap - Map-Based Pin Sharing Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelmap

package api

import (
	"net/http"
	"time"
)

// HealthStatus is the liveness payload.
type HealthStatus struct {
	Status        string  `json:"status"`
	LoggedIn      bool    `json:"logged_in"`
	Pins          int     `json:"pins"`
	WSClients     int     `json:"ws_clients"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// HealthLive reports that the server is up. It never calls the pin API.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Status:        "ok",
		LoggedIn:      h.ctrl.Username() != "",
		Pins:          len(h.ctrl.Pins()),
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	}
	if h.wsHub != nil {
		status.WSClients = h.wsHub.GetClientCount()
	}
	NewResponseWriter(w, r).Success(status)
}
