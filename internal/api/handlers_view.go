// TravelMap - Map-Based Pin Sharing Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelmap

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/travelmap/internal/models"
)

// State returns the full view snapshot.
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(h.ctrl.View())
}

// Map returns the widget settings.
func (h *Handler) Map(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(h.ctrl.View().Map)
}

// Pins returns every pin with its ownership flag and marker color.
func (h *Handler) Pins(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(h.ctrl.View().Pins)
}

// Viewport applies a pan or zoom.
func (h *Handler) Viewport(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var vp models.Viewport
	if err := decodeJSON(r, w, &vp); err != nil {
		rw.Fail(http.StatusBadRequest, err.Error())
		return
	}
	if err := h.ctrl.SetViewport(vp); err != nil {
		writeError(rw, servicePinAPI, err)
		return
	}
	rw.Success(h.ctrl.Viewport())
}

// SelectPin opens the popup for a marker and returns it.
func (h *Handler) SelectPin(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	if err := h.ctrl.SelectPin(chi.URLParam(r, "id")); err != nil {
		writeError(rw, servicePinAPI, err)
		return
	}
	rw.Success(h.ctrl.View().Popup)
}

// ClosePopup closes the popup.
func (h *Handler) ClosePopup(w http.ResponseWriter, r *http.Request) {
	h.ctrl.ClosePopup()
	NewResponseWriter(w, r).NoContent()
}
