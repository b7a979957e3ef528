// TravelMap - Map-Based Pin Sharing Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelmap

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/travelmap/internal/app"
	"github.com/tomtom215/travelmap/internal/models"
	"github.com/tomtom215/travelmap/internal/validation"
)

// SetPanel shows or hides the login or register panel.
func (h *Handler) SetPanel(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req PanelRequest
	if err := decodeJSON(r, w, &req); err != nil {
		rw.Fail(http.StatusBadRequest, err.Error())
		return
	}
	if err := validation.ValidateStruct(req); err != nil {
		writeError(rw, serviceAuth, err)
		return
	}

	name := chi.URLParam(r, "panel")
	if err := h.ctrl.SetPanel(name, *req.Visible); err != nil {
		writeError(rw, serviceAuth, err)
		return
	}

	if name == app.PanelLogin {
		rw.Success(h.ctrl.LoginPanel())
		return
	}
	rw.Success(h.ctrl.RegisterPanel())
}

// Login submits the login panel. On success the response carries the new
// view, whose username and buttons reflect the session.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req models.LoginRequest
	if err := decodeJSON(r, w, &req); err != nil {
		rw.Fail(http.StatusBadRequest, err.Error())
		return
	}
	if err := h.ctrl.SubmitLogin(r.Context(), req.Username, req.Password); err != nil {
		writeError(rw, serviceAuth, err)
		return
	}
	rw.Success(h.ctrl.View())
}

// Register submits the register panel and returns its state.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req models.RegisterRequest
	if err := decodeJSON(r, w, &req); err != nil {
		rw.Fail(http.StatusBadRequest, err.Error())
		return
	}
	if err := h.ctrl.SubmitRegister(r.Context(), req.Username, req.Email, req.Password); err != nil {
		writeError(rw, serviceAuth, err)
		return
	}
	rw.Success(h.ctrl.RegisterPanel())
}

// Logout clears the session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	if err := h.ctrl.Logout(r.Context()); err != nil {
		writeError(rw, serviceAuth, err)
		return
	}
	rw.Success(h.ctrl.View())
}
