// TravelMap - Map-Based Pin Sharing Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelmap

package api

import (
	"net/http"

	"github.com/tomtom215/travelmap/internal/models"
	"github.com/tomtom215/travelmap/internal/validation"
)

// BeginDraft opens a draft at the double-clicked coordinate.
func (h *Handler) BeginDraft(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req DraftRequest
	if err := decodeJSON(r, w, &req); err != nil {
		rw.Fail(http.StatusBadRequest, err.Error())
		return
	}
	if err := validation.ValidateStruct(req); err != nil {
		writeError(rw, servicePinAPI, err)
		return
	}
	if err := h.ctrl.BeginDraft(*req.Latitude, *req.Longitude); err != nil {
		writeError(rw, servicePinAPI, err)
		return
	}

	draft, _ := h.ctrl.Draft()
	rw.Created(draft)
}

// UpdateDraft applies form input to the open draft.
func (h *Handler) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var update models.DraftUpdate
	if err := decodeJSON(r, w, &update); err != nil {
		rw.Fail(http.StatusBadRequest, err.Error())
		return
	}
	if err := h.ctrl.UpdateDraft(update); err != nil {
		writeError(rw, servicePinAPI, err)
		return
	}

	draft, _ := h.ctrl.Draft()
	rw.Success(draft)
}

// CancelDraft discards the open draft.
func (h *Handler) CancelDraft(w http.ResponseWriter, r *http.Request) {
	h.ctrl.CancelDraft()
	NewResponseWriter(w, r).NoContent()
}

// SubmitDraft creates a pin from the open draft and returns the server copy.
func (h *Handler) SubmitDraft(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	pin, err := h.ctrl.SubmitDraft(r.Context())
	if err != nil {
		writeError(rw, servicePinAPI, err)
		return
	}
	rw.Created(pin)
}
