// TravelMap - Map-Based Pin Sharing Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelmap

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"
)

// maxBodySize caps request bodies. The largest legitimate body is a draft
// update with a 1000 character review.
const maxBodySize = 64 * 1024

// DraftRequest is the body of POST /api/v1/draft.
type DraftRequest struct {
	Latitude  *float64 `json:"lat" validate:"required,latitude"`
	Longitude *float64 `json:"long" validate:"required,longitude"`
}

// PanelRequest is the body of PUT /api/v1/panels/{panel}.
type PanelRequest struct {
	Visible *bool `json:"visible" validate:"required"`
}

// decodeJSON reads one JSON object from the request body into dst.
// Unknown fields and trailing data are rejected.
func decodeJSON(r *http.Request, w http.ResponseWriter, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	if dec.More() {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}
