// TravelMap - Map-Based Pin Sharing Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelmap

package api

import (
	"context"
	"errors"
	"net"
	"net/http"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/travelmap/internal/app"
	"github.com/tomtom215/travelmap/internal/logging"
	"github.com/tomtom215/travelmap/internal/pinapi"
	"github.com/tomtom215/travelmap/internal/validation"
)

// ErrHubUnavailable is returned when the state stream is requested without a hub.
var ErrHubUnavailable = errors.New("websocket hub not configured")

// writeError maps a controller error onto a status code.
func writeError(rw *ResponseWriter, service string, err error) {
	var verr *validation.RequestValidationError
	switch {
	case errors.As(err, &verr):
		rw.Invalid(verr.Error(), verr.Details())
	case errors.Is(err, app.ErrPinNotFound), errors.Is(err, app.ErrUnknownPanel):
		rw.Fail(http.StatusNotFound, err.Error())
	case errors.Is(err, app.ErrNoDraft):
		rw.Fail(http.StatusConflict, err.Error())
	case errors.Is(err, app.ErrNotLoggedIn):
		rw.Fail(http.StatusUnauthorized, err.Error())
	case isUpstream(err):
		// Already reported by the controller.
		logging.Ctx(rw.r.Context()).Debug().Err(err).Str("service", service).Msg("Upstream failure returned to caller")
		rw.Fail(http.StatusBadGateway, "External service unavailable: "+service)
	default:
		logging.Ctx(rw.r.Context()).Error().Err(err).Msg("Request failed")
		rw.Fail(http.StatusInternalServerError, "internal error")
	}
}

// isUpstream reports whether err came from the pin API or user service:
// a non-2xx answer, an unusable answer, an open breaker, or the network.
func isUpstream(err error) bool {
	var statusErr *pinapi.StatusError
	var netErr net.Error
	return errors.As(err, &statusErr) ||
		errors.Is(err, pinapi.ErrMalformedLogin) ||
		errors.Is(err, gobreaker.ErrOpenState) ||
		errors.Is(err, gobreaker.ErrTooManyRequests) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.As(err, &netErr)
}
