// TravelMap - Map-Based Pin Sharing Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelmap

/*
Package api is the local view server: a chi router that exposes the view
controller to the map page.

The page is a thin renderer. It reads GET /api/v1/state once, subscribes to
/api/v1/ws for "state" pushes and reports every interaction back through
the routes below. No state lives in this package.

Routes:

	GET    /api/v1/health/live        liveness
	GET    /api/v1/state              full view snapshot
	GET    /api/v1/map                widget settings
	GET    /api/v1/pins               pins with owner flag and marker color
	PUT    /api/v1/viewport           pan / zoom
	POST   /api/v1/pins/{id}/select   marker click
	DELETE /api/v1/popup              popup close
	POST   /api/v1/draft              map double-click
	PATCH  /api/v1/draft              form input
	DELETE /api/v1/draft              form cancel
	POST   /api/v1/draft/submit       form submit
	PUT    /api/v1/panels/{panel}     show / hide login or register
	POST   /api/v1/auth/login         login submit
	POST   /api/v1/auth/register      register submit
	POST   /api/v1/auth/logout        logout
	GET    /api/v1/ws                 state stream
	GET    /metrics                   Prometheus

Every JSON response uses the envelope {success, data, error, meta}.

Error mapping:

  - validation failure: 400 VALIDATION_FAILED with per-field details
  - unknown pin or panel: 404 NOT_FOUND
  - no open draft: 409 CONFLICT
  - submit while logged out: 401 UNAUTHORIZED
  - pin API or user service failure: 502 EXTERNAL_SERVICE_FAILED
*/
package api
