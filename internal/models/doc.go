// TravelMap - Map-Based Pin Sharing Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelmap

/*
Package models defines the data structures shared by the TravelMap client.

Wire models mirror the external pin REST API and user service:

  - Pin: a server-owned location pin ("_id", "desc", "lat", "long", "createdAt")
  - NewPin: the create request body
  - RegisterRequest, LoginRequest, LoginResponse: user service payloads

View models describe client-side state and are never sent upstream:

  - Viewport: the map camera
  - DraftPin and DraftUpdate: the inline create form
  - MapSettings: opaque map widget settings

Request models carry go-playground/validator tags and are checked with
validation.ValidateStruct before any request is issued.
*/
package models
