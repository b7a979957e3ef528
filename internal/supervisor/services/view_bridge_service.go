// TravelMap - Map-Based Pin Sharing Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelmap

package services

import (
	"context"

	"github.com/tomtom215/travelmap/internal/app"
)

// ViewSource is satisfied by *app.Controller.
type ViewSource interface {
	Watch(fn func(app.View)) func()
}

// StateBroadcaster is satisfied by *websocket.Hub.
type StateBroadcaster interface {
	BroadcastState(view interface{})
}

// ViewBridgeService forwards controller changes to connected pages. On
// (re)start it pushes the current view so pages that missed updates while
// the bridge was down catch up.
type ViewBridgeService struct {
	source ViewSource
	hub    StateBroadcaster
}

// NewViewBridgeService wires source to hub.
func NewViewBridgeService(source ViewSource, hub StateBroadcaster) *ViewBridgeService {
	return &ViewBridgeService{source: source, hub: hub}
}

// Serve implements suture.Service.
func (s *ViewBridgeService) Serve(ctx context.Context) error {
	unsubscribe := s.source.Watch(func(v app.View) {
		s.hub.BroadcastState(v)
	})
	defer unsubscribe()

	<-ctx.Done()
	return ctx.Err()
}

func (s *ViewBridgeService) String() string {
	return "view-bridge"
}
