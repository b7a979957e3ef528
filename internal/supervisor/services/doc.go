// TravelMap - Map-Based Pin Sharing Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelmap

// Package services adapts TravelMap components to suture.Service.
//
//   - HTTPServerService: ListenAndServe / Shutdown to Serve
//   - HubService: websocket hub run loop
//   - ViewBridgeService: pushes every controller change to the hub
//   - PinLoaderService: mounts the controller once, then stops for good
//
// Every service implements fmt.Stringer so supervisor events name it.
package services
