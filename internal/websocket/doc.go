// TravelMap - Map-Based Pin Sharing Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelmap

/*
Package websocket pushes view-state snapshots to the map page.

The page renders whatever the last "state" message said. Every controller
change produces one snapshot; the hub fans it out to all connected pages.

	┌──────────┐
	│   Hub    │ ← BroadcastState
	└────┬─────┘
	     │
	┌────┴─────┬─────────┐
	│ Client1  │ Client2 │ ...
	└──────────┴─────────┘

Each client runs a readPump (answers "ping" with "pong", enforces read
deadlines) and a writePump (serializes messages, sends protocol pings).

Message types:

  - state: a full app.View
  - ping / pong: application-level keepalive

Broadcasts never block the caller. When the hub queue is full the message is
dropped and counted in websocket_broadcasts_dropped_total; a client whose
own queue is full is disconnected.

The hub runs under the supervisor tree:

	hub := websocket.NewHub()
	tree.AddStateService(services.NewHubService(hub))
	tree.AddStateService(services.NewViewBridgeService(controller, hub))
*/
package websocket
