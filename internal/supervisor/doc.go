// TravelMap - Map-Based Pin Sharing Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelmap

/*
Package supervisor runs the long-lived parts of `travelmap serve` under a
suture v4 tree.

	root ("travelmap")
	├── state-layer
	│   ├── websocket-hub     hub.RunWithContext
	│   ├── view-bridge       controller changes -> hub "state" pushes
	│   └── pin-loader        one Mount, then done
	└── api-layer
	    └── http-server       chi router on SERVER_HOST:SERVER_PORT

The layers restart independently: a crashed hub does not take the HTTP
server down with it. Supervisor events are logged through sutureslog into
the zerolog stream.

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{})
	tree.AddStateService(services.NewHubService(hub))
	tree.AddAPIService(services.NewHTTPServerService(srv, cfg.Server.ShutdownTimeout))
	err = tree.Serve(ctx)
*/
package supervisor
