// TravelMap - Map-Based Pin Sharing Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelmap

/*
Package config provides centralized configuration management for TravelMap.

Configuration is loaded in layers, each overriding the previous one:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file (CONFIG_PATH, config.yaml, config.yml or
    $HOME/.config/travelmap/config.yaml)
 3. A dotenv file (ENV_FILE, default .env); it never overrides variables
    already present in the process environment
 4. Environment variables

# Environment Variables

Remote services:
  - API_URL (alias REACT_APP_API_URL): base URL of the pin REST API (required)
  - AUTH_URL: base URL of the user service (default: http://localhost:8800)

Map widget:
  - MAPBOX_TOKEN (alias REACT_APP_MAPBOX): map tile access token
  - MAP_STYLE_URL: map style
  - MAP_TRANSITION_DURATION: fly-to duration (default: 200ms)

Session:
  - SESSION_STORE: badger or memory (default: badger)
  - SESSION_PATH: badger directory (default: ./data/session)

Pin API client:
  - CLIENT_TIMEOUT: per-request timeout, 0 disables it (default: 0)
  - CLIENT_RATE_LIMIT / CLIENT_RATE_BURST: client-side limiter, 0 disables it
  - CLIENT_CIRCUIT_BREAKER: enable the circuit breaker (default: false)

Local view server:
  - HTTP_HOST, HTTP_PORT (default: 127.0.0.1:3857)
  - CORS_ORIGINS, RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

# Usage

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}
	client := pinapi.NewClient(cfg)
*/
package config
