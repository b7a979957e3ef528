// TravelMap - Map-Based Pin Sharing Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelmap

package config

import (
	"fmt"
	"strings"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateRemote(); err != nil {
		return err
	}

	if err := c.validateMap(); err != nil {
		return err
	}

	if err := c.validateSession(); err != nil {
		return err
	}

	if err := c.validateClient(); err != nil {
		return err
	}

	if err := c.validateServer(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateRemote validates the pin API and user service URLs
func (c *Config) validateRemote() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("API_URL is required")
	}
	if err := validateHTTPURL(c.API.BaseURL, "API_URL"); err != nil {
		return fmt.Errorf("API_URL is invalid: %w", err)
	}
	if c.Auth.BaseURL == "" {
		return fmt.Errorf("AUTH_URL must not be empty")
	}
	if err := validateHTTPURL(c.Auth.BaseURL, "AUTH_URL"); err != nil {
		return fmt.Errorf("AUTH_URL is invalid: %w", err)
	}
	return nil
}

func (c *Config) validateMap() error {
	if c.Map.TransitionDuration < 0 {
		return fmt.Errorf("MAP_TRANSITION_DURATION must not be negative, got %v", c.Map.TransitionDuration)
	}
	if c.Map.InitialLatitude < -90 || c.Map.InitialLatitude > 90 {
		return fmt.Errorf("MAP_INITIAL_LATITUDE must be between -90 and 90, got %v", c.Map.InitialLatitude)
	}
	if c.Map.InitialLongitude < -180 || c.Map.InitialLongitude > 180 {
		return fmt.Errorf("MAP_INITIAL_LONGITUDE must be between -180 and 180, got %v", c.Map.InitialLongitude)
	}
	if c.Map.InitialZoom < 0 || c.Map.InitialZoom > 24 {
		return fmt.Errorf("MAP_INITIAL_ZOOM must be between 0 and 24, got %v", c.Map.InitialZoom)
	}
	return nil
}

// validateSession validates the session store selection
func (c *Config) validateSession() error {
	switch c.Session.Store {
	case "memory":
		return nil
	case "badger":
		if c.Session.Path == "" {
			return fmt.Errorf("SESSION_PATH is required when SESSION_STORE=badger")
		}
		return nil
	default:
		return fmt.Errorf("SESSION_STORE must be one of: badger, memory (got %q)", c.Session.Store)
	}
}

func (c *Config) validateClient() error {
	if c.Client.Timeout < 0 {
		return fmt.Errorf("CLIENT_TIMEOUT must not be negative, got %v", c.Client.Timeout)
	}
	if c.Client.RateLimit < 0 {
		return fmt.Errorf("CLIENT_RATE_LIMIT must not be negative, got %v", c.Client.RateLimit)
	}
	if c.Client.RateLimit > 0 && c.Client.RateBurst < 1 {
		return fmt.Errorf("CLIENT_RATE_BURST must be at least 1 when CLIENT_RATE_LIMIT is set, got %d", c.Client.RateBurst)
	}
	if c.Client.CircuitBreaker {
		if c.Client.BreakerTimeout <= 0 {
			return fmt.Errorf("CLIENT_BREAKER_TIMEOUT must be positive, got %v", c.Client.BreakerTimeout)
		}
		if c.Client.BreakerMaxFailures == 0 {
			return fmt.Errorf("CLIENT_BREAKER_MAX_FAILURES must be at least 1")
		}
	}
	return nil
}

// validateServer validates the local view server settings
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("HTTP_SHUTDOWN_TIMEOUT must not be negative, got %v", c.Server.ShutdownTimeout)
	}
	if c.Server.RateLimitDisabled {
		return nil
	}
	if c.Server.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1, got %d", c.Server.RateLimitReqs)
	}
	if c.Server.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %v", c.Server.RateLimitWindow)
	}
	return nil
}

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
		return nil
	default:
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
}
