// TravelMap - Map-Based Pin Sharing Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelmap

package config

import (
	"strconv"
	"time"
)

// Config holds all application configuration.
// Fields use koanf struct tags for layered configuration loading.
type Config struct {
	API     APIConfig     `koanf:"api"`
	Auth    AuthConfig    `koanf:"auth"`
	Map     MapConfig     `koanf:"map"`
	Session SessionConfig `koanf:"session"`
	Client  ClientConfig  `koanf:"client"`
	Server  ServerConfig  `koanf:"server"`
	Logging LoggingConfig `koanf:"logging"`
}

// APIConfig points at the external pin REST API.
type APIConfig struct {
	// BaseURL is the API root; pins live at {BaseURL}/pins.
	BaseURL string `koanf:"base_url"`
}

// AuthConfig points at the external user service.
type AuthConfig struct {
	// BaseURL is the user service root; endpoints live under /api/users.
	BaseURL string `koanf:"base_url"`
}

// MapConfig holds the opaque settings passed to the map widget.
type MapConfig struct {
	AccessToken        string        `koanf:"access_token"`
	StyleURL           string        `koanf:"style_url"`
	Width              string        `koanf:"width"`
	Height             string        `koanf:"height"`
	TransitionDuration time.Duration `koanf:"transition_duration"`
	InitialLatitude    float64       `koanf:"initial_latitude"`
	InitialLongitude   float64       `koanf:"initial_longitude"`
	InitialZoom        float64       `koanf:"initial_zoom"`
}

// SessionConfig selects where the logged-in username is persisted.
type SessionConfig struct {
	Store string `koanf:"store"` // "badger" or "memory"
	Path  string `koanf:"path"`  // badger directory
}

// ClientConfig tunes the pin API HTTP client.
type ClientConfig struct {
	Timeout            time.Duration `koanf:"timeout"`    // 0 = no timeout
	RateLimit          float64       `koanf:"rate_limit"` // requests/second, 0 = unlimited
	RateBurst          int           `koanf:"rate_burst"`
	CircuitBreaker     bool          `koanf:"circuit_breaker"`
	BreakerTimeout     time.Duration `koanf:"breaker_timeout"`
	BreakerMaxFailures uint32        `koanf:"breaker_max_failures"`
}

// ServerConfig holds the local view server settings.
type ServerConfig struct {
	Host              string        `koanf:"host"`
	Port              int           `koanf:"port"`
	ShutdownTimeout   time.Duration `koanf:"shutdown_timeout"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return s.Host + ":" + strconv.Itoa(s.Port)
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string `koanf:"level"`  // trace, debug, info, warn, error
	Format string `koanf:"format"` // json or console
	Caller bool   `koanf:"caller"`
}

// Load reads configuration from defaults, an optional config file, an
// optional dotenv file and the environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
