// TravelMap - Map-Based Pin Sharing Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelmap

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// EnvFileEnvVar names the dotenv file to load before reading the environment.
const EnvFileEnvVar = "ENV_FILE"

// DefaultMapStyleURL is the map style used when none is configured.
const DefaultMapStyleURL = "mapbox://styles/vanderfarrel/ckql900vk1z5q18n9y8hmyrns"

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "", // Required
		},
		Auth: AuthConfig{
			BaseURL: "http://localhost:8800",
		},
		Map: MapConfig{
			AccessToken:        "",
			StyleURL:           DefaultMapStyleURL,
			Width:              "100vw",
			Height:             "90vh",
			TransitionDuration: 200 * time.Millisecond,
			InitialLatitude:    0,
			InitialLongitude:   0,
			InitialZoom:        4,
		},
		Session: SessionConfig{
			Store: "badger",
			Path:  "./data/session",
		},
		Client: ClientConfig{
			Timeout:            0,
			RateLimit:          0,
			RateBurst:          1,
			CircuitBreaker:     false,
			BreakerTimeout:     30 * time.Second,
			BreakerMaxFailures: 5,
		},
		Server: ServerConfig{
			Host:              "127.0.0.1",
			Port:              3857,
			ShutdownTimeout:   10 * time.Second,
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     100,
			RateLimitWindow:   1 * time.Minute,
			RateLimitDisabled: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting, after the dotenv file
//     has been merged into the process environment
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: dotenv, then environment variables (highest priority)
	if err := loadEnvFile(); err != nil {
		return nil, err
	}
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadEnvFile merges a dotenv file into the process environment.
// A missing default file is not an error; a missing explicit ENV_FILE is.
func loadEnvFile() error {
	path := os.Getenv(EnvFileEnvVar)
	explicit := path != ""
	if !explicit {
		path = ".env"
	}

	err := godotenv.Load(path)
	if err == nil {
		return nil
	}
	if !explicit && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to load env file %s: %w", path, err)
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	paths := DefaultConfigPaths
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths[:len(paths):len(paths)], filepath.Join(home, ".config", "travelmap", "config.yaml"))
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"server.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars come in as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
// The REACT_APP_ names are accepted so an existing frontend .env keeps working.
var envMappings = map[string]string{
	// Remote services
	"api_url":           "api.base_url",
	"react_app_api_url": "api.base_url",
	"auth_url":          "auth.base_url",

	// Map widget
	"mapbox_token":            "map.access_token",
	"react_app_mapbox":        "map.access_token",
	"map_style_url":           "map.style_url",
	"map_width":               "map.width",
	"map_height":              "map.height",
	"map_transition_duration": "map.transition_duration",
	"map_initial_latitude":    "map.initial_latitude",
	"map_initial_longitude":   "map.initial_longitude",
	"map_initial_zoom":        "map.initial_zoom",

	// Session
	"session_store": "session.store",
	"session_path":  "session.path",

	// Pin API client
	"client_timeout":              "client.timeout",
	"client_rate_limit":           "client.rate_limit",
	"client_rate_burst":           "client.rate_burst",
	"client_circuit_breaker":      "client.circuit_breaker",
	"client_breaker_timeout":      "client.breaker_timeout",
	"client_breaker_max_failures": "client.breaker_max_failures",

	// Local view server
	"http_host":             "server.host",
	"http_port":             "server.port",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"cors_origins":          "server.cors_origins",
	"rate_limit_requests":   "server.rate_limit_reqs",
	"rate_limit_window":     "server.rate_limit_window",
	"disable_rate_limit":    "server.rate_limit_disabled",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - API_URL -> api.base_url
//   - MAPBOX_TOKEN -> map.access_token
//   - HTTP_PORT -> server.port
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}

	// Unmapped keys are skipped so random environment variables
	// do not pollute the config.
	return ""
}
