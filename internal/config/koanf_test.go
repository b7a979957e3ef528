// TravelMap - Map-Based Pin Sharing Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelmap

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// isolateEnv points HOME, CONFIG_PATH and ENV_FILE at empty locations so the
// developer's machine cannot leak into the test.
func isolateEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv(ConfigPathEnvVar, filepath.Join(dir, "missing.yaml"))
	emptyEnv := filepath.Join(dir, "empty.env")
	if err := os.WriteFile(emptyEnv, nil, 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv(EnvFileEnvVar, emptyEnv)
	for key := range envMappings {
		t.Setenv(strings.ToUpper(key), "")
		os.Unsetenv(strings.ToUpper(key))
	}
	return dir
}

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.API.BaseURL != "" {
		t.Errorf("API.BaseURL should be empty by default, got %q", cfg.API.BaseURL)
	}
	if cfg.Auth.BaseURL != "http://localhost:8800" {
		t.Errorf("Auth.BaseURL = %q, want http://localhost:8800", cfg.Auth.BaseURL)
	}

	// Map defaults
	if cfg.Map.StyleURL != DefaultMapStyleURL {
		t.Errorf("Map.StyleURL = %q, want %q", cfg.Map.StyleURL, DefaultMapStyleURL)
	}
	if cfg.Map.Width != "100vw" || cfg.Map.Height != "90vh" {
		t.Errorf("Map size = %s x %s, want 100vw x 90vh", cfg.Map.Width, cfg.Map.Height)
	}
	if cfg.Map.TransitionDuration != 200*time.Millisecond {
		t.Errorf("Map.TransitionDuration = %v, want 200ms", cfg.Map.TransitionDuration)
	}
	if cfg.Map.InitialZoom != 4 {
		t.Errorf("Map.InitialZoom = %v, want 4", cfg.Map.InitialZoom)
	}

	// Session defaults
	if cfg.Session.Store != "badger" {
		t.Errorf("Session.Store = %q, want badger", cfg.Session.Store)
	}

	// Client defaults: no timeout, no limiter, no breaker
	if cfg.Client.Timeout != 0 {
		t.Errorf("Client.Timeout = %v, want 0", cfg.Client.Timeout)
	}
	if cfg.Client.CircuitBreaker {
		t.Error("Client.CircuitBreaker should be false by default")
	}

	// Server defaults
	if cfg.Server.Port != 3857 {
		t.Errorf("Server.Port = %d, want 3857", cfg.Server.Port)
	}
	if cfg.Server.Addr() != "127.0.0.1:3857" {
		t.Errorf("Server.Addr() = %q, want 127.0.0.1:3857", cfg.Server.Addr())
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
}

// TestEnvTransformFunc verifies environment variable name transformations
func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"API_URL", "api.base_url"},
		{"REACT_APP_API_URL", "api.base_url"},
		{"AUTH_URL", "auth.base_url"},
		{"MAPBOX_TOKEN", "map.access_token"},
		{"REACT_APP_MAPBOX", "map.access_token"},
		{"MAP_TRANSITION_DURATION", "map.transition_duration"},
		{"SESSION_STORE", "session.store"},
		{"SESSION_PATH", "session.path"},
		{"CLIENT_TIMEOUT", "client.timeout"},
		{"CLIENT_CIRCUIT_BREAKER", "client.circuit_breaker"},
		{"HTTP_PORT", "server.port"},
		{"CORS_ORIGINS", "server.cors_origins"},
		{"DISABLE_RATE_LIMIT", "server.rate_limit_disabled"},
		{"LOG_LEVEL", "logging.level"},

		// Unmapped
		{"PATH", ""},
		{"RANDOM_VAR", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := envTransformFunc(tt.input); got != tt.expected {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLoadWithKoanf_EnvOverrides(t *testing.T) {
	isolateEnv(t)
	t.Setenv("API_URL", "http://pins.local:8800/api/")
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("CLIENT_TIMEOUT", "5s")
	t.Setenv("SESSION_STORE", "memory")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.API.BaseURL != "http://pins.local:8800/api/" {
		t.Errorf("API.BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Client.Timeout != 5*time.Second {
		t.Errorf("Client.Timeout = %v, want 5s", cfg.Client.Timeout)
	}
	if cfg.Session.Store != "memory" {
		t.Errorf("Session.Store = %q, want memory", cfg.Session.Store)
	}
	if len(cfg.Server.CORSOrigins) != 2 || cfg.Server.CORSOrigins[1] != "http://b.test" {
		t.Errorf("Server.CORSOrigins = %v", cfg.Server.CORSOrigins)
	}
}

func TestLoadWithKoanf_MissingAPIURL(t *testing.T) {
	isolateEnv(t)

	_, err := LoadWithKoanf()
	if err == nil {
		t.Fatal("expected error when API_URL is unset")
	}
	if !strings.Contains(err.Error(), "API_URL is required") {
		t.Errorf("error = %v, want API_URL is required", err)
	}
}

func TestLoadWithKoanf_ConfigFile(t *testing.T) {
	dir := isolateEnv(t)
	path := filepath.Join(dir, "config.yaml")
	content := `
api:
  base_url: http://file.local/api
map:
  access_token: pk.file
  initial_zoom: 6
server:
  port: 4000
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("HTTP_PORT", "4100")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.API.BaseURL != "http://file.local/api" {
		t.Errorf("API.BaseURL = %q, want value from file", cfg.API.BaseURL)
	}
	if cfg.Map.AccessToken != "pk.file" {
		t.Errorf("Map.AccessToken = %q, want pk.file", cfg.Map.AccessToken)
	}
	if cfg.Map.InitialZoom != 6 {
		t.Errorf("Map.InitialZoom = %v, want 6", cfg.Map.InitialZoom)
	}
	// Env beats file
	if cfg.Server.Port != 4100 {
		t.Errorf("Server.Port = %d, want 4100 from env", cfg.Server.Port)
	}
	// Untouched defaults survive
	if cfg.Map.StyleURL != DefaultMapStyleURL {
		t.Errorf("Map.StyleURL = %q, want default", cfg.Map.StyleURL)
	}
}

func TestLoadWithKoanf_DotEnvFile(t *testing.T) {
	dir := isolateEnv(t)
	envPath := filepath.Join(dir, "app.env")
	content := "REACT_APP_API_URL=http://dotenv.local/api/\nREACT_APP_MAPBOX=pk.dotenv\nLOG_LEVEL=debug\n"
	if err := os.WriteFile(envPath, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv(EnvFileEnvVar, envPath)
	// Process environment wins over the dotenv file
	t.Setenv("LOG_LEVEL", "warn")
	t.Cleanup(func() {
		os.Unsetenv("REACT_APP_API_URL")
		os.Unsetenv("REACT_APP_MAPBOX")
	})

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.API.BaseURL != "http://dotenv.local/api/" {
		t.Errorf("API.BaseURL = %q, want dotenv value", cfg.API.BaseURL)
	}
	if cfg.Map.AccessToken != "pk.dotenv" {
		t.Errorf("Map.AccessToken = %q, want pk.dotenv", cfg.Map.AccessToken)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", cfg.Logging.Level)
	}
}

func TestLoadWithKoanf_ExplicitEnvFileMissing(t *testing.T) {
	dir := isolateEnv(t)
	t.Setenv(EnvFileEnvVar, filepath.Join(dir, "nope.env"))
	t.Setenv("API_URL", "http://pins.local")

	if _, err := LoadWithKoanf(); err == nil {
		t.Fatal("expected error for missing explicit ENV_FILE")
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Run("returns empty when nothing exists", func(t *testing.T) {
		dir := isolateEnv(t)
		t.Chdir(dir)
		if got := findConfigFile(); got != "" {
			t.Errorf("findConfigFile() = %q, want empty", got)
		}
	})

	t.Run("uses CONFIG_PATH when it exists", func(t *testing.T) {
		dir := isolateEnv(t)
		custom := filepath.Join(dir, "custom.yaml")
		if err := os.WriteFile(custom, []byte("api: {}\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		t.Setenv(ConfigPathEnvVar, custom)
		if got := findConfigFile(); got != custom {
			t.Errorf("findConfigFile() = %q, want %q", got, custom)
		}
	})

	t.Run("falls back to the user config dir", func(t *testing.T) {
		dir := isolateEnv(t)
		t.Chdir(dir)
		userCfg := filepath.Join(dir, ".config", "travelmap", "config.yaml")
		if err := os.MkdirAll(filepath.Dir(userCfg), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(userCfg, []byte("api: {}\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		if got := findConfigFile(); got != userCfg {
			t.Errorf("findConfigFile() = %q, want %q", got, userCfg)
		}
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := defaultConfig()
		cfg.API.BaseURL = "http://localhost:8800/api/"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid defaults", func(*Config) {}, ""},
		{"memory store needs no path", func(c *Config) { c.Session.Store = "memory"; c.Session.Path = "" }, ""},
		{"missing api url", func(c *Config) { c.API.BaseURL = "" }, "API_URL is required"},
		{"api url bad scheme", func(c *Config) { c.API.BaseURL = "ftp://x" }, "scheme must be http or https"},
		{"api url with query", func(c *Config) { c.API.BaseURL = "http://x/api?a=1" }, "query parameters"},
		{"auth url missing host", func(c *Config) { c.Auth.BaseURL = "http://" }, "host is required"},
		{"unknown store", func(c *Config) { c.Session.Store = "redis" }, "SESSION_STORE"},
		{"badger without path", func(c *Config) { c.Session.Path = "" }, "SESSION_PATH"},
		{"negative timeout", func(c *Config) { c.Client.Timeout = -time.Second }, "CLIENT_TIMEOUT"},
		{"rate limit without burst", func(c *Config) { c.Client.RateLimit = 2; c.Client.RateBurst = 0 }, "CLIENT_RATE_BURST"},
		{"breaker with zero failures", func(c *Config) { c.Client.CircuitBreaker = true; c.Client.BreakerMaxFailures = 0 }, "CLIENT_BREAKER_MAX_FAILURES"},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }, "HTTP_PORT"},
		{"rate limit window zero", func(c *Config) { c.Server.RateLimitWindow = 0 }, "RATE_LIMIT_WINDOW"},
		{"rate limit disabled skips checks", func(c *Config) { c.Server.RateLimitDisabled = true; c.Server.RateLimitReqs = 0 }, ""},
		{"bad latitude", func(c *Config) { c.Map.InitialLatitude = 91 }, "MAP_INITIAL_LATITUDE"},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "LOG_LEVEL"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
