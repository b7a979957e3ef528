// TravelMap - Map-Based Pin Sharing Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelmap

/*
Package pinapi is the HTTP client for the external pin REST API and the
user service it is paired with.

Endpoints:
  - GET  {api}/pins                 list every pin
  - POST {api}/pins                 create a pin
  - POST {auth}/api/users/register  register a user
  - POST {auth}/api/users/login     log in

No request is retried. A non-2xx response becomes *StatusError; a transport
failure is returned wrapped. Callers treat both the same way. An optional
client-side rate limiter and an optional circuit breaker (CircuitBreakerClient)
can be enabled through configuration; both are off by default.
*/
package pinapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/travelmap/internal/config"
	"github.com/tomtom215/travelmap/internal/logging"
	"github.com/tomtom215/travelmap/internal/metrics"
	"github.com/tomtom215/travelmap/internal/models"
)

// Operation names used in errors, logs and metrics.
const (
	OpListPins  = "list_pins"
	OpCreatePin = "create_pin"
	OpRegister  = "register"
	OpLogin     = "login"
)

// maxErrorBodySize limits the maximum amount of response body read for error reporting
const maxErrorBodySize = 64 * 1024 // 64KB

// ErrMalformedLogin is returned when a 2xx login response carries no username.
var ErrMalformedLogin = errors.New("login response has no username")

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Operation  string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s request failed with status %d", e.Operation, e.StatusCode)
	}
	return fmt.Sprintf("%s request failed with status %d: %s", e.Operation, e.StatusCode, e.Body)
}

// API is the set of remote operations the view controller depends on.
type API interface {
	ListPins(ctx context.Context) ([]models.Pin, error)
	CreatePin(ctx context.Context, pin models.NewPin) (*models.Pin, error)
	Register(ctx context.Context, req models.RegisterRequest) error
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
}

// Client talks to the pin API and user service over HTTP.
// Safe for concurrent use.
type Client struct {
	pinsURL     string
	registerURL string
	loginURL    string
	client      *http.Client
	limiter     *rate.Limiter
}

// NewClient creates a client from the api, auth and client config sections.
func NewClient(cfg *config.Config) *Client {
	c := &Client{
		pinsURL:     joinURL(cfg.API.BaseURL, "pins"),
		registerURL: joinURL(cfg.Auth.BaseURL, "api/users/register"),
		loginURL:    joinURL(cfg.Auth.BaseURL, "api/users/login"),
		client: &http.Client{
			Timeout: cfg.Client.Timeout, // 0 = no timeout
		},
	}
	if cfg.Client.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.Client.RateLimit), cfg.Client.RateBurst)
	}
	return c
}

// New returns the API selected by configuration: the plain client, or the
// client behind a circuit breaker when client.circuit_breaker is set.
func New(cfg *config.Config) API {
	client := NewClient(cfg)
	if !cfg.Client.CircuitBreaker {
		return client
	}
	return NewCircuitBreakerClient(client, cfg.Client)
}

func joinURL(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + path
}

// ListPins fetches the full pin set in server order.
func (c *Client) ListPins(ctx context.Context) ([]models.Pin, error) {
	var pins []models.Pin
	if err := c.doJSON(ctx, OpListPins, http.MethodGet, c.pinsURL, nil, &pins); err != nil {
		return nil, err
	}
	if pins == nil {
		pins = []models.Pin{}
	}
	return pins, nil
}

// CreatePin posts a new pin and returns the server's copy.
func (c *Client) CreatePin(ctx context.Context, pin models.NewPin) (*models.Pin, error) {
	var created models.Pin
	if err := c.doJSON(ctx, OpCreatePin, http.MethodPost, c.pinsURL, pin, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Register creates a user account. The response body is ignored.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) error {
	return c.doJSON(ctx, OpRegister, http.MethodPost, c.registerURL, req, nil)
}

// Login checks credentials and returns the user the service reports.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	if err := c.doJSON(ctx, OpLogin, http.MethodPost, c.loginURL, req, &resp); err != nil {
		return nil, err
	}
	if strings.TrimSpace(resp.Username) == "" {
		return nil, fmt.Errorf("%s: %w", OpLogin, ErrMalformedLogin)
	}
	return &resp, nil
}

// doJSON performs one request: optional JSON body in, optional JSON body out.
func (c *Client) doJSON(ctx context.Context, op, method, url string, in, out interface{}) (err error) {
	start := time.Now()
	statusCode := 0
	defer func() {
		metrics.RecordRemoteRequest(op, statusCode, time.Since(start), err)
		if err != nil {
			logging.Ctx(ctx).Debug().Err(err).Str("operation", op).Int("status", statusCode).Msg("Remote request failed")
		}
	}()

	if err := c.wait(ctx); err != nil {
		return fmt.Errorf("%s: rate limiter: %w", op, err)
	}

	body := io.Reader(http.NoBody)
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: marshal request: %w", op, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("%s: failed to create request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if requestID := logging.RequestIDFromContext(ctx); requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: HTTP request failed: %w", op, err)
	}
	defer resp.Body.Close()
	statusCode = resp.StatusCode

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{
			Operation:  op,
			StatusCode: resp.StatusCode,
			Body:       string(readBodyForError(resp.Body)),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBodySize))
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: failed to decode response: %w", op, err)
	}
	return nil
}

// wait blocks on the client-side limiter when one is configured.
func (c *Client) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	if c.limiter.Tokens() < 1 {
		metrics.RemoteRateLimitWaits.Inc()
	}
	return c.limiter.Wait(ctx)
}

// readBodyForError reads the response body for error reporting (max 64KB)
// Returns the body content or a placeholder message if reading fails
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}
