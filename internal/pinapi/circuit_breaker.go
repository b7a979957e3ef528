// TravelMap - Map-Based Pin Sharing Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelmap

package pinapi

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/travelmap/internal/config"
	"github.com/tomtom215/travelmap/internal/logging"
	"github.com/tomtom215/travelmap/internal/metrics"
	"github.com/tomtom215/travelmap/internal/models"
)

// BreakerName labels circuit breaker metrics and logs.
const BreakerName = "pinapi"

// CircuitBreakerClient wraps an API with a consecutive-failure circuit
// breaker. While open, calls fail fast with gobreaker.ErrOpenState.
//
// Only transport failures and 5xx responses count as failures. A 4xx
// response means the service answered, so it leaves the breaker alone
// even though the caller still sees the error.
type CircuitBreakerClient struct {
	client API
	cb     *gobreaker.CircuitBreaker[interface{}]
	name   string
}

// NewCircuitBreakerClient wraps client with a breaker tuned by cfg.
func NewCircuitBreakerClient(client API, cfg config.ClientConfig) *CircuitBreakerClient {
	maxFailures := cfg.BreakerMaxFailures
	if maxFailures == 0 {
		maxFailures = 5
	}
	timeout := cfg.BreakerTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	metrics.CircuitBreakerState.WithLabelValues(BreakerName).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(BreakerName).Set(0)

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        BreakerName,
		MaxRequests: 1,
		Timeout:     timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.ConsecutiveFailures < maxFailures {
				return false
			}
			logging.Component("pinapi").Warn().Uint32("consecutive_failures", counts.ConsecutiveFailures).Msg("circuit breaker opening")
			return true
		},

		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			var statusErr *StatusError
			return errors.As(err, &statusErr) && statusErr.StatusCode < 500
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Component("pinapi").Info().Str("from", fromStr).Str("to", toStr).Msg("circuit breaker state transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})

	return &CircuitBreakerClient{
		client: client,
		cb:     cb,
		name:   BreakerName,
	}
}

// State reports the breaker state as "closed", "half-open" or "open".
func (cbc *CircuitBreakerClient) State() string {
	return stateToString(cbc.cb.State())
}

func (cbc *CircuitBreakerClient) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := cbc.cb.Execute(fn)

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "rejected").Inc()
			logging.Component("pinapi").Warn().Err(err).Msg("circuit breaker rejected request")
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "failure").Inc()
			counts := cbc.cb.Counts()
			metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cbc.name).Set(float64(counts.ConsecutiveFailures))
		}
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cbc.name).Set(0)
	return result, nil
}

// castResult type-asserts the breaker result, returning an error on mismatch.
func castResult[T any](result interface{}, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	typed, ok := result.(*T)
	if !ok {
		return nil, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// ListPins fetches all pins with circuit breaker protection.
func (cbc *CircuitBreakerClient) ListPins(ctx context.Context) ([]models.Pin, error) {
	pins, err := castResult[[]models.Pin](cbc.execute(func() (interface{}, error) {
		p, err := cbc.client.ListPins(ctx)
		if err != nil {
			return nil, err
		}
		return &p, nil
	}))
	if err != nil {
		return nil, err
	}
	return *pins, nil
}

// CreatePin creates a pin with circuit breaker protection.
func (cbc *CircuitBreakerClient) CreatePin(ctx context.Context, pin models.NewPin) (*models.Pin, error) {
	return castResult[models.Pin](cbc.execute(func() (interface{}, error) {
		return cbc.client.CreatePin(ctx, pin)
	}))
}

// Register registers a user with circuit breaker protection.
func (cbc *CircuitBreakerClient) Register(ctx context.Context, req models.RegisterRequest) error {
	_, err := cbc.execute(func() (interface{}, error) {
		return nil, cbc.client.Register(ctx, req)
	})
	return err
}

// Login logs in with circuit breaker protection.
func (cbc *CircuitBreakerClient) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	return castResult[models.LoginResponse](cbc.execute(func() (interface{}, error) {
		return cbc.client.Login(ctx, req)
	}))
}
