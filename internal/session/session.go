// TravelMap - Map-Based Pin Sharing Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelmap

package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/tomtom215/travelmap/internal/logging"
	"github.com/tomtom215/travelmap/internal/metrics"
)

// ErrEmptyUsername is returned by Login for a blank username.
var ErrEmptyUsername = errors.New("session: username is empty")

// Session holds at most one logged-in username. The persisted value is read
// once in Open; afterwards the in-memory copy is authoritative and every
// Login/Logout writes through to the store.
type Session struct {
	mu       sync.RWMutex
	store    Store
	username string
}

// Open reads the persisted username from store.
func Open(ctx context.Context, store Store) (*Session, error) {
	s := &Session{store: store}

	username, err := store.Get(ctx, UserKey)
	switch {
	case errors.Is(err, ErrNotFound):
		username = ""
	case err != nil:
		return nil, fmt.Errorf("read session: %w", err)
	}

	s.username = username
	metrics.SetSessionLoggedIn(username != "")
	if username != "" {
		logging.Debug().Str("username", username).Msg("Restored session")
	}
	return s, nil
}

// Username returns the logged-in username, or "" when logged out.
func (s *Session) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.username
}

// LoggedIn reports whether a username is present.
func (s *Session) LoggedIn() bool {
	return s.Username() != ""
}

// Login persists username and makes it the current session.
func (s *Session) Login(ctx context.Context, username string) error {
	if strings.TrimSpace(username) == "" {
		return ErrEmptyUsername
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Set(ctx, UserKey, username); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	s.username = username
	metrics.SetSessionLoggedIn(true)
	return nil
}

// Logout removes the persisted username. The in-memory session is cleared
// even when the store fails, so ownership coloring never outlives a logout.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.username = ""
	metrics.SetSessionLoggedIn(false)
	if err := s.store.Delete(ctx, UserKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Close releases the underlying store.
func (s *Session) Close() error {
	return s.store.Close()
}
