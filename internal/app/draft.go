// TravelMap - Map-Based Pin Sharing Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelmap

package app

import (
	"context"

	"github.com/tomtom215/travelmap/internal/logging"
	"github.com/tomtom215/travelmap/internal/metrics"
	"github.com/tomtom215/travelmap/internal/models"
	"github.com/tomtom215/travelmap/internal/pinapi"
	"github.com/tomtom215/travelmap/internal/validation"
)

// BeginDraft opens a new draft at the double-clicked coordinate,
// replacing any open draft.
func (c *Controller) BeginDraft(lat, long float64) error {
	d := models.NewDraftPin(lat, long)
	if err := validation.ValidateStruct(struct {
		Latitude  float64 `json:"lat" validate:"latitude"`
		Longitude float64 `json:"long" validate:"longitude"`
	}{lat, long}); err != nil {
		return err
	}

	c.mu.Lock()
	c.draft = &d
	c.draftSeq++
	c.mu.Unlock()

	c.notify()
	return nil
}

// UpdateDraft applies form input to the open draft.
func (c *Controller) UpdateDraft(u models.DraftUpdate) error {
	if err := validation.ValidateStruct(u); err != nil {
		return err
	}

	c.mu.Lock()
	if c.draft == nil {
		c.mu.Unlock()
		return ErrNoDraft
	}
	u.Apply(c.draft)
	c.mu.Unlock()

	c.notify()
	return nil
}

// CancelDraft discards the open draft, if any.
func (c *Controller) CancelDraft() {
	c.mu.Lock()
	c.draft = nil
	c.draftSeq++
	c.mu.Unlock()
	c.notify()
}

// Draft returns a copy of the open draft.
func (c *Controller) Draft() (models.DraftPin, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.draft == nil {
		return models.DraftPin{}, false
	}
	return *c.draft, true
}

// SubmitDraft creates a pin from the open draft as the logged-in user.
//
// Nothing is sent when logged out or when the draft does not validate.
// On success the server's pin is appended and the draft closed, unless a
// different draft was opened meanwhile. On failure the draft stays open
// and the pin list is unchanged.
func (c *Controller) SubmitDraft(ctx context.Context) (*models.Pin, error) {
	username := c.session.Username()

	c.mu.RLock()
	if c.draft == nil {
		c.mu.RUnlock()
		return nil, ErrNoDraft
	}
	newPin := c.draft.ToNewPin(username)
	seq := c.draftSeq
	c.mu.RUnlock()

	if username == "" {
		return nil, ErrNotLoggedIn
	}
	if err := validation.ValidateStruct(newPin); err != nil {
		return nil, err
	}

	created, err := c.api.CreatePin(ctx, newPin)
	if err != nil {
		c.fail(ctx, pinapi.OpCreatePin, err)
		return nil, err
	}

	c.mu.Lock()
	c.pins = append(c.pins, *created)
	if c.draft != nil && c.draftSeq == seq {
		c.draft = nil
	}
	c.clearNotice(pinapi.OpCreatePin)
	count := len(c.pins)
	c.mu.Unlock()

	metrics.PinsLoaded.Set(float64(count))
	logging.Ctx(ctx).Info().Str("pin_id", created.ID).Str("username", username).Msg("Pin created")
	c.notify()
	return created, nil
}
