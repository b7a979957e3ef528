// TravelMap - Map-Based Pin Sharing Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelmap

package app

import (
	"context"
	"fmt"

	"github.com/tomtom215/travelmap/internal/logging"
	"github.com/tomtom215/travelmap/internal/metrics"
	"github.com/tomtom215/travelmap/internal/models"
	"github.com/tomtom215/travelmap/internal/pinapi"
	"github.com/tomtom215/travelmap/internal/validation"
)

// Mount fetches the pin list. Only the first call issues a request; later
// calls return nil immediately, even when the first fetch failed.
func (c *Controller) Mount(ctx context.Context) error {
	c.mu.Lock()
	if c.mounted {
		c.mu.Unlock()
		return nil
	}
	c.mounted = true
	c.mu.Unlock()

	pins, err := c.api.ListPins(ctx)
	if err != nil {
		c.fail(ctx, pinapi.OpListPins, err)
		return err
	}

	c.mu.Lock()
	c.pins = mergeFetched(pins, c.pins)
	c.clearNotice(pinapi.OpListPins)
	count := len(c.pins)
	c.mu.Unlock()

	metrics.PinsLoaded.Set(float64(count))
	logging.Ctx(ctx).Info().Int("pins", count).Msg("Pins loaded")
	c.notify()
	return nil
}

// mergeFetched returns fetched in server order, followed by any pin created
// locally while the fetch was in flight that the server did not return.
func mergeFetched(fetched, local []models.Pin) []models.Pin {
	out := make([]models.Pin, 0, len(fetched)+len(local))
	out = append(out, fetched...)
	if len(local) == 0 {
		return out
	}
	seen := make(map[string]struct{}, len(fetched))
	for _, p := range fetched {
		seen[p.ID] = struct{}{}
	}
	for _, p := range local {
		if _, ok := seen[p.ID]; !ok {
			out = append(out, p)
		}
	}
	return out
}

// Pins returns a copy of the pin list in display order.
func (c *Controller) Pins() []models.Pin {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Pin, len(c.pins))
	copy(out, c.pins)
	return out
}

// SelectPin opens the popup for id and centers the viewport on it.
// Zoom and size are kept.
func (c *Controller) SelectPin(id string) error {
	c.mu.Lock()
	p, ok := c.findPin(id)
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrPinNotFound, id)
	}
	c.currentPlaceID = p.ID
	c.viewport.Latitude = p.Latitude
	c.viewport.Longitude = p.Longitude
	c.mu.Unlock()

	c.notify()
	return nil
}

// ClosePopup clears the selected pin.
func (c *Controller) ClosePopup() {
	c.mu.Lock()
	c.currentPlaceID = ""
	c.mu.Unlock()
	c.notify()
}

// CurrentPlaceID returns the selected pin id, or "" when no popup is open.
func (c *Controller) CurrentPlaceID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.currentPlaceID
}

// Viewport returns the current camera.
func (c *Controller) Viewport() models.Viewport {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.viewport
}

// SetViewport replaces the camera after a pan or zoom.
func (c *Controller) SetViewport(v models.Viewport) error {
	if err := validation.ValidateStruct(v); err != nil {
		return err
	}
	c.mu.Lock()
	c.viewport = v
	c.mu.Unlock()
	c.notify()
	return nil
}

// findPin must be called with c.mu held.
func (c *Controller) findPin(id string) (models.Pin, bool) {
	for _, p := range c.pins {
		if p.ID == id {
			return p, true
		}
	}
	return models.Pin{}, false
}
