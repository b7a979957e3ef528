// TravelMap - Map-Based Pin Sharing Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelmap

package app

import (
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/tomtom215/travelmap/internal/models"
)

// Marker colors.
const (
	ColorOwned = "tomato"
	ColorOther = "slateblue"
)

// Button names offered in the header.
const (
	ButtonLogout   = "logout"
	ButtonLogin    = "login"
	ButtonRegister = "register"
)

// View is an immutable snapshot of everything the map page renders.
type View struct {
	Viewport models.Viewport    `json:"viewport"`
	Map      models.MapSettings `json:"map"`
	Username string             `json:"username,omitempty"`
	Pins     []PinView          `json:"pins"`
	Popup    *PopupView         `json:"popup,omitempty"`
	Draft    *models.DraftPin   `json:"draft,omitempty"`
	Login    PanelState         `json:"login"`
	Register PanelState         `json:"register"`
	Buttons  []string           `json:"buttons"`
	Notices  map[string]string  `json:"notices,omitempty"`
}

// PinView is a pin plus its marker presentation.
type PinView struct {
	models.Pin
	Owned bool   `json:"owned"`
	Color string `json:"color"`
}

// PopupView is the detail card for the selected pin.
type PopupView struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Review    string  `json:"review"`
	Rating    int     `json:"rating"`
	Stars     string  `json:"stars"`
	CreatedBy string  `json:"created_by"`
	CreatedAt string  `json:"created_ago"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"long"`
}

// IsOwner reports whether username owns pin. Nobody owns anything while
// logged out.
func IsOwner(pin models.Pin, username string) bool {
	return username != "" && pin.Username == username
}

// MarkerColor returns the marker color for pin as seen by username.
func MarkerColor(pin models.Pin, username string) string {
	if IsOwner(pin, username) {
		return ColorOwned
	}
	return ColorOther
}

// Buttons returns the header buttons for the session state.
func Buttons(loggedIn bool) []string {
	if loggedIn {
		return []string{ButtonLogout}
	}
	return []string{ButtonLogin, ButtonRegister}
}

// View returns a snapshot of the current state.
func (c *Controller) View() View {
	username := c.session.Username()

	c.mu.RLock()
	defer c.mu.RUnlock()

	v := View{
		Viewport: c.viewport,
		Map:      c.mapSettings,
		Username: username,
		Pins:     make([]PinView, len(c.pins)),
		Login:    c.login.state(),
		Register: c.register.state(),
		Buttons:  Buttons(username != ""),
	}
	for i, p := range c.pins {
		v.Pins[i] = PinView{Pin: p, Owned: IsOwner(p, username), Color: MarkerColor(p, username)}
	}
	if c.currentPlaceID != "" {
		if p, ok := c.findPin(c.currentPlaceID); ok {
			v.Popup = c.popup(p)
		}
	}
	if c.draft != nil {
		d := *c.draft
		v.Draft = &d
	}
	if len(c.notices) > 0 {
		v.Notices = make(map[string]string, len(c.notices))
		for k, msg := range c.notices {
			v.Notices[k] = msg
		}
	}
	return v
}

func (c *Controller) popup(p models.Pin) *PopupView {
	return &PopupView{
		ID:        p.ID,
		Title:     p.Title,
		Review:    p.Description,
		Rating:    p.Rating,
		Stars:     Stars(p.Rating),
		CreatedBy: p.Username,
		CreatedAt: humanize.RelTime(p.CreatedAt, c.now(), "ago", "from now"),
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
	}
}

// Stars renders a rating as one star per point.
func Stars(rating int) string {
	return strings.Repeat("★", max(rating, 0))
}
