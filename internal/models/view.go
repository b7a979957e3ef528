// TravelMap - Map-Based Pin Sharing Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelmap

package models

// Viewport is the map camera. Width and Height are pixels; zero means the
// widget fills its container (see MapSettings).
type Viewport struct {
	Width     int     `json:"width" validate:"min=0"`
	Height    int     `json:"height" validate:"min=0"`
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
	Zoom      float64 `json:"zoom" validate:"min=0,max=24"`
}

// MapSettings are handed to the map widget unchanged.
type MapSettings struct {
	AccessToken          string `json:"access_token"`
	StyleURL             string `json:"style_url"`
	Width                string `json:"width"`
	Height               string `json:"height"`
	TransitionDurationMs int64  `json:"transition_duration_ms"`
}

// DraftPin is the inline create form opened by a map double-click.
type DraftPin struct {
	Latitude    float64 `json:"lat"`
	Longitude   float64 `json:"long"`
	Title       string  `json:"title"`
	Description string  `json:"desc"`
	Rating      int     `json:"rating"`
}

// NewDraftPin returns an empty draft anchored at the given coordinate.
// The rating starts at the first selectable value.
func NewDraftPin(lat, long float64) DraftPin {
	return DraftPin{Latitude: lat, Longitude: long, Rating: MinRating}
}

// DraftUpdate carries form input changes; nil fields are left untouched.
type DraftUpdate struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,max=100"`
	Description *string `json:"desc,omitempty" validate:"omitempty,max=1000"`
	Rating      *int    `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
}

// Apply copies the non-nil fields of u onto d.
func (u DraftUpdate) Apply(d *DraftPin) {
	if u.Title != nil {
		d.Title = *u.Title
	}
	if u.Description != nil {
		d.Description = *u.Description
	}
	if u.Rating != nil {
		d.Rating = *u.Rating
	}
}

// ToNewPin builds the create request for username from the draft.
func (d DraftPin) ToNewPin(username string) NewPin {
	return NewPin{
		Username:    username,
		Title:       d.Title,
		Description: d.Description,
		Rating:      d.Rating,
		Latitude:    d.Latitude,
		Longitude:   d.Longitude,
	}
}
