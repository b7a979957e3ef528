// TravelMap - Map-Based Pin Sharing Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelmap

package models

import "time"

// Rating bounds for a pin review.
const (
	MinRating = 1
	MaxRating = 5
)

// Pin is a location pin as stored by the pin API. The server assigns ID and
// timestamps; the client never mutates or deletes a pin.
type Pin struct {
	ID          string     `json:"_id"`
	Username    string     `json:"username"`
	Title       string     `json:"title"`
	Description string     `json:"desc"`
	Rating      int        `json:"rating"`
	Latitude    float64    `json:"lat"`
	Longitude   float64    `json:"long"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// NewPin is the body of a pin create request.
type NewPin struct {
	Username    string  `json:"username" validate:"required"`
	Title       string  `json:"title" validate:"required,max=100"`
	Description string  `json:"desc" validate:"max=1000"`
	Rating      int     `json:"rating" validate:"min=1,max=5"`
	Latitude    float64 `json:"lat" validate:"latitude"`
	Longitude   float64 `json:"long" validate:"longitude"`
}
