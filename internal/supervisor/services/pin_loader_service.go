// TravelMap - Map-Based Pin Sharing Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelmap

package services

import (
	"context"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/travelmap/internal/logging"
)

// Mounter is satisfied by *app.Controller.
type Mounter interface {
	Mount(ctx context.Context) error
}

// PinLoaderService performs the single initial pin fetch. The controller
// records a failure as a notice, and a second Mount is a no-op, so the
// service never asks to be restarted.
type PinLoaderService struct {
	ctrl Mounter
}

// NewPinLoaderService wraps ctrl.
func NewPinLoaderService(ctrl Mounter) *PinLoaderService {
	return &PinLoaderService{ctrl: ctrl}
}

// Serve implements suture.Service.
func (s *PinLoaderService) Serve(ctx context.Context) error {
	ctx = logging.ContextWithNewCorrelationID(ctx)
	if err := s.ctrl.Mount(ctx); err != nil {
		logging.Ctx(ctx).Debug().Err(err).Msg("Initial pin load failed; map starts empty")
	}
	return suture.ErrDoNotRestart
}

func (s *PinLoaderService) String() string {
	return "pin-loader"
}
