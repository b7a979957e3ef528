// TravelMap - Map-Based Pin Sharing Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelmap

/*
Package app holds the view-state controller behind every TravelMap surface.

The Controller owns the viewport, the pin list, the selected pin, the open
draft and the two auth panels. Each user interaction is a method. The local
view server and the CLI both drive the same Controller; neither keeps state
of its own.

Remote calls run without the state lock held, so a pin fetch and a pin
create can be in flight together. Every state change is pushed to
subscribers as a fresh View snapshot.
*/
package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/tomtom215/travelmap/internal/config"
	"github.com/tomtom215/travelmap/internal/logging"
	"github.com/tomtom215/travelmap/internal/metrics"
	"github.com/tomtom215/travelmap/internal/models"
	"github.com/tomtom215/travelmap/internal/pinapi"
	"github.com/tomtom215/travelmap/internal/session"
)

// Precondition errors returned by controller methods.
var (
	ErrPinNotFound  = errors.New("pin not found")
	ErrNoDraft      = errors.New("no draft pin is open")
	ErrNotLoggedIn  = errors.New("login required to create a pin")
	ErrUnknownPanel = errors.New("unknown panel")
)

// Reporter receives every failure of a remote operation.
type Reporter interface {
	Report(ctx context.Context, op string, err error)
}

// LogReporter writes failures to the global logger and counts them.
type LogReporter struct{}

// Report implements Reporter.
func (LogReporter) Report(ctx context.Context, op string, err error) {
	logging.Ctx(ctx).Error().Err(err).Str("operation", op).Msg("Remote operation failed")
	metrics.RecordControllerError(op)
}

// Option configures a Controller.
type Option func(*Controller)

// WithReporter replaces the default LogReporter.
func WithReporter(r Reporter) Option {
	return func(c *Controller) { c.reporter = r }
}

// WithMapConfig sets the widget settings and the initial camera.
func WithMapConfig(cfg config.MapConfig) Option {
	return func(c *Controller) {
		c.mapSettings = models.MapSettings{
			AccessToken:          cfg.AccessToken,
			StyleURL:             cfg.StyleURL,
			Width:                cfg.Width,
			Height:               cfg.Height,
			TransitionDurationMs: cfg.TransitionDuration.Milliseconds(),
		}
		c.viewport.Latitude = cfg.InitialLatitude
		c.viewport.Longitude = cfg.InitialLongitude
		c.viewport.Zoom = cfg.InitialZoom
	}
}

// WithClock overrides time.Now for popup relative times.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// Controller is the root view-state owner. Safe for concurrent use.
type Controller struct {
	api         pinapi.API
	session     *session.Session
	reporter    Reporter
	mapSettings models.MapSettings
	now         func() time.Time

	mu             sync.RWMutex
	mounted        bool
	pins           []models.Pin
	viewport       models.Viewport
	currentPlaceID string
	draft          *models.DraftPin
	draftSeq       uint64
	login          panel
	register       panel
	notices        map[string]string

	subsMu  sync.Mutex
	subs    map[uint64]func(View)
	nextSub uint64

	// notifyMu orders snapshot plus fan-out so subscribers never see an
	// older view after a newer one.
	notifyMu sync.Mutex
}

// New creates a controller over api with the given session.
func New(api pinapi.API, sess *session.Session, opts ...Option) *Controller {
	c := &Controller{
		api:      api,
		session:  sess,
		reporter: LogReporter{},
		now:      time.Now,
		mapSettings: models.MapSettings{
			Width:                "100vw",
			Height:               "90vh",
			TransitionDurationMs: 200,
		},
		viewport: models.Viewport{Zoom: 4},
		pins:     []models.Pin{},
		notices:  make(map[string]string),
		subs:     make(map[uint64]func(View)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Subscribe registers fn to receive a snapshot after every state change.
// fn runs on the goroutine that made the change. It must not block or
// call back into the controller's mutators.
// The returned func removes the subscription.
func (c *Controller) Subscribe(fn func(View)) func() {
	c.subsMu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.subsMu.Unlock()

	return c.unsubscriber(id)
}

// Watch is Subscribe plus an immediate call with the current view. No
// change can be delivered ahead of that first snapshot.
func (c *Controller) Watch(fn func(View)) func() {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	unsubscribe := c.Subscribe(fn)
	fn(c.View())
	return unsubscribe
}

func (c *Controller) unsubscriber(id uint64) func() {
	return func() {
		c.subsMu.Lock()
		delete(c.subs, id)
		c.subsMu.Unlock()
	}
}

// notify sends a snapshot to subscribers. Must be called without c.mu held.
func (c *Controller) notify() {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	c.subsMu.Lock()
	if len(c.subs) == 0 {
		c.subsMu.Unlock()
		return
	}
	fns := make([]func(View), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.subsMu.Unlock()

	view := c.View()
	for _, fn := range fns {
		fn(view)
	}
}

// fail reports err for op and records the user-visible notice.
func (c *Controller) fail(ctx context.Context, op string, err error) {
	c.reporter.Report(ctx, op, err)
	c.mu.Lock()
	c.notices[op] = noticeText(op)
	c.mu.Unlock()
	c.notify()
}

// clearNotice must be called with c.mu held.
func (c *Controller) clearNotice(op string) {
	delete(c.notices, op)
}

func noticeText(op string) string {
	switch op {
	case pinapi.OpListPins:
		return "Could not load pins."
	case pinapi.OpCreatePin:
		return "Could not save the pin."
	default:
		return somethingWentWrong
	}
}
