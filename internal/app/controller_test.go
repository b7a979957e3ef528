// TravelMap - Map-Based Pin Sharing Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelmap

package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/travelmap/internal/config"
	"github.com/tomtom215/travelmap/internal/models"
	"github.com/tomtom215/travelmap/internal/pinapi"
	"github.com/tomtom215/travelmap/internal/session"
)

// fakeAPI is a scriptable pinapi.API.
type fakeAPI struct {
	mu sync.Mutex

	pins     []models.Pin
	listErr  error
	listGate chan struct{} // when set, ListPins blocks until closed

	createErr  error
	created    []models.NewPin
	nextID     string
	createGate chan struct{}

	registerErr error
	registers   []models.RegisterRequest

	loginResp *models.LoginResponse
	loginErr  error

	listCalls int
}

func (f *fakeAPI) ListPins(ctx context.Context) ([]models.Pin, error) {
	f.mu.Lock()
	f.listCalls++
	gate := f.listGate
	f.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.Pin, len(f.pins))
	copy(out, f.pins)
	return out, nil
}

func (f *fakeAPI) CreatePin(ctx context.Context, pin models.NewPin) (*models.Pin, error) {
	f.mu.Lock()
	f.created = append(f.created, pin)
	gate := f.createGate
	f.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	id := f.nextID
	if id == "" {
		id = "created"
	}
	return &models.Pin{
		ID:          id,
		Username:    pin.Username,
		Title:       pin.Title,
		Description: pin.Description,
		Rating:      pin.Rating,
		Latitude:    pin.Latitude,
		Longitude:   pin.Longitude,
		CreatedAt:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}, nil
}

func (f *fakeAPI) Register(_ context.Context, req models.RegisterRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registers = append(f.registers, req)
	return f.registerErr
}

func (f *fakeAPI) Login(_ context.Context, _ models.LoginRequest) (*models.LoginResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.loginResp, nil
}

func (f *fakeAPI) createCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.created)
}

// recordingReporter collects reported operations.
type recordingReporter struct {
	mu  sync.Mutex
	ops []string
}

func (r *recordingReporter) Report(_ context.Context, op string, _ error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, op)
}

func (r *recordingReporter) reported() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.ops...)
}

var testPins = []models.Pin{
	{ID: "p1", Username: "ann", Title: "Bridge", Description: "great view", Rating: 5, Latitude: 48.85, Longitude: 2.35, CreatedAt: time.Date(2026, 2, 26, 0, 0, 0, 0, time.UTC)},
	{ID: "p2", Username: "bob", Title: "Tower", Rating: 3, Latitude: 51.5, Longitude: -0.12, CreatedAt: time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC)},
	{ID: "p3", Username: "ann", Title: "Cafe", Rating: 4, Latitude: 40.4, Longitude: -3.7, CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
}

func newTestSession(t *testing.T, username string) *session.Session {
	t.Helper()
	store := session.NewMemoryStore()
	if username != "" {
		if err := store.Set(context.Background(), session.UserKey, username); err != nil {
			t.Fatalf("seed session: %v", err)
		}
	}
	sess, err := session.Open(context.Background(), store)
	if err != nil {
		t.Fatalf("session.Open() error = %v", err)
	}
	t.Cleanup(func() { _ = sess.Close() })
	return sess
}

func newTestController(t *testing.T, api *fakeAPI, username string) (*Controller, *recordingReporter, *session.Session) {
	t.Helper()
	rep := &recordingReporter{}
	sess := newTestSession(t, username)
	now := func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }
	return New(api, sess, WithReporter(rep), WithClock(now)), rep, sess
}

func TestNew_Defaults(t *testing.T) {
	c, _, _ := newTestController(t, &fakeAPI{}, "")
	v := c.View()

	if v.Viewport.Latitude != 0 || v.Viewport.Longitude != 0 || v.Viewport.Zoom != 4 {
		t.Errorf("initial viewport = %+v, want lat 0 long 0 zoom 4", v.Viewport)
	}
	if v.Map.Width != "100vw" || v.Map.Height != "90vh" || v.Map.TransitionDurationMs != 200 {
		t.Errorf("map settings = %+v", v.Map)
	}
	if v.Popup != nil {
		t.Error("no popup should be shown initially")
	}
	if v.Draft != nil {
		t.Error("no draft should be open initially")
	}
	if len(v.Pins) != 0 || v.Pins == nil {
		t.Errorf("pins = %#v, want empty non-nil", v.Pins)
	}
	if v.Login.Visible || v.Register.Visible || v.Login.Status != PanelIdle {
		t.Errorf("panels should start hidden and idle: %+v %+v", v.Login, v.Register)
	}
}

func TestWithMapConfig(t *testing.T) {
	sess := newTestSession(t, "")
	c := New(&fakeAPI{}, sess, WithMapConfig(config.MapConfig{
		AccessToken:        "tok",
		StyleURL:           "mapbox://styles/x/y",
		Width:              "800px",
		Height:             "600px",
		TransitionDuration: 350 * time.Millisecond,
		InitialLatitude:    10,
		InitialLongitude:   20,
		InitialZoom:        6,
	}))

	v := c.View()
	if v.Map.AccessToken != "tok" || v.Map.StyleURL != "mapbox://styles/x/y" || v.Map.TransitionDurationMs != 350 {
		t.Errorf("map settings = %+v", v.Map)
	}
	if v.Viewport.Latitude != 10 || v.Viewport.Longitude != 20 || v.Viewport.Zoom != 6 {
		t.Errorf("viewport = %+v", v.Viewport)
	}
}

func TestIsOwnerAndMarkerColor(t *testing.T) {
	pin := models.Pin{Username: "ann"}
	tests := []struct {
		name     string
		username string
		owner    bool
		color    string
	}{
		{"owner", "ann", true, ColorOwned},
		{"other user", "bob", false, ColorOther},
		{"logged out", "", false, ColorOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsOwner(pin, tt.username); got != tt.owner {
				t.Errorf("IsOwner() = %v, want %v", got, tt.owner)
			}
			if got := MarkerColor(pin, tt.username); got != tt.color {
				t.Errorf("MarkerColor() = %q, want %q", got, tt.color)
			}
		})
	}

	if IsOwner(models.Pin{Username: ""}, "") {
		t.Error("a pin with an empty username is never owned")
	}
}

func TestButtons(t *testing.T) {
	if got := Buttons(true); len(got) != 1 || got[0] != ButtonLogout {
		t.Errorf("Buttons(true) = %v", got)
	}
	if got := Buttons(false); len(got) != 2 || got[0] != ButtonLogin || got[1] != ButtonRegister {
		t.Errorf("Buttons(false) = %v", got)
	}
}

func TestSubscribe(t *testing.T) {
	c, _, _ := newTestController(t, &fakeAPI{}, "")

	var views []View
	unsubscribe := c.Subscribe(func(v View) { views = append(views, v) })

	c.OpenLogin()
	if len(views) != 1 || !views[0].Login.Visible {
		t.Fatalf("expected one snapshot with login visible, got %d", len(views))
	}

	unsubscribe()
	c.CloseLogin()
	if len(views) != 1 {
		t.Errorf("unsubscribed listener still called: %d snapshots", len(views))
	}
}

func TestNotify_ConcurrentChangesDeliverLatestLast(t *testing.T) {
	c, _, _ := newTestController(t, &fakeAPI{}, "")

	first := make(chan struct{})
	release := make(chan struct{})
	var mu sync.Mutex
	calls := 0
	var lastLat float64
	c.Subscribe(func(v View) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		if n == 1 {
			close(first)
			<-release
		}
		mu.Lock()
		if v.Draft != nil {
			lastLat = v.Draft.Latitude
		}
		mu.Unlock()
	})

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_ = c.BeginDraft(1, 1)
	}()
	<-first
	go func() {
		defer wg.Done()
		_ = c.BeginDraft(2, 2)
	}()

	deadline := time.Now().Add(time.Second)
	for {
		if d, ok := c.Draft(); ok && d.Latitude == 2 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("second draft never applied")
		}
		time.Sleep(time.Millisecond)
	}
	close(release)
	wg.Wait()

	if lastLat != 2 {
		t.Errorf("last delivered draft lat = %v, want 2", lastLat)
	}
}

func TestWatch_DeliversCurrentViewFirst(t *testing.T) {
	c, _, _ := newTestController(t, &fakeAPI{}, "ann")

	var views []View
	unsubscribe := c.Watch(func(v View) { views = append(views, v) })
	defer unsubscribe()

	if len(views) != 1 || views[0].Username != "ann" {
		t.Fatalf("Watch() delivered %d views, want the current one", len(views))
	}
	c.OpenLogin()
	if len(views) != 2 || !views[1].Login.Visible {
		t.Errorf("expected a second snapshot with login visible, got %d", len(views))
	}
}

func TestLogReporter(t *testing.T) {
	// Must not panic with a bare context.
	LogReporter{}.Report(context.Background(), pinapi.OpListPins, errors.New("boom"))
}
