// TravelMap - Map-Based Pin Sharing Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelmap

package app

import (
	"context"
	"errors"
	"testing"

	"github.com/tomtom215/travelmap/internal/models"
	"github.com/tomtom215/travelmap/internal/pinapi"
	"github.com/tomtom215/travelmap/internal/validation"
)

func TestMount_PopulatesInServerOrder(t *testing.T) {
	api := &fakeAPI{pins: testPins}
	c, _, _ := newTestController(t, api, "")

	if err := c.Mount(context.Background()); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}

	got := c.Pins()
	if len(got) != len(testPins) {
		t.Fatalf("got %d pins, want %d", len(got), len(testPins))
	}
	for i := range testPins {
		if got[i] != testPins[i] {
			t.Errorf("pin %d = %+v, want %+v", i, got[i], testPins[i])
		}
	}
}

func TestMount_OnlyOnce(t *testing.T) {
	api := &fakeAPI{pins: testPins}
	c, _, _ := newTestController(t, api, "")

	for i := 0; i < 3; i++ {
		if err := c.Mount(context.Background()); err != nil {
			t.Fatalf("Mount() error = %v", err)
		}
	}
	if api.listCalls != 1 {
		t.Errorf("ListPins called %d times, want 1", api.listCalls)
	}
}

func TestMount_FailureReportsAndLeavesEmpty(t *testing.T) {
	api := &fakeAPI{listErr: &pinapi.StatusError{Operation: pinapi.OpListPins, StatusCode: 500}}
	c, rep, _ := newTestController(t, api, "")

	if err := c.Mount(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if len(c.Pins()) != 0 {
		t.Error("pin list should stay empty after a failed fetch")
	}
	if ops := rep.reported(); len(ops) != 1 || ops[0] != pinapi.OpListPins {
		t.Errorf("reported = %v, want [%s]", ops, pinapi.OpListPins)
	}
	if msg := c.View().Notices[pinapi.OpListPins]; msg == "" {
		t.Error("expected a user-visible notice for the failed fetch")
	}

	// No retry on later calls.
	if err := c.Mount(context.Background()); err != nil {
		t.Errorf("second Mount() error = %v, want nil", err)
	}
	if api.listCalls != 1 {
		t.Errorf("ListPins called %d times, want 1", api.listCalls)
	}
}

func TestSelectPin(t *testing.T) {
	c, _, _ := newTestController(t, &fakeAPI{pins: testPins}, "")
	_ = c.Mount(context.Background())
	_ = c.SetViewport(models.Viewport{Width: 800, Height: 600, Latitude: 1, Longitude: 1, Zoom: 7})

	if err := c.SelectPin("p2"); err != nil {
		t.Fatalf("SelectPin() error = %v", err)
	}

	if got := c.CurrentPlaceID(); got != "p2" {
		t.Errorf("CurrentPlaceID() = %q, want p2", got)
	}
	vp := c.Viewport()
	if vp.Latitude != 51.5 || vp.Longitude != -0.12 {
		t.Errorf("viewport not centered on pin: %+v", vp)
	}
	if vp.Zoom != 7 || vp.Width != 800 || vp.Height != 600 {
		t.Errorf("zoom/size should be kept: %+v", vp)
	}

	popup := c.View().Popup
	if popup == nil || popup.ID != "p2" {
		t.Fatalf("popup = %+v, want p2", popup)
	}
	if popup.CreatedBy != "bob" || popup.Stars != "★★★" || popup.Rating != 3 {
		t.Errorf("popup fields = %+v", popup)
	}
	if popup.CreatedAt != "1 week ago" {
		t.Errorf("popup CreatedAt = %q, want %q", popup.CreatedAt, "1 week ago")
	}

	// Selecting another pin replaces the popup.
	_ = c.SelectPin("p1")
	if got := c.View().Popup.ID; got != "p1" {
		t.Errorf("popup = %q, want p1", got)
	}
}

func TestSelectPin_Unknown(t *testing.T) {
	c, _, _ := newTestController(t, &fakeAPI{pins: testPins}, "")
	_ = c.Mount(context.Background())
	before := c.Viewport()

	err := c.SelectPin("nope")
	if !errors.Is(err, ErrPinNotFound) {
		t.Fatalf("error = %v, want ErrPinNotFound", err)
	}
	if c.CurrentPlaceID() != "" || c.Viewport() != before {
		t.Error("unknown pin should change nothing")
	}
}

func TestClosePopup(t *testing.T) {
	c, _, _ := newTestController(t, &fakeAPI{pins: testPins}, "")
	_ = c.Mount(context.Background())
	_ = c.SelectPin("p1")

	c.ClosePopup()
	if c.CurrentPlaceID() != "" || c.View().Popup != nil {
		t.Error("popup should be closed")
	}
}

func TestSetViewport_Validates(t *testing.T) {
	c, _, _ := newTestController(t, &fakeAPI{}, "")

	err := c.SetViewport(models.Viewport{Latitude: 95, Zoom: 4})
	var verr *validation.RequestValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want validation error", err)
	}
	if c.Viewport().Latitude != 0 {
		t.Error("invalid viewport should not be applied")
	}
}

func TestView_ColorsFollowSession(t *testing.T) {
	c, _, _ := newTestController(t, &fakeAPI{pins: testPins, loginResp: &models.LoginResponse{ID: "u1", Username: "ann"}}, "")
	_ = c.Mount(context.Background())

	for _, p := range c.View().Pins {
		if p.Owned || p.Color != ColorOther {
			t.Errorf("logged out: pin %s owned=%v color=%s", p.ID, p.Owned, p.Color)
		}
	}

	if err := c.SubmitLogin(context.Background(), "ann", "pw"); err != nil {
		t.Fatalf("SubmitLogin() error = %v", err)
	}
	for _, p := range c.View().Pins {
		wantOwned := p.Username == "ann"
		if p.Owned != wantOwned {
			t.Errorf("logged in: pin %s owned=%v, want %v", p.ID, p.Owned, wantOwned)
		}
	}

	if err := c.Logout(context.Background()); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	for _, p := range c.View().Pins {
		if p.Owned || p.Color != ColorOther {
			t.Errorf("after logout: pin %s owned=%v color=%s", p.ID, p.Owned, p.Color)
		}
	}
}

func TestMergeFetched(t *testing.T) {
	fetched := []models.Pin{{ID: "a"}, {ID: "b"}}
	local := []models.Pin{{ID: "b"}, {ID: "c"}}

	got := mergeFetched(fetched, local)
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("got %d pins, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("pin %d = %q, want %q", i, got[i].ID, id)
		}
	}
}
