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
	"github.com/tomtom215/travelmap/internal/session"
)

func TestPanels_OpenClose(t *testing.T) {
	c, _, _ := newTestController(t, &fakeAPI{}, "")

	c.OpenLogin()
	c.OpenRegister()
	v := c.View()
	if !v.Login.Visible || !v.Register.Visible {
		t.Errorf("both panels should be visible: %+v %+v", v.Login, v.Register)
	}

	c.CloseLogin()
	if c.LoginPanel().Visible {
		t.Error("login panel should be hidden")
	}
	if !c.RegisterPanel().Visible {
		t.Error("closing login must not touch register")
	}

	if err := c.SetPanel(PanelRegister, false); err != nil {
		t.Fatalf("SetPanel() error = %v", err)
	}
	if c.RegisterPanel().Visible {
		t.Error("register panel should be hidden")
	}
	if err := c.SetPanel("settings", true); !errors.Is(err, ErrUnknownPanel) {
		t.Errorf("error = %v, want ErrUnknownPanel", err)
	}
}

func TestSubmitRegister_FlagsExclusiveAndReset(t *testing.T) {
	api := &fakeAPI{}
	c, rep, _ := newTestController(t, api, "")
	ctx := context.Background()
	c.OpenRegister()

	if err := c.SubmitRegister(ctx, "ann", "ann@example.com", "secret1"); err != nil {
		t.Fatalf("SubmitRegister() error = %v", err)
	}
	p := c.RegisterPanel()
	if !p.Success() || p.Failed() {
		t.Errorf("after success: %+v", p)
	}
	if !p.Visible {
		t.Error("register panel is not auto-closed on success")
	}

	api.registerErr = &pinapi.StatusError{Operation: pinapi.OpRegister, StatusCode: 500}
	if err := c.SubmitRegister(ctx, "ann", "ann@example.com", "secret1"); err == nil {
		t.Fatal("expected error")
	}
	p = c.RegisterPanel()
	if p.Success() || !p.Failed() {
		t.Errorf("after failure: %+v", p)
	}
	if p.Message != somethingWentWrong {
		t.Errorf("message = %q", p.Message)
	}
	if ops := rep.reported(); len(ops) != 1 || ops[0] != pinapi.OpRegister {
		t.Errorf("reported = %v", ops)
	}

	api.registerErr = nil
	if err := c.SubmitRegister(ctx, "ann", "ann@example.com", "secret1"); err != nil {
		t.Fatalf("SubmitRegister() error = %v", err)
	}
	if p := c.RegisterPanel(); !p.Success() || p.Failed() {
		t.Errorf("resubmission should reset the error flag: %+v", p)
	}
}

func TestSubmitRegister_InvalidInputSendsNothing(t *testing.T) {
	api := &fakeAPI{}
	c, _, _ := newTestController(t, api, "")

	if err := c.SubmitRegister(context.Background(), "ann", "", "secret1"); err == nil {
		t.Fatal("expected validation error")
	}
	if len(api.registers) != 0 {
		t.Error("no request should be sent")
	}
	if !c.RegisterPanel().Failed() {
		t.Error("panel should show an error")
	}
}

func TestOpenRegister_DiscardsStatus(t *testing.T) {
	c, _, _ := newTestController(t, &fakeAPI{registerErr: errors.New("down")}, "")
	c.OpenRegister()
	_ = c.SubmitRegister(context.Background(), "ann", "ann@example.com", "secret1")

	c.CloseRegister()
	if !c.RegisterPanel().Failed() {
		t.Error("closing keeps the status")
	}
	c.OpenRegister()
	if p := c.RegisterPanel(); p.Status != PanelIdle || p.Message != "" {
		t.Errorf("reopen should reset to idle: %+v", p)
	}
}

func TestSubmitLogin_PersistsAndHides(t *testing.T) {
	store := session.NewMemoryStore()
	sess, err := session.Open(context.Background(), store)
	if err != nil {
		t.Fatal(err)
	}
	api := &fakeAPI{loginResp: &models.LoginResponse{ID: "u1", Username: "ann"}}
	c := New(api, sess, WithReporter(&recordingReporter{}))
	c.OpenLogin()

	if err := c.SubmitLogin(context.Background(), "ann", "pw"); err != nil {
		t.Fatalf("SubmitLogin() error = %v", err)
	}

	stored, err := store.Get(context.Background(), session.UserKey)
	if err != nil || stored != "ann" {
		t.Errorf("persisted user = %q, %v; want ann", stored, err)
	}
	if c.LoginPanel().Visible {
		t.Error("login panel should be hidden after success")
	}
	v := c.View()
	if v.Username != "ann" || len(v.Buttons) != 1 || v.Buttons[0] != ButtonLogout {
		t.Errorf("view after login: username=%q buttons=%v", v.Username, v.Buttons)
	}

	if err := c.Logout(context.Background()); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if _, err := store.Get(context.Background(), session.UserKey); !errors.Is(err, session.ErrNotFound) {
		t.Errorf("persisted user should be cleared, got %v", err)
	}
	if b := c.View().Buttons; len(b) != 2 {
		t.Errorf("buttons after logout = %v", b)
	}
}

func TestSubmitLogin_Failure(t *testing.T) {
	api := &fakeAPI{loginErr: &pinapi.StatusError{Operation: pinapi.OpLogin, StatusCode: 400}}
	c, rep, sess := newTestController(t, api, "")
	c.OpenLogin()

	if err := c.SubmitLogin(context.Background(), "ann", "wrong"); err == nil {
		t.Fatal("expected error")
	}
	p := c.LoginPanel()
	if !p.Failed() || !p.Visible {
		t.Errorf("panel = %+v, want visible with error", p)
	}
	if sess.LoggedIn() {
		t.Error("session should not be set")
	}
	if ops := rep.reported(); len(ops) != 1 || ops[0] != pinapi.OpLogin {
		t.Errorf("reported = %v", ops)
	}
}

func TestSubmitLogin_MissingFieldsSendNothing(t *testing.T) {
	api := &fakeAPI{loginErr: errors.New("should not be called")}
	c, rep, _ := newTestController(t, api, "")

	if err := c.SubmitLogin(context.Background(), "", ""); err == nil {
		t.Fatal("expected validation error")
	}
	if len(rep.reported()) != 0 {
		t.Error("validation failures are not remote failures")
	}
}
