// TravelMap - Map-Based Pin Sharing Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelmap

package app

import (
	"context"
	"fmt"

	"github.com/tomtom215/travelmap/internal/logging"
	"github.com/tomtom215/travelmap/internal/models"
	"github.com/tomtom215/travelmap/internal/pinapi"
	"github.com/tomtom215/travelmap/internal/validation"
)

// PanelStatus is the submit state of an auth panel.
type PanelStatus string

// Panel states. A panel may move from any state back to submitting.
const (
	PanelIdle       PanelStatus = "idle"
	PanelSubmitting PanelStatus = "submitting"
	PanelSuccess    PanelStatus = "success"
	PanelError      PanelStatus = "error"
)

// Panel names accepted by SetPanel.
const (
	PanelLogin    = "login"
	PanelRegister = "register"
)

const (
	registerSuccess    = "Successful. You can login now!"
	somethingWentWrong = "Something went wrong!"
)

// PanelState is the rendered state of one auth panel.
type PanelState struct {
	Visible bool        `json:"visible"`
	Status  PanelStatus `json:"status"`
	Message string      `json:"message,omitempty"`
}

// Success reports whether the last submit succeeded.
func (s PanelState) Success() bool { return s.Status == PanelSuccess }

// Failed reports whether the last submit failed.
func (s PanelState) Failed() bool { return s.Status == PanelError }

// panel tracks one form. gen changes on every open so a submit that
// finishes after the panel was reopened leaves the new status alone.
type panel struct {
	visible bool
	status  PanelStatus
	message string
	gen     uint64
}

func (p *panel) state() PanelState {
	status := p.status
	if status == "" {
		status = PanelIdle
	}
	return PanelState{Visible: p.visible, Status: status, Message: p.message}
}

func (p *panel) open() {
	p.visible = true
	p.status = PanelIdle
	p.message = ""
	p.gen++
}

// OpenLogin shows the login panel with a clean status.
func (c *Controller) OpenLogin() { c.setPanel(&c.login, true) }

// CloseLogin hides the login panel.
func (c *Controller) CloseLogin() { c.setPanel(&c.login, false) }

// OpenRegister shows the register panel with a clean status.
func (c *Controller) OpenRegister() { c.setPanel(&c.register, true) }

// CloseRegister hides the register panel.
func (c *Controller) CloseRegister() { c.setPanel(&c.register, false) }

// SetPanel shows or hides the named panel.
func (c *Controller) SetPanel(name string, visible bool) error {
	switch name {
	case PanelLogin:
		c.setPanel(&c.login, visible)
	case PanelRegister:
		c.setPanel(&c.register, visible)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPanel, name)
	}
	return nil
}

func (c *Controller) setPanel(p *panel, visible bool) {
	c.mu.Lock()
	if visible {
		p.open()
	} else {
		p.visible = false
	}
	c.mu.Unlock()
	c.notify()
}

// LoginPanel returns the login panel state.
func (c *Controller) LoginPanel() PanelState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.login.state()
}

// RegisterPanel returns the register panel state.
func (c *Controller) RegisterPanel() PanelState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.register.state()
}

// beginSubmit moves p to submitting and returns its generation.
func (c *Controller) beginSubmit(p *panel) uint64 {
	c.mu.Lock()
	p.status = PanelSubmitting
	p.message = ""
	gen := p.gen
	c.mu.Unlock()
	c.notify()
	return gen
}

// finishSubmit records the outcome unless the panel was reopened since gen.
func (c *Controller) finishSubmit(p *panel, gen uint64, status PanelStatus, message string, hide bool) {
	c.mu.Lock()
	if p.gen == gen {
		p.status = status
		p.message = message
		if hide {
			p.visible = false
		}
	}
	c.mu.Unlock()
	c.notify()
}

// SubmitRegister posts a registration. The panel stays open either way.
func (c *Controller) SubmitRegister(ctx context.Context, username, email, password string) error {
	req := models.RegisterRequest{Username: username, Email: email, Password: password}
	gen := c.beginSubmit(&c.register)

	if err := validation.ValidateStruct(req); err != nil {
		c.finishSubmit(&c.register, gen, PanelError, err.Error(), false)
		return err
	}

	if err := c.api.Register(ctx, req); err != nil {
		c.reporter.Report(ctx, pinapi.OpRegister, err)
		c.finishSubmit(&c.register, gen, PanelError, somethingWentWrong, false)
		return err
	}

	logging.Ctx(ctx).Info().Str("username", username).Msg("User registered")
	c.finishSubmit(&c.register, gen, PanelSuccess, registerSuccess, false)
	return nil
}

// SubmitLogin checks credentials, persists the returned username and hides
// the login panel.
func (c *Controller) SubmitLogin(ctx context.Context, username, password string) error {
	req := models.LoginRequest{Username: username, Password: password}
	gen := c.beginSubmit(&c.login)

	if err := validation.ValidateStruct(req); err != nil {
		c.finishSubmit(&c.login, gen, PanelError, err.Error(), false)
		return err
	}

	resp, err := c.api.Login(ctx, req)
	if err != nil {
		c.reporter.Report(ctx, pinapi.OpLogin, err)
		c.finishSubmit(&c.login, gen, PanelError, somethingWentWrong, false)
		return err
	}

	if err := c.session.Login(ctx, resp.Username); err != nil {
		c.reporter.Report(ctx, pinapi.OpLogin, err)
		c.finishSubmit(&c.login, gen, PanelError, somethingWentWrong, false)
		return err
	}

	logging.Ctx(ctx).Info().Str("username", resp.Username).Msg("Logged in")
	c.finishSubmit(&c.login, gen, PanelSuccess, "", true)
	return nil
}

// Logout clears the persisted username. Ownership coloring drops at once,
// even if the store reports an error.
func (c *Controller) Logout(ctx context.Context) error {
	err := c.session.Logout(ctx)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("Session store failed during logout")
	}
	c.notify()
	return err
}

// Username returns the logged-in username, or "".
func (c *Controller) Username() string {
	return c.session.Username()
}
