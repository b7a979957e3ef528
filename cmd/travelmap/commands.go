// TravelMap - Map-Based Pin Sharing Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelmap

package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"text/tabwriter"

	"github.com/tomtom215/travelmap/internal/app"
	"github.com/tomtom215/travelmap/internal/models"
)

var errNotLoggedIn = errors.New("not logged in")

func runPins(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("pins", e.stderr)
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	if err := e.ctrl.Mount(ctx); err != nil {
		return fmt.Errorf("load pins: %w", err)
	}

	view := e.ctrl.View()
	tw := tabwriter.NewWriter(e.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tRATING\tBY\tLAT\tLONG\t")
	for _, p := range view.Pins {
		by := p.Username
		if p.Owned {
			by += " *"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.5f\t%.5f\t\n",
			p.ID, p.Title, app.Stars(p.Rating), by, p.Latitude, p.Longitude)
	}
	return tw.Flush()
}

func runAdd(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("add", e.stderr)
	lat := fs.Float64("lat", math.NaN(), "latitude (required)")
	long := fs.Float64("long", math.NaN(), "longitude (required)")
	title := fs.String("title", "", "place title (required)")
	desc := fs.String("desc", "", "review")
	rating := fs.Int("rating", models.MinRating, "rating 1-5")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if math.IsNaN(*lat) || math.IsNaN(*long) {
		fmt.Fprintln(e.stderr, "-lat and -long are required")
		fs.Usage()
		return errUsage
	}

	if err := e.ctrl.BeginDraft(*lat, *long); err != nil {
		return err
	}
	if err := e.ctrl.UpdateDraft(models.DraftUpdate{Title: title, Description: desc, Rating: rating}); err != nil {
		return err
	}

	pin, err := e.ctrl.SubmitDraft(ctx)
	if err != nil {
		if errors.Is(err, app.ErrNotLoggedIn) {
			return fmt.Errorf("%w: run `travelmap login` first", errNotLoggedIn)
		}
		return err
	}
	fmt.Fprintf(e.stdout, "created %s %q at %.5f,%.5f\n", pin.ID, pin.Title, pin.Latitude, pin.Longitude)
	return nil
}

func runLogin(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("login", e.stderr)
	username := fs.String("username", "", "username")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	if err := e.ctrl.SubmitLogin(ctx, *username, *password); err != nil {
		return panelError(e.ctrl.LoginPanel(), err)
	}
	fmt.Fprintf(e.stdout, "logged in as %s\n", e.ctrl.Username())
	return nil
}

func runRegister(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("register", e.stderr)
	username := fs.String("username", "", "username")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	if err := e.ctrl.SubmitRegister(ctx, *username, *email, *password); err != nil {
		return panelError(e.ctrl.RegisterPanel(), err)
	}
	fmt.Fprintln(e.stdout, e.ctrl.RegisterPanel().Message)
	return nil
}

// panelError prefers the message the panel would show over the raw error.
func panelError(state app.PanelState, err error) error {
	if state.Message != "" && state.Message != err.Error() {
		return fmt.Errorf("%s (%w)", state.Message, err)
	}
	return err
}

func runLogout(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("logout", e.stderr)
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if err := e.ctrl.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(e.stdout, "logged out")
	return nil
}

func runWhoami(_ context.Context, e *env, args []string) error {
	fs := newFlagSet("whoami", e.stderr)
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	username := e.ctrl.Username()
	if username == "" {
		return errNotLoggedIn
	}
	fmt.Fprintln(e.stdout, username)
	return nil
}
