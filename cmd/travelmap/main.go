// TravelMap - Map-Based Pin Sharing Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelmap

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/tomtom215/travelmap/internal/app"
	"github.com/tomtom215/travelmap/internal/config"
	"github.com/tomtom215/travelmap/internal/logging"
	"github.com/tomtom215/travelmap/internal/pinapi"
	"github.com/tomtom215/travelmap/internal/session"
)

// errUsage marks errors already explained by printed usage.
var errUsage = errors.New("usage")

// env is what every command runs against.
type env struct {
	cfg    *config.Config
	ctrl   *app.Controller
	stdout io.Writer
	stderr io.Writer
}

type command struct {
	summary string
	run     func(ctx context.Context, e *env, args []string) error
}

var commands = map[string]command{
	"serve":    {"run the local view server", runServe},
	"pins":     {"list every pin", runPins},
	"add":      {"create a pin", runAdd},
	"login":    {"log in and remember the username", runLogin},
	"register": {"create an account", runRegister},
	"logout":   {"forget the remembered username", runLogout},
	"whoami":   {"print the remembered username", runWhoami},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one command and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("travelmap", flag.ContinueOnError)
	fs.SetOutput(stderr)
	logLevel := fs.String("log-level", "", "override LOG_LEVEL")
	fs.Usage = func() { usage(stderr) }
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		usage(stderr)
		return 2
	}

	name := fs.Arg(0)
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(stderr, "travelmap: unknown command %q\n", name)
		usage(stderr)
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "travelmap: %v\n", err)
		return 1
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}
	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    stderr,
	})

	e, closeEnv, err := newEnv(ctx, cfg, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "travelmap: %v\n", err)
		return 1
	}
	defer closeEnv()

	ctx = logging.ContextWithNewCorrelationID(ctx)
	if err := cmd.run(ctx, e, fs.Args()[1:]); err != nil {
		if errors.Is(err, errUsage) || errors.Is(err, flag.ErrHelp) {
			return 2
		}
		fmt.Fprintf(stderr, "travelmap %s: %v\n", name, err)
		return 1
	}
	return 0
}

// newEnv opens the session store and builds the controller.
func newEnv(ctx context.Context, cfg *config.Config, stdout, stderr io.Writer) (*env, func(), error) {
	store, err := session.OpenStore(session.StoreType(cfg.Session.Store), cfg.Session.Path)
	if err != nil {
		return nil, nil, err
	}
	sess, err := session.Open(ctx, store)
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}

	ctrl := app.New(pinapi.New(cfg), sess, app.WithMapConfig(cfg.Map))
	closeFn := func() {
		if err := sess.Close(); err != nil {
			logging.Warn().Err(err).Msg("Failed to close session store")
		}
	}
	return &env{cfg: cfg, ctrl: ctrl, stdout: stdout, stderr: stderr}, closeFn, nil
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: travelmap [-log-level LEVEL] <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "commands:")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-10s %s\n", name, commands[name].summary)
	}
}

// newFlagSet returns a subcommand flag set that reports parse errors to
// the caller instead of exiting.
func newFlagSet(name string, w io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("travelmap "+name, flag.ContinueOnError)
	fs.SetOutput(w)
	return fs
}
