// TravelMap - Map-Based Pin Sharing Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelmap

/*
Command travelmap is the TravelMap client.

	travelmap [-log-level LEVEL] <command> [flags]

Commands:

	serve      run the local view server (map page backend and state stream)
	pins       list every pin; yours are marked with *
	add        create a pin: -lat -long -title [-desc] [-rating 1-5]
	login      -username -password; the username is remembered
	register   -username -email -password
	logout     forget the remembered username
	whoami     print the remembered username

Configuration comes from defaults, an optional config.yaml, a .env file and
the environment, in that order. API_URL is required. Run `serve` for the
full route list and supervisor layout; see internal/api and
internal/supervisor.

Every command shares one controller with the view server, so `add` obeys
the same rules as the map form: you must be logged in and the title is
required.
*/
package main
