// TravelMap - Map-Based Pin Sharing Client
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelmap

package session

import "fmt"

// StoreType defines the type of session storage backend.
type StoreType string

const (
	// StoreMemory keeps the session for the life of the process only.
	StoreMemory StoreType = "memory"

	// StoreBadger persists the session in a BadgerDB directory.
	StoreBadger StoreType = "badger"
)

// OpenStore creates the Store selected by storeType. path is only used by
// the badger backend.
func OpenStore(storeType StoreType, path string) (Store, error) {
	switch storeType {
	case StoreMemory, "":
		return NewMemoryStore(), nil
	case StoreBadger:
		return OpenBadgerStore(path)
	default:
		return nil, fmt.Errorf("unknown session store type %q", storeType)
	}
}
