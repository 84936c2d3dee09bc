// Package prefs persists the small user preference keys that live next
// to, but separate from, the record collection.
package prefs

import (
	"context"
	"encoding/json"
	"sync"

	"echomap/fieldstore/internal/logging"
	"echomap/fieldstore/internal/storage"
)

// Prefs are the station-level settings the original clients kept in
// their own storage keys.
type Prefs struct {
	Theme        string `json:"theme"`
	ActivePage   string `json:"activePage"`
	SyncEndpoint string `json:"syncEndpoint,omitempty"`
}

// Normalize clamps free-form values to the supported set.
func (p Prefs) Normalize() Prefs {
	if p.Theme != "dark" {
		p.Theme = "light"
	}
	if p.ActivePage == "" {
		p.ActivePage = "home"
	}
	return p
}

// Store reads and writes preferences through its own storage slot.
type Store struct {
	mu    sync.Mutex
	slot  storage.Slot
	prefs Prefs
}

// Open loads preferences, defaulting on a missing or unparseable slot.
func Open(ctx context.Context, slot storage.Slot) *Store {
	s := &Store{slot: slot, prefs: Prefs{}.Normalize()}

	data, err := slot.Read(ctx)
	if err != nil {
		if err != storage.ErrNotFound {
			logging.Warn("prefs slot unreadable, using defaults", "error", err.Error())
		}
		return s
	}

	var loaded Prefs
	if err := json.Unmarshal(data, &loaded); err != nil {
		logging.Warn("prefs slot unparseable, using defaults", "error", err.Error())
		return s
	}
	s.prefs = loaded.Normalize()
	return s
}

// Get returns the current preferences.
func (s *Store) Get() Prefs {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs
}

// Set normalizes and persists new preferences. A failed write keeps the
// in-memory value, same best-effort contract as the record slot.
func (s *Store) Set(ctx context.Context, p Prefs) Prefs {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prefs = p.Normalize()
	data, err := json.Marshal(s.prefs)
	if err == nil {
		err = s.slot.Write(ctx, data)
	}
	if err != nil {
		logging.Warn("prefs write failed", "error", err.Error())
	}
	return s.prefs
}
