// Package storage provides the durable key-value slot the record store
// mirrors itself into. A slot holds one opaque JSON payload under a named
// key; backends differ only in where that key lives.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Read when the key has never been written.
// Callers treat it as "start from the default state".
var ErrNotFound = errors.New("storage: key not found")

// Slot is a single named durable key. Write replaces the whole payload;
// Read returns the last written payload or ErrNotFound.
type Slot interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
	Close() error
}

// RecordsKey is the slot key holding the serialized record collection.
// The value is carried over from the original export format so existing
// data files remain importable.
const RecordsKey = "echo_reports_v2"

// PrefsKey is the slot key holding user preferences.
const PrefsKey = "echo_prefs"
