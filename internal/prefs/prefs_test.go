package prefs

import (
	"context"
	"errors"
	"testing"

	"echomap/fieldstore/internal/storage"
)

type memSlot struct {
	data       []byte
	written    bool
	failWrites bool
}

func (m *memSlot) Read(context.Context) ([]byte, error) {
	if !m.written {
		return nil, storage.ErrNotFound
	}
	return m.data, nil
}

func (m *memSlot) Write(_ context.Context, data []byte) error {
	if m.failWrites {
		return errors.New("write failed")
	}
	m.data = append([]byte(nil), data...)
	m.written = true
	return nil
}

func (m *memSlot) Close() error { return nil }

func TestOpen_Defaults(t *testing.T) {
	s := Open(context.Background(), &memSlot{})

	got := s.Get()
	if got.Theme != "light" || got.ActivePage != "home" || got.SyncEndpoint != "" {
		t.Errorf("defaults = %+v", got)
	}
}

func TestOpen_CorruptSlotFallsBack(t *testing.T) {
	slot := &memSlot{data: []byte("{{{"), written: true}
	s := Open(context.Background(), slot)

	if got := s.Get(); got.Theme != "light" {
		t.Errorf("corrupt slot should yield defaults, got %+v", got)
	}
}

func TestSet_PersistsAndReloads(t *testing.T) {
	slot := &memSlot{}
	ctx := context.Background()

	s := Open(ctx, slot)
	saved := s.Set(ctx, Prefs{Theme: "dark", ActivePage: "hub", SyncEndpoint: "http://sync.invalid"})
	if saved.Theme != "dark" || saved.ActivePage != "hub" {
		t.Fatalf("saved = %+v", saved)
	}

	reopened := Open(ctx, slot)
	if got := reopened.Get(); got.Theme != "dark" || got.SyncEndpoint != "http://sync.invalid" {
		t.Errorf("reloaded = %+v", got)
	}
}

func TestSet_NormalizesValues(t *testing.T) {
	s := Open(context.Background(), &memSlot{})

	got := s.Set(context.Background(), Prefs{Theme: "neon", ActivePage: ""})
	if got.Theme != "light" {
		t.Errorf("unknown theme clamped to %q, want light", got.Theme)
	}
	if got.ActivePage != "home" {
		t.Errorf("empty page clamped to %q, want home", got.ActivePage)
	}
}

func TestSet_WriteFailureKeepsInMemoryValue(t *testing.T) {
	slot := &memSlot{failWrites: true}
	s := Open(context.Background(), slot)

	s.Set(context.Background(), Prefs{Theme: "dark"})
	if got := s.Get(); got.Theme != "dark" {
		t.Errorf("in-memory prefs lost on failed write: %+v", got)
	}
}
