package storage

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileSlot_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	slot, err := NewFileSlot(dir, RecordsKey)
	if err != nil {
		t.Fatalf("new file slot: %v", err)
	}
	defer slot.Close()
	ctx := context.Background()

	if _, err := slot.Read(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on empty slot, got %v", err)
	}

	payload := []byte(`[{"id":"r1"}]`)
	if err := slot.Write(ctx, payload); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := slot.Read(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("read back %q, want %q", got, payload)
	}

	// Overwrite replaces, never appends.
	second := []byte(`[]`)
	if err := slot.Write(ctx, second); err != nil {
		t.Fatalf("second write: %v", err)
	}
	got, _ = slot.Read(ctx)
	if !bytes.Equal(got, second) {
		t.Errorf("read back %q after overwrite, want %q", got, second)
	}
}

func TestFileSlot_NoTempFileLeftBehind(t *testing.T) {
	dir := t.TempDir()
	slot, err := NewFileSlot(dir, RecordsKey)
	if err != nil {
		t.Fatalf("new file slot: %v", err)
	}

	if err := slot.Write(context.Background(), []byte("[]")); err != nil {
		t.Fatalf("write: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly the slot file, found %d entries", len(entries))
	}
	if entries[0].Name() != RecordsKey+".json" {
		t.Errorf("unexpected file %q", entries[0].Name())
	}
}

func TestFileSlot_CreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	if _, err := NewFileSlot(dir, RecordsKey); err != nil {
		t.Fatalf("new file slot: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("data dir not created: %v", err)
	}
}

func TestSQLiteSlot_RoundTrip(t *testing.T) {
	slot, err := NewSQLiteSlot(":memory:", RecordsKey)
	if err != nil {
		t.Fatalf("new sqlite slot: %v", err)
	}
	defer slot.Close()
	ctx := context.Background()

	if _, err := slot.Read(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on empty slot, got %v", err)
	}

	payload := []byte(`[{"id":"r1","title":"one"}]`)
	if err := slot.Write(ctx, payload); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := slot.Read(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("read back %q, want %q", got, payload)
	}

	// Upsert path: same key, new value.
	updated := []byte(`[{"id":"r1","title":"renamed"}]`)
	if err := slot.Write(ctx, updated); err != nil {
		t.Fatalf("upsert write: %v", err)
	}
	got, _ = slot.Read(ctx)
	if !bytes.Equal(got, updated) {
		t.Errorf("read back %q after upsert, want %q", got, updated)
	}
}

func TestSQLiteSlot_KeysAreIndependent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "slots.db")

	records, err := NewSQLiteSlot(dbPath, RecordsKey)
	if err != nil {
		t.Fatalf("records slot: %v", err)
	}
	defer records.Close()
	prefs, err := NewSQLiteSlot(dbPath, PrefsKey)
	if err != nil {
		t.Fatalf("prefs slot: %v", err)
	}
	defer prefs.Close()
	ctx := context.Background()

	if err := records.Write(ctx, []byte(`["records"]`)); err != nil {
		t.Fatalf("write records: %v", err)
	}
	if err := prefs.Write(ctx, []byte(`{"theme":"dark"}`)); err != nil {
		t.Fatalf("write prefs: %v", err)
	}

	got, err := records.Read(ctx)
	if err != nil {
		t.Fatalf("read records: %v", err)
	}
	if !bytes.Equal(got, []byte(`["records"]`)) {
		t.Errorf("records slot returned %q", got)
	}
	got, err = prefs.Read(ctx)
	if err != nil {
		t.Fatalf("read prefs: %v", err)
	}
	if !bytes.Equal(got, []byte(`{"theme":"dark"}`)) {
		t.Errorf("prefs slot returned %q", got)
	}
}

func TestSQLiteSlot_SurvivesReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "slots.db")
	ctx := context.Background()

	slot, err := NewSQLiteSlot(dbPath, RecordsKey)
	if err != nil {
		t.Fatalf("new sqlite slot: %v", err)
	}
	payload := []byte(`[{"id":"durable"}]`)
	if err := slot.Write(ctx, payload); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := slot.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := NewSQLiteSlot(dbPath, RecordsKey)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	got, err := reopened.Read(ctx)
	if err != nil {
		t.Fatalf("read after reopen: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("read back %q after reopen, want %q", got, payload)
	}
}
