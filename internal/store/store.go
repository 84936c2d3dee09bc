// Package store owns the authoritative in-memory record collection and
// mirrors every mutation into a durable storage slot. It is the
// local-first core: the slot write is best-effort, the in-memory state
// is the source of truth for the running session.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"echomap/fieldstore/internal/logging"
	"echomap/fieldstore/internal/models"
	"echomap/fieldstore/internal/storage"
)

// Store applies one operation at a time (single-writer discipline) and
// persists the whole collection before returning from any mutation.
type Store struct {
	mu       sync.Mutex
	records  []models.Record
	slot     storage.Slot
	revision uint64
}

// Open loads the collection from the slot. A missing key or an
// unparseable payload both start the store from an empty collection;
// corruption is logged, never fatal.
func Open(ctx context.Context, slot storage.Slot) (*Store, error) {
	s := &Store{slot: slot}

	data, err := slot.Read(ctx)
	switch {
	case err == storage.ErrNotFound:
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("read record slot: %w", err)
	}

	var records []models.Record
	if err := json.Unmarshal(data, &records); err != nil {
		logging.Warn("record slot unparseable, starting empty", "error", err.Error())
		return s, nil
	}
	s.records = records
	return s, nil
}

// Create validates the draft, assigns identity and timestamps, prepends
// the record and persists. The returned warning is non-nil when the
// durable write failed.
func (s *Store) Create(ctx context.Context, draft models.Draft) (models.Record, *Warning, error) {
	title := strings.TrimSpace(draft.Title)
	description := strings.TrimSpace(draft.Description)
	if title == "" {
		return models.Record{}, nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if description == "" {
		return models.Record{}, nil, fmt.Errorf("%w: description is required", ErrValidation)
	}

	now := models.NowMillis()
	rec := models.Record{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
		Category:    models.NormalizeCategory(string(draft.Category)),
		Status:      models.NormalizeStatus(string(draft.Status)),
		Location:    draft.Location,
		Orientation: draft.Orientation,
		PhotoBase64: draft.PhotoBase64,
		AudioBase64: draft.AudioBase64,
		CreatedAt:   now,
		UpdatedAt:   now,
		SyncedAt:    nil,
		PendingSync: true,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append([]models.Record{rec}, s.records...)
	warn := s.persistLocked(ctx)
	return rec, warn, nil
}

// Update merges the patch onto the record, advances updatedAt strictly
// and forces pendingSync regardless of whether anything changed.
func (s *Store) Update(ctx context.Context, id string, patch models.Patch) (models.Record, *Warning, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return models.Record{}, nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	rec := s.records[idx]
	if patch.Title != nil {
		rec.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		rec.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Category != nil {
		rec.Category = models.NormalizeCategory(string(*patch.Category))
	}
	if patch.Status != nil {
		rec.Status = models.NormalizeStatus(string(*patch.Status))
	}
	if patch.Location != nil {
		rec.Location = patch.Location
	}
	if patch.Orientation != nil {
		rec.Orientation = patch.Orientation
	}
	if patch.PhotoBase64 != nil {
		rec.PhotoBase64 = *patch.PhotoBase64
	}
	if patch.AudioBase64 != nil {
		rec.AudioBase64 = *patch.AudioBase64
	}

	rec.UpdatedAt = nextMillis(rec.UpdatedAt)
	rec.PendingSync = true
	s.records[idx] = rec

	warn := s.persistLocked(ctx)
	return rec, warn, nil
}

// ToggleStatus flips open<->resolved. Read and flip happen under one
// lock so concurrent toggles cannot collapse into a single net toggle.
func (s *Store) ToggleStatus(ctx context.Context, id string) (models.Record, *Warning, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return models.Record{}, nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	rec := s.records[idx]
	rec.Status = rec.Status.Toggle()
	rec.UpdatedAt = nextMillis(rec.UpdatedAt)
	rec.PendingSync = true
	s.records[idx] = rec

	warn := s.persistLocked(ctx)
	return rec, warn, nil
}

// Delete removes the record when present. Deleting an absent id is a
// deliberate no-op so the operation stays idempotent for the caller.
func (s *Store) Delete(ctx context.Context, id string) *Warning {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return nil
	}
	s.records = append(s.records[:idx], s.records[idx+1:]...)
	return s.persistLocked(ctx)
}

// Get returns one record by id.
func (s *Store) Get(id string) (models.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return models.Record{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.records[idx], nil
}

// List returns a snapshot of the collection, optionally filtered by
// category. Order is most-recent-created-first and deterministic for a
// given collection state.
func (s *Store) List(filter *models.Category) []models.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Record, 0, len(s.records))
	for _, rec := range s.records {
		if filter != nil && rec.Category != *filter {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// ImportMerge normalizes each loosely-typed object and appends the ones
// whose id is not already present. Existing records are never
// overwritten. Malformed elements degrade to defaults rather than
// failing, so the call itself never errors. Returns the count added.
func (s *Store) ImportMerge(ctx context.Context, rawList []map[string]interface{}) (int, *Warning) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := make(map[string]struct{}, len(s.records))
	for _, rec := range s.records {
		existing[rec.ID] = struct{}{}
	}

	added := 0
	for _, raw := range rawList {
		rec := models.NormalizeImported(raw)
		if _, ok := existing[rec.ID]; ok {
			continue
		}
		existing[rec.ID] = struct{}{}
		s.records = append(s.records, rec)
		added++
	}

	if added == 0 {
		return 0, nil
	}
	return added, s.persistLocked(ctx)
}

// MarkSynced stamps every record as synced at ts and clears the pending
// flags. Called only after a sync upload fully succeeded; a failed
// upload leaves the store untouched so a retry resends the same records.
func (s *Store) MarkSynced(ctx context.Context, ts int64) *Warning {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.records) == 0 {
		return nil
	}
	for i := range s.records {
		syncedAt := ts
		s.records[i].SyncedAt = &syncedAt
		s.records[i].PendingSync = false
	}
	return s.persistLocked(ctx)
}

// ExportSnapshot returns the serializable export envelope. Pure read, no
// side effect.
func (s *Store) ExportSnapshot() models.Snapshot {
	return models.Snapshot{
		Version:    models.SnapshotVersion,
		ExportedAt: models.NowMillis(),
		Records:    s.List(nil),
	}
}

// PendingCount returns how many records carry local changes not yet
// reflected remotely.
func (s *Store) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, rec := range s.records {
		if rec.PendingSync {
			n++
		}
	}
	return n
}

// Len returns the collection size.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Revision increments on every mutation; derived-view caches key on it.
func (s *Store) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}

// ParseImportPayload extracts the record array from an import document:
// either a bare JSON array or an object with a "records" or "reports"
// array property. Elements that are not objects degrade to empty maps so
// a partially corrupted export still imports; normalization turns them
// into defaulted records. Anything without an array is ErrImportFormat.
func ParseImportPayload(data []byte) ([]map[string]interface{}, error) {
	var bare []interface{}
	if err := json.Unmarshal(data, &bare); err == nil {
		return coerceObjects(bare), nil
	}

	var envelope struct {
		Records []interface{} `json:"records"`
		Reports []interface{} `json:"reports"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, ErrImportFormat
	}
	if envelope.Records != nil {
		return coerceObjects(envelope.Records), nil
	}
	if envelope.Reports != nil {
		return coerceObjects(envelope.Reports), nil
	}
	return nil, ErrImportFormat
}

// coerceObjects keeps object elements and replaces anything else with an
// empty map, preserving element count.
func coerceObjects(list []interface{}) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(list))
	for _, el := range list {
		if obj, ok := el.(map[string]interface{}); ok {
			out = append(out, obj)
			continue
		}
		out = append(out, map[string]interface{}{})
	}
	return out
}

// indexLocked returns the position of id, or -1. Caller holds the lock.
func (s *Store) indexLocked(id string) int {
	for i, rec := range s.records {
		if rec.ID == id {
			return i
		}
	}
	return -1
}

// persistLocked mirrors the collection to the slot and bumps the
// revision. A failed write is logged and reported as a warning; the
// in-memory mutation stands. Caller holds the lock.
func (s *Store) persistLocked(ctx context.Context) *Warning {
	s.revision++

	data, err := json.Marshal(s.records)
	if err != nil {
		logging.Error("marshal record collection", "error", err.Error())
		return &Warning{Cause: err}
	}
	if err := s.slot.Write(ctx, data); err != nil {
		logging.Warn("durable write failed, in-memory state kept",
			"error", err.Error(),
			"records", len(s.records),
		)
		return &Warning{Cause: err}
	}
	return nil
}

// nextMillis returns the current epoch-millisecond clock, bumped past
// prev so updatedAt strictly increases even within one millisecond.
func nextMillis(prev int64) int64 {
	now := models.NowMillis()
	if now <= prev {
		return prev + 1
	}
	return now
}
