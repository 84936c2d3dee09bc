package models

import "github.com/google/uuid"

// ImportedTitle is used when an imported object carries no usable title.
const ImportedTitle = "Imported Report"

// NormalizeImported turns one loosely-typed imported object into a valid
// Record. Every field is type-checked before use; anything malformed
// degrades to a safe default instead of failing, because import files are
// the user's own exports and may be partially corrupted. Normalizing an
// already-normalized record yields the same record.
func NormalizeImported(raw map[string]interface{}) Record {
	now := NowMillis()

	rec := Record{
		ID:          stringField(raw, "id"),
		Description: stringField(raw, "description"),
		Category:    NormalizeCategory(stringField(raw, "category")),
		Status:      NormalizeStatus(stringField(raw, "status")),
		PhotoBase64: stringField(raw, "photoBase64"),
		AudioBase64: stringField(raw, "audioBase64"),
	}

	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}

	if title := stringField(raw, "title"); title != "" {
		rec.Title = title
	} else {
		rec.Title = ImportedTitle
	}

	if loc, ok := raw["location"].(map[string]interface{}); ok {
		lat, latOK := numberField(loc, "lat")
		lng, lngOK := numberField(loc, "lng")
		if latOK && lngOK {
			fix := &GeoFix{Lat: lat, Lng: lng, CapturedAt: now}
			if acc, ok := numberField(loc, "accuracy"); ok {
				fix.Accuracy = &acc
			}
			if ts, ok := numberField(loc, "capturedAt"); ok {
				fix.CapturedAt = int64(ts)
			}
			rec.Location = fix
		}
	}

	if ori, ok := raw["orientation"].(map[string]interface{}); ok {
		out := &Orientation{CapturedAt: now}
		if heading, ok := numberField(ori, "heading"); ok {
			out.Heading = &heading
		}
		if pitch, ok := numberField(ori, "pitch"); ok {
			out.Pitch = &pitch
		}
		if ts, ok := numberField(ori, "capturedAt"); ok {
			out.CapturedAt = int64(ts)
		}
		rec.Orientation = out
	}

	if created, ok := numberField(raw, "createdAt"); ok {
		rec.CreatedAt = int64(created)
	} else {
		rec.CreatedAt = now
	}

	if updated, ok := numberField(raw, "updatedAt"); ok {
		rec.UpdatedAt = int64(updated)
	} else {
		rec.UpdatedAt = rec.CreatedAt
	}

	if synced, ok := numberField(raw, "syncedAt"); ok {
		ts := int64(synced)
		rec.SyncedAt = &ts
	}

	if pending, ok := raw["pendingSync"].(bool); ok {
		rec.PendingSync = pending
	} else {
		rec.PendingSync = true
	}

	return rec
}

func stringField(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

// numberField accepts the numeric shapes JSON decoding can produce.
func numberField(m map[string]interface{}, key string) (float64, bool) {
	switch v := m[key].(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	case int:
		return float64(v), true
	}
	return 0, false
}
