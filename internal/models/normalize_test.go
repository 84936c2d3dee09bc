package models

import "testing"

func TestNormalizeImported_Defaults(t *testing.T) {
	rec := NormalizeImported(map[string]interface{}{})

	if rec.ID == "" {
		t.Error("expected generated id")
	}
	if rec.Title != ImportedTitle {
		t.Errorf("title = %q, want %q", rec.Title, ImportedTitle)
	}
	if rec.Category != CategoryOther {
		t.Errorf("category = %s, want other", rec.Category)
	}
	if rec.Status != StatusOpen {
		t.Errorf("status = %s, want open", rec.Status)
	}
	if !rec.PendingSync {
		t.Error("pendingSync should default to true")
	}
	if rec.SyncedAt != nil {
		t.Error("syncedAt should default to nil")
	}
	if rec.Location != nil {
		t.Error("location should default to nil")
	}
	if rec.CreatedAt == 0 {
		t.Error("createdAt should default to now")
	}
	if rec.UpdatedAt != rec.CreatedAt {
		t.Error("updatedAt should default to createdAt")
	}
}

func TestNormalizeImported_MalformedFieldsDegrade(t *testing.T) {
	rec := NormalizeImported(map[string]interface{}{
		"id":          12345,
		"title":       []string{"not", "a", "string"},
		"category":    "definitely_not_real",
		"status":      true,
		"createdAt":   "yesterday",
		"pendingSync": "yes",
		"location":    "55.8,-4.2",
	})

	if rec.ID == "" {
		t.Error("non-string id should be replaced with a generated one")
	}
	if rec.Title != ImportedTitle {
		t.Errorf("title = %q, want fallback", rec.Title)
	}
	if rec.Category != CategoryOther {
		t.Errorf("category = %s, want other", rec.Category)
	}
	if !rec.PendingSync {
		t.Error("non-bool pendingSync should default to true")
	}
	if rec.Location != nil {
		t.Error("non-object location should be dropped")
	}
	if rec.CreatedAt == 0 {
		t.Error("non-numeric createdAt should default to now")
	}
}

func TestNormalizeImported_LocationRequiresBothCoordinates(t *testing.T) {
	rec := NormalizeImported(map[string]interface{}{
		"location": map[string]interface{}{"lat": 55.8},
	})
	if rec.Location != nil {
		t.Error("location without lng should be dropped")
	}

	acc := map[string]interface{}{
		"lat": 55.8, "lng": -4.2, "accuracy": 12.5, "capturedAt": float64(1700000000000),
	}
	rec = NormalizeImported(map[string]interface{}{"location": acc})
	if rec.Location == nil {
		t.Fatal("complete location should be kept")
	}
	if rec.Location.Lat != 55.8 || rec.Location.Lng != -4.2 {
		t.Errorf("coordinates = %f,%f", rec.Location.Lat, rec.Location.Lng)
	}
	if rec.Location.Accuracy == nil || *rec.Location.Accuracy != 12.5 {
		t.Error("accuracy not carried")
	}
	if rec.Location.CapturedAt != 1700000000000 {
		t.Errorf("capturedAt = %d", rec.Location.CapturedAt)
	}
}

func TestNormalizeImported_Idempotent(t *testing.T) {
	first := NormalizeImported(map[string]interface{}{
		"id":          "stable-id",
		"title":       "Culvert blocked",
		"description": "Debris after the storm",
		"category":    "facility_fault",
		"status":      "resolved",
		"createdAt":   float64(1700000000000),
		"updatedAt":   float64(1700000050000),
		"syncedAt":    float64(1700000100000),
		"pendingSync": false,
		"orientation": map[string]interface{}{
			"heading": 45.0, "pitch": -3.0, "capturedAt": float64(1700000000000),
		},
	})

	// Re-normalize the normalized form, as a re-import of an export would.
	second := NormalizeImported(map[string]interface{}{
		"id":          first.ID,
		"title":       first.Title,
		"description": first.Description,
		"category":    string(first.Category),
		"status":      string(first.Status),
		"createdAt":   float64(first.CreatedAt),
		"updatedAt":   float64(first.UpdatedAt),
		"syncedAt":    float64(*first.SyncedAt),
		"pendingSync": first.PendingSync,
		"orientation": map[string]interface{}{
			"heading":    *first.Orientation.Heading,
			"pitch":      *first.Orientation.Pitch,
			"capturedAt": float64(first.Orientation.CapturedAt),
		},
	})

	if second.ID != first.ID || second.Title != first.Title ||
		second.Category != first.Category || second.Status != first.Status ||
		second.CreatedAt != first.CreatedAt || second.UpdatedAt != first.UpdatedAt ||
		second.PendingSync != first.PendingSync {
		t.Errorf("normalization not idempotent:\n  first  %+v\n  second %+v", first, second)
	}
	if *second.SyncedAt != *first.SyncedAt {
		t.Error("syncedAt changed across re-normalization")
	}
	if *second.Orientation.Heading != *first.Orientation.Heading ||
		*second.Orientation.Pitch != *first.Orientation.Pitch {
		t.Error("orientation changed across re-normalization")
	}
}

func TestNormalizeCategory(t *testing.T) {
	if got := NormalizeCategory("wildlife"); got != CategoryWildlife {
		t.Errorf("got %s", got)
	}
	if got := NormalizeCategory("not_a_category"); got != CategoryOther {
		t.Errorf("got %s", got)
	}
	if got := NormalizeCategory(""); got != CategoryOther {
		t.Errorf("got %s", got)
	}
}

func TestStatusToggle(t *testing.T) {
	if StatusOpen.Toggle() != StatusResolved {
		t.Error("open should toggle to resolved")
	}
	if StatusResolved.Toggle() != StatusOpen {
		t.Error("resolved should toggle to open")
	}
}
