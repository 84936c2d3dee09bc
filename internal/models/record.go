package models

import "time"

// Category classifies a field report for dispatch routing.
type Category string

const (
	CategoryWildlife        Category = "wildlife"
	CategoryIllegalDumping  Category = "illegal_dumping"
	CategoryFacilityFault   Category = "facility_fault"
	CategoryGeologicFeature Category = "geologic_feature"
	CategoryOther           Category = "other"
)

// Categories lists every recognized category in display order.
var Categories = []Category{
	CategoryWildlife,
	CategoryIllegalDumping,
	CategoryFacilityFault,
	CategoryGeologicFeature,
	CategoryOther,
}

// Valid reports whether c is one of the recognized categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// NormalizeCategory maps unrecognized values to CategoryOther.
func NormalizeCategory(v string) Category {
	c := Category(v)
	if c.Valid() {
		return c
	}
	return CategoryOther
}

// Status is the resolution state of a report.
type Status string

const (
	StatusOpen     Status = "open"
	StatusResolved Status = "resolved"
)

// NormalizeStatus maps anything that is not "resolved" to StatusOpen.
func NormalizeStatus(v string) Status {
	if Status(v) == StatusResolved {
		return StatusResolved
	}
	return StatusOpen
}

// Toggle flips open<->resolved.
func (s Status) Toggle() Status {
	if s == StatusResolved {
		return StatusOpen
	}
	return StatusResolved
}

// GeoFix is a captured GPS position. Accuracy is in meters and may be
// absent when the fix came from a map tap rather than the sensor.
type GeoFix struct {
	Lat        float64  `json:"lat"`
	Lng        float64  `json:"lng"`
	Accuracy   *float64 `json:"accuracy"`
	CapturedAt int64    `json:"capturedAt"`
}

// Orientation is a compass/accelerometer capture. Heading and pitch are
// each optional because the sensor may report only one axis.
type Orientation struct {
	Heading    *float64 `json:"heading"`
	Pitch      *float64 `json:"pitch"`
	CapturedAt int64    `json:"capturedAt"`
}

// Record is a single field report. Timestamps are epoch milliseconds to
// stay wire-compatible with previously exported data. Media attachments
// are base64 data URLs produced by the capture collaborators.
type Record struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Category    Category     `json:"category"`
	Status      Status       `json:"status"`
	Location    *GeoFix      `json:"location"`
	Orientation *Orientation `json:"orientation"`
	PhotoBase64 string       `json:"photoBase64,omitempty"`
	AudioBase64 string       `json:"audioBase64,omitempty"`
	CreatedAt   int64        `json:"createdAt"`
	UpdatedAt   int64        `json:"updatedAt"`
	SyncedAt    *int64       `json:"syncedAt"`
	PendingSync bool         `json:"pendingSync"`
}

// Draft carries the user-supplied fields for a new record. The store
// assigns id, timestamps and sync flags.
type Draft struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Category    Category     `json:"category"`
	Status      Status       `json:"status"`
	Location    *GeoFix      `json:"location"`
	Orientation *Orientation `json:"orientation"`
	PhotoBase64 string       `json:"photoBase64"`
	AudioBase64 string       `json:"audioBase64"`
}

// Patch holds the fields an update may change. Nil pointers leave the
// existing value untouched.
type Patch struct {
	Title       *string      `json:"title"`
	Description *string      `json:"description"`
	Category    *Category    `json:"category"`
	Status      *Status      `json:"status"`
	Location    *GeoFix      `json:"location"`
	Orientation *Orientation `json:"orientation"`
	PhotoBase64 *string      `json:"photoBase64"`
	AudioBase64 *string      `json:"audioBase64"`
}

// Snapshot is the export envelope written by the export endpoint and
// accepted back by import.
type Snapshot struct {
	Version    string   `json:"version"`
	ExportedAt int64    `json:"exportedAt"`
	Records    []Record `json:"records"`
}

// SnapshotVersion is the current export format version.
const SnapshotVersion = "2.0"

// NowMillis returns the current time as epoch milliseconds.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}
