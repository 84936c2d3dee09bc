package dispatch

import (
	"strings"
	"testing"

	"echomap/fieldstore/internal/models"
)

func TestRouteFor(t *testing.T) {
	if got := RouteFor(models.CategoryWildlife); got.Team != "Wildlife Rescue Team" {
		t.Errorf("wildlife routed to %q", got.Team)
	}
	if got := RouteFor(models.CategoryIllegalDumping); got.ContactName != "Officer Leon Park" {
		t.Errorf("illegal_dumping routed to %q", got.ContactName)
	}

	// Unknown categories land on the general desk.
	if got := RouteFor(models.Category("made_up")); got.Team != "General Dispatch Desk" {
		t.Errorf("unknown category routed to %q", got.Team)
	}
}

func TestRoutes_CoversEveryCategoryInOrder(t *testing.T) {
	routes := Routes()
	if len(routes) != len(models.Categories) {
		t.Fatalf("expected %d routes, got %d", len(models.Categories), len(routes))
	}
	for i, c := range models.Categories {
		if routes[i].Category != c {
			t.Errorf("position %d: got %s, want %s", i, routes[i].Category, c)
		}
		if routes[i].Contact.Team == "" {
			t.Errorf("category %s has no contact", c)
		}
	}
}

func TestSummary(t *testing.T) {
	heading := 270.0
	pitch := -5.0
	rec := models.Record{
		ID:          "r1",
		Title:       "Fox sighting",
		Description: "Crossing the trail",
		Category:    models.CategoryWildlife,
		Status:      models.StatusOpen,
		Location:    &models.GeoFix{Lat: 55.864237, Lng: -4.251806},
		Orientation: &models.Orientation{Heading: &heading, Pitch: &pitch},
		CreatedAt:   1700000000000,
	}

	got := Summary(rec, RouteFor(rec.Category))
	lines := strings.Split(got, "\n")
	if lines[0] != "EchoMap Incident Report" {
		t.Errorf("header = %q", lines[0])
	}

	want := []string{
		"Title: Fox sighting",
		"Category: wildlife",
		"Status: open",
		"Coordinates: 55.864237, -4.251806",
		"Compass/Pitch: 270.0 deg (W) / -5.0 deg",
		"Dispatch: Wildlife Rescue Team | Ranger Ava Stone | +1-555-210-1144",
	}
	for _, w := range want {
		if !strings.Contains(got, w) {
			t.Errorf("summary missing %q:\n%s", w, got)
		}
	}
}

func TestSummary_MissingSensors(t *testing.T) {
	rec := models.Record{
		Title:       "No sensors",
		Description: "d",
		Category:    models.CategoryOther,
		Status:      models.StatusOpen,
	}

	got := Summary(rec, RouteFor(rec.Category))
	if !strings.Contains(got, "Coordinates: unavailable") {
		t.Errorf("expected unavailable coordinates:\n%s", got)
	}
	if !strings.Contains(got, "Compass/Pitch: - / -") {
		t.Errorf("expected placeholder orientation:\n%s", got)
	}
	if !strings.Contains(got, "Created: -") {
		t.Errorf("expected placeholder created time:\n%s", got)
	}
}
