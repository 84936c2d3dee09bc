// Package dispatch maps report categories to the response team that
// should receive them and formats the shareable report summary.
package dispatch

import (
	"fmt"
	"strings"
	"time"

	"echomap/fieldstore/internal/geo"
	"echomap/fieldstore/internal/models"
)

// Contact is one routing destination.
type Contact struct {
	Team        string `json:"team"`
	ContactName string `json:"contactName"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
}

var routing = map[models.Category]Contact{
	models.CategoryWildlife: {
		Team:        "Wildlife Rescue Team",
		ContactName: "Ranger Ava Stone",
		Phone:       "+1-555-210-1144",
		Email:       "wildlife@echomap.local",
	},
	models.CategoryIllegalDumping: {
		Team:        "City Waste Enforcement",
		ContactName: "Officer Leon Park",
		Phone:       "+1-555-210-3312",
		Email:       "waste@echomap.local",
	},
	models.CategoryFacilityFault: {
		Team:        "Public Infrastructure",
		ContactName: "Engineer Nora Chen",
		Phone:       "+1-555-210-4875",
		Email:       "infra@echomap.local",
	},
	models.CategoryGeologicFeature: {
		Team:        "Geology Survey Unit",
		ContactName: "Dr. Max Rivera",
		Phone:       "+1-555-210-9060",
		Email:       "geology@echomap.local",
	},
	models.CategoryOther: {
		Team:        "General Dispatch Desk",
		ContactName: "Operator Team",
		Phone:       "+1-555-210-0001",
		Email:       "dispatch@echomap.local",
	},
}

// RouteFor returns the routing contact for a category, falling back to
// the general desk for anything unrecognized.
func RouteFor(category models.Category) Contact {
	if contact, ok := routing[category]; ok {
		return contact
	}
	return routing[models.CategoryOther]
}

// Route pairs a category with its routing contact.
type Route struct {
	Category models.Category `json:"category"`
	Contact  Contact         `json:"contact"`
}

// Routes returns the full category routing table in display order.
func Routes() []Route {
	out := make([]Route, 0, len(models.Categories))
	for _, c := range models.Categories {
		out = append(out, Route{Category: c, Contact: routing[c]})
	}
	return out
}

// Summary renders the plain-text report a responder receives via the
// share/clipboard sink.
func Summary(rec models.Record, contact Contact) string {
	lines := []string{
		"EchoMap Incident Report",
		"Title: " + rec.Title,
		"Category: " + string(rec.Category),
		"Status: " + string(rec.Status),
		"Description: " + rec.Description,
		"Coordinates: " + coordinates(rec.Location),
		"Compass/Pitch: " + orientation(rec.Orientation),
		fmt.Sprintf("Dispatch: %s | %s | %s", contact.Team, contact.ContactName, contact.Phone),
		"Created: " + formatMillis(rec.CreatedAt),
	}
	return strings.Join(lines, "\n")
}

func coordinates(loc *models.GeoFix) string {
	if loc == nil {
		return "unavailable"
	}
	return fmt.Sprintf("%.6f, %.6f", loc.Lat, loc.Lng)
}

func orientation(ori *models.Orientation) string {
	heading := "-"
	pitch := "-"
	if ori != nil {
		if ori.Heading != nil {
			heading = fmt.Sprintf("%.1f deg (%s)", *ori.Heading, geo.CompassDirection(*ori.Heading))
		}
		if ori.Pitch != nil {
			pitch = fmt.Sprintf("%.1f deg", *ori.Pitch)
		}
	}
	return heading + " / " + pitch
}

func formatMillis(ts int64) string {
	if ts == 0 {
		return "-"
	}
	return time.UnixMilli(ts).UTC().Format("Jan 02, 2006 15:04")
}
