package store

import (
	"sort"

	"echomap/fieldstore/internal/geo"
	"echomap/fieldstore/internal/models"
)

// Stats is the derived summary the data hub shows. Recomputed on demand,
// nothing here is stored.
type Stats struct {
	Total        int                     `json:"total"`
	Open         int                     `json:"open"`
	Resolved     int                     `json:"resolved"`
	PendingSync  int                     `json:"pendingSync"`
	WithPhoto    int                     `json:"withPhoto"`
	WithAudio    int                     `json:"withAudio"`
	WithLocation int                     `json:"withLocation"`
	ByCategory   map[models.Category]int `json:"byCategory"`
}

// Stats computes the counts over the current collection.
func (s *Store) Stats() Stats {
	records := s.List(nil)

	stats := Stats{
		Total:      len(records),
		ByCategory: make(map[models.Category]int, len(models.Categories)),
	}
	for _, c := range models.Categories {
		stats.ByCategory[c] = 0
	}

	for _, rec := range records {
		if rec.Status == models.StatusResolved {
			stats.Resolved++
		} else {
			stats.Open++
		}
		if rec.PendingSync {
			stats.PendingSync++
		}
		if rec.PhotoBase64 != "" {
			stats.WithPhoto++
		}
		if rec.AudioBase64 != "" {
			stats.WithAudio++
		}
		if rec.Location != nil {
			stats.WithLocation++
		}
		stats.ByCategory[rec.Category]++
	}
	return stats
}

// RecordDistance pairs a located record with its distance from a
// reference point.
type RecordDistance struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Category       models.Category `json:"category"`
	Status         models.Status   `json:"status"`
	Location       models.GeoFix   `json:"location"`
	DistanceMeters float64         `json:"distanceMeters"`
}

// Nearby returns every record that has a location, nearest first.
// Ties break on id so the order is deterministic.
func (s *Store) Nearby(lat, lng float64) []RecordDistance {
	records := s.List(nil)

	out := make([]RecordDistance, 0, len(records))
	for _, rec := range records {
		if rec.Location == nil {
			continue
		}
		out = append(out, RecordDistance{
			ID:             rec.ID,
			Title:          rec.Title,
			Category:       rec.Category,
			Status:         rec.Status,
			Location:       *rec.Location,
			DistanceMeters: geo.Haversine(lat, lng, rec.Location.Lat, rec.Location.Lng),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].DistanceMeters != out[j].DistanceMeters {
			return out[i].DistanceMeters < out[j].DistanceMeters
		}
		return out[i].ID < out[j].ID
	})
	return out
}
