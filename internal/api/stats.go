package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"echomap/fieldstore/internal/store"
)

// statsTTL bounds how long a stale summary can be served; the revision
// key already invalidates on every mutation.
const statsTTL = 30 * time.Second

// GetStatsHandler handles GET /api/v1/stats. The summary is cached per
// store revision so repeated dashboard polls don't rescan the
// collection.
func (h *Handlers) GetStatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := fmt.Sprintf("stats:rev:%d", h.deps.Store.Revision())

		if h.deps.Cache == nil {
			stats := h.deps.Store.Stats()
			respondWithSuccess(w, http.StatusOK, &stats)
			return
		}

		if cached, found := h.deps.Cache.Get(key); found {
			if h.deps.Metrics != nil {
				h.deps.Metrics.CacheHitsTotal.WithLabelValues("stats").Inc()
			}
			stats := cached.(store.Stats)
			respondWithSuccess(w, http.StatusOK, &stats)
			return
		}

		if h.deps.Metrics != nil {
			h.deps.Metrics.CacheMissesTotal.WithLabelValues("stats").Inc()
		}
		stats := h.deps.Store.Stats()
		h.deps.Cache.Set(key, stats, statsTTL)
		respondWithSuccess(w, http.StatusOK, &stats)
	}
}

// GetNearbyHandler handles GET /api/v1/stats/nearby?lat=&lng= and
// returns located records ordered nearest first.
func (h *Handlers) GetNearbyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
		lng, lngErr := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
		if latErr != nil || lngErr != nil {
			respondWithError(w, http.StatusBadRequest, "lat and lng query parameters are required")
			return
		}
		if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
			respondWithError(w, http.StatusBadRequest, "lat/lng out of range")
			return
		}

		nearby := h.deps.Store.Nearby(lat, lng)
		respondWithSuccess(w, http.StatusOK, &nearby)
	}
}
