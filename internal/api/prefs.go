package api

import (
	"encoding/json"
	"net/http"

	"echomap/fieldstore/internal/prefs"
)

// GetPrefsHandler handles GET /api/v1/prefs
func (h *Handlers) GetPrefsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p := h.deps.Prefs.Get()
		respondWithSuccess(w, http.StatusOK, &p)
	}
}

// PutPrefsHandler handles PUT /api/v1/prefs. Changing the sync endpoint
// takes effect on the next sync attempt.
func (h *Handlers) PutPrefsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in prefs.Prefs
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		saved := h.deps.Prefs.Set(r.Context(), in)
		switch {
		case saved.SyncEndpoint != "":
			h.deps.Syncer.SetEndpoint(saved.SyncEndpoint)
		case h.deps.DefaultSyncEndpoint != "":
			// Cleared override: return to the configured endpoint.
			h.deps.Syncer.SetEndpoint(h.deps.DefaultSyncEndpoint)
		}
		respondWithSuccess(w, http.StatusOK, &saved)
	}
}
