package api

import (
	"errors"
	"net/http"
	"time"

	"echomap/fieldstore/internal/syncer"
)

// RunSyncHandler handles POST /api/v1/sync. One upload at a time: a
// request while another sync is in flight gets 409 and no state changes.
func (h *Handlers) RunSyncHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		result, err := h.deps.Syncer.Run(r.Context())

		if h.deps.Metrics != nil {
			h.deps.Metrics.SyncDuration.Observe(time.Since(start).Seconds())
		}

		switch {
		case errors.Is(err, syncer.ErrSyncInProgress):
			h.countSync("rejected")
			respondWithError(w, http.StatusConflict, err.Error())
			return
		case err != nil:
			h.countSync("failed")
			respondWithError(w, http.StatusBadGateway, err.Error())
			return
		}

		h.countSync("success")
		if result.Warning != nil {
			respondWithWarning(w, http.StatusOK, &result, result.Warning.Message())
			return
		}
		respondWithSuccess(w, http.StatusOK, &result)
	}
}

// SyncStatusHandler handles GET /api/v1/sync/status
func (h *Handlers) SyncStatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := h.deps.Syncer.Status()
		respondWithSuccess(w, http.StatusOK, &status)
	}
}

func (h *Handlers) countSync(result string) {
	if h.deps.Metrics == nil {
		return
	}
	h.deps.Metrics.SyncAttemptsTotal.WithLabelValues(result).Inc()
}
