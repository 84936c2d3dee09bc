package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"echomap/fieldstore/internal/models"
	"echomap/fieldstore/internal/store"
)

// CreateRecordHandler handles POST /api/v1/records
func (h *Handlers) CreateRecordHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var draft models.Draft
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		rec, warn, err := h.deps.Store.Create(r.Context(), draft)
		if errors.Is(err, store.ErrValidation) {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		h.countOp("create")
		h.countWrite(warn)
		if warn != nil {
			respondWithWarning(w, http.StatusCreated, &rec, warn.Message())
			return
		}
		respondWithSuccess(w, http.StatusCreated, &rec)
	}
}

// ListRecordsHandler handles GET /api/v1/records with an optional
// ?category= filter.
func (h *Handlers) ListRecordsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var filter *models.Category
		if v := r.URL.Query().Get("category"); v != "" && v != "all" {
			c := models.Category(v)
			filter = &c
		}

		records := h.deps.Store.List(filter)
		respondWithSuccess(w, http.StatusOK, &records)
	}
}

// GetRecordHandler handles GET /api/v1/records/{id}
func (h *Handlers) GetRecordHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := h.deps.Store.Get(chi.URLParam(r, "id"))
		if err != nil {
			respondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		respondWithSuccess(w, http.StatusOK, &rec)
	}
}

// UpdateRecordHandler handles PATCH /api/v1/records/{id}
func (h *Handlers) UpdateRecordHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var patch models.Patch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		rec, warn, err := h.deps.Store.Update(r.Context(), chi.URLParam(r, "id"), patch)
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		h.countOp("update")
		h.countWrite(warn)
		if warn != nil {
			respondWithWarning(w, http.StatusOK, &rec, warn.Message())
			return
		}
		respondWithSuccess(w, http.StatusOK, &rec)
	}
}

// DeleteRecordHandler handles DELETE /api/v1/records/{id}. Deleting an
// unknown id still succeeds; the operation is idempotent.
func (h *Handlers) DeleteRecordHandler() http.HandlerFunc {
	type deleted struct {
		ID string `json:"id"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		warn := h.deps.Store.Delete(r.Context(), id)

		h.countOp("delete")
		h.countWrite(warn)
		out := deleted{ID: id}
		if warn != nil {
			respondWithWarning(w, http.StatusOK, &out, warn.Message())
			return
		}
		respondWithSuccess(w, http.StatusOK, &out)
	}
}

// ToggleStatusHandler handles POST /api/v1/records/{id}/status
func (h *Handlers) ToggleStatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, warn, err := h.deps.Store.ToggleStatus(r.Context(), chi.URLParam(r, "id"))
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		h.countOp("toggle_status")
		h.countWrite(warn)
		if warn != nil {
			respondWithWarning(w, http.StatusOK, &rec, warn.Message())
			return
		}
		respondWithSuccess(w, http.StatusOK, &rec)
	}
}
