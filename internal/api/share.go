package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"echomap/fieldstore/internal/dispatch"
	"echomap/fieldstore/internal/models"
)

// shareTTL is how long a generated share link stays valid.
const shareTTL = 15 * time.Minute

// DispatchRoutesHandler handles GET /api/v1/dispatch/routes
func (h *Handlers) DispatchRoutesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		routes := dispatch.Routes()
		respondWithSuccess(w, http.StatusOK, &routes)
	}
}

// ShareRecordHandler handles POST /api/v1/records/{id}/share. It
// returns the formatted dispatch summary plus a signed link a responder
// can open without API access.
func (h *Handlers) ShareRecordHandler() http.HandlerFunc {
	type shareOut struct {
		Summary   string           `json:"summary"`
		Contact   dispatch.Contact `json:"contact"`
		ShareURL  string           `json:"shareUrl"`
		ExpiresIn int              `json:"expiresIn"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := h.deps.Store.Get(chi.URLParam(r, "id"))
		if err != nil {
			respondWithError(w, http.StatusNotFound, err.Error())
			return
		}

		token, err := h.deps.Signer.Issue(rec.ID, shareTTL)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to generate share token")
			return
		}

		contact := dispatch.RouteFor(rec.Category)
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}

		out := shareOut{
			Summary:   dispatch.Summary(rec, contact),
			Contact:   contact,
			ShareURL:  scheme + "://" + r.Host + "/share/" + token,
			ExpiresIn: int(shareTTL.Seconds()),
		}
		respondWithSuccess(w, http.StatusOK, &out)
	}
}

// ViewSharedHandler handles GET /share/{token}: public, token-gated
// read-only view of one record.
func (h *Handlers) ViewSharedHandler() http.HandlerFunc {
	type sharedOut struct {
		Record  models.Record    `json:"record"`
		Contact dispatch.Contact `json:"contact"`
		Summary string           `json:"summary"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		recordID, err := h.deps.Signer.Validate(chi.URLParam(r, "token"))
		if err != nil {
			respondWithError(w, http.StatusUnauthorized, "invalid or expired share token")
			return
		}

		rec, err := h.deps.Store.Get(recordID)
		if err != nil {
			respondWithError(w, http.StatusNotFound, "shared record no longer exists")
			return
		}

		contact := dispatch.RouteFor(rec.Category)
		out := sharedOut{
			Record:  rec,
			Contact: contact,
			Summary: dispatch.Summary(rec, contact),
		}
		respondWithSuccess(w, http.StatusOK, &out)
	}
}
