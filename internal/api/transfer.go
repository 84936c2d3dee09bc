package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"echomap/fieldstore/internal/store"
)

// importBodyLimit caps import uploads; base64 photos make these large.
const importBodyLimit = 32 << 20

// ImportRecordsHandler handles POST /api/v1/records/import. The body is
// either a bare array of record-like objects or an object carrying a
// "records" or "reports" array. Existing ids are never overwritten.
func (h *Handlers) ImportRecordsHandler() http.HandlerFunc {
	type result struct {
		Received int `json:"received"`
		Added    int `json:"added"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, importBodyLimit))
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "failed to read import body")
			return
		}

		rawList, err := store.ParseImportPayload(body)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		added, warn := h.deps.Store.ImportMerge(r.Context(), rawList)

		h.countOp("import")
		h.countWrite(warn)
		out := result{Received: len(rawList), Added: added}
		if warn != nil {
			respondWithWarning(w, http.StatusOK, &out, warn.Message())
			return
		}
		respondWithSuccess(w, http.StatusOK, &out)
	}
}

// ExportRecordsHandler handles GET /api/v1/records/export and serves the
// snapshot envelope as a dated download. The body is the bare envelope,
// not the API response wrapper, so the downloaded file feeds straight
// back into import.
func (h *Handlers) ExportRecordsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot := h.deps.Store.ExportSnapshot()

		filename := fmt.Sprintf("echomap-reports-%s.json", time.Now().UTC().Format("2006-01-02"))
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
		w.Header().Set("Content-Type", "application/json")

		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		_ = enc.Encode(snapshot)
	}
}
