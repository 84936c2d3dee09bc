package api

import (
	"echomap/fieldstore/internal/cache"
	"echomap/fieldstore/internal/metrics"
	"echomap/fieldstore/internal/prefs"
	"echomap/fieldstore/internal/share"
	"echomap/fieldstore/internal/store"
	"echomap/fieldstore/internal/syncer"
)

// Dependencies bundles everything the handlers operate on.
type Dependencies struct {
	Store   *store.Store
	Syncer  *syncer.Syncer
	Prefs   *prefs.Store
	Signer  *share.Signer
	Cache   cache.Cache
	Metrics *metrics.MetricsRegistry

	// DefaultSyncEndpoint is the configured upload URL the syncer
	// returns to when the preference override is cleared.
	DefaultSyncEndpoint string
}

type Handlers struct {
	deps *Dependencies
}

// NewHandlers creates a new handlers instance with injected dependencies
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		deps: deps,
	}
}

// countOp records a store operation metric when a registry is wired.
func (h *Handlers) countOp(op string) {
	if h.deps.Metrics == nil {
		return
	}
	h.deps.Metrics.StoreOpsTotal.WithLabelValues(op).Inc()
	h.deps.Metrics.RecordsTotal.Set(float64(h.deps.Store.Len()))
}

// countWrite records the durable-write outcome of a mutating operation.
func (h *Handlers) countWrite(warn *store.Warning) {
	if h.deps.Metrics == nil {
		return
	}
	result := "ok"
	if warn != nil {
		result = "failed"
	}
	h.deps.Metrics.StorageWritesTotal.WithLabelValues(result).Inc()
}
