// Package workers holds the background loops that run beside the HTTP
// surface.
package workers

import (
	"context"
	"errors"
	"time"

	"echomap/fieldstore/internal/logging"
	"echomap/fieldstore/internal/syncer"
)

// PendingCounter is the slice of the store the worker polls.
type PendingCounter interface {
	PendingCount() int
}

// AutoSyncWorker periodically pushes pending records to the remote
// endpoint so a station left unattended still drains its backlog.
type AutoSyncWorker struct {
	syncer  *syncer.Syncer
	store   PendingCounter
	minGap  time.Duration
	lastRun time.Time
}

// NewAutoSyncWorker creates the worker. minGap bounds how soon after a
// failed attempt the next one may start.
func NewAutoSyncWorker(s *syncer.Syncer, store PendingCounter, minGap time.Duration) *AutoSyncWorker {
	return &AutoSyncWorker{syncer: s, store: store, minGap: minGap}
}

// Start runs the loop until the context is cancelled. A tick with no
// pending records is a no-op; a sync already in flight is skipped, not
// queued.
func (w *AutoSyncWorker) Start(ctx context.Context, interval time.Duration) {
	logging.Info("auto-sync worker started", "interval", interval.String())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logging.Info("auto-sync worker shutting down")
			return
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

func (w *AutoSyncWorker) tick(ctx context.Context) {
	if w.store.PendingCount() == 0 {
		return
	}
	if !w.lastRun.IsZero() && time.Since(w.lastRun) < w.minGap {
		return
	}
	w.lastRun = time.Now()

	result, err := w.syncer.Run(ctx)
	switch {
	case errors.Is(err, syncer.ErrSyncInProgress):
		return
	case err != nil:
		logging.Warn("auto-sync attempt failed", "error", err.Error())
		return
	}

	logging.Info("auto-sync completed",
		"records", result.ReportCount,
		"synced_at", result.SyncedAt,
	)
}
