package workers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"echomap/fieldstore/internal/models"
	"echomap/fieldstore/internal/store"
	"echomap/fieldstore/internal/syncer"
)

type countingCollection struct {
	pending int
	marked  bool
}

func (c *countingCollection) ExportSnapshot() models.Snapshot {
	return models.Snapshot{Version: models.SnapshotVersion, ExportedAt: models.NowMillis()}
}

func (c *countingCollection) PendingCount() int { return c.pending }

func (c *countingCollection) MarkSynced(context.Context, int64) *store.Warning {
	c.marked = true
	c.pending = 0
	return nil
}

func TestTick_NoPendingDoesNothing(t *testing.T) {
	uploads := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uploads++
	}))
	defer server.Close()

	collection := &countingCollection{pending: 0}
	s := syncer.New(collection, server.URL, time.Second, "test")
	w := NewAutoSyncWorker(s, collection, 0)

	w.tick(context.Background())
	if uploads != 0 {
		t.Errorf("uploaded %d times with nothing pending", uploads)
	}
}

func TestTick_SyncsPendingRecords(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	collection := &countingCollection{pending: 3}
	s := syncer.New(collection, server.URL, time.Second, "test")
	w := NewAutoSyncWorker(s, collection, 0)

	w.tick(context.Background())
	if !collection.marked {
		t.Error("pending records not synced")
	}
}

func TestTick_MinGapThrottlesRetries(t *testing.T) {
	uploads := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uploads++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	collection := &countingCollection{pending: 1}
	s := syncer.New(collection, server.URL, time.Second, "test")
	w := NewAutoSyncWorker(s, collection, time.Hour)

	w.tick(context.Background())
	w.tick(context.Background())
	if uploads != 1 {
		t.Errorf("expected 1 upload within the gap, got %d", uploads)
	}
}
