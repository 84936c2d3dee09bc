// Package syncer pushes the full record collection to a remote endpoint
// as one batch upload. Sync state is collection-level: an explicit
// idle / in-flight / failed machine with a guard against overlapping
// uploads, never per-record partial state.
package syncer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"sync"
	"time"

	"echomap/fieldstore/internal/logging"
	"echomap/fieldstore/internal/models"
	"echomap/fieldstore/internal/store"
)

var (
	// ErrSyncInProgress rejects a sync requested while one is already
	// outstanding. No state changes.
	ErrSyncInProgress = errors.New("sync already in flight")

	// ErrSyncFailed wraps a transport error, timeout or non-2xx
	// response. Pending flags stay set; retry is the caller's call.
	ErrSyncFailed = errors.New("sync failed")
)

// State is one arm of the sync state machine.
type State string

const (
	StateIdle     State = "idle"
	StateInFlight State = "in_flight"
	StateFailed   State = "failed"
)

// Collection is the slice of the record store the syncer needs.
type Collection interface {
	ExportSnapshot() models.Snapshot
	PendingCount() int
	MarkSynced(ctx context.Context, ts int64) *store.Warning
}

// Payload is the upload body, shape-compatible with what the field
// clients have always posted.
type Payload struct {
	SentAt       int64           `json:"sentAt"`
	ReportCount  int             `json:"reportCount"`
	PendingCount int             `json:"pendingCount"`
	Reports      []models.Record `json:"reports"`
	Device       DeviceInfo      `json:"device"`
}

// DeviceInfo identifies the uploading station.
type DeviceInfo struct {
	UserAgent string `json:"userAgent"`
	Language  string `json:"language"`
}

// Result reports a completed sync. Warning carries a durable-write
// failure from marking the records synced.
type Result struct {
	SyncedAt    int64          `json:"syncedAt"`
	ReportCount int            `json:"reportCount"`
	Warning     *store.Warning `json:"-"`
}

// Status is the externally visible machine state.
type Status struct {
	State        State  `json:"state"`
	LastError    string `json:"lastError,omitempty"`
	LastSyncedAt *int64 `json:"lastSyncedAt"`
	PendingCount int    `json:"pendingCount"`
}

// Syncer runs at most one upload at a time against the configured
// endpoint. Store operations stay available during an in-flight sync;
// the snapshot is taken before any network I/O.
type Syncer struct {
	collection Collection
	client     *http.Client
	agent      string
	language   string

	mu           sync.Mutex
	endpoint     string
	state        State
	lastError    string
	lastSyncedAt *int64
}

// New builds a syncer with a bounded per-attempt timeout.
func New(collection Collection, endpoint string, timeout time.Duration, version string) *Syncer {
	return &Syncer{
		collection: collection,
		client:     &http.Client{Timeout: timeout},
		agent:      fmt.Sprintf("fieldstore/%s (%s)", version, runtime.GOOS),
		language:   "en-US",
		endpoint:   endpoint,
		state:      StateIdle,
	}
}

// Endpoint returns the current upload URL.
func (s *Syncer) Endpoint() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.endpoint
}

// SetEndpoint changes the upload URL for subsequent syncs.
func (s *Syncer) SetEndpoint(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.endpoint = url
}

// Status reports the current machine state plus the pending count.
func (s *Syncer) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{
		State:        s.state,
		LastError:    s.lastError,
		LastSyncedAt: s.lastSyncedAt,
		PendingCount: s.collection.PendingCount(),
	}
}

// Run performs one full-collection upload. A second call while one is
// in flight returns ErrSyncInProgress immediately. On any failure the
// machine lands in StateFailed with the reason and the store is left
// untouched.
func (s *Syncer) Run(ctx context.Context) (Result, error) {
	s.mu.Lock()
	if s.state == StateInFlight {
		s.mu.Unlock()
		return Result{}, ErrSyncInProgress
	}
	s.state = StateInFlight
	s.lastError = ""
	endpoint := s.endpoint
	s.mu.Unlock()

	snapshot := s.collection.ExportSnapshot()
	payload := Payload{
		SentAt:       models.NowMillis(),
		ReportCount:  len(snapshot.Records),
		PendingCount: s.collection.PendingCount(),
		Reports:      snapshot.Records,
		Device:       DeviceInfo{UserAgent: s.agent, Language: s.language},
	}

	if err := s.upload(ctx, endpoint, payload); err != nil {
		s.fail(err)
		return Result{}, fmt.Errorf("%w: %v", ErrSyncFailed, err)
	}

	syncedAt := models.NowMillis()
	warn := s.collection.MarkSynced(ctx, syncedAt)

	s.mu.Lock()
	s.state = StateIdle
	s.lastSyncedAt = &syncedAt
	s.mu.Unlock()

	logging.Info("sync completed",
		"endpoint", endpoint,
		"records", payload.ReportCount,
		"synced_at", syncedAt,
	)
	return Result{SyncedAt: syncedAt, ReportCount: payload.ReportCount, Warning: warn}, nil
}

func (s *Syncer) upload(ctx context.Context, endpoint string, payload Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", s.agent)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return nil
}

func (s *Syncer) fail(cause error) {
	s.mu.Lock()
	s.state = StateFailed
	s.lastError = cause.Error()
	s.mu.Unlock()

	logging.Warn("sync failed, pending flags kept", "error", cause.Error())
}
