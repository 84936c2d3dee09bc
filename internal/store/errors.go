package store

import "errors"

// Sentinel errors for the recoverable store conditions. Handlers map
// these onto HTTP status codes; nothing here ever takes the process down.
var (
	// ErrValidation means a required field was missing or empty at
	// create time. Nothing is persisted.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound means the referenced record id does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrImportFormat means the import payload had no discoverable
	// record array.
	ErrImportFormat = errors.New("no records array found")
)

// Warning reports a durable-write failure that did not abort the
// in-memory mutation. In-memory state stays authoritative for the
// session; the caller surfaces the warning as a non-blocking notice.
type Warning struct {
	Cause error
}

// Message returns the caller-facing warning text.
func (w *Warning) Message() string {
	return "durable write failed: " + w.Cause.Error()
}
