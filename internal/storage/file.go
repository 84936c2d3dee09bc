package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileSlot stores the payload as a JSON file under a data directory.
// Writes go through a temp file and rename so a crash mid-write never
// leaves a truncated collection behind.
type FileSlot struct {
	path string
}

var _ Slot = (*FileSlot)(nil)

// NewFileSlot creates the data directory if needed and returns a slot
// backed by <dir>/<key>.json.
func NewFileSlot(dir, key string) (*FileSlot, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileSlot{path: filepath.Join(dir, key+".json")}, nil
}

func (s *FileSlot) Read(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *FileSlot) Write(_ context.Context, data []byte) error {
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *FileSlot) Close() error { return nil }
