package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

const createSlotsTable = `
CREATE TABLE IF NOT EXISTS storage_slots (
	key        TEXT PRIMARY KEY,
	value      BYTEA NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PostgresSlot keeps the payload in a Postgres table, for deployments
// where several field stations report into one shared database.
type PostgresSlot struct {
	db  *sqlx.DB
	key string
}

var _ Slot = (*PostgresSlot)(nil)

// NewPostgresSlot connects with a short retry loop (the database may
// still be starting alongside the service) and ensures the slot table.
func NewPostgresSlot(dsn, key string) (*PostgresSlot, error) {
	var db *sqlx.DB
	var err error
	for i := 0; i < 10; i++ {
		db, err = sqlx.Connect("postgres", dsn)
		if err == nil {
			break
		}
		time.Sleep(500 * time.Millisecond)
	}
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(createSlotsTable); err != nil {
		db.Close()
		return nil, err
	}
	return &PostgresSlot{db: db, key: key}, nil
}

func (s *PostgresSlot) Read(ctx context.Context) ([]byte, error) {
	var value []byte
	err := s.db.GetContext(ctx, &value, "SELECT value FROM storage_slots WHERE key = $1", s.key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (s *PostgresSlot) Write(ctx context.Context, data []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO storage_slots (key, value, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		s.key, data)
	return err
}

func (s *PostgresSlot) Close() error { return s.db.Close() }
