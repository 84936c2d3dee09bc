package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// SlotRow is the GORM model for one durable key.
type SlotRow struct {
	Key       string `gorm:"column:key;primaryKey;size:190"`
	Value     []byte `gorm:"column:value;type:blob"`
	UpdatedAt time.Time
}

// TableName provides the explicit table binding for GORM.
func (SlotRow) TableName() string {
	return "storage_slots"
}

// SQLiteSlot keeps the payload in a local SQLite database. This is the
// default backend: durable, single-file, no external service.
type SQLiteSlot struct {
	db  *gorm.DB
	key string
}

var _ Slot = (*SQLiteSlot)(nil)

// NewSQLiteSlot opens (or creates) the database at path and migrates the
// slot table. Use ":memory:" for tests.
func NewSQLiteSlot(path, key string) (*SQLiteSlot, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.AutoMigrate(&SlotRow{}); err != nil {
		return nil, fmt.Errorf("migrate storage_slots: %w", err)
	}
	return &SQLiteSlot{db: db, key: key}, nil
}

func (s *SQLiteSlot) Read(ctx context.Context) ([]byte, error) {
	var row SlotRow
	err := s.db.WithContext(ctx).First(&row, "key = ?", s.key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return row.Value, nil
}

func (s *SQLiteSlot) Write(ctx context.Context, data []byte) error {
	row := SlotRow{Key: s.key, Value: data, UpdatedAt: time.Now().UTC()}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&row).Error
}

func (s *SQLiteSlot) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
