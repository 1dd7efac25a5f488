package kv

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/mateorivas/brewcart/pkg/config"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type profileEntry struct {
	Key   string `gorm:"column:key;primaryKey"`
	Value string `gorm:"column:value"`
}

func (profileEntry) TableName() string {
	return "profile_entries"
}

// SQLite persists the client profile in a single on-disk table. It is the
// default backend: one file per machine, no daemon to run.
type SQLite struct {
	conn *gorm.DB
}

// NewSQLite opens (and migrates) the profile database at the configured path.
func NewSQLite(cfg config.StoreConfig) (*SQLite, error) {
	if cfg.SQLitePath == "" {
		return nil, fmt.Errorf("sqlite store path is required")
	}

	gormLogger := gormlogger.New(
		log.New(io.Discard, "", log.LstdFlags),
		gormlogger.Config{LogLevel: gormlogger.Silent},
	)

	conn, err := gorm.Open(sqlite.Open(cfg.SQLitePath), &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening profile db: %w", err)
	}

	if err := conn.AutoMigrate(&profileEntry{}); err != nil {
		return nil, fmt.Errorf("migrating profile db: %w", err)
	}

	return &SQLite{conn: conn}, nil
}

func (s *SQLite) Get(ctx context.Context, key string) (string, error) {
	var entry profileEntry
	err := s.conn.WithContext(ctx).First(&entry, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("reading profile key %q: %w", key, err)
	}
	return entry.Value, nil
}

func (s *SQLite) Set(ctx context.Context, key, value string) error {
	entry := profileEntry{Key: key, Value: value}
	err := s.conn.WithContext(ctx).Save(&entry).Error
	if err != nil {
		return fmt.Errorf("writing profile key %q: %w", key, err)
	}
	return nil
}

func (s *SQLite) Delete(ctx context.Context, key string) error {
	err := s.conn.WithContext(ctx).Delete(&profileEntry{}, "key = ?", key).Error
	if err != nil {
		return fmt.Errorf("deleting profile key %q: %w", key, err)
	}
	return nil
}

// Close shuts down the pooled connections.
func (s *SQLite) Close() error {
	sqlDB, err := s.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
