package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"logisticshub-service/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVEntry is the GORM model for persisted key-value pairs
type KVEntry struct {
	Key       string `gorm:"column:key;primaryKey"`
	Value     string `gorm:"column:value"`
	UpdatedAt time.Time
}

// TableName overrides the default table name
func (KVEntry) TableName() string {
	return "kv_entries"
}

// GormKVStore implements KVStore on a PostgreSQL table via GORM
type GormKVStore struct {
	db *gorm.DB
}

// NewGormKVStore creates a new PostgreSQL-backed key-value store
func NewGormKVStore(db *gorm.DB) (repository.KVStore, error) {
	if err := db.AutoMigrate(&KVEntry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate kv_entries: %w", err)
	}
	return &GormKVStore{
		db: db,
	}, nil
}

// Get reads the value stored under key
func (s *GormKVStore) Get(ctx context.Context, key string) (repository.ReadResult, error) {
	var entry KVEntry
	result := s.db.WithContext(ctx).Where("key = ?", key).First(&entry)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return repository.ReadResult{State: repository.ReadAbsent}, nil
	}
	if result.Error != nil {
		return repository.ReadResult{}, fmt.Errorf("failed to read key %q: %w", key, result.Error)
	}
	return normalizeStoredValue(entry.Value), nil
}

// Set upserts the value stored under key
func (s *GormKVStore) Set(ctx context.Context, key, value string) error {
	entry := KVEntry{Key: key, Value: value, UpdatedAt: time.Now()}
	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry)

	if result.Error != nil {
		return fmt.Errorf("failed to write key %q: %w", key, result.Error)
	}
	return nil
}
