// Package storage is the key/value substrate that plays the part of browser
// local storage: every cached page state is a string under a fixed key.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/justsurfingit/automate/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Well-known keys.
const (
	KeyCachedJobs          = "cachedJobs"
	KeyCachedJobsTimestamp = "cachedJobsTimestamp"
	KeyProfile             = "automate_profile_data"
	KeyGitHubState         = "github_oauth_state"
	KeyGitHubPending       = "github_oauth_pending_profile"
)

type Store interface {
	// Get returns ok=false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, keys ...string) error
}

type GormStore struct {
	DB *gorm.DB
}

var _ Store = (*GormStore)(nil)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) Get(ctx context.Context, key string) (string, bool, error) {
	var entry models.StorageEntry
	err := s.DB.WithContext(ctx).Where("storage_key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}
	return entry.Value, true, nil
}

func (s *GormStore) Set(ctx context.Context, key, value string) error {
	entry := models.StorageEntry{Key: key, Value: value}
	err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "storage_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

func (s *GormStore) Remove(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	err := s.DB.WithContext(ctx).Where("storage_key IN ?", keys).Delete(&models.StorageEntry{}).Error
	if err != nil {
		return fmt.Errorf("remove %v: %w", keys, err)
	}
	return nil
}
