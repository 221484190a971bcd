// database/cache_store.go - Asset Cache Persistence
package database

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tracker/models"
)

// CacheStore persists offline asset cache entries. It implements
// services.CacheStore.
type CacheStore struct {
	db *gorm.DB
}

// NewCacheStore wires the cache store to a database handle.
func NewCacheStore(db *gorm.DB) *CacheStore {
	return &CacheStore{db: db}
}

// Get returns the entry for a cache name and path, or nil on a miss.
func (s *CacheStore) Get(cacheName, path string) (*models.AssetEntry, error) {
	var entry models.AssetEntry
	err := s.db.Where("cache_name = ? AND path = ?", cacheName, path).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Put upserts an entry on (cache_name, path).
func (s *CacheStore) Put(entry *models.AssetEntry) error {
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cache_name"}, {Name: "path"}},
		DoUpdates: clause.AssignmentColumns([]string{"content_type", "body", "stored_at"}),
	}).Create(entry).Error
}

// List returns every entry of one cache generation.
func (s *CacheStore) List(cacheName string) ([]models.AssetEntry, error) {
	var entries []models.AssetEntry
	err := s.db.Where("cache_name = ?", cacheName).Find(&entries).Error
	return entries, err
}

// PurgeExcept deletes every entry not belonging to the given cache name.
func (s *CacheStore) PurgeExcept(cacheName string) (int64, error) {
	res := s.db.Where("cache_name <> ?", cacheName).Delete(&models.AssetEntry{})
	return res.RowsAffected, res.Error
}
