// models/storage.go - Persistence Row Models
package models

import (
	"time"
)

// StateRecord holds one serialized ChallengeState blob, keyed by the
// schema-versioned storage key.
type StateRecord struct {
	Key       string    `json:"key" gorm:"primaryKey;size:64"`
	Payload   []byte    `json:"-" gorm:"type:jsonb;not null"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StateSnapshot is an immutable copy of the blob, written before destructive
// actions and on demand, so a wipe is recoverable.
type StateSnapshot struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	Key       string    `json:"key" gorm:"size:64;index"`
	Reason    string    `json:"reason" gorm:"size:50"`
	Payload   []byte    `json:"-" gorm:"type:jsonb;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// AssetEntry is one cached response of the offline asset cache. CacheName
// encodes the cache version; activation purges every row with a stale name.
type AssetEntry struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	CacheName   string    `json:"cache_name" gorm:"size:100;uniqueIndex:idx_asset_cache_path"`
	Path        string    `json:"path" gorm:"size:255;uniqueIndex:idx_asset_cache_path"`
	ContentType string    `json:"content_type" gorm:"size:100"`
	Body        []byte    `json:"-" gorm:"not null"`
	StoredAt    time.Time `json:"stored_at"`
}

func (StateRecord) TableName() string {
	return "app_states"
}

func (StateSnapshot) TableName() string {
	return "state_snapshots"
}

func (AssetEntry) TableName() string {
	return "asset_entries"
}
