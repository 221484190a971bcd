// database/state_store.go - State Blob Persistence
package database

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tracker/models"
)

// StateStore persists the whole ChallengeState as one row keyed by the
// schema-versioned storage key. It implements services.Store.
type StateStore struct {
	db  *gorm.DB
	key string
}

// NewStateStore wires the store to a database handle.
func NewStateStore(db *gorm.DB) *StateStore {
	return &StateStore{db: db, key: models.StorageKey}
}

// Load reads and decodes the blob. A missing row or a corrupt payload is
// silently recovered to defaults; only an unreachable database is an error.
func (s *StateStore) Load() (*models.ChallengeState, error) {
	var rec models.StateRecord
	err := s.db.Where("key = ?", s.key).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.DefaultState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state row: %w", err)
	}

	// DecodeState absorbs corrupt and partial payloads.
	return models.DecodeState(rec.Payload), nil
}

// Save serializes and upserts the blob.
func (s *StateStore) Save(state *models.ChallengeState) error {
	payload, err := state.Encode()
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	rec := models.StateRecord{
		Key:       s.key,
		Payload:   payload,
		UpdatedAt: time.Now().UTC(),
	}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&rec).Error
}

// Snapshot writes an immutable copy of the state with a fresh UUID.
func (s *StateStore) Snapshot(state *models.ChallengeState, reason string) (*models.StateSnapshot, error) {
	payload, err := state.Encode()
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}

	snap := models.StateSnapshot{
		ID:        uuid.New().String(),
		Key:       s.key,
		Reason:    reason,
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.db.Create(&snap).Error; err != nil {
		return nil, fmt.Errorf("write snapshot: %w", err)
	}
	log.Printf("📦 Snapshot %s written (%s)", snap.ID, reason)
	return &snap, nil
}

// ListSnapshots returns snapshots for this storage key, newest first.
// Payloads are omitted; they can be large and listings don't need them.
func (s *StateStore) ListSnapshots() ([]models.StateSnapshot, error) {
	var snaps []models.StateSnapshot
	err := s.db.
		Select("id", "key", "reason", "created_at").
		Where("key = ?", s.key).
		Order("created_at DESC").
		Find(&snaps).Error
	return snaps, err
}

// PruneSnapshots deletes all but the keep most recent snapshots.
func (s *StateStore) PruneSnapshots(keep int) (int64, error) {
	var ids []string
	err := s.db.Model(&models.StateSnapshot{}).
		Where("key = ?", s.key).
		Order("created_at DESC").
		Offset(keep).
		Pluck("id", &ids).Error
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	res := s.db.Where("id IN ?", ids).Delete(&models.StateSnapshot{})
	return res.RowsAffected, res.Error
}
