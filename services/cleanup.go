// services/cleanup.go - Snapshot Retention
package services

import (
	"log"
	"time"
)

// SnapshotPruner deletes old snapshots beyond a retention count.
type SnapshotPruner interface {
	PruneSnapshots(keep int) (int64, error)
}

// CleanupService periodically prunes state snapshots so wipe/manual
// snapshots don't accumulate forever.
type CleanupService struct {
	pruner   SnapshotPruner
	keep     int
	interval time.Duration
	stop     chan struct{}
}

// NewCleanupService builds the retention worker. keep is the number of most
// recent snapshots preserved per prune.
func NewCleanupService(pruner SnapshotPruner, keep int, interval time.Duration) *CleanupService {
	if keep <= 0 {
		keep = 20
	}
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &CleanupService{
		pruner:   pruner,
		keep:     keep,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// Start runs the prune loop in the background until Stop is called.
func (s *CleanupService) Start() {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.RunOnce()
			case <-s.stop:
				return
			}
		}
	}()
}

// RunOnce performs a single prune pass.
func (s *CleanupService) RunOnce() {
	removed, err := s.pruner.PruneSnapshots(s.keep)
	if err != nil {
		log.Printf("Error pruning snapshots: %v", err)
		return
	}
	if removed > 0 {
		log.Printf("🧹 Pruned %d old snapshots", removed)
	}
}

// Stop terminates the prune loop.
func (s *CleanupService) Stop() {
	close(s.stop)
}
