// database/migrate.go - Database Migration Runner
package database

import (
	"log"

	"tracker/models"
)

// RunMigrations runs all database migrations
func RunMigrations() {
	db := GetDB()
	log.Println("🔄 Running database migrations...")

	if err := db.AutoMigrate(
		&models.StateRecord{},
		&models.StateSnapshot{},
		&models.AssetEntry{},
	); err != nil {
		log.Fatalf("❌ Failed to run migrations: %v", err)
	}

	// Index for the retention/listing scans
	db.Exec("CREATE INDEX IF NOT EXISTS idx_state_snapshots_created ON state_snapshots(created_at DESC)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_asset_entries_cache ON asset_entries(cache_name)")

	log.Println("✅ Migrations completed")
}
