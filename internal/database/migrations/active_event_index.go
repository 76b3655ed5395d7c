package migrations

import (
	"gorm.io/gorm"
)

// The partial unique index is the storage-level guarantee behind the
// single-active-session invariant: a second insert with a null stop_time
// for the same user fails at the database even if the per-user locking in
// the service layer is bypassed.
func init() {
	Register("001_active_event_unique",
		func(db *gorm.DB) error {
			return db.Exec(
				`CREATE UNIQUE INDEX IF NOT EXISTS idx_fasting_events_one_active_per_user
				 ON fasting_events (user_id) WHERE stop_time IS NULL`,
			).Error
		},
		func(db *gorm.DB) error {
			return db.Exec(`DROP INDEX IF EXISTS idx_fasting_events_one_active_per_user`).Error
		},
	)
}
