package migrations

import "gorm.io/gorm"

// migration002Up creates performance indexes
func migration002Up(db *gorm.DB) error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_events_person ON events(person_id)",
		"CREATE INDEX IF NOT EXISTS idx_events_status ON events(status)",
		"CREATE INDEX IF NOT EXISTS idx_events_created_at ON events(created_at)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			return err
		}
	}

	return nil
}

// migration002Down drops the performance indexes
func migration002Down(db *gorm.DB) error {
	indexes := []string{
		"DROP INDEX IF EXISTS idx_events_person",
		"DROP INDEX IF EXISTS idx_events_status",
		"DROP INDEX IF EXISTS idx_events_created_at",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			return err
		}
	}

	return nil
}
