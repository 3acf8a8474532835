package migrations

import (
	"gorm.io/gorm"

	"github.com/gravadigital/prestigio-api/internal/domain/event"
	"github.com/gravadigital/prestigio-api/internal/domain/person"
)

// AllModels returns a slice of all models for migration
func AllModels() []any {
	return []any{
		&person.Person{},
		&event.Event{},
	}
}

// migration001Up creates the people and events tables using GORM AutoMigrate.
//
// There is intentionally no foreign key from events.person_id to people.id:
// the hosted backend tolerates orphaned events and the render path
// substitutes a placeholder person.
func migration001Up(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}

// migration001Down drops the core tables
func migration001Down(db *gorm.DB) error {
	tables := []string{
		"events",
		"people",
	}

	for _, table := range tables {
		if err := db.Exec("DROP TABLE IF EXISTS " + table + " CASCADE").Error; err != nil {
			return err
		}
	}

	return nil
}
