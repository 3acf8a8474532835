// Command migrate moves the local JSON document store into the hosted
// PostgreSQL backend: schema migrations first, then a one-time copy of
// people (merge-duplicates) and events (order preserved).
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gravadigital/prestigio-api/internal/config"
	"github.com/gravadigital/prestigio-api/internal/logger"
	"github.com/gravadigital/prestigio-api/internal/storage/document"
	"github.com/gravadigital/prestigio-api/internal/storage/migrations"
	"github.com/gravadigital/prestigio-api/internal/storage/postgres"
)

func main() {
	cfg := config.Load()

	logger.Initialize(cfg.LogLevel)
	log := logger.Migration()

	rollback := flag.Bool("rollback", false, "Rollback the last schema migration")
	dryRun := flag.Bool("dry-run", false, "Report what would be copied without writing")
	dataFile := flag.String("data", cfg.Storage.DataFile, "Path to the local data file")
	flag.Parse()

	log.Info("Starting migration process", "rollback", *rollback, "dry_run", *dryRun)

	db, err := postgres.Connect(cfg)
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if *rollback {
		log.Info("Rolling back schema migrations...")
		if err := migrations.RollbackMigration(db); err != nil {
			log.Error("Migration rollback failed", "error", err)
			os.Exit(1)
		}
		log.Info("Migration rollback completed successfully")
		return
	}

	log.Info("Running schema migrations...")
	if err := migrations.RunMigrations(db); err != nil {
		log.Error("Schema migration failed", "error", err)
		os.Exit(1)
	}

	snapshot, err := document.New(*dataFile).LoadAll()
	if err != nil {
		log.Error("Failed to load local data", "path", *dataFile, "error", err)
		os.Exit(1)
	}

	log.Info("Loaded local data", "people", len(snapshot.People), "events", len(snapshot.Events))

	if *dryRun {
		log.Info("Dry run, nothing written")
		return
	}

	target := postgres.NewStore(db)

	for _, p := range snapshot.People {
		if _, err := target.UpsertPerson(p.ID, p.Name, p.Avatar); err != nil {
			log.Error("Failed to migrate person", "id", p.ID, "error", err)
			os.Exit(1)
		}
	}
	log.Info("People migrated", "count", len(snapshot.People))

	for _, e := range snapshot.Events {
		if _, err := target.AppendEvent(e); err != nil {
			log.Error("Failed to migrate event", "index", e.ID, "error", err)
			os.Exit(1)
		}
	}
	log.Info("Events migrated", "count", len(snapshot.Events))

	fmt.Println("Migration process completed!")
}
