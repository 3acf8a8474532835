//go:build integration
// +build integration

package postgres

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravadigital/prestigio-api/internal/config"
	"github.com/gravadigital/prestigio-api/internal/domain/event"
	"github.com/gravadigital/prestigio-api/internal/storage"
)

// Integration tests that require a real PostgreSQL database
// Run with: go test -tags=integration

func testStore(t *testing.T) *Store {
	t.Helper()

	cfg := config.Load()
	if testDB := os.Getenv("TEST_DB_NAME"); testDB != "" {
		cfg.DB.Name = testDB
	}

	db, err := Connect(cfg)
	require.NoError(t, err, "Should be able to connect to test database")
	require.NoError(t, AutoMigrate(db), "Should be able to run migrations")

	t.Cleanup(func() {
		db.Exec("DELETE FROM events")
		db.Exec("DELETE FROM people")
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	return NewStore(db)
}

func TestPostgresPersonLifecycle(t *testing.T) {
	s := testStore(t)

	p, err := s.UpsertPerson("alice", "Alice", "🐱")
	require.NoError(t, err)
	assert.Equal(t, "alice", p.ID)

	// upsert overwrites
	p, err = s.UpsertPerson("alice", "Alicia", "🐯")
	require.NoError(t, err)
	assert.Equal(t, "Alicia", p.Name)

	snap, err := s.LoadAll()
	require.NoError(t, err)
	require.Len(t, snap.People, 1)
	assert.Equal(t, "Alicia", snap.People[0].Name)

	_, err = s.DeletePerson("alice")
	require.NoError(t, err)
	_, err = s.DeletePerson("alice")
	assert.ErrorIs(t, err, storage.ErrPersonNotFound)
}

func TestPostgresEventLifecycle(t *testing.T) {
	s := testStore(t)
	_, err := s.UpsertPerson("alice", "Alice", "")
	require.NoError(t, err)

	created, err := s.AppendEvent(event.New("alice", "2026-08-29", 500, "Aced the exam"))
	require.NoError(t, err)
	assert.NotZero(t, created.ID, "database should assign the id")

	points := 450
	updated, err := s.UpdateEvent(created.ID, storage.EventPatch{Points: &points})
	require.NoError(t, err)
	assert.Equal(t, 450, updated.Points)

	_, err = s.DeleteEvent(created.ID)
	require.NoError(t, err)
	_, err = s.DeleteEvent(created.ID)
	assert.ErrorIs(t, err, storage.ErrEventNotFound)
}

func TestPostgresVouchFlow(t *testing.T) {
	s := testStore(t)
	_, err := s.UpsertPerson("alice", "Alice", "")
	require.NoError(t, err)

	created, err := s.AppendEvent(event.NewProposal("alice", "2026-08-29", 500, "claim", "fp-creator"))
	require.NoError(t, err)

	result, err := s.Vote(created.ID, "fp-1", event.ChoiceApprove)
	require.NoError(t, err)
	assert.True(t, result.Recorded)

	result, err = s.Vote(created.ID, "fp-2", event.ChoiceApprove)
	require.NoError(t, err)
	assert.True(t, result.Transitioned)
	assert.Equal(t, event.StatusLive, result.Status)

	// the vote sets and status survived the round trip
	snap, err := s.LoadAll()
	require.NoError(t, err)
	require.Len(t, snap.Events, 1)
	assert.Equal(t, event.StatusLive, snap.Events[0].Status)
	assert.Len(t, snap.Events[0].Approvals, 2)
}

func TestPostgresOrphanEventsSurviveWithoutPerson(t *testing.T) {
	s := testStore(t)
	_, err := s.UpsertPerson("alice", "Alice", "")
	require.NoError(t, err)

	// no reference enforcement: events for unknown people are accepted
	_, err = s.AppendEvent(event.New("ghost", "2026-08-29", 100, "orphan"))
	assert.NoError(t, err)
}
