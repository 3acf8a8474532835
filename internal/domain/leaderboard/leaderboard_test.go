package leaderboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gravadigital/prestigio-api/internal/domain/event"
	"github.com/gravadigital/prestigio-api/internal/domain/person"
)

var testNow = time.Date(2026, 8, 30, 10, 0, 0, 0, time.Local)

func testPeople() []person.Person {
	return []person.Person{
		{ID: "alice", Name: "Alice", Avatar: "🐱"},
		{ID: "bob", Name: "Bob", Avatar: "🐶"},
		{ID: "carol", Name: "Carol", Avatar: "🦊"},
	}
}

func TestCompute_SumsAndSorts(t *testing.T) {
	events := []event.Event{
		event.New("alice", "2026-08-01", 500, "Aced the exam"),
		event.New("alice", "2026-08-02", -700, "Forgot my birthday"),
		event.New("bob", "2026-08-03", 300, "Helped move"),
	}

	entries := Compute(testPeople(), events, testNow)

	assert.Len(t, entries, 3)
	assert.Equal(t, "bob", entries[0].ID)
	assert.Equal(t, 300, entries[0].Score)
	assert.Equal(t, "carol", entries[1].ID)
	assert.Equal(t, 0, entries[1].Score)
	assert.Equal(t, "alice", entries[2].ID)
	assert.Equal(t, -200, entries[2].Score)
}

func TestCompute_RegisteredPersonWithNoEventsScoresZero(t *testing.T) {
	entries := Compute(testPeople(), nil, testNow)

	assert.Len(t, entries, 3)
	for _, entry := range entries {
		assert.Equal(t, 0, entry.Score)
		assert.False(t, entry.RecentChange)
	}
}

func TestCompute_SkipsNonLiveEvents(t *testing.T) {
	pending := event.NewProposal("alice", "2026-08-01", 1000, "dubious", "fp-1")
	denied := event.New("alice", "2026-08-01", 1000, "rejected")
	denied.Status = event.StatusDenied
	legacy := event.New("alice", "2026-08-01", 100, "old")
	legacy.Status = ""

	entries := Compute(testPeople(), []event.Event{pending, denied, legacy}, testNow)

	// only the legacy (status-less, hence live) event counts
	assert.Equal(t, "alice", entries[0].ID)
	assert.Equal(t, 100, entries[0].Score)
}

func TestCompute_SkipsUnknownPerson(t *testing.T) {
	events := []event.Event{event.New("ghost", "2026-08-01", 999, "from nowhere")}

	entries := Compute(testPeople(), events, testNow)

	for _, entry := range entries {
		assert.Equal(t, 0, entry.Score)
	}
}

func TestCompute_RecentChangeFlagIsMonotonic(t *testing.T) {
	events := []event.Event{
		event.New("alice", "2026-08-30", 10, "today"),
		event.New("alice", "2026-08-01", 10, "weeks ago"),
	}

	entries := Compute(testPeople(), events, testNow)

	var alice Entry
	for _, entry := range entries {
		if entry.ID == "alice" {
			alice = entry
		}
	}
	// the old event must not clear the flag the recent one set
	assert.True(t, alice.RecentChange)
}

func TestCompute_TiesKeepInputOrder(t *testing.T) {
	entries := Compute(testPeople(), nil, testNow)

	assert.Equal(t, "alice", entries[0].ID)
	assert.Equal(t, "bob", entries[1].ID)
	assert.Equal(t, "carol", entries[2].ID)
}

func TestComputeTotals(t *testing.T) {
	events := []event.Event{
		event.New("alice", "2026-08-01", 500, "up"),
		event.New("alice", "2026-08-02", -700, "down"),
		event.New("bob", "2026-08-03", 300, "up"),
		event.NewProposal("bob", "2026-08-03", 9999, "pending", "fp-1"),
	}
	entries := Compute(testPeople(), events, testNow)

	totals := ComputeTotals(entries, events)

	assert.Equal(t, 3, totals.People)
	assert.Equal(t, 3, totals.Events)
	// |-200| + |300| + |0|
	assert.Equal(t, 500, totals.TotalPrestige)
}

func TestHistory(t *testing.T) {
	events := []event.Event{
		event.New("alice", "2026-08-01", 500, "older"),
		event.New("bob", "2026-08-15", 300, "newer"),
		event.NewProposal("alice", "2026-08-20", 50, "pending", "fp-1"),
	}

	rows := History(testPeople(), events, testNow)

	assert.Len(t, rows, 2)
	assert.Equal(t, "newer", rows[0].Reason)
	assert.Equal(t, "Bob", rows[0].Name)
	assert.Equal(t, "older", rows[1].Reason)
}

func TestHistory_OrphanEventGetsPlaceholder(t *testing.T) {
	events := []event.Event{event.New("ghost", "2026-08-01", 100, "orphan")}

	rows := History(testPeople(), events, testNow)

	assert.Len(t, rows, 1)
	assert.Equal(t, "ghost", rows[0].Name)
	assert.Equal(t, person.DefaultAvatar, rows[0].Avatar)
}
