// Package leaderboard folds events into per-person totals.
package leaderboard

import (
	"sort"
	"time"

	"github.com/gravadigital/prestigio-api/internal/domain/event"
	"github.com/gravadigital/prestigio-api/internal/domain/person"
)

// Entry is one ranked row of the leaderboard
type Entry struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Avatar       string `json:"avatar"`
	Score        int    `json:"score"`
	RecentChange bool   `json:"recent_change"`
}

// Totals are the dashboard hero numbers
type Totals struct {
	People        int `json:"people"`
	Events        int `json:"events"`
	TotalPrestige int `json:"total_prestige"`
}

// Compute folds effective-live events into per-person running scores.
//
// Every registered person starts at zero. Events referencing an unknown
// person are skipped. An event dated within the trailing 24h window marks
// the person's RecentChange flag; once set it stays set for the pass.
// The result is sorted by descending score; ties keep the people input
// order (stable sort).
func Compute(people []person.Person, events []event.Event, now time.Time) []Entry {
	entries := make([]Entry, 0, len(people))
	index := make(map[string]int, len(people))
	for _, p := range people {
		index[p.ID] = len(entries)
		entries = append(entries, Entry{ID: p.ID, Name: p.Name, Avatar: p.Avatar})
	}

	for _, e := range events {
		if e.Status.Effective() != event.StatusLive {
			continue
		}
		i, ok := index[e.PersonID]
		if !ok {
			continue
		}
		entries[i].Score += e.Points
		if e.IsRecent(now) {
			entries[i].RecentChange = true
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})

	return entries
}

// ComputeTotals sums the hero stats over a computed leaderboard.
// TotalPrestige is the sum of absolute scores.
func ComputeTotals(entries []Entry, events []event.Event) Totals {
	t := Totals{People: len(entries)}
	for _, e := range events {
		if e.Status.Effective() == event.StatusLive {
			t.Events++
		}
	}
	for _, entry := range entries {
		if entry.Score < 0 {
			t.TotalPrestige -= entry.Score
		} else {
			t.TotalPrestige += entry.Score
		}
	}
	return t
}

// HistoryEntry is one row of the event history, newest first
type HistoryEntry struct {
	EventID int64  `json:"event_id"`
	Date    string `json:"date"`
	Name    string `json:"name"`
	Avatar  string `json:"avatar"`
	Points  int    `json:"points"`
	Reason  string `json:"reason"`
	Recent  bool   `json:"recent"`
}

// History lists effective-live events newest first. An event whose person is
// missing gets a placeholder name and avatar instead of being dropped; the
// hosted backend does not enforce the person reference.
func History(people []person.Person, events []event.Event, now time.Time) []HistoryEntry {
	byID := make(map[string]person.Person, len(people))
	for _, p := range people {
		byID[p.ID] = p
	}

	rows := make([]HistoryEntry, 0, len(events))
	for _, e := range events {
		if e.Status.Effective() != event.StatusLive {
			continue
		}
		name, avatar := e.PersonID, person.DefaultAvatar
		if p, ok := byID[e.PersonID]; ok {
			name, avatar = p.Name, p.Avatar
		}
		rows = append(rows, HistoryEntry{
			EventID: e.ID,
			Date:    e.Date,
			Name:    name,
			Avatar:  avatar,
			Points:  e.Points,
			Reason:  e.Reason,
			Recent:  e.IsRecent(now),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Date > rows[j].Date
	})

	return rows
}
