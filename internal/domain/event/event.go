package event

import (
	"fmt"
	"time"

	"github.com/lib/pq"
)

// DateLayout is the calendar-date format used everywhere (no time component)
const DateLayout = "2006-01-02"

// Event represents a point-valued event attributed to a person.
//
// On the relational backend the ID is a database-assigned identifier. On the
// document backend the ID is the event's array position, which is NOT stable
// across deletions of earlier elements.
type Event struct {
	ID          int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	PersonID    string         `json:"person_id" gorm:"column:person_id;not null;index"`
	Date        string         `json:"date" gorm:"not null"`
	Points      int            `json:"points" gorm:"not null"`
	Reason      string         `json:"reason" gorm:"type:text"`
	Status      Status         `json:"status,omitempty"`
	Approvals   pq.StringArray `json:"approvals,omitempty" gorm:"type:text[]"`
	Denials     pq.StringArray `json:"denials,omitempty" gorm:"type:text[]"`
	Fingerprint string         `json:"fingerprint,omitempty"`
	CreatedAt   time.Time      `json:"created_at,omitempty" gorm:"autoCreateTime"`
}

// TableName overrides the table name used by GORM
func (Event) TableName() string {
	return "events"
}

// New creates a live event. An empty date defaults to today in local time.
func New(personID string, date string, points int, reason string) Event {
	if date == "" {
		date = Today()
	}
	return Event{
		PersonID: personID,
		Date:     date,
		Points:   points,
		Reason:   reason,
		Status:   StatusLive,
	}
}

// NewProposal creates a pending event awaiting vouches. The proposing
// device's fingerprint is recorded so it cannot vote on its own proposal.
func NewProposal(personID string, date string, points int, reason, fingerprint string) Event {
	e := New(personID, date, points, reason)
	e.Status = StatusPending
	e.Approvals = pq.StringArray{}
	e.Denials = pq.StringArray{}
	e.Fingerprint = fingerprint
	return e
}

// Validate checks if the event data is valid
func (e *Event) Validate() error {
	if e.PersonID == "" {
		return fmt.Errorf("person_id is required")
	}
	if _, err := time.ParseInLocation(DateLayout, e.Date, time.Local); err != nil {
		return fmt.Errorf("date must use format %s", DateLayout)
	}
	if e.Status != "" {
		if _, valid := StatusFromString(string(e.Status)); !valid {
			return fmt.Errorf("invalid status: %s", e.Status)
		}
	}
	return nil
}

// Time anchors the event's calendar date at local noon, which keeps the
// trailing-24h recency check stable across timezone boundaries.
func (e *Event) Time() time.Time {
	t, err := time.ParseInLocation(DateLayout, e.Date, time.Local)
	if err != nil {
		return time.Time{}
	}
	return t.Add(12 * time.Hour)
}

// IsRecent reports whether the event date falls within the trailing 24h
// window relative to now.
func (e *Event) IsRecent(now time.Time) bool {
	t := e.Time()
	if t.IsZero() {
		return false
	}
	return !t.Before(now.Add(-24 * time.Hour))
}

// Today returns the current date in the local time zone
func Today() string {
	return time.Now().Format(DateLayout)
}

// Status represents the lifecycle state of an event
type Status string

const (
	// StatusLive counts toward the leaderboard. Events created before the
	// vouch feature have no status at all; treat absent as live.
	StatusLive Status = "live"
	// StatusPending awaits vouches and is excluded from totals
	StatusPending Status = "pending"
	// StatusDenied is terminal and never counts
	StatusDenied Status = "denied"
)

// StatusFromString converts a string to a Status
func StatusFromString(s string) (Status, bool) {
	switch s {
	case "", "live":
		return StatusLive, true
	case "pending":
		return StatusPending, true
	case "denied":
		return StatusDenied, true
	default:
		return StatusLive, false
	}
}

// Effective resolves the legacy empty status to live
func (s Status) Effective() Status {
	if s == "" {
		return StatusLive
	}
	return s
}

// IsTerminal reports whether no further transition can leave this status
func (s Status) IsTerminal() bool {
	eff := s.Effective()
	return eff == StatusLive || eff == StatusDenied
}
