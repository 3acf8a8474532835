package storage

import (
	"errors"

	"github.com/gravadigital/prestigio-api/internal/domain/event"
	"github.com/gravadigital/prestigio-api/internal/domain/person"
)

var (
	// ErrPersonNotFound indicates an operation targeted a nonexistent person
	ErrPersonNotFound = errors.New("person not found")
	// ErrEventNotFound indicates an edit/delete/vote target does not exist
	ErrEventNotFound = errors.New("event not found")
)

// Snapshot is the full persisted state: every person and every event
type Snapshot struct {
	People []person.Person `json:"people"`
	Events []event.Event   `json:"events"`
}

// EventPatch carries the fields of a partial event update; nil means keep
type EventPatch struct {
	PersonID *string `json:"person_id,omitempty"`
	Date     *string `json:"date,omitempty"`
	Points   *int    `json:"points,omitempty"`
	Reason   *string `json:"reason,omitempty"`
}

// Store es el contrato común de los dos backends de persistencia.
//
// Every mutation durably persists the updated state before returning; a
// failed call leaves the store unmodified. Vote writes approvals, denials
// and status together; a partial write would be a correctness bug.
type Store interface {
	LoadAll() (*Snapshot, error)
	UpsertPerson(id, name, avatar string) (person.Person, error)
	DeletePerson(id string) (person.Person, error)
	AppendEvent(e event.Event) (event.Event, error)
	UpdateEvent(id int64, patch EventPatch) (event.Event, error)
	DeleteEvent(id int64) (event.Event, error)
	Vote(id int64, fingerprint string, choice event.Choice) (event.VoteResult, error)
}
