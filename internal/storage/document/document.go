// Package document implements the single-file JSON store.
//
// Semantics are whole-read/whole-write: every mutation reads the full
// document, changes it in memory and rewrites the file. A single handle
// serializes its own mutations behind a mutex, but two independent handles
// on the same file race read-modify-write cycles and the last writer wins.
package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/lib/pq"

	"github.com/gravadigital/prestigio-api/internal/domain/event"
	"github.com/gravadigital/prestigio-api/internal/domain/person"
	"github.com/gravadigital/prestigio-api/internal/logger"
	"github.com/gravadigital/prestigio-api/internal/storage"
)

// Store is a document-backed storage.Store
type Store struct {
	path string
	mu   sync.Mutex
	log  *log.Logger
}

// New creates a document store rooted at the given file path
func New(path string) *Store {
	return &Store{
		path: path,
		log:  logger.Store("document"),
	}
}

type documentPerson struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// documentEvent mirrors the on-disk event shape. The "id" key holds the
// person slug; the event's own identifier is its array position.
type documentEvent struct {
	PersonID    string   `json:"id"`
	Date        string   `json:"date"`
	Points      int      `json:"points"`
	Reason      string   `json:"reason"`
	Status      string   `json:"status,omitempty"`
	Approvals   []string `json:"approvals,omitempty"`
	Denials     []string `json:"denials,omitempty"`
	Fingerprint string   `json:"fingerprint,omitempty"`
}

type document struct {
	People map[string]documentPerson `json:"people"`
	Events []documentEvent           `json:"events"`
}

func (s *Store) load() (*document, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		doc := &document{People: map[string]documentPerson{}, Events: []documentEvent{}}
		if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		if err := s.save(doc); err != nil {
			return nil, err
		}
		s.log.Debug("Initialized empty data file", "path", s.path)
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}

	doc := &document{}
	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, fmt.Errorf("failed to parse data file: %w", err)
	}
	if doc.People == nil {
		doc.People = map[string]documentPerson{}
	}
	return doc, nil
}

// save rewrites the entire file, pretty-printed with a trailing newline
func (s *Store) save(doc *document) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode data file: %w", err)
	}
	if err := os.WriteFile(s.path, append(raw, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write data file: %w", err)
	}
	return nil
}

// LoadAll returns every person and event. People come back sorted by id;
// events keep their array order, with the array position as the event id.
func (s *Store) LoadAll() (*storage.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}

	people := make([]person.Person, 0, len(doc.People))
	for id, p := range doc.People {
		people = append(people, person.Person{ID: id, Name: p.Name, Avatar: p.Avatar})
	}
	sort.Slice(people, func(i, j int) bool { return people[i].ID < people[j].ID })

	events := make([]event.Event, 0, len(doc.Events))
	for i, e := range doc.Events {
		events = append(events, toDomain(int64(i), e))
	}

	return &storage.Snapshot{People: people, Events: events}, nil
}

// UpsertPerson registers or re-registers a person; re-registration
// overwrites name and avatar
func (s *Store) UpsertPerson(id, name, avatar string) (person.Person, error) {
	p, err := person.New(id, name, avatar)
	if err != nil {
		return person.Person{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return person.Person{}, err
	}

	doc.People[p.ID] = documentPerson{Name: p.Name, Avatar: p.Avatar}
	if err := s.save(doc); err != nil {
		return person.Person{}, err
	}

	s.log.Debug("Upserted person", "id", p.ID, "name", p.Name)
	return p, nil
}

// DeletePerson removes the person and cascades to every event that
// references them
func (s *Store) DeletePerson(id string) (person.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return person.Person{}, err
	}

	existing, ok := doc.People[id]
	if !ok {
		return person.Person{}, storage.ErrPersonNotFound
	}

	delete(doc.People, id)
	kept := doc.Events[:0]
	removed := 0
	for _, e := range doc.Events {
		if e.PersonID == id {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	doc.Events = kept

	if err := s.save(doc); err != nil {
		return person.Person{}, err
	}

	s.log.Info("Deleted person", "id", id, "cascaded_events", removed)
	return person.Person{ID: id, Name: existing.Name, Avatar: existing.Avatar}, nil
}

// AppendEvent appends an event. The referenced person must already exist.
func (s *Store) AppendEvent(e event.Event) (event.Event, error) {
	if err := e.Validate(); err != nil {
		return event.Event{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return event.Event{}, err
	}

	if _, ok := doc.People[e.PersonID]; !ok {
		return event.Event{}, storage.ErrPersonNotFound
	}

	doc.Events = append(doc.Events, fromDomain(e))
	if err := s.save(doc); err != nil {
		return event.Event{}, err
	}

	e.ID = int64(len(doc.Events) - 1)
	s.log.Debug("Appended event", "index", e.ID, "person", e.PersonID, "points", e.Points)
	return e, nil
}

// UpdateEvent applies a partial update to the event at the given index
func (s *Store) UpdateEvent(id int64, patch storage.EventPatch) (event.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return event.Event{}, err
	}

	if id < 0 || id >= int64(len(doc.Events)) {
		return event.Event{}, storage.ErrEventNotFound
	}

	e := doc.Events[id]
	if patch.PersonID != nil {
		if _, ok := doc.People[*patch.PersonID]; !ok {
			return event.Event{}, storage.ErrPersonNotFound
		}
		e.PersonID = *patch.PersonID
	}
	if patch.Date != nil {
		e.Date = *patch.Date
	}
	if patch.Points != nil {
		e.Points = *patch.Points
	}
	if patch.Reason != nil {
		e.Reason = *patch.Reason
	}

	updated := toDomain(id, e)
	if err := updated.Validate(); err != nil {
		return event.Event{}, err
	}

	doc.Events[id] = e
	if err := s.save(doc); err != nil {
		return event.Event{}, err
	}

	s.log.Debug("Updated event", "index", id)
	return updated, nil
}

// DeleteEvent removes the event at the given index. Later events shift down
// one position, so indexes held by callers go stale.
func (s *Store) DeleteEvent(id int64) (event.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return event.Event{}, err
	}

	if id < 0 || id >= int64(len(doc.Events)) {
		return event.Event{}, storage.ErrEventNotFound
	}

	removed := doc.Events[id]
	doc.Events = append(doc.Events[:id], doc.Events[id+1:]...)
	if err := s.save(doc); err != nil {
		return event.Event{}, err
	}

	s.log.Info("Deleted event", "index", id, "reason", removed.Reason)
	return toDomain(id, removed), nil
}

// Vote records a vouch vote on a pending event. Approvals, denials and the
// recomputed status persist in the same write.
func (s *Store) Vote(id int64, fingerprint string, choice event.Choice) (event.VoteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return event.VoteResult{}, err
	}

	if id < 0 || id >= int64(len(doc.Events)) {
		return event.VoteResult{}, storage.ErrEventNotFound
	}

	e := toDomain(id, doc.Events[id])
	result := e.CastVote(fingerprint, choice)
	if !result.Recorded {
		return result, nil
	}

	doc.Events[id] = fromDomain(e)
	if err := s.save(doc); err != nil {
		return event.VoteResult{}, err
	}

	s.log.Info("Recorded vouch vote", "index", id, "choice", choice,
		"status", result.Status, "transitioned", result.Transitioned)
	return result, nil
}

func toDomain(id int64, e documentEvent) event.Event {
	return event.Event{
		ID:          id,
		PersonID:    e.PersonID,
		Date:        e.Date,
		Points:      e.Points,
		Reason:      e.Reason,
		Status:      event.Status(e.Status),
		Approvals:   pq.StringArray(e.Approvals),
		Denials:     pq.StringArray(e.Denials),
		Fingerprint: e.Fingerprint,
	}
}

func fromDomain(e event.Event) documentEvent {
	return documentEvent{
		PersonID:    e.PersonID,
		Date:        e.Date,
		Points:      e.Points,
		Reason:      e.Reason,
		Status:      string(e.Status),
		Approvals:   []string(e.Approvals),
		Denials:     []string(e.Denials),
		Fingerprint: e.Fingerprint,
	}
}
