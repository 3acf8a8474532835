package postgres

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gravadigital/prestigio-api/internal/domain/event"
	"github.com/gravadigital/prestigio-api/internal/domain/person"
	"github.com/gravadigital/prestigio-api/internal/logger"
	"github.com/gravadigital/prestigio-api/internal/storage"
)

// Store implements storage.Store on the hosted PostgreSQL backend.
//
// Unlike the document backend it does not enforce the person reference on
// events; an orphaned event is tolerated and rendered with a placeholder.
// Concurrency control is delegated to the database, last write wins per row.
type Store struct {
	db  *gorm.DB
	log *log.Logger
}

// NewStore creates a PostgreSQL-backed store
func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:  db,
		log: logger.Store("postgres"),
	}
}

// LoadAll returns every person and event, events ordered by creation time
func (s *Store) LoadAll() (*storage.Snapshot, error) {
	var people []person.Person
	if err := s.db.Order("id").Find(&people).Error; err != nil {
		return nil, fmt.Errorf("failed to load people: %w", err)
	}

	var events []event.Event
	if err := s.db.Order("created_at").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}

	return &storage.Snapshot{People: people, Events: events}, nil
}

// UpsertPerson inserts the person or merges name and avatar into the
// existing row (ON CONFLICT on the primary key)
func (s *Store) UpsertPerson(id, name, avatar string) (person.Person, error) {
	p, err := person.New(id, name, avatar)
	if err != nil {
		return person.Person{}, err
	}

	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "avatar"}),
	}).Create(&p).Error
	if err != nil {
		return person.Person{}, fmt.Errorf("failed to upsert person: %w", err)
	}

	s.log.Debug("Upserted person", "id", p.ID, "name", p.Name)
	return p, nil
}

// DeletePerson removes the person row and every event referencing it
func (s *Store) DeletePerson(id string) (person.Person, error) {
	var p person.Person
	if err := s.db.First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return person.Person{}, storage.ErrPersonNotFound
		}
		return person.Person{}, fmt.Errorf("failed to load person: %w", err)
	}

	if err := s.db.Where("person_id = ?", id).Delete(&event.Event{}).Error; err != nil {
		return person.Person{}, fmt.Errorf("failed to delete events: %w", err)
	}
	if err := s.db.Delete(&person.Person{}, "id = ?", id).Error; err != nil {
		return person.Person{}, fmt.Errorf("failed to delete person: %w", err)
	}

	s.log.Info("Deleted person", "id", id)
	return p, nil
}

// AppendEvent inserts an event row. The person reference is not checked;
// the database assigns the id.
func (s *Store) AppendEvent(e event.Event) (event.Event, error) {
	if err := e.Validate(); err != nil {
		return event.Event{}, err
	}

	e.ID = 0
	if err := s.db.Create(&e).Error; err != nil {
		return event.Event{}, fmt.Errorf("failed to create event: %w", err)
	}

	s.log.Debug("Created event", "id", e.ID, "person", e.PersonID, "points", e.Points)
	return e, nil
}

// UpdateEvent applies a partial update to the event row
func (s *Store) UpdateEvent(id int64, patch storage.EventPatch) (event.Event, error) {
	e, err := s.getEvent(id)
	if err != nil {
		return event.Event{}, err
	}

	if patch.PersonID != nil {
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

	if err := e.Validate(); err != nil {
		return event.Event{}, err
	}

	if err := s.db.Model(&event.Event{}).Where("id = ?", id).Updates(map[string]any{
		"person_id": e.PersonID,
		"date":      e.Date,
		"points":    e.Points,
		"reason":    e.Reason,
	}).Error; err != nil {
		return event.Event{}, fmt.Errorf("failed to update event: %w", err)
	}

	s.log.Debug("Updated event", "id", id)
	return e, nil
}

// DeleteEvent removes the event row
func (s *Store) DeleteEvent(id int64) (event.Event, error) {
	e, err := s.getEvent(id)
	if err != nil {
		return event.Event{}, err
	}

	if err := s.db.Delete(&event.Event{}, id).Error; err != nil {
		return event.Event{}, fmt.Errorf("failed to delete event: %w", err)
	}

	s.log.Info("Deleted event", "id", id, "reason", e.Reason)
	return e, nil
}

// Vote records a vouch vote. Approvals, denials and the recomputed status
// land in a single UPDATE so the row never holds a half-applied vote.
func (s *Store) Vote(id int64, fingerprint string, choice event.Choice) (event.VoteResult, error) {
	e, err := s.getEvent(id)
	if err != nil {
		return event.VoteResult{}, err
	}

	result := e.CastVote(fingerprint, choice)
	if !result.Recorded {
		return result, nil
	}

	if err := s.db.Model(&event.Event{}).Where("id = ?", id).Updates(map[string]any{
		"approvals": e.Approvals,
		"denials":   e.Denials,
		"status":    e.Status,
	}).Error; err != nil {
		return event.VoteResult{}, fmt.Errorf("failed to record vote: %w", err)
	}

	s.log.Info("Recorded vouch vote", "id", id, "choice", choice,
		"status", result.Status, "transitioned", result.Transitioned)
	return result, nil
}

func (s *Store) getEvent(id int64) (event.Event, error) {
	var e event.Event
	if err := s.db.First(&e, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return event.Event{}, storage.ErrEventNotFound
		}
		return event.Event{}, fmt.Errorf("failed to load event: %w", err)
	}
	return e, nil
}
