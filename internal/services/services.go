package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/gravadigital/prestigio-api/internal/domain/event"
	"github.com/gravadigital/prestigio-api/internal/domain/leaderboard"
	"github.com/gravadigital/prestigio-api/internal/domain/person"
	"github.com/gravadigital/prestigio-api/internal/domain/tier"
	"github.com/gravadigital/prestigio-api/internal/logger"
	"github.com/gravadigital/prestigio-api/internal/metrics"
	"github.com/gravadigital/prestigio-api/internal/storage"
	"github.com/gravadigital/prestigio-api/internal/validation"
)

// PrestigeService maneja la lógica de negocio sobre el store configurado.
// Both the admin HTTP handlers and the CLI consume this surface.
type PrestigeService struct {
	store           storage.Store
	eventValidator  validation.EventValidation
	personValidator validation.PersonValidation
	log             *log.Logger
}

// NewPrestigeService crea una nueva instancia del servicio
func NewPrestigeService(store storage.Store) *PrestigeService {
	return &PrestigeService{
		store:           store,
		eventValidator:  validation.EventValidation{},
		personValidator: validation.PersonValidation{},
		log:             logger.Vouch(),
	}
}

// Snapshot returns the full persisted state
func (s *PrestigeService) Snapshot() (*storage.Snapshot, error) {
	return s.store.LoadAll()
}

// RegisterPerson creates or re-registers a person
func (s *PrestigeService) RegisterPerson(id, name, avatar string) (person.Person, error) {
	if err := s.personValidator.ValidateName(name); err != nil {
		return person.Person{}, err
	}

	p, err := s.store.UpsertPerson(id, name, avatar)
	if err != nil {
		return person.Person{}, err
	}

	metrics.PeopleUpserted.Inc()
	return p, nil
}

// RemovePerson deletes a person and cascades to their events
func (s *PrestigeService) RemovePerson(id string) (person.Person, error) {
	return s.store.DeletePerson(id)
}

// RecordEventRequest describes an event to record
type RecordEventRequest struct {
	PersonID    string
	Date        string // empty means today
	Points      int
	Reason      string
	Vouch       bool   // true starts the event pending instead of live
	Fingerprint string // proposing device, required when Vouch is set
	// AutoProvision registers an unknown person with a derived name and
	// the default avatar instead of failing (the CLI path)
	AutoProvision bool
}

// RecordEvent validates and stores an event
func (s *PrestigeService) RecordEvent(req RecordEventRequest) (event.Event, error) {
	if err := s.eventValidator.ValidateReason(req.Reason); err != nil {
		return event.Event{}, err
	}
	if err := s.eventValidator.ValidateDate(req.Date); err != nil {
		return event.Event{}, err
	}

	normalized, err := person.NormalizeID(req.PersonID)
	if err != nil {
		return event.Event{}, err
	}

	if req.Vouch && req.Fingerprint == "" {
		return event.Event{}, fmt.Errorf("fingerprint is required for a vouch-gated event")
	}

	var e event.Event
	if req.Vouch {
		e = event.NewProposal(normalized, req.Date, req.Points, req.Reason, req.Fingerprint)
	} else {
		e = event.New(normalized, req.Date, req.Points, req.Reason)
	}

	created, err := s.store.AppendEvent(e)
	if errors.Is(err, storage.ErrPersonNotFound) && req.AutoProvision {
		p, provErr := person.Provision(normalized)
		if provErr != nil {
			return event.Event{}, provErr
		}
		if _, provErr = s.store.UpsertPerson(p.ID, p.Name, p.Avatar); provErr != nil {
			return event.Event{}, provErr
		}
		s.log.Info("Auto-provisioned person", "id", p.ID, "name", p.Name)
		created, err = s.store.AppendEvent(e)
	}
	if err != nil {
		return event.Event{}, err
	}

	metrics.EventsCreated.WithLabelValues(string(created.Status.Effective())).Inc()
	return created, nil
}

// EditEvent applies a partial update
func (s *PrestigeService) EditEvent(id int64, patch storage.EventPatch) (event.Event, error) {
	if patch.Date != nil {
		if err := s.eventValidator.ValidateDate(*patch.Date); err != nil {
			return event.Event{}, err
		}
	}
	if patch.Reason != nil {
		if err := s.eventValidator.ValidateReason(*patch.Reason); err != nil {
			return event.Event{}, err
		}
	}
	return s.store.UpdateEvent(id, patch)
}

// RemoveEvent deletes an event
func (s *PrestigeService) RemoveEvent(id int64) (event.Event, error) {
	return s.store.DeleteEvent(id)
}

// Vouch records a vote on a pending event. A transition to live is the
// caller's cue to announce the event.
func (s *PrestigeService) Vouch(id int64, fingerprint, choiceStr string) (event.VoteResult, error) {
	choice, valid := event.ChoiceFromString(choiceStr)
	if !valid {
		return event.VoteResult{}, fmt.Errorf("invalid choice: %q (want approve or deny)", choiceStr)
	}

	result, err := s.store.Vote(id, fingerprint, choice)
	if err != nil {
		return event.VoteResult{}, err
	}

	if result.Recorded {
		metrics.VotesCast.WithLabelValues(string(choice)).Inc()
	} else {
		metrics.VotesIgnored.Inc()
	}
	if result.Transitioned {
		metrics.VouchTransitions.WithLabelValues(string(result.Status)).Inc()
		s.log.Info("Pending event settled", "event_id", id, "status", result.Status)
	}

	return result, nil
}

// RankedEntry is a leaderboard entry with its rank and display tier
type RankedEntry struct {
	leaderboard.Entry
	Rank int       `json:"rank"`
	Tier tier.Tier `json:"tier"`
}

// Leaderboard computes the ranked, tiered leaderboard plus hero totals
func (s *PrestigeService) Leaderboard() ([]RankedEntry, leaderboard.Totals, error) {
	snapshot, err := s.store.LoadAll()
	if err != nil {
		return nil, leaderboard.Totals{}, err
	}

	entries := leaderboard.Compute(snapshot.People, snapshot.Events, time.Now())
	ranked := make([]RankedEntry, len(entries))
	for i, entry := range entries {
		ranked[i] = RankedEntry{
			Entry: entry,
			Rank:  i + 1,
			Tier:  tier.Classify(entry.Score),
		}
	}

	return ranked, leaderboard.ComputeTotals(entries, snapshot.Events), nil
}

// History lists effective-live events newest first, with placeholder
// substitution for orphaned events
func (s *PrestigeService) History() ([]leaderboard.HistoryEntry, error) {
	snapshot, err := s.store.LoadAll()
	if err != nil {
		return nil, err
	}
	return leaderboard.History(snapshot.People, snapshot.Events, time.Now()), nil
}

// Pending lists events still awaiting vouches
func (s *PrestigeService) Pending() ([]event.Event, error) {
	snapshot, err := s.store.LoadAll()
	if err != nil {
		return nil, err
	}

	pending := make([]event.Event, 0)
	for _, e := range snapshot.Events {
		if e.Status.Effective() == event.StatusPending {
			pending = append(pending, e)
		}
	}
	return pending, nil
}
