package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EventsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "prestigio_events_created_total",
		Help: "Total number of events created, labelled by initial status.",
	}, []string{"status"})

	PeopleUpserted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "prestigio_people_upserted_total",
		Help: "Total number of person registrations and re-registrations.",
	})

	VotesCast = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "prestigio_votes_cast_total",
		Help: "Total number of recorded vouch votes, labelled by choice.",
	}, []string{"choice"})

	VotesIgnored = promauto.NewCounter(prometheus.CounterOpts{
		Name: "prestigio_votes_ignored_total",
		Help: "Total number of vouch votes quietly ignored (self-vote or repeat).",
	})

	VouchTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "prestigio_vouch_transitions_total",
		Help: "Total number of pending events settled, labelled by final status.",
	}, []string{"status"})

	SnapshotBackups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "prestigio_snapshot_backups_total",
		Help: "Total number of snapshot backup attempts, labelled by result.",
	}, []string{"result"})
)
