package event

import "slices"

// Quorum is the number of distinct-fingerprint votes that settles a proposal,
// in either direction.
const Quorum = 2

// Choice is a vouch vote direction
type Choice string

const (
	ChoiceApprove Choice = "approve"
	ChoiceDeny    Choice = "deny"
)

// ChoiceFromString converts a string to a Choice
func ChoiceFromString(s string) (Choice, bool) {
	switch s {
	case "approve":
		return ChoiceApprove, true
	case "deny":
		return ChoiceDeny, true
	default:
		return "", false
	}
}

// VoteResult reports what a CastVote call did. Transitioned is the signal a
// caller uses to announce a promotion or denial.
type VoteResult struct {
	Recorded     bool   `json:"recorded"`
	Transitioned bool   `json:"transitioned"`
	Status       Status `json:"status"`
}

// CastVote records a vouch vote on a pending event and recomputes its status.
//
// The vote is quietly ignored when the event is no longer pending, when the
// fingerprint belongs to the proposal's creator, or when it already voted in
// either direction (a cast vote is final). Voter identity is a best-effort
// device fingerprint, so a determined user can vote twice from two browsers;
// that weakness is accepted.
//
// When both quorums are reached in the same update, approval is checked
// first and wins.
func (e *Event) CastVote(fingerprint string, choice Choice) VoteResult {
	if e.Status.Effective() != StatusPending {
		return VoteResult{Status: e.Status.Effective()}
	}
	if fingerprint == "" || fingerprint == e.Fingerprint {
		return VoteResult{Status: StatusPending}
	}
	if e.HasVoted(fingerprint) {
		return VoteResult{Status: StatusPending}
	}

	switch choice {
	case ChoiceApprove:
		e.Approvals = append(e.Approvals, fingerprint)
	case ChoiceDeny:
		e.Denials = append(e.Denials, fingerprint)
	default:
		return VoteResult{Status: StatusPending}
	}

	newStatus := StatusPending
	if len(e.Approvals) >= Quorum {
		newStatus = StatusLive
	} else if len(e.Denials) >= Quorum {
		newStatus = StatusDenied
	}

	transitioned := newStatus != StatusPending
	e.Status = newStatus

	return VoteResult{
		Recorded:     true,
		Transitioned: transitioned,
		Status:       newStatus,
	}
}

// HasVoted reports whether the fingerprint already appears in either set
func (e *Event) HasVoted(fingerprint string) bool {
	return slices.Contains(e.Approvals, fingerprint) || slices.Contains(e.Denials, fingerprint)
}
