package activity

import "time"

// Status tracks an activity's life after creation. Transitions only move
// forward; cancelled and completed are terminal.
type Status string

const (
	StatusPlanning     Status = "planning"
	StatusRecruiting   Status = "recruiting"
	StatusVotingClosed Status = "voting_closed"
	StatusConfirmed    Status = "confirmed"
	StatusCompleted    Status = "completed"
	StatusCancelled    Status = "cancelled"
)

var statusOrder = map[Status]int{
	StatusPlanning:     0,
	StatusRecruiting:   1,
	StatusVotingClosed: 2,
	StatusConfirmed:    3,
	StatusCompleted:    4,
}

func (s Status) Valid() bool {
	if s == StatusCancelled {
		return true
	}
	_, ok := statusOrder[s]
	return ok
}

// CanAdvanceTo reports whether next is a legal forward transition.
func (s Status) CanAdvanceTo(next Status) bool {
	if s == StatusCancelled || s == StatusCompleted {
		return false
	}
	if next == StatusCancelled {
		return true
	}
	from, okFrom := statusOrder[s]
	to, okTo := statusOrder[next]
	return okFrom && okTo && to > from
}

type Activity struct {
	ID           string    `json:"id"`
	RouteID      string    `json:"route_id"`
	Name         string    `json:"name"`
	ActivityDate time.Time `json:"activity_date"`
	Status       Status    `json:"status"`
	PosterURL    string    `json:"poster_url"`
	VoteURL      string    `json:"vote_url"`
	VoteDeadline time.Time `json:"vote_deadline"`
	VoteMonth    string    `json:"vote_month"`
	SelectedDate string    `json:"selected_date"`
	CreatedAt    time.Time `json:"created_at"`
}

// VoteOption rows carry serial identities so the lowest id is always the
// earliest-inserted option; the tie-break contract depends on that.
type VoteOption struct {
	ID         int64     `json:"id"`
	ActivityID string    `json:"activity_id"`
	VoteDate   string    `json:"vote_date"`
	Weather    string    `json:"weather"`
	VoteCount  int       `json:"vote_count"`
	CreatedAt  time.Time `json:"created_at"`
}
