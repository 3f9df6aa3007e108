package reservation

import (
	"fmt"

	"tablebook/internal/pkg/errs"
)

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusSeated    Status = "seated"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusConfirmed, StatusSeated, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	default:
		return false
	}
}

// IsActive reports whether the reservation counts toward table occupancy.
func (s Status) IsActive() bool {
	return s == StatusConfirmed || s == StatusSeated
}

// IsTerminal reports whether the reservation is locked against any mutation.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// transitions is the full lifecycle table. no_show -> confirmed is the one
// backward edge: staff correcting a mistaken no-show mark.
var transitions = map[Status][]Status{
	StatusConfirmed: {StatusSeated, StatusCancelled, StatusNoShow},
	StatusSeated:    {StatusCompleted, StatusCancelled},
	StatusNoShow:    {StatusConfirmed},
	StatusCompleted: {},
	StatusCancelled: {},
}

func (s Status) CanTransitionTo(to Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

var ErrInvalidTransition = errs.New("invalid status transition")

type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition reservation from %s to %s", e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

type Source string

const (
	SourcePhone  Source = "phone"
	SourceWalkIn Source = "walk_in"
	SourceOnline Source = "online"
	SourceApp    Source = "app"
)

func (s Source) IsValid() bool {
	switch s {
	case SourcePhone, SourceWalkIn, SourceOnline, SourceApp:
		return true
	default:
		return false
	}
}
