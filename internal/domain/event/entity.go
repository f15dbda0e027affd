package event

import (
	"errors"
	"time"

	"facility-reservation/internal/domain/timeslot"

	"github.com/google/uuid"
)

var (
	ErrTitleRequired     = errors.New("event title is required")
	ErrInvalidTransition = errors.New("operation not legal in current event status")
)

// Event is a proposed activity requiring leadership approval before its room
// needs become actionable. Mutated only through the transition methods below;
// each is guarded so the state machine stays closed over Status.
type Event struct {
	id          uuid.UUID
	title       string
	requesterID uuid.UUID
	unit        string
	window      timeslot.Interval
	status      Status
	createdAt   time.Time
	updatedAt   time.Time
}

func NewEvent(title string, requesterID uuid.UUID, unit string, window timeslot.Interval, now time.Time) (*Event, error) {
	if title == "" {
		return nil, ErrTitleRequired
	}
	return &Event{
		id:          uuid.New(),
		title:       title,
		requesterID: requesterID,
		unit:        unit,
		window:      window,
		status:      StatusDraft,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func Reconstruct(id uuid.UUID, title string, requesterID uuid.UUID, unit string, window timeslot.Interval, status Status, createdAt, updatedAt time.Time) *Event {
	return &Event{
		id:          id,
		title:       title,
		requesterID: requesterID,
		unit:        unit,
		window:      window,
		status:      status,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (e *Event) ID() uuid.UUID             { return e.id }
func (e *Event) Title() string             { return e.title }
func (e *Event) RequesterID() uuid.UUID    { return e.requesterID }
func (e *Event) Unit() string              { return e.unit }
func (e *Event) Window() timeslot.Interval { return e.window }
func (e *Event) Status() Status            { return e.status }
func (e *Event) CreatedAt() time.Time      { return e.createdAt }
func (e *Event) UpdatedAt() time.Time      { return e.updatedAt }

func (e *Event) IsApproved() bool {
	return e.status == StatusApproved
}

func (e *Event) SubmitForApproval(now time.Time) error {
	return e.transition(StatusDraft, StatusPendingApproval, now)
}

func (e *Event) Approve(now time.Time) error {
	return e.transition(StatusPendingApproval, StatusApproved, now)
}

func (e *Event) Reject(now time.Time) error {
	return e.transition(StatusPendingApproval, StatusRejected, now)
}

// RequestCancellation starts the secondary approval round for withdrawing an
// already-approved event.
func (e *Event) RequestCancellation(now time.Time) error {
	return e.transition(StatusApproved, StatusCancellationPending, now)
}

func (e *Event) ApproveCancellation(now time.Time) error {
	return e.transition(StatusCancellationPending, StatusCancelled, now)
}

// DeclineCancellation reverts the event to approved, leaving its room
// request untouched.
func (e *Event) DeclineCancellation(now time.Time) error {
	return e.transition(StatusCancellationPending, StatusApproved, now)
}

func (e *Event) transition(from, to Status, now time.Time) error {
	if e.status != from {
		return ErrInvalidTransition
	}
	e.status = to
	e.updatedAt = now
	return nil
}
