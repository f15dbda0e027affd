package request

import (
	"errors"
	"time"

	"facility-reservation/internal/domain/timeslot"

	"github.com/google/uuid"
)

var (
	ErrNoLines               = errors.New("room request needs at least one line")
	ErrLineAlreadyResolved   = errors.New("line has already been resolved")
	ErrLineNotAssigned       = errors.New("line has no active booking")
	ErrIntervalNotContained  = errors.New("booking interval does not cover the desired window")
	ErrHeaderCancelled       = errors.New("room request has been cancelled")
	ErrHeaderFullyResolved   = errors.New("fully resolved request can only be cancelled through its event")
	ErrRejectReasonRequired  = errors.New("rejection requires a reason")
	ErrEditAfterCancellation = errors.New("cancelled request cannot be edited")
)

// Line is one individually resolvable room ask: a desired time window plus
// room criteria. Invariant: a line is assigned iff it references exactly one
// active booking, and the desired window is fully contained in that
// booking's interval.
type Line struct {
	id           uuid.UUID
	headerID     uuid.UUID
	desired      timeslot.Interval
	criteria     Criteria
	status       LineStatus
	rejectReason string
	bookingID    *uuid.UUID
	createdAt    time.Time
	updatedAt    time.Time
}

func NewLine(headerID uuid.UUID, desired timeslot.Interval, criteria Criteria, now time.Time) *Line {
	return &Line{
		id:        uuid.New(),
		headerID:  headerID,
		desired:   desired,
		criteria:  criteria,
		status:    LineUnassigned,
		createdAt: now,
		updatedAt: now,
	}
}

func ReconstructLine(id, headerID uuid.UUID, desired timeslot.Interval, criteria Criteria, status LineStatus, rejectReason string, bookingID *uuid.UUID, createdAt, updatedAt time.Time) *Line {
	return &Line{
		id:           id,
		headerID:     headerID,
		desired:      desired,
		criteria:     criteria,
		status:       status,
		rejectReason: rejectReason,
		bookingID:    bookingID,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (l *Line) ID() uuid.UUID              { return l.id }
func (l *Line) HeaderID() uuid.UUID        { return l.headerID }
func (l *Line) Desired() timeslot.Interval { return l.desired }
func (l *Line) Criteria() Criteria         { return l.criteria }
func (l *Line) Status() LineStatus         { return l.status }
func (l *Line) RejectReason() string       { return l.rejectReason }
func (l *Line) BookingID() *uuid.UUID      { return l.bookingID }
func (l *Line) CreatedAt() time.Time       { return l.createdAt }
func (l *Line) UpdatedAt() time.Time       { return l.updatedAt }

// Assign records the booking created for this line. The booking interval may
// be wider than the desired window (setup/teardown buffer) but must contain
// it.
func (l *Line) Assign(bookingID uuid.UUID, bookingInterval timeslot.Interval, now time.Time) error {
	if l.status.IsTerminal() {
		return ErrLineAlreadyResolved
	}
	if !bookingInterval.Contains(l.desired) {
		return ErrIntervalNotContained
	}
	id := bookingID
	l.bookingID = &id
	l.status = LineAssigned
	l.updatedAt = now
	return nil
}

func (l *Line) Reject(reason string, now time.Time) error {
	if l.status.IsTerminal() {
		return ErrLineAlreadyResolved
	}
	if reason == "" {
		return ErrRejectReasonRequired
	}
	l.status = LineRejected
	l.rejectReason = reason
	l.updatedAt = now
	return nil
}

// Reassign repoints an assigned line at the replacement booking created by an
// approved change request. The change overrides the original ask, so the
// desired window follows the new booking interval and the containment
// invariant keeps holding.
func (l *Line) Reassign(bookingID uuid.UUID, newInterval timeslot.Interval, now time.Time) error {
	if l.status != LineAssigned {
		return ErrLineNotAssigned
	}
	id := bookingID
	l.bookingID = &id
	l.desired = newInterval
	l.updatedAt = now
	return nil
}

// ClearAssignment flips an assigned line back to unassigned after its booking
// was cancelled.
func (l *Line) ClearAssignment(now time.Time) error {
	if l.status != LineAssigned {
		return ErrLineNotAssigned
	}
	l.bookingID = nil
	l.status = LineUnassigned
	l.updatedAt = now
	return nil
}

// Header is an event's declared room needs. One header per event, created
// only once the event is approved; never deleted, only cancelled.
type Header struct {
	id             uuid.UUID
	eventID        uuid.UUID
	requesterID    uuid.UUID
	requestingUnit string
	cancelled      bool
	lines          []*Line
	createdAt      time.Time
	updatedAt      time.Time
}

func NewHeader(eventID, requesterID uuid.UUID, requestingUnit string, now time.Time) *Header {
	return &Header{
		id:             uuid.New(),
		eventID:        eventID,
		requesterID:    requesterID,
		requestingUnit: requestingUnit,
		createdAt:      now,
		updatedAt:      now,
	}
}

func ReconstructHeader(id, eventID, requesterID uuid.UUID, requestingUnit string, cancelled bool, lines []*Line, createdAt, updatedAt time.Time) *Header {
	return &Header{
		id:             id,
		eventID:        eventID,
		requesterID:    requesterID,
		requestingUnit: requestingUnit,
		cancelled:      cancelled,
		lines:          lines,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

func (h *Header) ID() uuid.UUID          { return h.id }
func (h *Header) EventID() uuid.UUID     { return h.eventID }
func (h *Header) RequesterID() uuid.UUID { return h.requesterID }
func (h *Header) RequestingUnit() string { return h.requestingUnit }
func (h *Header) Cancelled() bool        { return h.cancelled }
func (h *Header) Lines() []*Line         { return h.lines }
func (h *Header) CreatedAt() time.Time   { return h.createdAt }
func (h *Header) UpdatedAt() time.Time   { return h.updatedAt }

func (h *Header) AddLine(desired timeslot.Interval, criteria Criteria, now time.Time) *Line {
	line := NewLine(h.id, desired, criteria, now)
	h.lines = append(h.lines, line)
	h.updatedAt = now
	return line
}

func (h *Header) LineByID(id uuid.UUID) *Line {
	for _, l := range h.lines {
		if l.id == id {
			return l
		}
	}
	return nil
}

// Status derives the overall status from the lines. Cancellation is the one
// state not derivable from lines, so it is tracked on the header itself.
func (h *Header) Status() HeaderStatus {
	if h.cancelled {
		return HeaderCancelled
	}
	statuses := make([]LineStatus, len(h.lines))
	for i, l := range h.lines {
		statuses[i] = l.status
	}
	return DeriveHeaderStatus(statuses)
}

// Cancel is the requester-initiated path, barred once fully resolved; at that
// point cancellation must go through the event gate, which uses ForceCancel.
// Idempotent on an already-cancelled header.
func (h *Header) Cancel(now time.Time) error {
	if h.cancelled {
		return nil
	}
	if h.Status() == HeaderFullyResolved {
		return ErrHeaderFullyResolved
	}
	h.cancelled = true
	h.updatedAt = now
	return nil
}

// ForceCancel is the event-cascade path and succeeds from any state.
func (h *Header) ForceCancel(now time.Time) {
	if h.cancelled {
		return
	}
	h.cancelled = true
	h.updatedAt = now
}

// ReplaceUnresolvedLines implements header editing: unassigned lines are
// dropped and recreated from the new asks, while assigned and rejected lines
// are kept untouched. Returns the ids of the removed lines.
func (h *Header) ReplaceUnresolvedLines(newLines []*Line, now time.Time) ([]uuid.UUID, error) {
	if h.cancelled {
		return nil, ErrEditAfterCancellation
	}

	var removed []uuid.UUID
	kept := make([]*Line, 0, len(h.lines)+len(newLines))
	for _, l := range h.lines {
		if l.status == LineUnassigned {
			removed = append(removed, l.id)
			continue
		}
		kept = append(kept, l)
	}
	kept = append(kept, newLines...)
	if len(kept) == 0 {
		return nil, ErrNoLines
	}
	h.lines = kept
	h.updatedAt = now
	return removed, nil
}
