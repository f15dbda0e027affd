package change

import (
	"errors"
	"time"

	"facility-reservation/internal/domain/request"

	"github.com/google/uuid"
)

var (
	ErrReasonRequired = errors.New("change request requires a reason")
	ErrNotPending     = errors.New("change request has already been decided")
	ErrNotRequester   = errors.New("only the original requester may cancel a change request")
)

// Request asks to replace an active booking with a different room or time.
// Approval goes through facility staff, independent of the original request.
type Request struct {
	id          uuid.UUID
	bookingID   uuid.UUID
	requesterID uuid.UUID
	reason      string
	newCriteria *request.Criteria
	status      Status
	decidedNote string
	createdAt   time.Time
	updatedAt   time.Time
}

func NewRequest(bookingID, requesterID uuid.UUID, reason string, newCriteria *request.Criteria, now time.Time) (*Request, error) {
	if reason == "" {
		return nil, ErrReasonRequired
	}
	return &Request{
		id:          uuid.New(),
		bookingID:   bookingID,
		requesterID: requesterID,
		reason:      reason,
		newCriteria: newCriteria,
		status:      StatusPendingApproval,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func Reconstruct(id, bookingID, requesterID uuid.UUID, reason string, newCriteria *request.Criteria, status Status, decidedNote string, createdAt, updatedAt time.Time) *Request {
	return &Request{
		id:          id,
		bookingID:   bookingID,
		requesterID: requesterID,
		reason:      reason,
		newCriteria: newCriteria,
		status:      status,
		decidedNote: decidedNote,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (r *Request) ID() uuid.UUID                  { return r.id }
func (r *Request) BookingID() uuid.UUID           { return r.bookingID }
func (r *Request) RequesterID() uuid.UUID         { return r.requesterID }
func (r *Request) Reason() string                 { return r.reason }
func (r *Request) NewCriteria() *request.Criteria { return r.newCriteria }
func (r *Request) Status() Status                 { return r.status }
func (r *Request) DecidedNote() string            { return r.decidedNote }
func (r *Request) CreatedAt() time.Time           { return r.createdAt }
func (r *Request) UpdatedAt() time.Time           { return r.updatedAt }

func (r *Request) IsPending() bool {
	return r.status == StatusPendingApproval
}

// Approve only flips the workflow state; the booking swap itself is the
// ledger's supersede operation and both must commit together.
func (r *Request) Approve(now time.Time) error {
	if r.status != StatusPendingApproval {
		return ErrNotPending
	}
	r.status = StatusApproved
	r.updatedAt = now
	return nil
}

func (r *Request) Reject(reason string, now time.Time) error {
	if r.status != StatusPendingApproval {
		return ErrNotPending
	}
	r.status = StatusRejected
	r.decidedNote = reason
	r.updatedAt = now
	return nil
}

func (r *Request) Cancel(by uuid.UUID, now time.Time) error {
	if r.status != StatusPendingApproval {
		return ErrNotPending
	}
	if by != r.requesterID {
		return ErrNotRequester
	}
	r.status = StatusCancelled
	r.updatedAt = now
	return nil
}
