package booking

import (
	"errors"
	"time"

	"facility-reservation/internal/domain/timeslot"

	"github.com/google/uuid"
)

var (
	ErrAlreadySuperseded = errors.New("booking has been superseded")
	ErrNotActive         = errors.New("booking is not active")
)

// Booking is one concrete, conflict-checked room+time assignment satisfying a
// request line. Bookings are never edited in place: a change creates a new
// booking and flips the old one to superseded.
type Booking struct {
	id        uuid.UUID
	roomID    uuid.UUID
	lineID    uuid.UUID
	interval  timeslot.Interval
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

func NewBooking(roomID, lineID uuid.UUID, interval timeslot.Interval, now time.Time) *Booking {
	return &Booking{
		id:        uuid.New(),
		roomID:    roomID,
		lineID:    lineID,
		interval:  interval,
		status:    StatusActive,
		createdAt: now,
		updatedAt: now,
	}
}

func Reconstruct(id, roomID, lineID uuid.UUID, interval timeslot.Interval, status Status, createdAt, updatedAt time.Time) *Booking {
	return &Booking{
		id:        id,
		roomID:    roomID,
		lineID:    lineID,
		interval:  interval,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (b *Booking) ID() uuid.UUID               { return b.id }
func (b *Booking) RoomID() uuid.UUID           { return b.roomID }
func (b *Booking) LineID() uuid.UUID           { return b.lineID }
func (b *Booking) Interval() timeslot.Interval { return b.interval }
func (b *Booking) Status() Status              { return b.status }
func (b *Booking) CreatedAt() time.Time        { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time        { return b.updatedAt }

func (b *Booking) IsActive() bool {
	return b.status == StatusActive
}

// Cancel is idempotent: cancelling an already-cancelled booking is a no-op.
// A superseded booking cannot be cancelled; its replacement must be.
func (b *Booking) Cancel(now time.Time) error {
	switch b.status {
	case StatusCancelled:
		return nil
	case StatusSuperseded:
		return ErrAlreadySuperseded
	default:
		b.status = StatusCancelled
		b.updatedAt = now
		return nil
	}
}

func (b *Booking) MarkSuperseded(now time.Time) error {
	if b.status != StatusActive {
		return ErrNotActive
	}
	b.status = StatusSuperseded
	b.updatedAt = now
	return nil
}
