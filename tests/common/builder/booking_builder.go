package builder

import (
	"time"

	"facility-reservation/internal/domain/booking"
	"facility-reservation/internal/domain/room"
	"facility-reservation/internal/domain/timeslot"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	roomID uuid.UUID
	lineID uuid.UUID
	start  time.Time
	end    time.Time
	now    time.Time
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		roomID: uuid.New(),
		lineID: uuid.New(),
		start:  BaseTime,
		end:    BaseTime.Add(2 * time.Hour),
		now:    BaseTime.Add(-7 * 24 * time.Hour),
	}
}

func (b *BookingBuilder) WithRoom(roomID uuid.UUID) *BookingBuilder {
	b.roomID = roomID
	return b
}

func (b *BookingBuilder) WithLine(lineID uuid.UUID) *BookingBuilder {
	b.lineID = lineID
	return b
}

func (b *BookingBuilder) WithInterval(start, end time.Time) *BookingBuilder {
	b.start = start
	b.end = end
	return b
}

func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	interval, err := timeslot.NewInterval(b.start, b.end)
	if err != nil {
		return nil, err
	}
	return booking.NewBooking(b.roomID, b.lineID, interval, b.now), nil
}

// NewReadyRoom is a catalog room that passes every default criteria check.
func NewReadyRoom() *room.Room {
	return room.Reconstruct(
		uuid.New(), "B1-201", "Lecture Hall 201", "Building 1",
		2, 120, []string{"projector", "whiteboard", "microphone"},
		room.StatusReady,
	)
}
