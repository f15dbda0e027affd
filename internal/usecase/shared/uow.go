package shared

import (
	"context"

	"facility-reservation/internal/domain/booking"
	"facility-reservation/internal/domain/change"
	"facility-reservation/internal/domain/event"
	"facility-reservation/internal/domain/request"
	"facility-reservation/internal/domain/room"
	"facility-reservation/internal/domain/timeslot"
	"facility-reservation/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: full transaction for write operations with serialization-retry
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
	// Reads: command-side reads for validation outside transactions
	Reads() CommandReads
}

type Tx interface {
	Events() EventRepository
	Requests() RequestRepository
	Bookings() BookingRepository
	Changes() ChangeRepository
	Outbox() OutboxRepository
	Rooms() RoomReader
	Reads() CommandReads
	DB() db.DBTX
}

type EventRepository interface {
	Insert(ctx context.Context, ev *event.Event) error
	// FindForUpdate row-locks the event so concurrent gate transitions
	// serialize on it.
	FindForUpdate(ctx context.Context, id uuid.UUID) (*event.Event, error)
	Update(ctx context.Context, ev *event.Event) error
}

type RequestRepository interface {
	InsertHeader(ctx context.Context, h *request.Header) error
	InsertLines(ctx context.Context, lines []*request.Line) error
	FindHeaderForUpdate(ctx context.Context, id uuid.UUID) (*request.Header, error)
	FindHeaderByEventForUpdate(ctx context.Context, eventID uuid.UUID) (*request.Header, error)
	FindHeaderByLineForUpdate(ctx context.Context, lineID uuid.UUID) (*request.Header, error)
	UpdateLine(ctx context.Context, l *request.Line) error
	DeleteLines(ctx context.Context, ids []uuid.UUID) error
	// UpdateHeaderState persists the cancelled flag and the cached overall
	// status, which is always recomputed from the lines before saving.
	UpdateHeaderState(ctx context.Context, h *request.Header) error
}

type BookingRepository interface {
	// LockRoom takes a room-scoped advisory lock for the rest of the
	// transaction, making check-then-insert atomic against concurrent
	// writers on the same room without locking the whole ledger.
	LockRoom(ctx context.Context, roomID uuid.UUID) error
	HasOverlap(ctx context.Context, roomID uuid.UUID, interval timeslot.Interval, exclude *uuid.UUID) (bool, error)
	Insert(ctx context.Context, b *booking.Booking) error
	FindForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	Update(ctx context.Context, b *booking.Booking) error
	FindActiveByHeader(ctx context.Context, headerID uuid.UUID) ([]*booking.Booking, error)
}

type ChangeRepository interface {
	Insert(ctx context.Context, cr *change.Request) error
	FindForUpdate(ctx context.Context, id uuid.UUID) (*change.Request, error)
	Update(ctx context.Context, cr *change.Request) error
}

type OutboxRepository interface {
	Enqueue(ctx context.Context, topic string, payload []byte) error
	ClaimBatch(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkSent(ctx context.Context, ids []int64) error
}

// RoomReader is the catalog read adapter; the catalog itself is owned
// elsewhere.
type RoomReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*room.Room, error)
}

type CommandReads interface {
	EventByID(ctx context.Context, id uuid.UUID) (*EventSnapshot, error)
	HeaderByID(ctx context.Context, id uuid.UUID) (*HeaderSnapshot, error)
	HeaderByLineID(ctx context.Context, lineID uuid.UUID) (*HeaderSnapshot, error)
	BookingOwner(ctx context.Context, bookingID uuid.UUID) (*BookingOwnerSnapshot, error)
	ChangeByID(ctx context.Context, id uuid.UUID) (*ChangeSnapshot, error)
}
