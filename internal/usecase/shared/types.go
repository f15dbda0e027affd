package shared

import (
	"time"

	"github.com/google/uuid"
)

// Write-side snapshots keep command validation off the read-model types.

type EventSnapshot struct {
	ID          uuid.UUID
	Title       string
	RequesterID uuid.UUID
	Unit        string
	Status      string
}

type HeaderSnapshot struct {
	ID          uuid.UUID
	EventID     uuid.UUID
	RequesterID uuid.UUID
	Unit        string
	Status      string
}

// BookingOwnerSnapshot carries enough ownership context to authorize
// change-workflow operations against a booking.
type BookingOwnerSnapshot struct {
	BookingID   uuid.UUID
	RoomID      uuid.UUID
	LineID      uuid.UUID
	HeaderID    uuid.UUID
	RequesterID uuid.UUID
	Unit        string
	Status      string
}

type ChangeSnapshot struct {
	ID          uuid.UUID
	BookingID   uuid.UUID
	RequesterID uuid.UUID
	Status      string
}

type OutboxMessage struct {
	ID        int64
	Topic     string
	Payload   []byte
	CreatedAt time.Time
}
