package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type BookingView struct {
	ID        uuid.UUID `json:"id"`
	RoomID    uuid.UUID `json:"room_id"`
	RoomCode  string    `json:"room_code"`
	LineID    uuid.UUID `json:"line_id"`
	StartAt   time.Time `json:"start_at"`
	EndAt     time.Time `json:"end_at"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type LineView struct {
	ID           uuid.UUID  `json:"id"`
	HeaderID     uuid.UUID  `json:"header_id"`
	StartAt      time.Time  `json:"start_at"`
	EndAt        time.Time  `json:"end_at"`
	RoomType     string     `json:"room_type,omitempty"`
	MinCapacity  int        `json:"min_capacity,omitempty"`
	Equipment    []string   `json:"equipment,omitempty"`
	Note         string     `json:"note,omitempty"`
	Status       string     `json:"status"`
	RejectReason *string    `json:"reject_reason,omitempty"`
	BookingID    *uuid.UUID `json:"booking_id,omitempty"`
}

type HeaderView struct {
	ID             uuid.UUID  `json:"id"`
	EventID        uuid.UUID  `json:"event_id"`
	EventTitle     string     `json:"event_title"`
	RequesterID    uuid.UUID  `json:"requester_id"`
	RequestingUnit string     `json:"requesting_unit"`
	Status         string     `json:"status"`
	Lines          []LineView `json:"lines"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type ChangeView struct {
	ID          uuid.UUID `json:"id"`
	BookingID   uuid.UUID `json:"booking_id"`
	RequesterID uuid.UUID `json:"requester_id"`
	Reason      string    `json:"reason"`
	Status      string    `json:"status"`
	DecidedNote *string   `json:"decided_note,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type RoomView struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Building  string    `json:"building"`
	Floor     int       `json:"floor"`
	Capacity  int       `json:"capacity"`
	Equipment []string  `json:"equipment"`
	Status    string    `json:"status"`
}

type EventView struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	RequesterID uuid.UUID `json:"requester_id"`
	Unit        string    `json:"unit"`
	StartAt     time.Time `json:"start_at"`
	EndAt       time.Time `json:"end_at"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
