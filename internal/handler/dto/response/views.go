package response

import (
	"time"

	"facility-reservation/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type EventResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	RequesterID uuid.UUID `json:"requesterId"`
	Unit        string    `json:"unit"`
	StartAt     time.Time `json:"startAt"`
	EndAt       time.Time `json:"endAt"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type LineResponse struct {
	ID           uuid.UUID  `json:"id"`
	StartAt      time.Time  `json:"startAt"`
	EndAt        time.Time  `json:"endAt"`
	RoomType     string     `json:"roomType,omitempty"`
	MinCapacity  int        `json:"minCapacity,omitempty"`
	Equipment    []string   `json:"equipment,omitempty"`
	Note         string     `json:"note,omitempty"`
	Status       string     `json:"status"`
	RejectReason *string    `json:"rejectReason,omitempty"`
	BookingID    *uuid.UUID `json:"bookingId,omitempty"`
}

type HeaderResponse struct {
	ID             uuid.UUID      `json:"id"`
	EventID        uuid.UUID      `json:"eventId"`
	EventTitle     string         `json:"eventTitle"`
	RequesterID    uuid.UUID      `json:"requesterId"`
	RequestingUnit string         `json:"requestingUnit"`
	Status         string         `json:"status"`
	Lines          []LineResponse `json:"lines"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

type BookingResponse struct {
	ID        uuid.UUID `json:"id"`
	RoomID    uuid.UUID `json:"roomId"`
	RoomCode  string    `json:"roomCode"`
	LineID    uuid.UUID `json:"lineId"`
	StartAt   time.Time `json:"startAt"`
	EndAt     time.Time `json:"endAt"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ChangeResponse struct {
	ID          uuid.UUID `json:"id"`
	BookingID   uuid.UUID `json:"bookingId"`
	RequesterID uuid.UUID `json:"requesterId"`
	Reason      string    `json:"reason"`
	Status      string    `json:"status"`
	DecidedNote *string   `json:"decidedNote,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type RoomResponse struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Building  string    `json:"building"`
	Floor     int       `json:"floor"`
	Capacity  int       `json:"capacity"`
	Equipment []string  `json:"equipment"`
	Status    string    `json:"status"`
}

type CreatedResponse struct {
	ID uuid.UUID `json:"id"`
}

func FromEventView(v *queries.EventView) *EventResponse {
	var resp EventResponse
	_ = copier.Copy(&resp, v)
	return &resp
}

func FromEventViews(views []*queries.EventView) []*EventResponse {
	out := make([]*EventResponse, len(views))
	for i, v := range views {
		out[i] = FromEventView(v)
	}
	return out
}

func FromHeaderView(v *queries.HeaderView) *HeaderResponse {
	var resp HeaderResponse
	_ = copier.Copy(&resp, v)
	return &resp
}

func FromHeaderViews(views []*queries.HeaderView) []*HeaderResponse {
	out := make([]*HeaderResponse, len(views))
	for i, v := range views {
		out[i] = FromHeaderView(v)
	}
	return out
}

func FromBookingView(v *queries.BookingView) *BookingResponse {
	var resp BookingResponse
	_ = copier.Copy(&resp, v)
	return &resp
}

func FromBookingViews(views []*queries.BookingView) []*BookingResponse {
	out := make([]*BookingResponse, len(views))
	for i, v := range views {
		out[i] = FromBookingView(v)
	}
	return out
}

func FromChangeView(v *queries.ChangeView) *ChangeResponse {
	var resp ChangeResponse
	_ = copier.Copy(&resp, v)
	return &resp
}

func FromChangeViews(views []*queries.ChangeView) []*ChangeResponse {
	out := make([]*ChangeResponse, len(views))
	for i, v := range views {
		out[i] = FromChangeView(v)
	}
	return out
}

func FromRoomView(v *queries.RoomView) *RoomResponse {
	var resp RoomResponse
	_ = copier.Copy(&resp, v)
	return &resp
}

func FromRoomViews(views []*queries.RoomView) []*RoomResponse {
	out := make([]*RoomResponse, len(views))
	for i, v := range views {
		out[i] = FromRoomView(v)
	}
	return out
}
