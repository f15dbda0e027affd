package readstore

import (
	"context"

	"facility-reservation/internal/infra"
	"facility-reservation/internal/infra/db"
	"facility-reservation/internal/infra/pgconv"
	"facility-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

// CommandReads serves the write side's lightweight lookups: ownership and
// status snapshots for authorization and precondition checks, without
// hydrating full aggregates.
type CommandReads struct {
	db db.DBTX
}

func NewCommandReads(dbtx db.DBTX) *CommandReads {
	return &CommandReads{db: dbtx}
}

func (s *CommandReads) EventByID(ctx context.Context, id uuid.UUID) (*shared.EventSnapshot, error) {
	const q = `SELECT id, title, requester_id, unit, status FROM events WHERE id = $1`

	var snap shared.EventSnapshot
	err := s.db.QueryRow(ctx, q, id).Scan(&snap.ID, &snap.Title, &snap.RequesterID, &snap.Unit, &snap.Status)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("event not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to snapshot event", err)
	}
	return &snap, nil
}

func (s *CommandReads) HeaderByID(ctx context.Context, id uuid.UUID) (*shared.HeaderSnapshot, error) {
	const q = `SELECT id, event_id, requester_id, requesting_unit, status FROM room_request_headers WHERE id = $1`
	return s.scanHeaderSnapshot(ctx, q, id)
}

func (s *CommandReads) HeaderByLineID(ctx context.Context, lineID uuid.UUID) (*shared.HeaderSnapshot, error) {
	const q = `
		SELECT h.id, h.event_id, h.requester_id, h.requesting_unit, h.status
		FROM room_request_headers h
		JOIN room_request_lines l ON l.header_id = h.id
		WHERE l.id = $1`
	return s.scanHeaderSnapshot(ctx, q, lineID)
}

func (s *CommandReads) scanHeaderSnapshot(ctx context.Context, q string, arg any) (*shared.HeaderSnapshot, error) {
	var snap shared.HeaderSnapshot
	err := s.db.QueryRow(ctx, q, arg).Scan(&snap.ID, &snap.EventID, &snap.RequesterID, &snap.Unit, &snap.Status)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("request header not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to snapshot request header", err)
	}
	return &snap, nil
}

func (s *CommandReads) BookingOwner(ctx context.Context, bookingID uuid.UUID) (*shared.BookingOwnerSnapshot, error) {
	const q = `
		SELECT b.id, b.room_id, b.line_id, h.id, h.requester_id, h.requesting_unit, b.status
		FROM room_bookings b
		JOIN room_request_lines l ON l.id = b.line_id
		JOIN room_request_headers h ON h.id = l.header_id
		WHERE b.id = $1`

	var snap shared.BookingOwnerSnapshot
	err := s.db.QueryRow(ctx, q, bookingID).Scan(
		&snap.BookingID, &snap.RoomID, &snap.LineID, &snap.HeaderID, &snap.RequesterID, &snap.Unit, &snap.Status,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to snapshot booking owner", err)
	}
	return &snap, nil
}

func (s *CommandReads) ChangeByID(ctx context.Context, id uuid.UUID) (*shared.ChangeSnapshot, error) {
	const q = `SELECT id, booking_id, requester_id, status FROM room_change_requests WHERE id = $1`

	var snap shared.ChangeSnapshot
	err := s.db.QueryRow(ctx, q, id).Scan(&snap.ID, &snap.BookingID, &snap.RequesterID, &snap.Status)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("change request not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to snapshot change request", err)
	}
	return &snap, nil
}
