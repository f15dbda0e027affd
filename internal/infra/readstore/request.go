package readstore

import (
	"context"

	"facility-reservation/internal/infra"
	"facility-reservation/internal/infra/db"
	"facility-reservation/internal/infra/pgconv"
	"facility-reservation/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type RequestReadStore struct {
	db db.DBTX
}

func NewRequestReadStore(dbtx db.DBTX) *RequestReadStore {
	return &RequestReadStore{db: dbtx}
}

const headerViewColumns = `
	h.id, h.event_id, e.title, h.requester_id, h.requesting_unit, h.status, h.created_at, h.updated_at
	FROM room_request_headers h
	JOIN events e ON e.id = h.event_id`

func (s *RequestReadStore) FindHeaderByID(ctx context.Context, id uuid.UUID) (*queries.HeaderView, error) {
	return s.findHeader(ctx, `WHERE h.id = $1`, id)
}

func (s *RequestReadStore) FindHeaderByEventID(ctx context.Context, eventID uuid.UUID) (*queries.HeaderView, error) {
	return s.findHeader(ctx, `WHERE h.event_id = $1`, eventID)
}

func (s *RequestReadStore) findHeader(ctx context.Context, where string, arg any) (*queries.HeaderView, error) {
	q := `SELECT ` + headerViewColumns + ` ` + where

	var v queries.HeaderView
	err := s.db.QueryRow(ctx, q, arg).Scan(
		&v.ID, &v.EventID, &v.EventTitle, &v.RequesterID, &v.RequestingUnit, &v.Status, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("request header not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find request header view", err)
	}

	lines, err := s.loadLineViews(ctx, v.ID)
	if err != nil {
		return nil, err
	}
	v.Lines = lines
	return &v, nil
}

func (s *RequestReadStore) ListHeadersByUnit(ctx context.Context, unit string) ([]*queries.HeaderView, error) {
	q := `SELECT ` + headerViewColumns + ` WHERE h.requesting_unit = $1 ORDER BY h.created_at DESC`

	rows, err := s.db.Query(ctx, q, unit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list request headers", err)
	}
	defer rows.Close()

	var views []*queries.HeaderView
	for rows.Next() {
		var v queries.HeaderView
		if err := rows.Scan(&v.ID, &v.EventID, &v.EventTitle, &v.RequesterID, &v.RequestingUnit, &v.Status, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan request header view", err)
		}
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate request header views", err)
	}

	for _, v := range views {
		lines, err := s.loadLineViews(ctx, v.ID)
		if err != nil {
			return nil, err
		}
		v.Lines = lines
	}
	return views, nil
}

func (s *RequestReadStore) loadLineViews(ctx context.Context, headerID uuid.UUID) ([]queries.LineView, error) {
	const q = `
		SELECT id, header_id, start_at, end_at, room_type, min_capacity, equipment, note, status, reject_reason, booking_id
		FROM room_request_lines
		WHERE header_id = $1
		ORDER BY created_at, id`

	rows, err := s.db.Query(ctx, q, headerID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load line views", err)
	}
	defer rows.Close()

	var lines []queries.LineView
	for rows.Next() {
		var (
			v            queries.LineView
			rejectReason string
			bookingID    pgtype.UUID
		)
		if err := rows.Scan(&v.ID, &v.HeaderID, &v.StartAt, &v.EndAt, &v.RoomType, &v.MinCapacity,
			&v.Equipment, &v.Note, &v.Status, &rejectReason, &bookingID); err != nil {
			return nil, infra.WrapRepoErr("failed to scan line view", err)
		}
		if rejectReason != "" {
			v.RejectReason = &rejectReason
		}
		v.BookingID = pgconv.UUIDPtrFromPgtype(bookingID)
		lines = append(lines, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate line views", err)
	}
	return lines, nil
}
