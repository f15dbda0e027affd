package readstore

import (
	"context"
	"time"

	"facility-reservation/internal/infra"
	"facility-reservation/internal/infra/db"
	"facility-reservation/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

func (s *BookingReadStore) ListForRoom(ctx context.Context, roomID uuid.UUID, from, to time.Time) ([]*queries.BookingView, error) {
	const q = `
		SELECT b.id, b.room_id, r.code, b.line_id, b.start_at, b.end_at, b.status, b.created_at, b.updated_at
		FROM room_bookings b
		JOIN rooms r ON r.id = b.room_id
		WHERE b.room_id = $1
		  AND b.start_at < $3
		  AND $2 < b.end_at
		ORDER BY b.start_at`

	rows, err := s.db.Query(ctx, q, roomID, from, to)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings for room", err)
	}
	defer rows.Close()

	var views []*queries.BookingView
	for rows.Next() {
		var v queries.BookingView
		if err := rows.Scan(&v.ID, &v.RoomID, &v.RoomCode, &v.LineID, &v.StartAt, &v.EndAt, &v.Status, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking view", err)
		}
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking views", err)
	}
	return views, nil
}
