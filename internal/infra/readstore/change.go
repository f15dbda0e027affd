package readstore

import (
	"context"

	"facility-reservation/internal/infra"
	"facility-reservation/internal/infra/db"
	"facility-reservation/internal/infra/pgconv"
	"facility-reservation/internal/usecase/queries"

	"github.com/google/uuid"
)

type ChangeReadStore struct {
	db db.DBTX
}

func NewChangeReadStore(dbtx db.DBTX) *ChangeReadStore {
	return &ChangeReadStore{db: dbtx}
}

func (s *ChangeReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ChangeView, error) {
	const q = `
		SELECT id, booking_id, requester_id, reason, status, decided_note, created_at, updated_at
		FROM room_change_requests
		WHERE id = $1`

	v, err := scanChangeView(s.db.QueryRow(ctx, q, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("change request not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find change request view", err)
	}
	return v, nil
}

func (s *ChangeReadStore) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*queries.ChangeView, error) {
	const q = `
		SELECT id, booking_id, requester_id, reason, status, decided_note, created_at, updated_at
		FROM room_change_requests
		WHERE booking_id = $1
		ORDER BY created_at DESC`

	rows, err := s.db.Query(ctx, q, bookingID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list change request views", err)
	}
	defer rows.Close()

	var views []*queries.ChangeView
	for rows.Next() {
		v, err := scanChangeView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan change request view", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate change request views", err)
	}
	return views, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanChangeView(row rowScanner) (*queries.ChangeView, error) {
	var (
		v           queries.ChangeView
		decidedNote string
	)
	if err := row.Scan(&v.ID, &v.BookingID, &v.RequesterID, &v.Reason, &v.Status, &decidedNote, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return nil, err
	}
	if decidedNote != "" {
		v.DecidedNote = &decidedNote
	}
	return &v, nil
}
