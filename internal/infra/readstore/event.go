package readstore

import (
	"context"

	"facility-reservation/internal/infra"
	"facility-reservation/internal/infra/db"
	"facility-reservation/internal/infra/pgconv"
	"facility-reservation/internal/usecase/queries"

	"github.com/google/uuid"
)

type EventReadStore struct {
	db db.DBTX
}

func NewEventReadStore(dbtx db.DBTX) *EventReadStore {
	return &EventReadStore{db: dbtx}
}

func (s *EventReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.EventView, error) {
	const q = `
		SELECT id, title, requester_id, unit, start_at, end_at, status, created_at, updated_at
		FROM events
		WHERE id = $1`

	var v queries.EventView
	err := s.db.QueryRow(ctx, q, id).Scan(&v.ID, &v.Title, &v.RequesterID, &v.Unit, &v.StartAt, &v.EndAt, &v.Status, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("event not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find event view", err)
	}
	return &v, nil
}

func (s *EventReadStore) ListByStatus(ctx context.Context, status string) ([]*queries.EventView, error) {
	const q = `
		SELECT id, title, requester_id, unit, start_at, end_at, status, created_at, updated_at
		FROM events
		WHERE status = $1
		ORDER BY created_at DESC`

	rows, err := s.db.Query(ctx, q, status)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list event views", err)
	}
	defer rows.Close()

	var views []*queries.EventView
	for rows.Next() {
		var v queries.EventView
		if err := rows.Scan(&v.ID, &v.Title, &v.RequesterID, &v.Unit, &v.StartAt, &v.EndAt, &v.Status, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan event view", err)
		}
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate event views", err)
	}
	return views, nil
}
