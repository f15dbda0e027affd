package repository

import (
	"context"
	"time"

	"facility-reservation/internal/domain/event"
	"facility-reservation/internal/domain/timeslot"
	"facility-reservation/internal/infra"
	"facility-reservation/internal/infra/db"
	"facility-reservation/internal/infra/pgconv"

	"github.com/google/uuid"
)

type EventRepository struct {
	db db.DBTX
}

func NewEventRepository(dbtx db.DBTX) *EventRepository {
	return &EventRepository{db: dbtx}
}

func (r *EventRepository) Insert(ctx context.Context, ev *event.Event) error {
	const q = `
		INSERT INTO events (id, title, requester_id, unit, start_at, end_at, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(ctx, q,
		ev.ID(), ev.Title(), ev.RequesterID(), ev.Unit(),
		ev.Window().Start(), ev.Window().End(),
		ev.Status().String(), ev.CreatedAt(), ev.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert event", err)
	}
	return nil
}

func (r *EventRepository) FindForUpdate(ctx context.Context, id uuid.UUID) (*event.Event, error) {
	const q = `
		SELECT id, title, requester_id, unit, start_at, end_at, status, created_at, updated_at
		FROM events
		WHERE id = $1
		FOR UPDATE`

	var (
		evID, requesterID    uuid.UUID
		title, unit, status  string
		startAt, endAt       time.Time
		createdAt, updatedAt time.Time
	)
	err := r.db.QueryRow(ctx, q, id).Scan(
		&evID, &title, &requesterID, &unit, &startAt, &endAt, &status, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("event not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find event", err)
	}
	window, err := timeslot.NewInterval(startAt, endAt)
	if err != nil {
		return nil, infra.WrapRepoErr("stored event window is corrupt", err)
	}
	return event.Reconstruct(evID, title, requesterID, unit, window, event.Status(status), createdAt, updatedAt), nil
}

func (r *EventRepository) Update(ctx context.Context, ev *event.Event) error {
	const q = `UPDATE events SET status = $2, updated_at = $3 WHERE id = $1`

	tag, err := r.db.Exec(ctx, q, ev.ID(), ev.Status().String(), ev.UpdatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to update event", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("event vanished during update", nil, infra.KindNotFound)
	}
	return nil
}
