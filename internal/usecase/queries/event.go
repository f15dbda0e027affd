package queries

import (
	"context"

	"github.com/google/uuid"
)

type EventReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*EventView, error)
	ListByStatus(ctx context.Context, status string) ([]*EventView, error)
}

type EventQueries interface {
	Get(ctx context.Context, id uuid.UUID) (*EventView, error)
	ListByStatus(ctx context.Context, status string) ([]*EventView, error)
}

type eventQueriesImpl struct {
	store EventReadStore
}

func NewEventQueries(store EventReadStore) EventQueries {
	return &eventQueriesImpl{store: store}
}

func (q *eventQueriesImpl) Get(ctx context.Context, id uuid.UUID) (*EventView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		return nil, mapReadErr(err)
	}
	return view, nil
}

func (q *eventQueriesImpl) ListByStatus(ctx context.Context, status string) ([]*EventView, error) {
	views, err := q.store.ListByStatus(ctx, status)
	if err != nil {
		return nil, mapReadErr(err)
	}
	return views, nil
}
