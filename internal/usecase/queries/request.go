package queries

import (
	"context"

	"github.com/google/uuid"
)

type RequestReadStore interface {
	FindHeaderByID(ctx context.Context, id uuid.UUID) (*HeaderView, error)
	FindHeaderByEventID(ctx context.Context, eventID uuid.UUID) (*HeaderView, error)
	ListHeadersByUnit(ctx context.Context, unit string) ([]*HeaderView, error)
}

type RequestQueries interface {
	GetHeader(ctx context.Context, id uuid.UUID) (*HeaderView, error)
	GetHeaderByEvent(ctx context.Context, eventID uuid.UUID) (*HeaderView, error)
	ListByUnit(ctx context.Context, unit string) ([]*HeaderView, error)
}

type requestQueriesImpl struct {
	store RequestReadStore
}

func NewRequestQueries(store RequestReadStore) RequestQueries {
	return &requestQueriesImpl{store: store}
}

func (q *requestQueriesImpl) GetHeader(ctx context.Context, id uuid.UUID) (*HeaderView, error) {
	view, err := q.store.FindHeaderByID(ctx, id)
	if err != nil {
		return nil, mapReadErr(err)
	}
	return view, nil
}

func (q *requestQueriesImpl) GetHeaderByEvent(ctx context.Context, eventID uuid.UUID) (*HeaderView, error) {
	view, err := q.store.FindHeaderByEventID(ctx, eventID)
	if err != nil {
		return nil, mapReadErr(err)
	}
	return view, nil
}

func (q *requestQueriesImpl) ListByUnit(ctx context.Context, unit string) ([]*HeaderView, error) {
	views, err := q.store.ListHeadersByUnit(ctx, unit)
	if err != nil {
		return nil, mapReadErr(err)
	}
	return views, nil
}
