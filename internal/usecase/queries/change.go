package queries

import (
	"context"

	"github.com/google/uuid"
)

type ChangeReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ChangeView, error)
	ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*ChangeView, error)
}

type ChangeQueries interface {
	Get(ctx context.Context, id uuid.UUID) (*ChangeView, error)
	ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*ChangeView, error)
}

type changeQueriesImpl struct {
	store ChangeReadStore
}

func NewChangeQueries(store ChangeReadStore) ChangeQueries {
	return &changeQueriesImpl{store: store}
}

func (q *changeQueriesImpl) Get(ctx context.Context, id uuid.UUID) (*ChangeView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		return nil, mapReadErr(err)
	}
	return view, nil
}

func (q *changeQueriesImpl) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*ChangeView, error) {
	views, err := q.store.ListByBooking(ctx, bookingID)
	if err != nil {
		return nil, mapReadErr(err)
	}
	return views, nil
}
