package queries

import (
	"context"
	"time"

	"facility-reservation/internal/infra"
	"facility-reservation/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errs.New("not found")
	ErrInvalidWindow = errs.New("invalid query window")
)

type BookingReadStore interface {
	ListForRoom(ctx context.Context, roomID uuid.UUID, from, to time.Time) ([]*BookingView, error)
}

type BookingQueries interface {
	// ListForRoom returns bookings of any status intersecting the window,
	// for conflict visualization on the scheduling screens.
	ListForRoom(ctx context.Context, roomID uuid.UUID, from, to time.Time) ([]*BookingView, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
}

func NewBookingQueries(store BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{store: store}
}

func (q *bookingQueriesImpl) ListForRoom(ctx context.Context, roomID uuid.UUID, from, to time.Time) ([]*BookingView, error) {
	if !from.Before(to) {
		return nil, ErrInvalidWindow
	}
	views, err := q.store.ListForRoom(ctx, roomID, from, to)
	if err != nil {
		return nil, mapReadErr(err)
	}
	return views, nil
}

func mapReadErr(err error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, ErrNotFound)
	}
	return err
}
