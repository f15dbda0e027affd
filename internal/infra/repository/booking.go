package repository

import (
	"context"
	"time"

	"facility-reservation/internal/domain/booking"
	"facility-reservation/internal/domain/timeslot"
	"facility-reservation/internal/infra"
	"facility-reservation/internal/infra/db"
	"facility-reservation/internal/infra/pgconv"

	"github.com/google/uuid"
)

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(dbtx db.DBTX) *BookingRepository {
	return &BookingRepository{db: dbtx}
}

// LockRoom serializes all conflict-relevant writes for one room without
// locking the whole ledger. Advisory xact locks release automatically at
// commit/rollback.
func (r *BookingRepository) LockRoom(ctx context.Context, roomID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1::text, 0))`, roomID)
	if err != nil {
		return infra.WrapRepoErr("failed to acquire room lock", err)
	}
	return nil
}

// HasOverlap is the conflict detector over persisted state: half-open
// interval overlap against active bookings only, optionally excluding the
// booking being replaced.
func (r *BookingRepository) HasOverlap(ctx context.Context, roomID uuid.UUID, interval timeslot.Interval, exclude *uuid.UUID) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM room_bookings
			WHERE room_id = $1
			  AND status = 'active'
			  AND start_at < $3
			  AND $2 < end_at
			  AND ($4::uuid IS NULL OR id <> $4)
		)`

	var exists bool
	err := r.db.QueryRow(ctx, q, roomID, interval.Start(), interval.End(), pgconv.UUIDPtrToPgtype(exclude)).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check booking overlap", err)
	}
	return exists, nil
}

func (r *BookingRepository) Insert(ctx context.Context, b *booking.Booking) error {
	const q = `
		INSERT INTO room_bookings (id, room_id, line_id, start_at, end_at, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(ctx, q,
		b.ID(), b.RoomID(), b.LineID(),
		b.Interval().Start(), b.Interval().End(),
		b.Status().String(), b.CreatedAt(), b.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert booking", err)
	}
	return nil
}

func (r *BookingRepository) FindForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	const q = `
		SELECT id, room_id, line_id, start_at, end_at, status, created_at, updated_at
		FROM room_bookings
		WHERE id = $1
		FOR UPDATE`

	row := r.db.QueryRow(ctx, q, id)
	b, err := scanBooking(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}
	return b, nil
}

func (r *BookingRepository) Update(ctx context.Context, b *booking.Booking) error {
	const q = `UPDATE room_bookings SET status = $2, updated_at = $3 WHERE id = $1`

	tag, err := r.db.Exec(ctx, q, b.ID(), b.Status().String(), b.UpdatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to update booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking vanished during update", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookingRepository) FindActiveByHeader(ctx context.Context, headerID uuid.UUID) ([]*booking.Booking, error) {
	const q = `
		SELECT b.id, b.room_id, b.line_id, b.start_at, b.end_at, b.status, b.created_at, b.updated_at
		FROM room_bookings b
		JOIN room_request_lines l ON l.id = b.line_id
		WHERE l.header_id = $1 AND b.status = 'active'
		ORDER BY b.start_at
		FOR UPDATE OF b`

	rows, err := r.db.Query(ctx, q, headerID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active bookings for header", err)
	}
	defer rows.Close()

	var out []*booking.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking rows", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*booking.Booking, error) {
	var (
		id, roomID, lineID   uuid.UUID
		startAt, endAt       time.Time
		status               string
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &roomID, &lineID, &startAt, &endAt, &status, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	interval, err := timeslot.NewInterval(startAt, endAt)
	if err != nil {
		return nil, err
	}
	return booking.Reconstruct(id, roomID, lineID, interval, booking.Status(status), createdAt, updatedAt), nil
}
