package repository

import (
	"context"
	"time"

	"facility-reservation/internal/domain/request"
	"facility-reservation/internal/domain/timeslot"
	"facility-reservation/internal/infra"
	"facility-reservation/internal/infra/db"
	"facility-reservation/internal/infra/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type RequestRepository struct {
	db db.DBTX
}

func NewRequestRepository(dbtx db.DBTX) *RequestRepository {
	return &RequestRepository{db: dbtx}
}

func (r *RequestRepository) InsertHeader(ctx context.Context, h *request.Header) error {
	const q = `
		INSERT INTO room_request_headers (id, event_id, requester_id, requesting_unit, status, cancelled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(ctx, q,
		h.ID(), h.EventID(), h.RequesterID(), h.RequestingUnit(),
		h.Status().String(), h.Cancelled(), h.CreatedAt(), h.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert request header", err)
	}
	return nil
}

func (r *RequestRepository) InsertLines(ctx context.Context, lines []*request.Line) error {
	const q = `
		INSERT INTO room_request_lines
			(id, header_id, start_at, end_at, room_type, min_capacity, equipment, note, status, reject_reason, booking_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	for _, l := range lines {
		c := l.Criteria()
		_, err := r.db.Exec(ctx, q,
			l.ID(), l.HeaderID(),
			l.Desired().Start(), l.Desired().End(),
			c.RoomType(), c.MinCapacity(), c.Equipment(), c.Note(),
			l.Status().String(), l.RejectReason(), pgconv.UUIDPtrToPgtype(l.BookingID()),
			l.CreatedAt(), l.UpdatedAt(),
		)
		if err != nil {
			return infra.WrapRepoErr("failed to insert request line", err)
		}
	}
	return nil
}

func (r *RequestRepository) FindHeaderForUpdate(ctx context.Context, id uuid.UUID) (*request.Header, error) {
	return r.findHeader(ctx, `WHERE h.id = $1`, id)
}

func (r *RequestRepository) FindHeaderByEventForUpdate(ctx context.Context, eventID uuid.UUID) (*request.Header, error) {
	return r.findHeader(ctx, `WHERE h.event_id = $1`, eventID)
}

// FindHeaderByLineForUpdate resolves a line id to its whole header so line
// decisions always run against a locked, fully loaded aggregate.
func (r *RequestRepository) FindHeaderByLineForUpdate(ctx context.Context, lineID uuid.UUID) (*request.Header, error) {
	return r.findHeader(ctx, `WHERE h.id = (SELECT header_id FROM room_request_lines WHERE id = $1)`, lineID)
}

func (r *RequestRepository) findHeader(ctx context.Context, where string, arg any) (*request.Header, error) {
	q := `
		SELECT h.id, h.event_id, h.requester_id, h.requesting_unit, h.cancelled, h.created_at, h.updated_at
		FROM room_request_headers h ` + where + `
		FOR UPDATE`

	var (
		id, eventID, requesterID uuid.UUID
		requestingUnit           string
		cancelled                bool
		createdAt, updatedAt     time.Time
	)
	err := r.db.QueryRow(ctx, q, arg).Scan(
		&id, &eventID, &requesterID, &requestingUnit, &cancelled, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("request header not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find request header", err)
	}

	lines, err := r.loadLines(ctx, id)
	if err != nil {
		return nil, err
	}
	return request.ReconstructHeader(id, eventID, requesterID, requestingUnit, cancelled, lines, createdAt, updatedAt), nil
}

func (r *RequestRepository) loadLines(ctx context.Context, headerID uuid.UUID) ([]*request.Line, error) {
	const q = `
		SELECT id, header_id, start_at, end_at, room_type, min_capacity, equipment, note, status, reject_reason, booking_id, created_at, updated_at
		FROM room_request_lines
		WHERE header_id = $1
		ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, q, headerID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load request lines", err)
	}
	defer rows.Close()

	var lines []*request.Line
	for rows.Next() {
		var (
			id, hID              uuid.UUID
			startAt, endAt       time.Time
			roomType, note       string
			minCapacity          int
			equipment            []string
			status, rejectReason string
			bookingID            pgtype.UUID
			createdAt, updatedAt time.Time
		)
		if err := rows.Scan(&id, &hID, &startAt, &endAt, &roomType, &minCapacity, &equipment, &note,
			&status, &rejectReason, &bookingID, &createdAt, &updatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan request line", err)
		}
		desired, err := timeslot.NewInterval(startAt, endAt)
		if err != nil {
			return nil, infra.WrapRepoErr("stored line window is corrupt", err)
		}
		criteria := request.NewCriteria(roomType, minCapacity, equipment, note)
		lines = append(lines, request.ReconstructLine(
			id, hID, desired, criteria,
			request.LineStatus(status), rejectReason, pgconv.UUIDPtrFromPgtype(bookingID),
			createdAt, updatedAt,
		))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate request lines", err)
	}
	return lines, nil
}

func (r *RequestRepository) UpdateLine(ctx context.Context, l *request.Line) error {
	const q = `
		UPDATE room_request_lines
		SET start_at = $2, end_at = $3, status = $4, reject_reason = $5, booking_id = $6, updated_at = $7
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, q,
		l.ID(), l.Desired().Start(), l.Desired().End(),
		l.Status().String(), l.RejectReason(), pgconv.UUIDPtrToPgtype(l.BookingID()), l.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update request line", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("request line vanished during update", nil, infra.KindNotFound)
	}
	return nil
}

func (r *RequestRepository) DeleteLines(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	const q = `DELETE FROM room_request_lines WHERE id = ANY($1)`

	if _, err := r.db.Exec(ctx, q, ids); err != nil {
		return infra.WrapRepoErr("failed to delete request lines", err)
	}
	return nil
}

func (r *RequestRepository) UpdateHeaderState(ctx context.Context, h *request.Header) error {
	const q = `
		UPDATE room_request_headers
		SET status = $2, cancelled = $3, updated_at = $4
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, q, h.ID(), h.Status().String(), h.Cancelled(), h.UpdatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to update request header", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("request header vanished during update", nil, infra.KindNotFound)
	}
	return nil
}
