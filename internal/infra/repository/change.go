package repository

import (
	"context"
	"time"

	"facility-reservation/internal/domain/change"
	"facility-reservation/internal/domain/request"
	"facility-reservation/internal/infra"
	"facility-reservation/internal/infra/db"
	"facility-reservation/internal/infra/pgconv"

	"github.com/google/uuid"
)

type ChangeRepository struct {
	db db.DBTX
}

func NewChangeRepository(dbtx db.DBTX) *ChangeRepository {
	return &ChangeRepository{db: dbtx}
}

func (r *ChangeRepository) Insert(ctx context.Context, cr *change.Request) error {
	const q = `
		INSERT INTO room_change_requests
			(id, booking_id, requester_id, reason, has_new_criteria, new_room_type, new_min_capacity, new_equipment, new_note, status, decided_note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	c := cr.NewCriteria()
	var (
		roomType, note string
		minCapacity    int
		equipment      []string
	)
	if c != nil {
		roomType, minCapacity, equipment, note = c.RoomType(), c.MinCapacity(), c.Equipment(), c.Note()
	}
	_, err := r.db.Exec(ctx, q,
		cr.ID(), cr.BookingID(), cr.RequesterID(), cr.Reason(),
		c != nil, roomType, minCapacity, equipment, note,
		cr.Status().String(), cr.DecidedNote(), cr.CreatedAt(), cr.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert change request", err)
	}
	return nil
}

func (r *ChangeRepository) FindForUpdate(ctx context.Context, id uuid.UUID) (*change.Request, error) {
	const q = `
		SELECT id, booking_id, requester_id, reason, has_new_criteria, new_room_type, new_min_capacity, new_equipment, new_note, status, decided_note, created_at, updated_at
		FROM room_change_requests
		WHERE id = $1
		FOR UPDATE`

	var (
		crID, bookingID, requesterID uuid.UUID
		reason, status, decidedNote  string
		hasNewCriteria               bool
		newRoomType, newNote         string
		newMinCapacity               int
		newEquipment                 []string
		createdAt, updatedAt         time.Time
	)
	err := r.db.QueryRow(ctx, q, id).Scan(
		&crID, &bookingID, &requesterID, &reason,
		&hasNewCriteria, &newRoomType, &newMinCapacity, &newEquipment, &newNote,
		&status, &decidedNote, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("change request not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find change request", err)
	}

	var criteria *request.Criteria
	if hasNewCriteria {
		c := request.NewCriteria(newRoomType, newMinCapacity, newEquipment, newNote)
		criteria = &c
	}
	return change.Reconstruct(crID, bookingID, requesterID, reason, criteria,
		change.Status(status), decidedNote, createdAt, updatedAt), nil
}

func (r *ChangeRepository) Update(ctx context.Context, cr *change.Request) error {
	const q = `
		UPDATE room_change_requests
		SET status = $2, decided_note = $3, updated_at = $4
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, q, cr.ID(), cr.Status().String(), cr.DecidedNote(), cr.UpdatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to update change request", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("change request vanished during update", nil, infra.KindNotFound)
	}
	return nil
}
