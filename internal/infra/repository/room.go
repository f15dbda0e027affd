package repository

import (
	"context"

	"facility-reservation/internal/domain/room"
	"facility-reservation/internal/infra"
	"facility-reservation/internal/infra/db"
	"facility-reservation/internal/infra/pgconv"

	"github.com/google/uuid"
)

// RoomCatalog reads catalog reference data. The core never writes rooms;
// seeding and maintenance live with the catalog owner.
type RoomCatalog struct {
	db db.DBTX
}

func NewRoomCatalog(dbtx db.DBTX) *RoomCatalog {
	return &RoomCatalog{db: dbtx}
}

func (r *RoomCatalog) FindByID(ctx context.Context, id uuid.UUID) (*room.Room, error) {
	const q = `
		SELECT id, code, name, building, floor, capacity, equipment, status
		FROM rooms
		WHERE id = $1`

	var (
		roomID               uuid.UUID
		code, name, building string
		floor, capacity      int
		equipment            []string
		status               string
	)
	err := r.db.QueryRow(ctx, q, id).Scan(&roomID, &code, &name, &building, &floor, &capacity, &equipment, &status)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find room", err)
	}
	return room.Reconstruct(roomID, code, name, building, floor, capacity, equipment, room.Status(status)), nil
}
