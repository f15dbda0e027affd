package readstore

import (
	"context"
	"fmt"

	"facility-reservation/internal/infra"
	"facility-reservation/internal/infra/db"
	"facility-reservation/internal/infra/pgconv"
	"facility-reservation/internal/usecase/queries"

	"github.com/google/uuid"
)

type RoomReadStore struct {
	db db.DBTX
}

func NewRoomReadStore(dbtx db.DBTX) *RoomReadStore {
	return &RoomReadStore{db: dbtx}
}

func (s *RoomReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.RoomView, error) {
	const q = `
		SELECT id, code, name, building, floor, capacity, equipment, status
		FROM rooms
		WHERE id = $1`

	var v queries.RoomView
	err := s.db.QueryRow(ctx, q, id).Scan(&v.ID, &v.Code, &v.Name, &v.Building, &v.Floor, &v.Capacity, &v.Equipment, &v.Status)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find room view", err)
	}
	return &v, nil
}

func (s *RoomReadStore) List(ctx context.Context, filter queries.RoomFilter) ([]*queries.RoomView, error) {
	q := `
		SELECT id, code, name, building, floor, capacity, equipment, status
		FROM rooms
		WHERE 1=1`
	var args []any
	if filter.Building != "" {
		args = append(args, filter.Building)
		q += fmt.Sprintf(" AND building = $%d", len(args))
	}
	if filter.MinCapacity > 0 {
		args = append(args, filter.MinCapacity)
		q += fmt.Sprintf(" AND capacity >= $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		q += fmt.Sprintf(" AND status = $%d", len(args))
	}
	q += " ORDER BY code"

	rows, err := s.db.Query(ctx, q, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list rooms", err)
	}
	defer rows.Close()

	var views []*queries.RoomView
	for rows.Next() {
		var v queries.RoomView
		if err := rows.Scan(&v.ID, &v.Code, &v.Name, &v.Building, &v.Floor, &v.Capacity, &v.Equipment, &v.Status); err != nil {
			return nil, infra.WrapRepoErr("failed to scan room view", err)
		}
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate room views", err)
	}
	return views, nil
}
