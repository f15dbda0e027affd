package room

import (
	"errors"
	"slices"

	"github.com/google/uuid"
)

var (
	ErrRoomUnavailable  = errors.New("room is not available for booking")
	ErrCapacityTooSmall = errors.New("room capacity below requested minimum")
	ErrMissingEquipment = errors.New("room lacks required equipment")
)

// Room is catalog reference data. The catalog owns it; the core only reads
// capacity, equipment and operational status to validate candidate
// assignments.
type Room struct {
	id        uuid.UUID
	code      string
	name      string
	building  string
	floor     int
	capacity  int
	equipment []string
	status    Status
}

func Reconstruct(id uuid.UUID, code, name, building string, floor, capacity int, equipment []string, status Status) *Room {
	return &Room{
		id:        id,
		code:      code,
		name:      name,
		building:  building,
		floor:     floor,
		capacity:  capacity,
		equipment: equipment,
		status:    status,
	}
}

func (r *Room) ID() uuid.UUID       { return r.id }
func (r *Room) Code() string        { return r.code }
func (r *Room) Name() string        { return r.name }
func (r *Room) Building() string    { return r.building }
func (r *Room) Floor() int          { return r.floor }
func (r *Room) Capacity() int       { return r.capacity }
func (r *Room) Equipment() []string { return r.equipment }
func (r *Room) Status() Status      { return r.status }

// Bookable excludes only rooms taken out of service. InUse/Reserved describe
// the current occupancy, not future availability.
func (r *Room) Bookable() bool {
	return r.status != StatusUnderMaintenance && r.status != StatusRetired
}

// ValidateAssignment checks room status and the requested criteria before any
// conflict detection happens.
func (r *Room) ValidateAssignment(minCapacity int, requiredEquipment []string) error {
	if !r.Bookable() {
		return ErrRoomUnavailable
	}
	if minCapacity > 0 && r.capacity < minCapacity {
		return ErrCapacityTooSmall
	}
	for _, eq := range requiredEquipment {
		if !slices.Contains(r.equipment, eq) {
			return ErrMissingEquipment
		}
	}
	return nil
}
