package authz

import (
	"github.com/google/uuid"
)

// Action is a capability name granted by the external identity service.
// The core never branches on role names, only on capability outcomes.
type Action string

const (
	ActionSubmitEvent      Action = "event:submit"
	ActionApproveEvent     Action = "event:approve"
	ActionCancelEvent      Action = "event:cancel"
	ActionCreateRequest    Action = "request:create"
	ActionEditRequest      Action = "request:edit"
	ActionCancelRequest    Action = "request:cancel"
	ActionResolveLine      Action = "request:resolve"
	ActionSubmitChange     Action = "change:submit"
	ActionDecideChange     Action = "change:decide"
	ActionViewRoomSchedule Action = "booking:view"
)

// Actor is the pre-authenticated caller identity handed to every operation.
type Actor struct {
	ID           uuid.UUID
	Unit         string
	capabilities map[Action]struct{}
}

func NewActor(id uuid.UUID, unit string, actions []Action) Actor {
	caps := make(map[Action]struct{}, len(actions))
	for _, a := range actions {
		caps[a] = struct{}{}
	}
	return Actor{ID: id, Unit: unit, capabilities: caps}
}

func (a Actor) Can(action Action) bool {
	_, ok := a.capabilities[action]
	return ok
}

// CanFor additionally accepts requester-owned resources: an actor without the
// capability may still act on resources of their own unit when ownerUnit
// matches, which covers "original requester only" operations.
func (a Actor) CanFor(action Action, ownerID uuid.UUID, ownerUnit string) bool {
	if a.Can(action) {
		return true
	}
	return a.ID == ownerID || (a.Unit != "" && a.Unit == ownerUnit)
}

func (a Actor) Capabilities() []Action {
	out := make([]Action, 0, len(a.capabilities))
	for c := range a.capabilities {
		out = append(out, c)
	}
	return out
}
