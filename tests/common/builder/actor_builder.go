package builder

import (
	"facility-reservation/internal/pkg/authz"

	"github.com/google/uuid"
)

// NewRequesterActor carries the capabilities the identity service grants
// ordinary unit members.
func NewRequesterActor(id uuid.UUID, unit string) authz.Actor {
	return authz.NewActor(id, unit, []authz.Action{
		authz.ActionSubmitEvent,
		authz.ActionCancelEvent,
		authz.ActionCreateRequest,
		authz.ActionEditRequest,
		authz.ActionCancelRequest,
		authz.ActionSubmitChange,
		authz.ActionViewRoomSchedule,
	})
}

// NewStaffActor carries the facility-staff decision capabilities.
func NewStaffActor() authz.Actor {
	return authz.NewActor(uuid.New(), "facilities", []authz.Action{
		authz.ActionApproveEvent,
		authz.ActionResolveLine,
		authz.ActionDecideChange,
		authz.ActionViewRoomSchedule,
	})
}

// NewOutsiderActor has no capabilities and no unit overlap with anything the
// other builders create.
func NewOutsiderActor() authz.Actor {
	return authz.NewActor(uuid.New(), "athletics", nil)
}
