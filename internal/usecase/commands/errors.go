package commands

import "facility-reservation/internal/pkg/errs"

// Typed outcomes returned to callers. All are recoverable-by-caller and are
// never auto-retried by the core; only ErrInfrastructure is fatal to the
// call, and it always means the enclosing transaction rolled back.
var (
	ErrValidation             = errs.New("validation error")
	ErrConflict               = errs.New("booking conflict")
	ErrRoomUnavailable        = errs.New("room unavailable")
	ErrStateTransition        = errs.New("operation not legal in current status")
	ErrEventNotApproved       = errs.New("event is not approved")
	ErrBookingNotActive       = errs.New("booking is not active")
	ErrDuplicateChangeRequest = errs.New("booking already has an open change request")
	ErrRequestAlreadyExists   = errs.New("event already has a room request")
	ErrNotFound               = errs.New("not found")
	ErrAuthorization          = errs.New("caller lacks capability for this action")
	ErrInfrastructure         = errs.New("infrastructure failure")
)
