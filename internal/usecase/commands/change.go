package commands

import (
	"context"
	"errors"
	"time"

	"facility-reservation/internal/domain/booking"
	"facility-reservation/internal/domain/change"
	"facility-reservation/internal/domain/request"
	"facility-reservation/internal/domain/timeslot"
	"facility-reservation/internal/infra"
	"facility-reservation/internal/pkg/authz"
	"facility-reservation/internal/pkg/clock"
	"facility-reservation/internal/pkg/errs"
	"facility-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

type ChangeCommands interface {
	Submit(ctx context.Context, actor authz.Actor, bookingID uuid.UUID, reason string, newCriteria *NewLineInput) (uuid.UUID, error)
	Decide(ctx context.Context, actor authz.Actor, changeID uuid.UUID, decision ChangeDecision) error
	Cancel(ctx context.Context, actor authz.Actor, changeID uuid.UUID) error
}

type changeCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewChangeCommands(uow shared.UnitOfWork, clock clock.Clock) ChangeCommands {
	return &changeCommandsImpl{uow: uow, clock: clock}
}

// Submit opens a change request against an active booking. A partial unique
// index allows at most one open request per booking, so two racing submits
// resolve to exactly one winner.
func (c *changeCommandsImpl) Submit(ctx context.Context, actor authz.Actor, bookingID uuid.UUID, reason string, newCriteria *NewLineInput) (uuid.UUID, error) {
	now := c.clock.Now()

	owner, err := c.uow.Reads().BookingOwner(ctx, bookingID)
	if err != nil {
		return uuid.Nil, mapRepoErr(err)
	}
	if !actor.CanFor(authz.ActionSubmitChange, owner.RequesterID, owner.Unit) {
		return uuid.Nil, ErrAuthorization
	}

	var criteria *request.Criteria
	if newCriteria != nil {
		cr := request.NewCriteria(newCriteria.RoomType, newCriteria.MinCapacity, newCriteria.Equipment, newCriteria.Note)
		criteria = &cr
	}

	cr, err := change.NewRequest(bookingID, actor.ID, reason, criteria, now)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrValidation)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindForUpdate(ctx, bookingID)
		if err != nil {
			return mapRepoErr(err)
		}
		if !b.IsActive() {
			return ErrBookingNotActive
		}
		if err := tx.Changes().Insert(ctx, cr); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, ErrDuplicateChangeRequest)
			}
			return errs.Mark(err, ErrInfrastructure)
		}
		return enqueue(ctx, tx, TopicChangeSubmitted, map[string]any{
			"change_id":  cr.ID(),
			"booking_id": bookingID,
		})
	})
	if err != nil {
		return uuid.Nil, err
	}
	return cr.ID(), nil
}

// Decide approves or rejects a pending change. Approval supersedes the old
// booking atomically; on conflict the change request stays pending and the
// error surfaces to the caller: approval is never silently downgraded to
// rejection.
func (c *changeCommandsImpl) Decide(ctx context.Context, actor authz.Actor, changeID uuid.UUID, decision ChangeDecision) error {
	if !actor.Can(authz.ActionDecideChange) {
		return ErrAuthorization
	}
	if (decision.Approve == nil) == (decision.Reject == nil) {
		return errs.Mark(errs.New("decision must be exactly one of approve or reject"), ErrValidation)
	}

	now := c.clock.Now()
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		cr, err := tx.Changes().FindForUpdate(ctx, changeID)
		if err != nil {
			return mapRepoErr(err)
		}

		if decision.Reject != nil {
			if err := cr.Reject(decision.Reject.Reason, now); err != nil {
				return errs.Mark(err, ErrStateTransition)
			}
			if err := tx.Changes().Update(ctx, cr); err != nil {
				return errs.Mark(err, ErrInfrastructure)
			}
			return enqueue(ctx, tx, TopicChangeRejected, map[string]any{
				"change_id": changeID,
			})
		}

		return c.approve(ctx, tx, cr, *decision.Approve, now)
	})
}

func (c *changeCommandsImpl) approve(ctx context.Context, tx shared.Tx, cr *change.Request, approve ApproveChange, now time.Time) error {
	newInterval, err := timeslot.NewInterval(approve.Start, approve.End)
	if err != nil {
		return errs.Mark(err, ErrValidation)
	}

	// Re-check the old booking inside the transaction: a concurrent cancel
	// must fail the supersede, not corrupt state.
	old, err := tx.Bookings().FindForUpdate(ctx, cr.BookingID())
	if err != nil {
		return mapRepoErr(err)
	}
	if !old.IsActive() {
		return ErrBookingNotActive
	}

	header, err := tx.Requests().FindHeaderByLineForUpdate(ctx, old.LineID())
	if err != nil {
		return mapRepoErr(err)
	}
	line := header.LineByID(old.LineID())
	if line == nil {
		return ErrNotFound
	}

	rm, err := tx.Rooms().FindByID(ctx, approve.NewRoomID)
	if err != nil {
		return mapRepoErr(err)
	}
	minCap, equipment := line.Criteria().MinCapacity(), line.Criteria().Equipment()
	if nc := cr.NewCriteria(); nc != nil {
		minCap, equipment = nc.MinCapacity(), nc.Equipment()
	}
	if err := rm.ValidateAssignment(minCap, equipment); err != nil {
		return markRoomErr(err)
	}

	if err := tx.Bookings().LockRoom(ctx, approve.NewRoomID); err != nil {
		return errs.Mark(err, ErrInfrastructure)
	}
	oldID := old.ID()
	overlap, err := tx.Bookings().HasOverlap(ctx, approve.NewRoomID, newInterval, &oldID)
	if err != nil {
		return errs.Mark(err, ErrInfrastructure)
	}
	if overlap {
		return ErrConflict
	}

	replacement := booking.NewBooking(approve.NewRoomID, old.LineID(), newInterval, now)
	if err := old.MarkSuperseded(now); err != nil {
		return errs.Mark(err, ErrStateTransition)
	}
	if err := cr.Approve(now); err != nil {
		return errs.Mark(err, ErrStateTransition)
	}

	if err := line.Reassign(replacement.ID(), newInterval, now); err != nil {
		return errs.Mark(err, ErrStateTransition)
	}

	if err := tx.Bookings().Insert(ctx, replacement); err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return errs.Mark(err, ErrConflict)
		}
		return errs.Mark(err, ErrInfrastructure)
	}
	if err := tx.Bookings().Update(ctx, old); err != nil {
		return errs.Mark(err, ErrInfrastructure)
	}
	if err := tx.Requests().UpdateLine(ctx, line); err != nil {
		return errs.Mark(err, ErrInfrastructure)
	}
	if err := tx.Changes().Update(ctx, cr); err != nil {
		return errs.Mark(err, ErrInfrastructure)
	}

	if err := enqueue(ctx, tx, TopicBookingSuperseded, map[string]any{
		"old_booking_id": old.ID(),
		"new_booking_id": replacement.ID(),
		"room_id":        replacement.RoomID(),
	}); err != nil {
		return errs.Mark(err, ErrInfrastructure)
	}
	return enqueue(ctx, tx, TopicChangeApproved, map[string]any{
		"change_id":      cr.ID(),
		"new_booking_id": replacement.ID(),
	})
}

func (c *changeCommandsImpl) Cancel(ctx context.Context, actor authz.Actor, changeID uuid.UUID) error {
	now := c.clock.Now()
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		cr, err := tx.Changes().FindForUpdate(ctx, changeID)
		if err != nil {
			return mapRepoErr(err)
		}
		if err := cr.Cancel(actor.ID, now); err != nil {
			if errors.Is(err, change.ErrNotRequester) {
				return errs.Mark(err, ErrAuthorization)
			}
			return errs.Mark(err, ErrStateTransition)
		}
		return mapInfraErr(tx.Changes().Update(ctx, cr))
	})
}
