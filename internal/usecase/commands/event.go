package commands

import (
	"context"
	"errors"
	"time"

	"facility-reservation/internal/domain/event"
	"facility-reservation/internal/domain/request"
	"facility-reservation/internal/domain/timeslot"
	"facility-reservation/internal/infra"
	"facility-reservation/internal/pkg/authz"
	"facility-reservation/internal/pkg/clock"
	"facility-reservation/internal/pkg/errs"
	"facility-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

type EventCommands interface {
	Create(ctx context.Context, actor authz.Actor, title string, start, end time.Time) (uuid.UUID, error)
	SubmitForApproval(ctx context.Context, actor authz.Actor, eventID uuid.UUID) error
	Approve(ctx context.Context, actor authz.Actor, eventID uuid.UUID) error
	Reject(ctx context.Context, actor authz.Actor, eventID uuid.UUID) error
	RequestCancellation(ctx context.Context, actor authz.Actor, eventID uuid.UUID) error
	DecideCancellation(ctx context.Context, actor authz.Actor, eventID uuid.UUID, approve bool) error
}

type eventCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewEventCommands(uow shared.UnitOfWork, clock clock.Clock) EventCommands {
	return &eventCommandsImpl{uow: uow, clock: clock}
}

func (c *eventCommandsImpl) Create(ctx context.Context, actor authz.Actor, title string, start, end time.Time) (uuid.UUID, error) {
	if !actor.Can(authz.ActionSubmitEvent) {
		return uuid.Nil, ErrAuthorization
	}

	window, err := timeslot.NewInterval(start, end)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrValidation)
	}

	ev, err := event.NewEvent(title, actor.ID, actor.Unit, window, c.clock.Now())
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrValidation)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Events().Insert(ctx, ev); err != nil {
			return errs.Mark(err, ErrInfrastructure)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return ev.ID(), nil
}

func (c *eventCommandsImpl) SubmitForApproval(ctx context.Context, actor authz.Actor, eventID uuid.UUID) error {
	return c.transition(ctx, eventID, func(ev *event.Event) error {
		if !actor.CanFor(authz.ActionSubmitEvent, ev.RequesterID(), ev.Unit()) {
			return ErrAuthorization
		}
		return ev.SubmitForApproval(c.clock.Now())
	}, "", nil)
}

func (c *eventCommandsImpl) Approve(ctx context.Context, actor authz.Actor, eventID uuid.UUID) error {
	if !actor.Can(authz.ActionApproveEvent) {
		return ErrAuthorization
	}
	// Approving has no side effect on room requests: they are created only
	// after approval.
	return c.transition(ctx, eventID, func(ev *event.Event) error {
		return ev.Approve(c.clock.Now())
	}, TopicEventApproved, nil)
}

func (c *eventCommandsImpl) Reject(ctx context.Context, actor authz.Actor, eventID uuid.UUID) error {
	if !actor.Can(authz.ActionApproveEvent) {
		return ErrAuthorization
	}
	return c.transition(ctx, eventID, func(ev *event.Event) error {
		return ev.Reject(c.clock.Now())
	}, TopicEventRejected, nil)
}

func (c *eventCommandsImpl) RequestCancellation(ctx context.Context, actor authz.Actor, eventID uuid.UUID) error {
	return c.transition(ctx, eventID, func(ev *event.Event) error {
		if !actor.CanFor(authz.ActionCancelEvent, ev.RequesterID(), ev.Unit()) {
			return ErrAuthorization
		}
		return ev.RequestCancellation(c.clock.Now())
	}, "", nil)
}

// DecideCancellation approves or declines a pending cancellation. Approval
// cascade-cancels the event's room request header and every active booking
// under it, inside the same transaction.
func (c *eventCommandsImpl) DecideCancellation(ctx context.Context, actor authz.Actor, eventID uuid.UUID, approve bool) error {
	if !actor.Can(authz.ActionApproveEvent) {
		return ErrAuthorization
	}

	now := c.clock.Now()
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		ev, err := tx.Events().FindForUpdate(ctx, eventID)
		if err != nil {
			return mapRepoErr(err)
		}

		if !approve {
			if err := ev.DeclineCancellation(now); err != nil {
				return errs.Mark(err, ErrStateTransition)
			}
			return mapInfraErr(tx.Events().Update(ctx, ev))
		}

		if err := ev.ApproveCancellation(now); err != nil {
			return errs.Mark(err, ErrStateTransition)
		}
		if err := tx.Events().Update(ctx, ev); err != nil {
			return errs.Mark(err, ErrInfrastructure)
		}

		if err := c.cascadeCancel(ctx, tx, eventID, now); err != nil {
			return err
		}

		return enqueue(ctx, tx, TopicEventCancelled, map[string]any{
			"event_id": eventID,
		})
	})
}

// cascadeCancel force-cancels the event's header (if any) and cancels all of
// its active bookings, flipping their lines back to unassigned so the
// line/booking consistency invariant survives the cascade.
func (c *eventCommandsImpl) cascadeCancel(ctx context.Context, tx shared.Tx, eventID uuid.UUID, now time.Time) error {
	header, err := tx.Requests().FindHeaderByEventForUpdate(ctx, eventID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil // no room request yet, nothing to cascade
		}
		return errs.Mark(err, ErrInfrastructure)
	}

	bookings, err := tx.Bookings().FindActiveByHeader(ctx, header.ID())
	if err != nil {
		return errs.Mark(err, ErrInfrastructure)
	}

	for _, b := range bookings {
		if err := b.Cancel(now); err != nil {
			return errs.Mark(err, ErrStateTransition)
		}
		if err := tx.Bookings().Update(ctx, b); err != nil {
			return errs.Mark(err, ErrInfrastructure)
		}
		line := header.LineByID(b.LineID())
		if line != nil && line.Status() == request.LineAssigned {
			if err := line.ClearAssignment(now); err != nil {
				return errs.Mark(err, ErrStateTransition)
			}
			if err := tx.Requests().UpdateLine(ctx, line); err != nil {
				return errs.Mark(err, ErrInfrastructure)
			}
		}
		if err := enqueue(ctx, tx, TopicBookingCancelled, map[string]any{
			"booking_id": b.ID(),
			"room_id":    b.RoomID(),
		}); err != nil {
			return errs.Mark(err, ErrInfrastructure)
		}
	}

	header.ForceCancel(now)
	if err := tx.Requests().UpdateHeaderState(ctx, header); err != nil {
		return errs.Mark(err, ErrInfrastructure)
	}

	return enqueue(ctx, tx, TopicRequestCancelled, map[string]any{
		"header_id": header.ID(),
		"event_id":  eventID,
	})
}

func (c *eventCommandsImpl) transition(ctx context.Context, eventID uuid.UUID, apply func(*event.Event) error, topic string, payload map[string]any) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		ev, err := tx.Events().FindForUpdate(ctx, eventID)
		if err != nil {
			return mapRepoErr(err)
		}
		if err := apply(ev); err != nil {
			if errors.Is(err, ErrAuthorization) {
				return err
			}
			return errs.Mark(err, ErrStateTransition)
		}
		if err := tx.Events().Update(ctx, ev); err != nil {
			return errs.Mark(err, ErrInfrastructure)
		}
		if topic == "" {
			return nil
		}
		if payload == nil {
			payload = map[string]any{"event_id": eventID}
		}
		return enqueue(ctx, tx, topic, payload)
	})
}

func mapRepoErr(err error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, ErrNotFound)
	}
	return errs.Mark(err, ErrInfrastructure)
}

func mapInfraErr(err error) error {
	if err == nil {
		return nil
	}
	return errs.Mark(err, ErrInfrastructure)
}
