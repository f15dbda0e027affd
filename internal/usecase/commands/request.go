package commands

import (
	"context"
	"errors"
	"time"

	"facility-reservation/internal/domain/booking"
	"facility-reservation/internal/domain/request"
	"facility-reservation/internal/domain/room"
	"facility-reservation/internal/domain/timeslot"
	"facility-reservation/internal/infra"
	"facility-reservation/internal/pkg/authz"
	"facility-reservation/internal/pkg/clock"
	"facility-reservation/internal/pkg/errs"
	"facility-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

type RequestCommands interface {
	CreateRoomRequest(ctx context.Context, actor authz.Actor, eventID uuid.UUID, lines []NewLineInput) (uuid.UUID, error)
	ResolveLine(ctx context.Context, actor authz.Actor, lineID uuid.UUID, decision LineDecision) error
	CancelRoomRequest(ctx context.Context, actor authz.Actor, headerID uuid.UUID) error
	EditLines(ctx context.Context, actor authz.Actor, headerID uuid.UUID, lines []NewLineInput) error
}

type requestCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewRequestCommands(uow shared.UnitOfWork, clock clock.Clock) RequestCommands {
	return &requestCommandsImpl{uow: uow, clock: clock}
}

func (c *requestCommandsImpl) CreateRoomRequest(ctx context.Context, actor authz.Actor, eventID uuid.UUID, lines []NewLineInput) (uuid.UUID, error) {
	if !actor.Can(authz.ActionCreateRequest) {
		return uuid.Nil, ErrAuthorization
	}
	if len(lines) == 0 {
		return uuid.Nil, errs.Mark(request.ErrNoLines, ErrValidation)
	}

	now := c.clock.Now()
	header := (*request.Header)(nil)

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		ev, err := tx.Events().FindForUpdate(ctx, eventID)
		if err != nil {
			return mapRepoErr(err)
		}
		if !ev.IsApproved() {
			return ErrEventNotApproved
		}

		header = request.NewHeader(eventID, actor.ID, actor.Unit, now)
		for _, in := range lines {
			desired, err := timeslot.NewInterval(in.Start, in.End)
			if err != nil {
				return errs.Mark(err, ErrValidation)
			}
			criteria := request.NewCriteria(in.RoomType, in.MinCapacity, in.Equipment, in.Note)
			header.AddLine(desired, criteria, now)
		}

		if err := tx.Requests().InsertHeader(ctx, header); err != nil {
			// One header per event: the unique index turns a duplicate
			// creation race into a typed error.
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, ErrRequestAlreadyExists)
			}
			return errs.Mark(err, ErrInfrastructure)
		}
		if err := tx.Requests().InsertLines(ctx, header.Lines()); err != nil {
			return errs.Mark(err, ErrInfrastructure)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return header.ID(), nil
}

// ResolveLine assigns a room or rejects a line. Assignment runs the conflict
// check under a room-scoped advisory lock so that check-then-insert is atomic
// against concurrent writers on the same room; losers fail fast with
// ErrConflict and are never queued or retried.
func (c *requestCommandsImpl) ResolveLine(ctx context.Context, actor authz.Actor, lineID uuid.UUID, decision LineDecision) error {
	if !actor.Can(authz.ActionResolveLine) {
		return ErrAuthorization
	}
	if (decision.Assign == nil) == (decision.Reject == nil) {
		return errs.Mark(errs.New("decision must be exactly one of assign or reject"), ErrValidation)
	}

	now := c.clock.Now()
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		header, err := tx.Requests().FindHeaderByLineForUpdate(ctx, lineID)
		if err != nil {
			return mapRepoErr(err)
		}
		if header.Cancelled() {
			return errs.Mark(request.ErrHeaderCancelled, ErrStateTransition)
		}

		ev, err := tx.Events().FindForUpdate(ctx, header.EventID())
		if err != nil {
			return mapRepoErr(err)
		}
		if !ev.IsApproved() {
			return ErrEventNotApproved
		}

		line := header.LineByID(lineID)
		if line == nil {
			return ErrNotFound
		}

		if decision.Reject != nil {
			return c.rejectLine(ctx, tx, header, line, decision.Reject.Reason, now)
		}
		return c.assignLine(ctx, tx, header, line, *decision.Assign, now)
	})
}

func (c *requestCommandsImpl) rejectLine(ctx context.Context, tx shared.Tx, header *request.Header, line *request.Line, reason string, now time.Time) error {
	if err := line.Reject(reason, now); err != nil {
		return errs.Mark(err, ErrStateTransition)
	}
	if err := tx.Requests().UpdateLine(ctx, line); err != nil {
		return errs.Mark(err, ErrInfrastructure)
	}
	if err := tx.Requests().UpdateHeaderState(ctx, header); err != nil {
		return errs.Mark(err, ErrInfrastructure)
	}
	return enqueue(ctx, tx, TopicRequestLineRejected, map[string]any{
		"header_id": header.ID(),
		"line_id":   line.ID(),
		"reason":    reason,
	})
}

func (c *requestCommandsImpl) assignLine(ctx context.Context, tx shared.Tx, header *request.Header, line *request.Line, assign AssignDecision, now time.Time) error {
	interval, err := timeslot.NewInterval(assign.Start, assign.End)
	if err != nil {
		return errs.Mark(err, ErrValidation)
	}

	rm, err := tx.Rooms().FindByID(ctx, assign.RoomID)
	if err != nil {
		return mapRepoErr(err)
	}
	if err := rm.ValidateAssignment(line.Criteria().MinCapacity(), line.Criteria().Equipment()); err != nil {
		return markRoomErr(err)
	}

	if err := tx.Bookings().LockRoom(ctx, assign.RoomID); err != nil {
		return errs.Mark(err, ErrInfrastructure)
	}
	overlap, err := tx.Bookings().HasOverlap(ctx, assign.RoomID, interval, nil)
	if err != nil {
		return errs.Mark(err, ErrInfrastructure)
	}
	if overlap {
		return ErrConflict
	}

	b := booking.NewBooking(assign.RoomID, line.ID(), interval, now)
	if err := line.Assign(b.ID(), interval, now); err != nil {
		return errs.Mark(err, ErrStateTransition)
	}

	if err := tx.Bookings().Insert(ctx, b); err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return errs.Mark(err, ErrConflict)
		}
		return errs.Mark(err, ErrInfrastructure)
	}
	if err := tx.Requests().UpdateLine(ctx, line); err != nil {
		return errs.Mark(err, ErrInfrastructure)
	}
	if err := tx.Requests().UpdateHeaderState(ctx, header); err != nil {
		return errs.Mark(err, ErrInfrastructure)
	}
	return enqueue(ctx, tx, TopicBookingCreated, map[string]any{
		"booking_id": b.ID(),
		"room_id":    b.RoomID(),
		"line_id":    line.ID(),
		"header_id":  header.ID(),
		"slot":       interval.String(),
	})
}

// CancelRoomRequest is the requester-initiated cancellation; it force-cancels
// every active booking under the header. Idempotent on an already-cancelled
// header.
func (c *requestCommandsImpl) CancelRoomRequest(ctx context.Context, actor authz.Actor, headerID uuid.UUID) error {
	now := c.clock.Now()
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		header, err := tx.Requests().FindHeaderForUpdate(ctx, headerID)
		if err != nil {
			return mapRepoErr(err)
		}
		if !actor.CanFor(authz.ActionCancelRequest, header.RequesterID(), header.RequestingUnit()) {
			return ErrAuthorization
		}
		if header.Cancelled() {
			return nil
		}
		if err := header.Cancel(now); err != nil {
			return errs.Mark(err, ErrStateTransition)
		}

		bookings, err := tx.Bookings().FindActiveByHeader(ctx, headerID)
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

		if err := tx.Requests().UpdateHeaderState(ctx, header); err != nil {
			return errs.Mark(err, ErrInfrastructure)
		}
		return enqueue(ctx, tx, TopicRequestCancelled, map[string]any{
			"header_id": headerID,
			"event_id":  header.EventID(),
		})
	})
}

// EditLines replaces the header's unresolved lines with a new set, leaving
// assigned and rejected lines untouched.
func (c *requestCommandsImpl) EditLines(ctx context.Context, actor authz.Actor, headerID uuid.UUID, lines []NewLineInput) error {
	now := c.clock.Now()
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		header, err := tx.Requests().FindHeaderForUpdate(ctx, headerID)
		if err != nil {
			return mapRepoErr(err)
		}
		if !actor.CanFor(authz.ActionEditRequest, header.RequesterID(), header.RequestingUnit()) {
			return ErrAuthorization
		}

		newLines := make([]*request.Line, 0, len(lines))
		for _, in := range lines {
			desired, err := timeslot.NewInterval(in.Start, in.End)
			if err != nil {
				return errs.Mark(err, ErrValidation)
			}
			criteria := request.NewCriteria(in.RoomType, in.MinCapacity, in.Equipment, in.Note)
			newLines = append(newLines, request.NewLine(headerID, desired, criteria, now))
		}

		removed, err := header.ReplaceUnresolvedLines(newLines, now)
		if err != nil {
			return errs.Mark(err, ErrStateTransition)
		}
		if len(removed) > 0 {
			if err := tx.Requests().DeleteLines(ctx, removed); err != nil {
				return errs.Mark(err, ErrInfrastructure)
			}
		}
		if len(newLines) > 0 {
			if err := tx.Requests().InsertLines(ctx, newLines); err != nil {
				return errs.Mark(err, ErrInfrastructure)
			}
		}
		return mapInfraErr(tx.Requests().UpdateHeaderState(ctx, header))
	})
}

// Retired/maintenance rooms are a distinct failure from criteria mismatches,
// which callers can fix by picking another room.
func markRoomErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, room.ErrRoomUnavailable) {
		return errs.Mark(err, ErrRoomUnavailable)
	}
	return errs.Mark(err, ErrValidation)
}
