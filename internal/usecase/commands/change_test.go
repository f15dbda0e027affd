//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"facility-reservation/internal/domain/booking"
	"facility-reservation/internal/domain/change"
	"facility-reservation/internal/domain/request"
	"facility-reservation/internal/domain/room"
	"facility-reservation/internal/usecase/commands"
	"facility-reservation/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// changeSetup seeds an approved event, a header with one assigned line, its
// active booking, and a second bookable room to move into.
type changeSetup struct {
	header  *request.Header
	line    *request.Line
	booking *booking.Booking
	oldRoom *room.Room
	newRoom *room.Room
}

func seedChangeSetup(t *testing.T, f *fixture, requester uuid.UUID) changeSetup {
	t.Helper()
	actor := builder.NewRequesterActor(requester, "engineering")
	ev := f.seedApprovedEvent(t, actor)
	header := f.seedHeader(t, ev, actor)
	oldRoom := f.seedRoom()
	line := header.Lines()[0]
	b := f.seedAssignment(t, line, oldRoom)

	newRoom := room.Reconstruct(uuid.New(), "B1-305", "Lecture Hall 305", "Building 1",
		3, 200, []string{"projector", "microphone"}, room.StatusReady)
	f.uow.SeedRoom(newRoom)

	return changeSetup{header: header, line: line, booking: b, oldRoom: oldRoom, newRoom: newRoom}
}

func TestChangeSubmit(t *testing.T) {
	ctx := context.Background()
	requesterID := uuid.New()
	requester := builder.NewRequesterActor(requesterID, "engineering")

	t.Run("success", func(t *testing.T) {
		f := newFixture()
		s := seedChangeSetup(t, f, requesterID)

		id, err := f.changes.Submit(ctx, requester, s.booking.ID(), "attendance doubled", nil)
		require.NoError(t, err)

		cr := f.uow.Change(id)
		require.NotNil(t, cr)
		assert.True(t, cr.IsPending())
		assert.Contains(t, f.uow.Topics(), commands.TopicChangeSubmitted)
	})

	t.Run("one open request per booking", func(t *testing.T) {
		f := newFixture()
		s := seedChangeSetup(t, f, requesterID)

		_, err := f.changes.Submit(ctx, requester, s.booking.ID(), "attendance doubled", nil)
		require.NoError(t, err)

		_, err = f.changes.Submit(ctx, requester, s.booking.ID(), "also need a microphone", nil)
		assert.ErrorIs(t, err, commands.ErrDuplicateChangeRequest)
	})

	t.Run("resubmit after a decision", func(t *testing.T) {
		f := newFixture()
		s := seedChangeSetup(t, f, requesterID)
		staff := builder.NewStaffActor()

		id, err := f.changes.Submit(ctx, requester, s.booking.ID(), "attendance doubled", nil)
		require.NoError(t, err)
		require.NoError(t, f.changes.Decide(ctx, staff, id, commands.ChangeDecision{
			Reject: &commands.RejectDecision{Reason: "nothing bigger available"},
		}))

		_, err = f.changes.Submit(ctx, requester, s.booking.ID(), "second attempt", nil)
		assert.NoError(t, err)
	})

	t.Run("booking not active", func(t *testing.T) {
		f := newFixture()
		s := seedChangeSetup(t, f, requesterID)
		require.NoError(t, s.booking.Cancel(f.clk.Now()))

		_, err := f.changes.Submit(ctx, requester, s.booking.ID(), "attendance doubled", nil)
		assert.ErrorIs(t, err, commands.ErrBookingNotActive)
	})

	t.Run("empty reason", func(t *testing.T) {
		f := newFixture()
		s := seedChangeSetup(t, f, requesterID)

		_, err := f.changes.Submit(ctx, requester, s.booking.ID(), "", nil)
		assert.ErrorIs(t, err, commands.ErrValidation)
	})

	t.Run("stranger to the booking", func(t *testing.T) {
		f := newFixture()
		s := seedChangeSetup(t, f, requesterID)

		_, err := f.changes.Submit(ctx, builder.NewOutsiderActor(), s.booking.ID(), "attendance doubled", nil)
		assert.ErrorIs(t, err, commands.ErrAuthorization)
	})
}

func TestChangeDecide(t *testing.T) {
	ctx := context.Background()
	requesterID := uuid.New()
	requester := builder.NewRequesterActor(requesterID, "engineering")
	staff := builder.NewStaffActor()

	approveInto := func(s changeSetup) commands.ChangeDecision {
		return commands.ChangeDecision{Approve: &commands.ApproveChange{
			NewRoomID: s.newRoom.ID(),
			Start:     s.line.Desired().Start(),
			End:       s.line.Desired().End().Add(time.Hour),
		}}
	}

	t.Run("approval supersedes the booking", func(t *testing.T) {
		f := newFixture()
		s := seedChangeSetup(t, f, requesterID)
		id, err := f.changes.Submit(ctx, requester, s.booking.ID(), "attendance doubled", nil)
		require.NoError(t, err)

		require.NoError(t, f.changes.Decide(ctx, staff, id, approveInto(s)))

		assert.Equal(t, booking.StatusSuperseded, s.booking.Status())
		assert.Equal(t, change.StatusApproved, f.uow.Change(id).Status())

		require.NotNil(t, s.line.BookingID())
		replacement := f.uow.Booking(*s.line.BookingID())
		require.NotNil(t, replacement)
		assert.NotEqual(t, s.booking.ID(), replacement.ID())
		assert.True(t, replacement.IsActive())
		assert.Equal(t, s.newRoom.ID(), replacement.RoomID())
		assert.Equal(t, request.LineAssigned, s.line.Status())
		assert.Equal(t, replacement.Interval(), s.line.Desired())

		topics := f.uow.Topics()
		assert.Contains(t, topics, commands.TopicBookingSuperseded)
		assert.Contains(t, topics, commands.TopicChangeApproved)
	})

	t.Run("conflict in the target room keeps the change pending", func(t *testing.T) {
		f := newFixture()
		s := seedChangeSetup(t, f, requesterID)
		id, err := f.changes.Submit(ctx, requester, s.booking.ID(), "attendance doubled", nil)
		require.NoError(t, err)

		taken := booking.NewBooking(s.newRoom.ID(), uuid.New(), s.line.Desired(), f.clk.Now())
		f.uow.SeedBooking(taken)

		err = f.changes.Decide(ctx, staff, id, approveInto(s))
		assert.ErrorIs(t, err, commands.ErrConflict)

		assert.True(t, f.uow.Change(id).IsPending())
		assert.True(t, s.booking.IsActive())
		assert.Equal(t, s.booking.ID(), *s.line.BookingID())
	})

	t.Run("moving within the same room ignores the old booking", func(t *testing.T) {
		f := newFixture()
		s := seedChangeSetup(t, f, requesterID)
		id, err := f.changes.Submit(ctx, requester, s.booking.ID(), "one more hour", nil)
		require.NoError(t, err)

		decision := commands.ChangeDecision{Approve: &commands.ApproveChange{
			NewRoomID: s.oldRoom.ID(),
			Start:     s.line.Desired().Start(),
			End:       s.line.Desired().End().Add(time.Hour),
		}}
		require.NoError(t, f.changes.Decide(ctx, staff, id, decision))
		assert.Equal(t, booking.StatusSuperseded, s.booking.Status())
	})

	t.Run("new criteria drive the room check", func(t *testing.T) {
		f := newFixture()
		s := seedChangeSetup(t, f, requesterID)
		id, err := f.changes.Submit(ctx, requester, s.booking.ID(), "attendance doubled", &commands.NewLineInput{
			RoomType:    "lecture_hall",
			MinCapacity: 500,
		})
		require.NoError(t, err)

		err = f.changes.Decide(ctx, staff, id, approveInto(s))
		assert.ErrorIs(t, err, commands.ErrValidation)
	})

	t.Run("reject records the note", func(t *testing.T) {
		f := newFixture()
		s := seedChangeSetup(t, f, requesterID)
		id, err := f.changes.Submit(ctx, requester, s.booking.ID(), "attendance doubled", nil)
		require.NoError(t, err)

		require.NoError(t, f.changes.Decide(ctx, staff, id, commands.ChangeDecision{
			Reject: &commands.RejectDecision{Reason: "nothing bigger available"},
		}))

		cr := f.uow.Change(id)
		assert.Equal(t, change.StatusRejected, cr.Status())
		assert.Equal(t, "nothing bigger available", cr.DecidedNote())
		assert.True(t, s.booking.IsActive())
	})

	t.Run("booking cancelled before the decision", func(t *testing.T) {
		f := newFixture()
		s := seedChangeSetup(t, f, requesterID)
		id, err := f.changes.Submit(ctx, requester, s.booking.ID(), "attendance doubled", nil)
		require.NoError(t, err)
		require.NoError(t, s.booking.Cancel(f.clk.Now()))

		err = f.changes.Decide(ctx, staff, id, approveInto(s))
		assert.ErrorIs(t, err, commands.ErrBookingNotActive)
	})

	t.Run("decision must pick one side", func(t *testing.T) {
		f := newFixture()

		err := f.changes.Decide(ctx, staff, uuid.New(), commands.ChangeDecision{})
		assert.ErrorIs(t, err, commands.ErrValidation)
	})

	t.Run("requester cannot decide", func(t *testing.T) {
		f := newFixture()
		s := seedChangeSetup(t, f, requesterID)
		id, err := f.changes.Submit(ctx, requester, s.booking.ID(), "attendance doubled", nil)
		require.NoError(t, err)

		err = f.changes.Decide(ctx, requester, id, approveInto(s))
		assert.ErrorIs(t, err, commands.ErrAuthorization)
	})
}

func TestChangeCancel(t *testing.T) {
	ctx := context.Background()
	requesterID := uuid.New()
	requester := builder.NewRequesterActor(requesterID, "engineering")

	t.Run("requester withdraws", func(t *testing.T) {
		f := newFixture()
		s := seedChangeSetup(t, f, requesterID)
		id, err := f.changes.Submit(ctx, requester, s.booking.ID(), "attendance doubled", nil)
		require.NoError(t, err)

		require.NoError(t, f.changes.Cancel(ctx, requester, id))
		assert.Equal(t, change.StatusCancelled, f.uow.Change(id).Status())
	})

	t.Run("only the requester may withdraw", func(t *testing.T) {
		f := newFixture()
		s := seedChangeSetup(t, f, requesterID)
		id, err := f.changes.Submit(ctx, requester, s.booking.ID(), "attendance doubled", nil)
		require.NoError(t, err)

		err = f.changes.Cancel(ctx, builder.NewStaffActor(), id)
		assert.ErrorIs(t, err, commands.ErrAuthorization)
	})

	t.Run("after a decision", func(t *testing.T) {
		f := newFixture()
		s := seedChangeSetup(t, f, requesterID)
		id, err := f.changes.Submit(ctx, requester, s.booking.ID(), "attendance doubled", nil)
		require.NoError(t, err)
		require.NoError(t, f.changes.Decide(ctx, builder.NewStaffActor(), id, commands.ChangeDecision{
			Reject: &commands.RejectDecision{Reason: "late"},
		}))

		err = f.changes.Cancel(ctx, requester, id)
		assert.ErrorIs(t, err, commands.ErrStateTransition)
	})
}
