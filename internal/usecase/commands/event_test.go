//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"facility-reservation/internal/domain/booking"
	"facility-reservation/internal/domain/event"
	"facility-reservation/internal/domain/request"
	"facility-reservation/internal/usecase/commands"
	"facility-reservation/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventCreate(t *testing.T) {
	ctx := context.Background()
	requester := builder.NewRequesterActor(uuid.New(), "engineering")

	t.Run("success", func(t *testing.T) {
		f := newFixture()

		id, err := f.events.Create(ctx, requester, "Robotics Demo Day", builder.BaseTime, builder.BaseTime.Add(6*time.Hour))
		require.NoError(t, err)

		ev := f.uow.Event(id)
		require.NotNil(t, ev)
		assert.Equal(t, event.StatusDraft, ev.Status())
		assert.Equal(t, requester.ID, ev.RequesterID())
		assert.Equal(t, "engineering", ev.Unit())
	})

	t.Run("without capability", func(t *testing.T) {
		f := newFixture()

		_, err := f.events.Create(ctx, builder.NewOutsiderActor(), "Robotics Demo Day", builder.BaseTime, builder.BaseTime.Add(time.Hour))
		assert.ErrorIs(t, err, commands.ErrAuthorization)
	})

	t.Run("inverted window", func(t *testing.T) {
		f := newFixture()

		_, err := f.events.Create(ctx, requester, "Robotics Demo Day", builder.BaseTime.Add(time.Hour), builder.BaseTime)
		assert.ErrorIs(t, err, commands.ErrValidation)
	})

	t.Run("empty title", func(t *testing.T) {
		f := newFixture()

		_, err := f.events.Create(ctx, requester, "", builder.BaseTime, builder.BaseTime.Add(time.Hour))
		assert.ErrorIs(t, err, commands.ErrValidation)
	})
}

func TestEventApprovalGate(t *testing.T) {
	ctx := context.Background()
	requester := builder.NewRequesterActor(uuid.New(), "engineering")
	staff := builder.NewStaffActor()

	seedDraft := func(t *testing.T, f *fixture) uuid.UUID {
		id, err := f.events.Create(ctx, requester, "Robotics Demo Day", builder.BaseTime, builder.BaseTime.Add(6*time.Hour))
		require.NoError(t, err)
		return id
	}

	t.Run("submit then approve", func(t *testing.T) {
		f := newFixture()
		id := seedDraft(t, f)

		require.NoError(t, f.events.SubmitForApproval(ctx, requester, id))
		require.NoError(t, f.events.Approve(ctx, staff, id))

		assert.Equal(t, event.StatusApproved, f.uow.Event(id).Status())
		assert.Equal(t, []string{commands.TopicEventApproved}, f.uow.Topics())
	})

	t.Run("reject emits its own topic", func(t *testing.T) {
		f := newFixture()
		id := seedDraft(t, f)

		require.NoError(t, f.events.SubmitForApproval(ctx, requester, id))
		require.NoError(t, f.events.Reject(ctx, staff, id))

		assert.Equal(t, event.StatusRejected, f.uow.Event(id).Status())
		assert.Contains(t, f.uow.Topics(), commands.TopicEventRejected)
	})

	t.Run("approve needs the staff capability", func(t *testing.T) {
		f := newFixture()
		id := seedDraft(t, f)

		require.NoError(t, f.events.SubmitForApproval(ctx, requester, id))
		assert.ErrorIs(t, f.events.Approve(ctx, requester, id), commands.ErrAuthorization)
	})

	t.Run("approve a draft", func(t *testing.T) {
		f := newFixture()
		id := seedDraft(t, f)

		assert.ErrorIs(t, f.events.Approve(ctx, staff, id), commands.ErrStateTransition)
	})

	t.Run("unknown event", func(t *testing.T) {
		f := newFixture()

		assert.ErrorIs(t, f.events.Approve(ctx, staff, uuid.New()), commands.ErrNotFound)
	})

	t.Run("submit by a stranger", func(t *testing.T) {
		f := newFixture()
		id := seedDraft(t, f)

		err := f.events.SubmitForApproval(ctx, builder.NewOutsiderActor(), id)
		assert.ErrorIs(t, err, commands.ErrAuthorization)
	})
}

func TestEventDecideCancellation(t *testing.T) {
	ctx := context.Background()
	requester := builder.NewRequesterActor(uuid.New(), "engineering")
	staff := builder.NewStaffActor()

	t.Run("decline keeps the approval and the request", func(t *testing.T) {
		f := newFixture()
		ev := f.seedApprovedEvent(t, requester)
		header := f.seedHeader(t, ev, requester)
		require.NoError(t, f.events.RequestCancellation(ctx, requester, ev.ID()))

		require.NoError(t, f.events.DecideCancellation(ctx, staff, ev.ID(), false))

		assert.Equal(t, event.StatusApproved, ev.Status())
		assert.False(t, f.uow.Header(header.ID()).Cancelled())
		assert.Empty(t, f.uow.Topics())
	})

	t.Run("approval cascades to bookings and lines", func(t *testing.T) {
		f := newFixture()
		ev := f.seedApprovedEvent(t, requester)
		header := f.seedHeader(t, ev, requester)
		rm := f.seedRoom()
		b := f.seedAssignment(t, header.Lines()[0], rm)
		require.NoError(t, f.events.RequestCancellation(ctx, requester, ev.ID()))

		require.NoError(t, f.events.DecideCancellation(ctx, staff, ev.ID(), true))

		assert.Equal(t, event.StatusCancelled, ev.Status())
		assert.Equal(t, booking.StatusCancelled, b.Status())
		assert.True(t, f.uow.Header(header.ID()).Cancelled())
		line := header.Lines()[0]
		assert.Equal(t, request.LineUnassigned, line.Status())
		assert.Nil(t, line.BookingID())
		assert.Equal(t,
			[]string{commands.TopicBookingCancelled, commands.TopicRequestCancelled, commands.TopicEventCancelled},
			f.uow.Topics())
	})

	t.Run("approval without a room request", func(t *testing.T) {
		f := newFixture()
		ev := f.seedApprovedEvent(t, requester)
		require.NoError(t, f.events.RequestCancellation(ctx, requester, ev.ID()))

		require.NoError(t, f.events.DecideCancellation(ctx, staff, ev.ID(), true))
		assert.Equal(t, event.StatusCancelled, ev.Status())
	})

	t.Run("nothing pending", func(t *testing.T) {
		f := newFixture()
		ev := f.seedApprovedEvent(t, requester)

		err := f.events.DecideCancellation(ctx, staff, ev.ID(), true)
		assert.ErrorIs(t, err, commands.ErrStateTransition)
	})

	t.Run("requester cannot decide", func(t *testing.T) {
		f := newFixture()
		ev := f.seedApprovedEvent(t, requester)
		require.NoError(t, f.events.RequestCancellation(ctx, requester, ev.ID()))

		err := f.events.DecideCancellation(ctx, requester, ev.ID(), true)
		assert.ErrorIs(t, err, commands.ErrAuthorization)
	})
}
