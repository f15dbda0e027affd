//go:build unit

package commands_test

import (
	"testing"
	"time"

	"facility-reservation/internal/domain/booking"
	"facility-reservation/internal/domain/event"
	"facility-reservation/internal/domain/request"
	"facility-reservation/internal/domain/room"
	"facility-reservation/internal/domain/timeslot"
	"facility-reservation/internal/pkg/authz"
	"facility-reservation/internal/pkg/clock"
	"facility-reservation/internal/usecase/commands"
	"facility-reservation/tests/common/builder"
	"facility-reservation/tests/common/fake"

	"github.com/stretchr/testify/require"
)

type fixture struct {
	uow *fake.UnitOfWork
	clk *clock.MockClock

	events   commands.EventCommands
	requests commands.RequestCommands
	changes  commands.ChangeCommands
}

func newFixture() *fixture {
	u := fake.NewUnitOfWork()
	clk := clock.NewMockClock(builder.BaseTime.Add(-21 * 24 * time.Hour))
	return &fixture{
		uow:      u,
		clk:      clk,
		events:   commands.NewEventCommands(u, clk),
		requests: commands.NewRequestCommands(u, clk),
		changes:  commands.NewChangeCommands(u, clk),
	}
}

func (f *fixture) seedApprovedEvent(t *testing.T, requester authz.Actor) *event.Event {
	t.Helper()
	ev, err := builder.NewEventBuilder().
		WithRequester(requester.ID).
		WithUnit(requester.Unit).
		BuildApproved()
	require.NoError(t, err)
	f.uow.SeedEvent(ev)
	return ev
}

func (f *fixture) seedHeader(t *testing.T, ev *event.Event, requester authz.Actor) *request.Header {
	t.Helper()
	h, err := builder.NewHeaderBuilder().
		WithEvent(ev.ID()).
		WithRequester(requester.ID).
		WithUnit(requester.Unit).
		BuildDomain()
	require.NoError(t, err)
	f.uow.SeedHeader(h)
	return h
}

func (f *fixture) seedRoom() *room.Room {
	rm := builder.NewReadyRoom()
	f.uow.SeedRoom(rm)
	return rm
}

func mustWindow(t *testing.T, start, end time.Time) timeslot.Interval {
	t.Helper()
	iv, err := timeslot.NewInterval(start, end)
	require.NoError(t, err)
	return iv
}

// seedAssignment books the line in rm for its desired window and marks the
// line assigned, the state ResolveLine would have left behind.
func (f *fixture) seedAssignment(t *testing.T, line *request.Line, rm *room.Room) *booking.Booking {
	t.Helper()
	b := booking.NewBooking(rm.ID(), line.ID(), line.Desired(), f.clk.Now())
	require.NoError(t, line.Assign(b.ID(), line.Desired(), f.clk.Now()))
	f.uow.SeedBooking(b)
	return b
}
