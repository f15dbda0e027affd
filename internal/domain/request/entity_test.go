//go:build unit

package request_test

import (
	"testing"
	"time"

	"facility-reservation/internal/domain/request"
	"facility-reservation/internal/domain/timeslot"
	"facility-reservation/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustInterval(t *testing.T, startOffset, endOffset time.Duration) timeslot.Interval {
	t.Helper()
	iv, err := timeslot.NewInterval(builder.BaseTime.Add(startOffset), builder.BaseTime.Add(endOffset))
	require.NoError(t, err)
	return iv
}

func buildHeader(t *testing.T) *request.Header {
	t.Helper()
	h, err := builder.NewHeaderBuilder().BuildDomain()
	require.NoError(t, err)
	return h
}

func TestLineAssign(t *testing.T) {
	now := builder.BaseTime

	t.Run("assign with exact window", func(t *testing.T) {
		h := buildHeader(t)
		line := h.Lines()[0]
		bookingID := uuid.New()

		require.NoError(t, line.Assign(bookingID, line.Desired(), now))
		assert.Equal(t, request.LineAssigned, line.Status())
		require.NotNil(t, line.BookingID())
		assert.Equal(t, bookingID, *line.BookingID())
	})

	t.Run("assign with wider booking window", func(t *testing.T) {
		h := buildHeader(t)
		line := h.Lines()[0]
		wider := mustInterval(t, -30*time.Minute, 150*time.Minute)

		require.NoError(t, line.Assign(uuid.New(), wider, now))
		assert.Equal(t, request.LineAssigned, line.Status())
	})

	t.Run("booking window must contain desired window", func(t *testing.T) {
		h := buildHeader(t)
		line := h.Lines()[0]
		tooShort := mustInterval(t, 0, time.Hour)

		assert.ErrorIs(t, line.Assign(uuid.New(), tooShort, now), request.ErrIntervalNotContained)
		assert.Equal(t, request.LineUnassigned, line.Status())
	})

	t.Run("resolved line cannot be assigned again", func(t *testing.T) {
		h := buildHeader(t)
		line := h.Lines()[0]
		require.NoError(t, line.Assign(uuid.New(), line.Desired(), now))

		assert.ErrorIs(t, line.Assign(uuid.New(), line.Desired(), now), request.ErrLineAlreadyResolved)
	})
}

func TestLineReject(t *testing.T) {
	now := builder.BaseTime

	t.Run("rejection requires a reason", func(t *testing.T) {
		h := buildHeader(t)
		line := h.Lines()[0]

		assert.ErrorIs(t, line.Reject("", now), request.ErrRejectReasonRequired)
		require.NoError(t, line.Reject("no hall seats 80 that week", now))
		assert.Equal(t, request.LineRejected, line.Status())
		assert.Equal(t, "no hall seats 80 that week", line.RejectReason())
	})

	t.Run("rejected line cannot be rejected again", func(t *testing.T) {
		h := buildHeader(t)
		line := h.Lines()[0]
		require.NoError(t, line.Reject("reason", now))

		assert.ErrorIs(t, line.Reject("another reason", now), request.ErrLineAlreadyResolved)
	})
}

func TestLineReassign(t *testing.T) {
	now := builder.BaseTime

	t.Run("reassign moves the desired window with the booking", func(t *testing.T) {
		h := buildHeader(t)
		line := h.Lines()[0]
		require.NoError(t, line.Assign(uuid.New(), line.Desired(), now))

		replacement := uuid.New()
		newWindow := mustInterval(t, 24*time.Hour, 26*time.Hour)
		require.NoError(t, line.Reassign(replacement, newWindow, now))

		assert.Equal(t, request.LineAssigned, line.Status())
		assert.Equal(t, replacement, *line.BookingID())
		assert.Equal(t, newWindow, line.Desired())
	})

	t.Run("unassigned line cannot be reassigned", func(t *testing.T) {
		h := buildHeader(t)
		line := h.Lines()[0]

		assert.ErrorIs(t, line.Reassign(uuid.New(), line.Desired(), now), request.ErrLineNotAssigned)
	})
}

func TestLineClearAssignment(t *testing.T) {
	now := builder.BaseTime

	h := buildHeader(t)
	line := h.Lines()[0]
	require.NoError(t, line.Assign(uuid.New(), line.Desired(), now))

	require.NoError(t, line.ClearAssignment(now))
	assert.Equal(t, request.LineUnassigned, line.Status())
	assert.Nil(t, line.BookingID())

	assert.ErrorIs(t, line.ClearAssignment(now), request.ErrLineNotAssigned)
}

func TestHeaderCancel(t *testing.T) {
	now := builder.BaseTime

	t.Run("cancel pending header", func(t *testing.T) {
		h := buildHeader(t)
		require.NoError(t, h.Cancel(now))
		assert.Equal(t, request.HeaderCancelled, h.Status())
	})

	t.Run("cancel is idempotent", func(t *testing.T) {
		h := buildHeader(t)
		require.NoError(t, h.Cancel(now))
		require.NoError(t, h.Cancel(now.Add(time.Minute)))
		assert.Equal(t, request.HeaderCancelled, h.Status())
	})

	t.Run("fully resolved header refuses direct cancellation", func(t *testing.T) {
		h := buildHeader(t)
		for _, line := range h.Lines() {
			require.NoError(t, line.Assign(uuid.New(), line.Desired(), now))
		}
		require.Equal(t, request.HeaderFullyResolved, h.Status())

		assert.ErrorIs(t, h.Cancel(now), request.ErrHeaderFullyResolved)
	})

	t.Run("force cancel succeeds from any state", func(t *testing.T) {
		h := buildHeader(t)
		for _, line := range h.Lines() {
			require.NoError(t, line.Assign(uuid.New(), line.Desired(), now))
		}
		h.ForceCancel(now)
		assert.Equal(t, request.HeaderCancelled, h.Status())
	})
}

func TestHeaderReplaceUnresolvedLines(t *testing.T) {
	now := builder.BaseTime

	t.Run("unassigned lines are swapped, resolved lines kept", func(t *testing.T) {
		h, err := builder.NewHeaderBuilder().
			AddLine(builder.BaseTime.Add(3*time.Hour), builder.BaseTime.Add(5*time.Hour),
				request.NewCriteria("seminar_room", 20, nil, "")).
			BuildDomain()
		require.NoError(t, err)
		require.Len(t, h.Lines(), 2)

		assigned := h.Lines()[0]
		unresolved := h.Lines()[1]
		require.NoError(t, assigned.Assign(uuid.New(), assigned.Desired(), now))

		newLine := request.NewLine(h.ID(), mustInterval(t, 6*time.Hour, 8*time.Hour),
			request.NewCriteria("lab", 15, nil, ""), now)
		removed, err := h.ReplaceUnresolvedLines([]*request.Line{newLine}, now)
		require.NoError(t, err)

		assert.Equal(t, []uuid.UUID{unresolved.ID()}, removed)
		require.Len(t, h.Lines(), 2)
		assert.Equal(t, assigned.ID(), h.Lines()[0].ID())
		assert.Equal(t, newLine.ID(), h.Lines()[1].ID())
	})

	t.Run("edit cannot empty the request", func(t *testing.T) {
		h := buildHeader(t)
		_, err := h.ReplaceUnresolvedLines(nil, now)
		assert.ErrorIs(t, err, request.ErrNoLines)
	})

	t.Run("cancelled header cannot be edited", func(t *testing.T) {
		h := buildHeader(t)
		require.NoError(t, h.Cancel(now))

		_, err := h.ReplaceUnresolvedLines([]*request.Line{
			request.NewLine(h.ID(), mustInterval(t, 0, time.Hour), request.Criteria{}, now),
		}, now)
		assert.ErrorIs(t, err, request.ErrEditAfterCancellation)
	})
}
