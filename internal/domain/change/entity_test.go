//go:build unit

package change_test

import (
	"testing"

	"facility-reservation/internal/domain/change"
	"facility-reservation/internal/domain/request"
	"facility-reservation/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChangeRequest(t *testing.T) {
	t.Run("requires a reason", func(t *testing.T) {
		_, err := builder.NewChangeBuilder().WithReason("").BuildDomain()
		assert.ErrorIs(t, err, change.ErrReasonRequired)
	})

	t.Run("starts pending", func(t *testing.T) {
		cr, err := builder.NewChangeBuilder().BuildDomain()
		require.NoError(t, err)
		assert.True(t, cr.IsPending())
		assert.Nil(t, cr.NewCriteria())
	})

	t.Run("carries new criteria when given", func(t *testing.T) {
		crit := request.NewCriteria("seminar_room", 40, []string{"projector"}, "")

		cr, err := builder.NewChangeBuilder().WithNewCriteria(crit).BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, cr.NewCriteria())
		assert.Equal(t, 40, cr.NewCriteria().MinCapacity())
	})
}

func TestChangeRequestDecisions(t *testing.T) {
	t.Run("approve", func(t *testing.T) {
		cr, err := builder.NewChangeBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, cr.Approve(builder.BaseTime))
		assert.Equal(t, change.StatusApproved, cr.Status())
		assert.False(t, cr.IsPending())
	})

	t.Run("reject records the note", func(t *testing.T) {
		cr, err := builder.NewChangeBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, cr.Reject("no larger hall free that day", builder.BaseTime))
		assert.Equal(t, change.StatusRejected, cr.Status())
		assert.Equal(t, "no larger hall free that day", cr.DecidedNote())
	})

	t.Run("decide twice", func(t *testing.T) {
		cr, err := builder.NewChangeBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, cr.Approve(builder.BaseTime))
		assert.ErrorIs(t, cr.Approve(builder.BaseTime), change.ErrNotPending)
		assert.ErrorIs(t, cr.Reject("late", builder.BaseTime), change.ErrNotPending)
	})
}

func TestChangeRequestCancel(t *testing.T) {
	requester := uuid.New()

	t.Run("requester withdraws", func(t *testing.T) {
		cr, err := builder.NewChangeBuilder().WithRequester(requester).BuildDomain()
		require.NoError(t, err)

		require.NoError(t, cr.Cancel(requester, builder.BaseTime))
		assert.Equal(t, change.StatusCancelled, cr.Status())
	})

	t.Run("someone else cannot", func(t *testing.T) {
		cr, err := builder.NewChangeBuilder().WithRequester(requester).BuildDomain()
		require.NoError(t, err)

		assert.ErrorIs(t, cr.Cancel(uuid.New(), builder.BaseTime), change.ErrNotRequester)
		assert.True(t, cr.IsPending())
	})

	t.Run("after decision", func(t *testing.T) {
		cr, err := builder.NewChangeBuilder().WithRequester(requester).BuildDomain()
		require.NoError(t, err)

		require.NoError(t, cr.Reject("too late", builder.BaseTime))
		assert.ErrorIs(t, cr.Cancel(requester, builder.BaseTime), change.ErrNotPending)
	})
}
