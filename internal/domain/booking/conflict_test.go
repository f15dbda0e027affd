//go:build unit

package booking_test

import (
	"testing"
	"time"

	"facility-reservation/internal/domain/booking"
	"facility-reservation/internal/domain/timeslot"
	"facility-reservation/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildBooking(t *testing.T, startOffset, endOffset time.Duration) *booking.Booking {
	t.Helper()
	b, err := builder.NewBookingBuilder().
		WithInterval(builder.BaseTime.Add(startOffset), builder.BaseTime.Add(endOffset)).
		BuildDomain()
	require.NoError(t, err)
	return b
}

func mustInterval(t *testing.T, startOffset, endOffset time.Duration) timeslot.Interval {
	t.Helper()
	iv, err := timeslot.NewInterval(builder.BaseTime.Add(startOffset), builder.BaseTime.Add(endOffset))
	require.NoError(t, err)
	return iv
}

func TestFindConflict(t *testing.T) {
	t.Run("overlapping active booking conflicts", func(t *testing.T) {
		existing := buildBooking(t, 0, 2*time.Hour)
		candidate := mustInterval(t, time.Hour, 3*time.Hour)

		found := booking.FindConflict(candidate, []*booking.Booking{existing}, uuid.Nil)
		require.NotNil(t, found)
		assert.Equal(t, existing.ID(), found.ID())
	})

	t.Run("touching endpoints do not conflict", func(t *testing.T) {
		existing := buildBooking(t, 0, 2*time.Hour)
		candidate := mustInterval(t, 2*time.Hour, 4*time.Hour)

		assert.False(t, booking.HasConflict(candidate, []*booking.Booking{existing}, uuid.Nil))
	})

	t.Run("cancelled booking does not conflict", func(t *testing.T) {
		existing := buildBooking(t, 0, 2*time.Hour)
		require.NoError(t, existing.Cancel(builder.BaseTime))

		candidate := mustInterval(t, 0, 2*time.Hour)
		assert.False(t, booking.HasConflict(candidate, []*booking.Booking{existing}, uuid.Nil))
	})

	t.Run("superseded booking does not conflict", func(t *testing.T) {
		existing := buildBooking(t, 0, 2*time.Hour)
		require.NoError(t, existing.MarkSuperseded(builder.BaseTime))

		candidate := mustInterval(t, 0, 2*time.Hour)
		assert.False(t, booking.HasConflict(candidate, []*booking.Booking{existing}, uuid.Nil))
	})

	t.Run("excluded booking is skipped", func(t *testing.T) {
		existing := buildBooking(t, 0, 2*time.Hour)
		candidate := mustInterval(t, time.Hour, 3*time.Hour)

		assert.True(t, booking.HasConflict(candidate, []*booking.Booking{existing}, uuid.Nil))
		assert.False(t, booking.HasConflict(candidate, []*booking.Booking{existing}, existing.ID()))
	})

	t.Run("first overlapping booking is returned", func(t *testing.T) {
		first := buildBooking(t, 0, 2*time.Hour)
		second := buildBooking(t, time.Hour, 3*time.Hour)
		candidate := mustInterval(t, 90*time.Minute, 4*time.Hour)

		found := booking.FindConflict(candidate, []*booking.Booking{first, second}, uuid.Nil)
		require.NotNil(t, found)
		assert.Equal(t, first.ID(), found.ID())
	})
}

func TestBookingLifecycle(t *testing.T) {
	now := builder.BaseTime

	t.Run("new booking is active", func(t *testing.T) {
		b := buildBooking(t, 0, 2*time.Hour)
		assert.True(t, b.IsActive())
		assert.Equal(t, booking.StatusActive, b.Status())
	})

	t.Run("cancel is idempotent", func(t *testing.T) {
		b := buildBooking(t, 0, 2*time.Hour)
		require.NoError(t, b.Cancel(now))
		assert.Equal(t, booking.StatusCancelled, b.Status())
		require.NoError(t, b.Cancel(now.Add(time.Minute)))
		assert.Equal(t, booking.StatusCancelled, b.Status())
	})

	t.Run("superseded booking cannot be cancelled", func(t *testing.T) {
		b := buildBooking(t, 0, 2*time.Hour)
		require.NoError(t, b.MarkSuperseded(now))
		assert.ErrorIs(t, b.Cancel(now), booking.ErrAlreadySuperseded)
	})

	t.Run("only active bookings can be superseded", func(t *testing.T) {
		b := buildBooking(t, 0, 2*time.Hour)
		require.NoError(t, b.Cancel(now))
		assert.ErrorIs(t, b.MarkSuperseded(now), booking.ErrNotActive)
	})
}
