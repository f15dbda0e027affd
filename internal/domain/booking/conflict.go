package booking

import (
	"facility-reservation/internal/domain/timeslot"

	"github.com/google/uuid"
)

// HasConflict reports whether candidate overlaps any active booking in
// existing, ignoring the booking identified by exclude (uuid.Nil to exclude
// nothing). Only active bookings count: cancelled and superseded ones no
// longer occupy the room. Pure and side-effect free, so it is safe to call
// repeatedly within a transaction.
func HasConflict(candidate timeslot.Interval, existing []*Booking, exclude uuid.UUID) bool {
	return FindConflict(candidate, existing, exclude) != nil
}

// FindConflict returns the first active booking overlapping candidate, or nil.
func FindConflict(candidate timeslot.Interval, existing []*Booking, exclude uuid.UUID) *Booking {
	for _, b := range existing {
		if b.ID() == exclude {
			continue
		}
		if !b.IsActive() {
			continue
		}
		if b.Interval().Overlaps(candidate) {
			return b
		}
	}
	return nil
}
