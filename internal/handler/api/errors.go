package api

import (
	"errors"
	"net/http"

	"facility-reservation/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

// respondCommandError maps usecase sentinels onto HTTP codes. Conflicting
// schedules and illegal state transitions are both 409: the request was
// well-formed but the current state refuses it.
func respondCommandError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
	case errors.Is(err, commands.ErrAuthorization):
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
	case errors.Is(err, commands.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Room already booked for an overlapping interval"})
	case errors.Is(err, commands.ErrRequestAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "Event already has a room request"})
	case errors.Is(err, commands.ErrDuplicateChangeRequest):
		c.JSON(http.StatusConflict, gin.H{"error": "Booking already has a pending change request"})
	case errors.Is(err, commands.ErrStateTransition):
		c.JSON(http.StatusConflict, gin.H{"error": "Operation not allowed in current state"})
	case errors.Is(err, commands.ErrEventNotApproved):
		c.JSON(http.StatusConflict, gin.H{"error": "Event is not approved"})
	case errors.Is(err, commands.ErrBookingNotActive):
		c.JSON(http.StatusConflict, gin.H{"error": "Booking is no longer active"})
	case errors.Is(err, commands.ErrRoomUnavailable):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Room cannot satisfy this assignment"})
	case errors.Is(err, commands.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Validation failed"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
