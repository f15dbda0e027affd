package api

import (
	"errors"
	"net/http"

	reqdto "facility-reservation/internal/handler/dto/request"
	resdto "facility-reservation/internal/handler/dto/response"
	"facility-reservation/internal/handler/middleware"
	"facility-reservation/internal/usecase/commands"
	"facility-reservation/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ChangeHandler struct {
	changeCommands commands.ChangeCommands
	changeQueries  queries.ChangeQueries
}

func NewChangeHandler(changeCommands commands.ChangeCommands, changeQueries queries.ChangeQueries) *ChangeHandler {
	return &ChangeHandler{
		changeCommands: changeCommands,
		changeQueries:  changeQueries,
	}
}

// @Summary Submit change request
// @Description Ask to move an active booking to a different room or time
// @Tags change-requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.SubmitChangeRequest true "Change request"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /change-requests [post]
func (h *ChangeHandler) Submit(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.SubmitChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	id, err := h.changeCommands.Submit(c.Request.Context(), actor, req.BookingID, req.Reason, req.CriteriaCommand())
	if err != nil {
		respondCommandError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id})
}

// @Summary Decide change request
// @Description Approve with a replacement room/time, or reject with a reason
// @Tags change-requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Change request ID"
// @Param request body reqdto.DecideChangeRequest true "Decision"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /change-requests/{id}/decide [post]
func (h *ChangeHandler) Decide(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	changeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid change request ID format"})
		return
	}

	var req reqdto.DecideChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.changeCommands.Decide(c.Request.Context(), actor, changeID, req.ToCommand()); err != nil {
		respondCommandError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Cancel change request
// @Description Withdraw a pending change request; only its original requester may do this
// @Tags change-requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Change request ID"
// @Success 204
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /change-requests/{id} [delete]
func (h *ChangeHandler) Cancel(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	changeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid change request ID format"})
		return
	}

	if err := h.changeCommands.Cancel(c.Request.Context(), actor, changeID); err != nil {
		respondCommandError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Get change request
// @Tags change-requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Change request ID"
// @Success 200 {object} resdto.ChangeResponse
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /change-requests/{id} [get]
func (h *ChangeHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid change request ID format"})
		return
	}

	view, err := h.changeQueries.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, queries.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Change request not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, resdto.FromChangeView(view))
}

// @Summary List change requests for a booking
// @Tags change-requests
// @Produce json
// @Security BearerAuth
// @Param bookingId query string true "Booking ID"
// @Success 200 {array} resdto.ChangeResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /change-requests [get]
func (h *ChangeHandler) ListByBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Query("bookingId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID format"})
		return
	}

	views, err := h.changeQueries.ListByBooking(c.Request.Context(), bookingID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, resdto.FromChangeViews(views))
}
