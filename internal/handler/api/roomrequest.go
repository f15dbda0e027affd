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

type RoomRequestHandler struct {
	requestCommands commands.RequestCommands
	requestQueries  queries.RequestQueries
}

func NewRoomRequestHandler(requestCommands commands.RequestCommands, requestQueries queries.RequestQueries) *RoomRequestHandler {
	return &RoomRequestHandler{
		requestCommands: requestCommands,
		requestQueries:  requestQueries,
	}
}

// @Summary Create room request
// @Description Declare room needs for an approved event; one request per event
// @Tags room-requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateRoomRequestRequest true "Room request"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /room-requests [post]
func (h *RoomRequestHandler) Create(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.CreateRoomRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	id, err := h.requestCommands.CreateRoomRequest(c.Request.Context(), actor, req.EventID, reqdto.ToLineCommands(req.Lines))
	if err != nil {
		respondCommandError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id})
}

// @Summary Edit room request lines
// @Description Replace the unresolved lines of a request; assigned and rejected lines stay untouched
// @Tags room-requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param request body reqdto.EditLinesRequest true "New lines"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /room-requests/{id}/lines [put]
func (h *RoomRequestHandler) EditLines(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	headerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID format"})
		return
	}

	var req reqdto.EditLinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.requestCommands.EditLines(c.Request.Context(), actor, headerID, reqdto.ToLineCommands(req.Lines)); err != nil {
		respondCommandError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Resolve request line
// @Description Assign a room to the line or reject it with a reason
// @Tags room-requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param lineId path string true "Line ID"
// @Param request body reqdto.ResolveLineRequest true "Decision"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /room-requests/lines/{lineId}/resolve [post]
func (h *RoomRequestHandler) ResolveLine(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	lineID, err := uuid.Parse(c.Param("lineId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid line ID format"})
		return
	}

	var req reqdto.ResolveLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.requestCommands.ResolveLine(c.Request.Context(), actor, lineID, req.ToCommand()); err != nil {
		respondCommandError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Cancel room request
// @Description Cancel the whole request; active bookings under it are released
// @Tags room-requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 204
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /room-requests/{id} [delete]
func (h *RoomRequestHandler) Cancel(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	headerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID format"})
		return
	}

	if err := h.requestCommands.CancelRoomRequest(c.Request.Context(), actor, headerID); err != nil {
		respondCommandError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Get room request
// @Tags room-requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} resdto.HeaderResponse
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /room-requests/{id} [get]
func (h *RoomRequestHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID format"})
		return
	}

	view, err := h.requestQueries.GetHeader(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, queries.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Room request not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, resdto.FromHeaderView(view))
}

// @Summary List room requests for a unit
// @Tags room-requests
// @Produce json
// @Security BearerAuth
// @Param unit query string true "Requesting unit"
// @Success 200 {array} resdto.HeaderResponse
// @Failure 401 {object} map[string]string
// @Router /room-requests [get]
func (h *RoomRequestHandler) ListByUnit(c *gin.Context) {
	unit := c.Query("unit")
	if unit == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unit query parameter is required"})
		return
	}

	views, err := h.requestQueries.ListByUnit(c.Request.Context(), unit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, resdto.FromHeaderViews(views))
}
