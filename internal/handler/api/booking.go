package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	resdto "facility-reservation/internal/handler/dto/response"
	"facility-reservation/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	bookingQueries queries.BookingQueries
	roomQueries    queries.RoomQueries
}

func NewBookingHandler(bookingQueries queries.BookingQueries, roomQueries queries.RoomQueries) *BookingHandler {
	return &BookingHandler{
		bookingQueries: bookingQueries,
		roomQueries:    roomQueries,
	}
}

// @Summary Room schedule
// @Description Bookings of any status intersecting the given window, for conflict visualization
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Param from query string true "Window start (RFC3339)"
// @Param to query string true "Window end (RFC3339)"
// @Success 200 {array} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /rooms/{id}/schedule [get]
func (h *BookingHandler) RoomSchedule(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid room ID format"})
		return
	}

	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from timestamp"})
		return
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to timestamp"})
		return
	}

	views, err := h.bookingQueries.ListForRoom(c.Request.Context(), roomID, from, to)
	if err != nil {
		if errors.Is(err, queries.ErrInvalidWindow) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Query window must start before it ends"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingViews(views))
}

// @Summary Get room
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Success 200 {object} resdto.RoomResponse
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /rooms/{id} [get]
func (h *BookingHandler) GetRoom(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid room ID format"})
		return
	}

	view, err := h.roomQueries.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, queries.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, resdto.FromRoomView(view))
}

// @Summary List rooms
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param building query string false "Filter by building"
// @Param minCapacity query int false "Minimum capacity"
// @Param status query string false "Filter by status"
// @Success 200 {array} resdto.RoomResponse
// @Failure 401 {object} map[string]string
// @Router /rooms [get]
func (h *BookingHandler) ListRooms(c *gin.Context) {
	filter := queries.RoomFilter{
		Building: c.Query("building"),
		Status:   c.Query("status"),
	}
	if mc := c.Query("minCapacity"); mc != "" {
		minCapacity, err := strconv.Atoi(mc)
		if err != nil || minCapacity < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid minCapacity"})
			return
		}
		filter.MinCapacity = minCapacity
	}

	views, err := h.roomQueries.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, resdto.FromRoomViews(views))
}
