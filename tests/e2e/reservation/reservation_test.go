//go:build e2e

package reservation_test

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"facility-reservation/internal/handler/dto/response"
	"facility-reservation/internal/pkg/authz"
	"facility-reservation/tests/common/authtest"
	"facility-reservation/tests/common/builder"
	"facility-reservation/tests/common/dbtest"
	"facility-reservation/tests/common/httptest"
	"facility-reservation/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	eventsURL       = "/api/events"
	roomRequestsURL = "/api/room-requests"
	resolveLineURL  = "/api/room-requests/lines/%s/resolve"
	changesURL      = "/api/change-requests"
	scheduleURL     = "/api/rooms/%s/schedule?from=%s&to=%s"
)

var (
	slotStart = time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)
	slotEnd   = time.Date(2025, 10, 1, 11, 0, 0, 0, time.UTC)
)

type ReservationSuite struct {
	e2e.SharedSuite

	requester      authz.Actor
	requesterToken string
	staffToken     string
}

func (s *ReservationSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()

	s.requester = builder.NewRequesterActor(uuid.New(), "engineering")
	s.requesterToken = authtest.IssueToken(s.T(), s.Config, s.requester)
	s.staffToken = authtest.IssueToken(s.T(), s.Config, builder.NewStaffActor())
}

func TestReservationSuite(t *testing.T) {
	suite.Run(t, new(ReservationSuite))
}

func (s *ReservationSuite) createApprovedEvent(title string) uuid.UUID {
	body := map[string]any{
		"title":    title,
		"start_at": slotStart.Add(-time.Hour).Format(time.RFC3339),
		"end_at":   slotEnd.Add(time.Hour).Format(time.RFC3339),
	}
	rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, eventsURL, body, s.requesterToken)
	require.Equal(s.T(), http.StatusCreated, rec.Code, rec.Body.String())

	var created response.CreatedResponse
	_ = httptest.DecodeResponseBody(s.T(), rec.Body, &created)

	rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
		fmt.Sprintf("%s/%s/submit", eventsURL, created.ID), nil, s.requesterToken)
	require.Equal(s.T(), http.StatusNoContent, rec.Code, rec.Body.String())

	rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
		fmt.Sprintf("%s/%s/approve", eventsURL, created.ID), nil, s.staffToken)
	require.Equal(s.T(), http.StatusNoContent, rec.Code, rec.Body.String())

	return created.ID
}

func (s *ReservationSuite) createRequest(eventID uuid.UUID) response.HeaderResponse {
	body := map[string]any{
		"event_id": eventID,
		"lines": []map[string]any{
			{
				"start_at":     slotStart.Format(time.RFC3339),
				"end_at":       slotEnd.Format(time.RFC3339),
				"room_type":    "lecture_hall",
				"min_capacity": 80,
				"equipment":    []string{"projector"},
			},
		},
	}
	rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, roomRequestsURL, body, s.requesterToken)
	require.Equal(s.T(), http.StatusCreated, rec.Code, rec.Body.String())

	var created response.CreatedResponse
	_ = httptest.DecodeResponseBody(s.T(), rec.Body, &created)
	return s.getHeader(created.ID)
}

func (s *ReservationSuite) getHeader(id uuid.UUID) response.HeaderResponse {
	rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet,
		fmt.Sprintf("%s/%s", roomRequestsURL, id), nil, s.requesterToken)
	require.Equal(s.T(), http.StatusOK, rec.Code, rec.Body.String())

	var header response.HeaderResponse
	_ = httptest.DecodeResponseBody(s.T(), rec.Body, &header)
	return header
}

func (s *ReservationSuite) assignBody(roomID uuid.UUID) map[string]any {
	return map[string]any{
		"assign": map[string]any{
			"room_id":  roomID,
			"start_at": slotStart.Format(time.RFC3339),
			"end_at":   slotEnd.Format(time.RFC3339),
		},
	}
}

func (s *ReservationSuite) TestReservationWorkflow() {
	s.Run("assigning a line books the room", func() {
		roomID := dbtest.CreateTestRoom(s.T(), s.DB, "B1-201", 120, []string{"projector", "whiteboard"})
		eventID := s.createApprovedEvent("Autumn Tech Symposium")
		header := s.createRequest(eventID)

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
			fmt.Sprintf(resolveLineURL, header.Lines[0].ID), s.assignBody(roomID), s.staffToken)
		s.Equal(http.StatusNoContent, rec.Code, rec.Body.String())

		header = s.getHeader(header.ID)
		s.Equal("fully_resolved", header.Status)
		s.Equal("assigned", header.Lines[0].Status)
		s.NotNil(header.Lines[0].BookingID)

		// The booking shows up on the room schedule.
		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodGet,
			fmt.Sprintf(scheduleURL, roomID,
				slotStart.Add(-24*time.Hour).Format(time.RFC3339),
				slotEnd.Add(24*time.Hour).Format(time.RFC3339)),
			nil, s.requesterToken)
		s.Equal(http.StatusOK, rec.Code, rec.Body.String())

		var bookings []response.BookingResponse
		_ = httptest.DecodeResponseBody(s.T(), rec.Body, &bookings)
		s.Require().Len(bookings, 1)

		expected := response.BookingResponse{
			ID:       *header.Lines[0].BookingID,
			RoomID:   roomID,
			RoomCode: "B1-201",
			LineID:   header.Lines[0].ID,
			StartAt:  slotStart,
			EndAt:    slotEnd,
			Status:   "active",
		}
		opts := []cmp.Option{
			cmpopts.IgnoreFields(response.BookingResponse{}, "CreatedAt", "UpdatedAt"),
		}
		if diff := cmp.Diff(expected, bookings[0], opts...); diff != "" {
			s.T().Errorf("booking mismatch (-want +got):\n%s", diff)
		}
	})

	s.Run("double booking the same slot is rejected", func() {
		roomID := dbtest.CreateTestRoom(s.T(), s.DB, "B1-201", 120, []string{"projector"})
		first := s.createRequest(s.createApprovedEvent("Robotics Demo Day"))
		second := s.createRequest(s.createApprovedEvent("Career Fair"))

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
			fmt.Sprintf(resolveLineURL, first.Lines[0].ID), s.assignBody(roomID), s.staffToken)
		s.Equal(http.StatusNoContent, rec.Code, rec.Body.String())

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
			fmt.Sprintf(resolveLineURL, second.Lines[0].ID), s.assignBody(roomID), s.staffToken)
		s.Equal(http.StatusConflict, rec.Code, rec.Body.String())
	})

	s.Run("concurrent assignments produce exactly one booking", func() {
		roomID := dbtest.CreateTestRoom(s.T(), s.DB, "B1-201", 120, []string{"projector"})
		first := s.createRequest(s.createApprovedEvent("Robotics Demo Day"))
		second := s.createRequest(s.createApprovedEvent("Career Fair"))

		codes := make([]int, 2)
		var wg sync.WaitGroup
		for i, lineID := range []uuid.UUID{first.Lines[0].ID, second.Lines[0].ID} {
			wg.Add(1)
			go func() {
				defer wg.Done()
				rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
					fmt.Sprintf(resolveLineURL, lineID), s.assignBody(roomID), s.staffToken)
				codes[i] = rec.Code
			}()
		}
		wg.Wait()

		wins := 0
		for _, code := range codes {
			switch code {
			case http.StatusNoContent:
				wins++
			case http.StatusConflict:
			default:
				s.Failf("unexpected status", "got %d", code)
			}
		}
		s.Equal(1, wins)

		var active int
		err := s.DB.QueryRow(context.Background(),
			"SELECT count(*) FROM room_bookings WHERE room_id = $1 AND status = 'active'", roomID).Scan(&active)
		s.Require().NoError(err)
		s.Equal(1, active)
	})

	s.Run("cancelling the request frees the slot", func() {
		roomID := dbtest.CreateTestRoom(s.T(), s.DB, "B1-201", 120, []string{"projector"})
		header := s.createRequest(s.createApprovedEvent("Robotics Demo Day"))

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
			fmt.Sprintf(resolveLineURL, header.Lines[0].ID), s.assignBody(roomID), s.staffToken)
		s.Require().Equal(http.StatusNoContent, rec.Code)

		// Fully resolved requests cannot be cancelled directly; withdraw the
		// event instead.
		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodDelete,
			fmt.Sprintf("%s/%s", roomRequestsURL, header.ID), nil, s.requesterToken)
		s.Equal(http.StatusConflict, rec.Code, rec.Body.String())

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
			fmt.Sprintf("%s/%s/request-cancellation", eventsURL, header.EventID), nil, s.requesterToken)
		s.Require().Equal(http.StatusNoContent, rec.Code, rec.Body.String())

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
			fmt.Sprintf("%s/%s/decide-cancellation", eventsURL, header.EventID),
			map[string]any{"approve": true}, s.staffToken)
		s.Require().Equal(http.StatusNoContent, rec.Code, rec.Body.String())

		// The slot is bookable again.
		other := s.createRequest(s.createApprovedEvent("Career Fair"))
		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
			fmt.Sprintf(resolveLineURL, other.Lines[0].ID), s.assignBody(roomID), s.staffToken)
		s.Equal(http.StatusNoContent, rec.Code, rec.Body.String())
	})
}

func (s *ReservationSuite) TestChangeWorkflow() {
	s.Run("approved change moves the booking", func() {
		oldRoom := dbtest.CreateTestRoom(s.T(), s.DB, "B1-201", 120, []string{"projector"})
		newRoom := dbtest.CreateTestRoom(s.T(), s.DB, "B1-305", 250, []string{"projector", "microphone"})
		header := s.createRequest(s.createApprovedEvent("Robotics Demo Day"))

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
			fmt.Sprintf(resolveLineURL, header.Lines[0].ID), s.assignBody(oldRoom), s.staffToken)
		s.Require().Equal(http.StatusNoContent, rec.Code, rec.Body.String())
		header = s.getHeader(header.ID)
		oldBookingID := *header.Lines[0].BookingID

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, changesURL, map[string]any{
			"booking_id": oldBookingID,
			"reason":     "attendance doubled",
		}, s.requesterToken)
		s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
		var created response.CreatedResponse
		_ = httptest.DecodeResponseBody(s.T(), rec.Body, &created)

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
			fmt.Sprintf("%s/%s/decide", changesURL, created.ID), map[string]any{
				"approve": map[string]any{
					"new_room_id": newRoom,
					"start_at":    slotStart.Format(time.RFC3339),
					"end_at":      slotEnd.Add(time.Hour).Format(time.RFC3339),
				},
			}, s.staffToken)
		s.Require().Equal(http.StatusNoContent, rec.Code, rec.Body.String())

		header = s.getHeader(header.ID)
		s.Equal("assigned", header.Lines[0].Status)
		s.NotEqual(oldBookingID, *header.Lines[0].BookingID)

		var oldStatus string
		err := s.DB.QueryRow(context.Background(),
			"SELECT status FROM room_bookings WHERE id = $1", oldBookingID).Scan(&oldStatus)
		s.Require().NoError(err)
		s.Equal("superseded", oldStatus)
	})

	s.Run("second open change for a booking is rejected", func() {
		roomID := dbtest.CreateTestRoom(s.T(), s.DB, "B1-201", 120, []string{"projector"})
		header := s.createRequest(s.createApprovedEvent("Robotics Demo Day"))

		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost,
			fmt.Sprintf(resolveLineURL, header.Lines[0].ID), s.assignBody(roomID), s.staffToken)
		s.Require().Equal(http.StatusNoContent, rec.Code, rec.Body.String())
		header = s.getHeader(header.ID)

		body := map[string]any{"booking_id": *header.Lines[0].BookingID, "reason": "attendance doubled"}
		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, changesURL, body, s.requesterToken)
		s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

		rec = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, changesURL, body, s.requesterToken)
		s.Equal(http.StatusConflict, rec.Code, rec.Body.String())
	})
}
