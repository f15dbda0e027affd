package commands

import (
	"context"
	"encoding/json"
	"time"

	"facility-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

// Outbox topics consumed by the out-of-scope notification dispatcher.
const (
	TopicEventApproved       = "event_approved"
	TopicEventRejected       = "event_rejected"
	TopicEventCancelled      = "event_cancelled"
	TopicBookingCreated      = "booking_created"
	TopicBookingCancelled    = "booking_cancelled"
	TopicBookingSuperseded   = "booking_superseded"
	TopicRequestLineRejected = "request_line_rejected"
	TopicRequestCancelled    = "request_cancelled"
	TopicChangeSubmitted     = "change_submitted"
	TopicChangeApproved      = "change_approved"
	TopicChangeRejected      = "change_rejected"
)

// NewLineInput is one desired time window plus room criteria.
type NewLineInput struct {
	Start       time.Time
	End         time.Time
	RoomType    string
	MinCapacity int
	Equipment   []string
	Note        string
}

// LineDecision is either an assignment or a rejection, never both.
type LineDecision struct {
	Assign *AssignDecision
	Reject *RejectDecision
}

type AssignDecision struct {
	RoomID uuid.UUID
	Start  time.Time
	End    time.Time
}

type RejectDecision struct {
	Reason string
}

type ChangeDecision struct {
	Approve *ApproveChange
	Reject  *RejectDecision
}

type ApproveChange struct {
	NewRoomID uuid.UUID
	Start     time.Time
	End       time.Time
}

// enqueue writes a notification row inside the current transaction; the
// dispatcher publishes it only after commit, so no lock is ever held across
// an out-of-process call.
func enqueue(ctx context.Context, tx shared.Tx, topic string, payload map[string]any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return tx.Outbox().Enqueue(ctx, topic, body)
}
