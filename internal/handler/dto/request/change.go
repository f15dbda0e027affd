package request

import (
	"time"

	"facility-reservation/internal/usecase/commands"

	"github.com/google/uuid"
)

type SubmitChangeRequest struct {
	BookingID   uuid.UUID  `json:"booking_id" binding:"required"`
	Reason      string     `json:"reason" binding:"required"`
	NewCriteria *LineInput `json:"new_criteria,omitempty"`
}

func (r SubmitChangeRequest) CriteriaCommand() *commands.NewLineInput {
	if r.NewCriteria == nil {
		return nil
	}
	c := r.NewCriteria.ToCommand()
	return &c
}

// DecideChangeRequest carries exactly one of approve or reject.
type DecideChangeRequest struct {
	Approve *ApproveChangeInput `json:"approve,omitempty"`
	Reject  *RejectInput        `json:"reject,omitempty"`
}

type ApproveChangeInput struct {
	NewRoomID uuid.UUID `json:"new_room_id" binding:"required"`
	StartAt   time.Time `json:"start_at" binding:"required"`
	EndAt     time.Time `json:"end_at" binding:"required"`
}

func (r DecideChangeRequest) ToCommand() commands.ChangeDecision {
	var d commands.ChangeDecision
	if r.Approve != nil {
		d.Approve = &commands.ApproveChange{
			NewRoomID: r.Approve.NewRoomID,
			Start:     r.Approve.StartAt,
			End:       r.Approve.EndAt,
		}
	}
	if r.Reject != nil {
		d.Reject = &commands.RejectDecision{Reason: r.Reject.Reason}
	}
	return d
}
