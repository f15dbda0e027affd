package request

import (
	"time"

	"facility-reservation/internal/usecase/commands"

	"github.com/google/uuid"
)

type LineInput struct {
	StartAt     time.Time `json:"start_at" binding:"required"`
	EndAt       time.Time `json:"end_at" binding:"required"`
	RoomType    string    `json:"room_type,omitempty"`
	MinCapacity int       `json:"min_capacity,omitempty"`
	Equipment   []string  `json:"equipment,omitempty"`
	Note        string    `json:"note,omitempty"`
}

func (l LineInput) ToCommand() commands.NewLineInput {
	return commands.NewLineInput{
		Start:       l.StartAt,
		End:         l.EndAt,
		RoomType:    l.RoomType,
		MinCapacity: l.MinCapacity,
		Equipment:   l.Equipment,
		Note:        l.Note,
	}
}

type CreateRoomRequestRequest struct {
	EventID uuid.UUID   `json:"event_id" binding:"required"`
	Lines   []LineInput `json:"lines" binding:"required,min=1,dive"`
}

type EditLinesRequest struct {
	Lines []LineInput `json:"lines" binding:"required,min=1,dive"`
}

// ResolveLineRequest carries exactly one of assign or reject.
type ResolveLineRequest struct {
	Assign *AssignInput `json:"assign,omitempty"`
	Reject *RejectInput `json:"reject,omitempty"`
}

type AssignInput struct {
	RoomID  uuid.UUID `json:"room_id" binding:"required"`
	StartAt time.Time `json:"start_at" binding:"required"`
	EndAt   time.Time `json:"end_at" binding:"required"`
}

type RejectInput struct {
	Reason string `json:"reason" binding:"required"`
}

func (r ResolveLineRequest) ToCommand() commands.LineDecision {
	var d commands.LineDecision
	if r.Assign != nil {
		d.Assign = &commands.AssignDecision{
			RoomID: r.Assign.RoomID,
			Start:  r.Assign.StartAt,
			End:    r.Assign.EndAt,
		}
	}
	if r.Reject != nil {
		d.Reject = &commands.RejectDecision{Reason: r.Reject.Reason}
	}
	return d
}

func ToLineCommands(lines []LineInput) []commands.NewLineInput {
	out := make([]commands.NewLineInput, len(lines))
	for i, l := range lines {
		out[i] = l.ToCommand()
	}
	return out
}
