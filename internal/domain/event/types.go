package event

type Status string

const (
	StatusDraft               Status = "draft"
	StatusPendingApproval     Status = "pending_approval"
	StatusApproved            Status = "approved"
	StatusRejected            Status = "rejected"
	StatusCancelled           Status = "cancelled"
	StatusCancellationPending Status = "cancellation_pending"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusPendingApproval, StatusApproved,
		StatusRejected, StatusCancelled, StatusCancellationPending:
		return true
	default:
		return false
	}
}

// IsTerminal: events are never deleted, only terminal-stated.
func (s Status) IsTerminal() bool {
	return s == StatusRejected || s == StatusCancelled
}
