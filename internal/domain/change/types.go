package change

type Status string

const (
	StatusPendingApproval Status = "pending_approval"
	StatusApproved        Status = "approved"
	StatusRejected        Status = "rejected"
	StatusCancelled       Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPendingApproval, StatusApproved, StatusRejected, StatusCancelled:
		return true
	default:
		return false
	}
}

// All states except the initial one are terminal.
func (s Status) IsTerminal() bool {
	return s != StatusPendingApproval
}
