package request

type LineStatus string

const (
	LineUnassigned LineStatus = "unassigned"
	LineAssigned   LineStatus = "assigned"
	LineRejected   LineStatus = "rejected"
)

func (s LineStatus) String() string {
	return string(s)
}

func (s LineStatus) IsValid() bool {
	switch s {
	case LineUnassigned, LineAssigned, LineRejected:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the line has been processed to finality.
func (s LineStatus) IsTerminal() bool {
	return s == LineAssigned || s == LineRejected
}

type HeaderStatus string

const (
	HeaderPending           HeaderStatus = "pending"
	HeaderInProgress        HeaderStatus = "in_progress"
	HeaderPartiallyResolved HeaderStatus = "partially_resolved"
	HeaderFullyResolved     HeaderStatus = "fully_resolved"
	HeaderRejectedEntirely  HeaderStatus = "rejected"
	HeaderCancelled         HeaderStatus = "cancelled"
)

func (s HeaderStatus) String() string {
	return string(s)
}

func (s HeaderStatus) IsValid() bool {
	switch s {
	case HeaderPending, HeaderInProgress, HeaderPartiallyResolved,
		HeaderFullyResolved, HeaderRejectedEntirely, HeaderCancelled:
		return true
	default:
		return false
	}
}

// DeriveHeaderStatus is the single source of truth for a header's overall
// status. The persisted column is a materialized view of this function over
// the line statuses; it is recomputed after every line mutation and must
// never be trusted over a recomputation. Order-independent by construction.
func DeriveHeaderStatus(lines []LineStatus) HeaderStatus {
	if len(lines) == 0 {
		return HeaderPending
	}

	var assigned, rejected, unassigned int
	for _, s := range lines {
		switch s {
		case LineAssigned:
			assigned++
		case LineRejected:
			rejected++
		default:
			unassigned++
		}
	}

	switch {
	case unassigned == len(lines):
		return HeaderPending
	case unassigned > 0:
		return HeaderInProgress
	case assigned == 0:
		return HeaderRejectedEntirely
	case rejected > 0:
		return HeaderPartiallyResolved
	default:
		return HeaderFullyResolved
	}
}
