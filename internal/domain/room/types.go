package room

type Status string

const (
	StatusReady            Status = "ready"
	StatusInUse            Status = "in_use"
	StatusReserved         Status = "reserved"
	StatusUnderMaintenance Status = "under_maintenance"
	StatusRetired          Status = "retired"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusReady, StatusInUse, StatusReserved, StatusUnderMaintenance, StatusRetired:
		return true
	default:
		return false
	}
}
