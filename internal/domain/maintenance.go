package domain

// MaintStatus is persisted by ordinal; do not reorder. Only Scheduled is
// assigned by the registry itself — the other values survive round-trips for
// records edited out of band.
type MaintStatus int

const (
	MaintScheduled MaintStatus = iota
	MaintInProgress
	MaintCompleted
)

func (s MaintStatus) String() string {
	switch s {
	case MaintScheduled:
		return "Scheduled"
	case MaintInProgress:
		return "InProgress"
	case MaintCompleted:
		return "Completed"
	}
	return "Unknown"
}

func (s MaintStatus) Valid() bool {
	return s >= MaintScheduled && s <= MaintCompleted
}

type Maintenance struct {
	MaintID       int
	RoomID        int
	Issue         string
	Status        MaintStatus
	ScheduledDate string // YYYY-MM-DD, validated by the caller
}
