package builder

import (
	"time"

	"facility-reservation/internal/domain/event"
	"facility-reservation/internal/domain/timeslot"

	"github.com/google/uuid"
)

var BaseTime = time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)

type EventBuilder struct {
	title       string
	requesterID uuid.UUID
	unit        string
	start       time.Time
	end         time.Time
	now         time.Time
}

func NewEventBuilder() *EventBuilder {
	return &EventBuilder{
		title:       "Autumn Tech Symposium",
		requesterID: uuid.New(),
		unit:        "engineering",
		start:       BaseTime,
		end:         BaseTime.Add(8 * time.Hour),
		now:         BaseTime.Add(-30 * 24 * time.Hour),
	}
}

func (b *EventBuilder) WithTitle(title string) *EventBuilder {
	b.title = title
	return b
}

func (b *EventBuilder) WithRequester(id uuid.UUID) *EventBuilder {
	b.requesterID = id
	return b
}

func (b *EventBuilder) WithUnit(unit string) *EventBuilder {
	b.unit = unit
	return b
}

func (b *EventBuilder) WithWindow(start, end time.Time) *EventBuilder {
	b.start = start
	b.end = end
	return b
}

func (b *EventBuilder) BuildDomain() (*event.Event, error) {
	window, err := timeslot.NewInterval(b.start, b.end)
	if err != nil {
		return nil, err
	}
	return event.NewEvent(b.title, b.requesterID, b.unit, window, b.now)
}

// BuildApproved walks a fresh event through submission and approval.
func (b *EventBuilder) BuildApproved() (*event.Event, error) {
	ev, err := b.BuildDomain()
	if err != nil {
		return nil, err
	}
	if err := ev.SubmitForApproval(b.now); err != nil {
		return nil, err
	}
	if err := ev.Approve(b.now); err != nil {
		return nil, err
	}
	return ev, nil
}
