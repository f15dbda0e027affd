package builder

import (
	"time"

	"facility-reservation/internal/domain/request"
	"facility-reservation/internal/domain/timeslot"

	"github.com/google/uuid"
)

type lineSpec struct {
	start    time.Time
	end      time.Time
	criteria request.Criteria
}

type HeaderBuilder struct {
	eventID     uuid.UUID
	requesterID uuid.UUID
	unit        string
	lines       []lineSpec
	now         time.Time
}

func NewHeaderBuilder() *HeaderBuilder {
	return &HeaderBuilder{
		eventID:     uuid.New(),
		requesterID: uuid.New(),
		unit:        "engineering",
		lines: []lineSpec{
			{
				start:    BaseTime,
				end:      BaseTime.Add(2 * time.Hour),
				criteria: request.NewCriteria("lecture_hall", 80, []string{"projector"}, ""),
			},
		},
		now: BaseTime.Add(-14 * 24 * time.Hour),
	}
}

func (b *HeaderBuilder) WithEvent(eventID uuid.UUID) *HeaderBuilder {
	b.eventID = eventID
	return b
}

func (b *HeaderBuilder) WithRequester(id uuid.UUID) *HeaderBuilder {
	b.requesterID = id
	return b
}

func (b *HeaderBuilder) WithUnit(unit string) *HeaderBuilder {
	b.unit = unit
	return b
}

func (b *HeaderBuilder) WithoutLines() *HeaderBuilder {
	b.lines = nil
	return b
}

func (b *HeaderBuilder) AddLine(start, end time.Time, criteria request.Criteria) *HeaderBuilder {
	b.lines = append(b.lines, lineSpec{start: start, end: end, criteria: criteria})
	return b
}

func (b *HeaderBuilder) BuildDomain() (*request.Header, error) {
	h := request.NewHeader(b.eventID, b.requesterID, b.unit, b.now)
	for _, l := range b.lines {
		desired, err := timeslot.NewInterval(l.start, l.end)
		if err != nil {
			return nil, err
		}
		h.AddLine(desired, l.criteria, b.now)
	}
	return h, nil
}
