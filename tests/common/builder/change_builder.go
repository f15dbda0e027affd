package builder

import (
	"time"

	"facility-reservation/internal/domain/change"
	"facility-reservation/internal/domain/request"

	"github.com/google/uuid"
)

type ChangeBuilder struct {
	bookingID   uuid.UUID
	requesterID uuid.UUID
	reason      string
	newCriteria *request.Criteria
	now         time.Time
}

func NewChangeBuilder() *ChangeBuilder {
	return &ChangeBuilder{
		bookingID:   uuid.New(),
		requesterID: uuid.New(),
		reason:      "speaker count doubled, need a bigger hall",
		now:         BaseTime.Add(-3 * 24 * time.Hour),
	}
}

func (b *ChangeBuilder) WithBooking(id uuid.UUID) *ChangeBuilder {
	b.bookingID = id
	return b
}

func (b *ChangeBuilder) WithRequester(id uuid.UUID) *ChangeBuilder {
	b.requesterID = id
	return b
}

func (b *ChangeBuilder) WithReason(reason string) *ChangeBuilder {
	b.reason = reason
	return b
}

func (b *ChangeBuilder) WithNewCriteria(c request.Criteria) *ChangeBuilder {
	b.newCriteria = &c
	return b
}

func (b *ChangeBuilder) BuildDomain() (*change.Request, error) {
	return change.NewRequest(b.bookingID, b.requesterID, b.reason, b.newCriteria, b.now)
}
