package request

import (
	"time"
)

type CreateEventRequest struct {
	Title   string    `json:"title" binding:"required"`
	StartAt time.Time `json:"start_at" binding:"required"`
	EndAt   time.Time `json:"end_at" binding:"required"`
}

type DecideCancellationRequest struct {
	Approve *bool `json:"approve" binding:"required"`
}
