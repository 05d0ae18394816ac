package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	SearchEventTypeSearch   = "search"
	SearchEventTypeError    = "error"
	SearchEventTypeFeedback = "feedback"
)

type SearchEvent struct {
	Id                uuid.UUID
	EventType         string
	RequestId         string
	Query             string
	Intent            string
	ExecutionTime     float64
	UserId            string
	SessionId         string
	Error             string
	Rating            int
	FeedbackText      string
	SelectedProductId string
	CreatedAt         time.Time
}
