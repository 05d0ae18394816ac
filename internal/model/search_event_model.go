package model

import (
	"time"

	"github.com/google/uuid"
)

type SearchEvent struct {
	Id                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EventType         string    `gorm:"type:varchar(30);not null;index"` // search | error | feedback
	RequestId         string    `gorm:"type:varchar(100);index"`
	Query             string    `gorm:"type:text"`
	Intent            string    `gorm:"type:varchar(50)"`
	ExecutionTime     float64   `gorm:"type:double precision"`
	UserId            string    `gorm:"type:varchar(100);index"`
	SessionId         string    `gorm:"type:varchar(100);index"`
	Error             string    `gorm:"type:text"`
	Rating            int       `gorm:"default:0"`
	FeedbackText      string    `gorm:"type:text"`
	SelectedProductId string    `gorm:"type:varchar(100)"`
	CreatedAt         time.Time `gorm:"autoCreateTime;index"`
}

func (SearchEvent) TableName() string {
	return "search_events"
}
