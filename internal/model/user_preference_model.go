package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type UserPreference struct {
	Id                   uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId               string         `gorm:"type:varchar(100);uniqueIndex;not null"`
	PreferredBrands      datatypes.JSON `gorm:"type:jsonb"`
	PriceSensitivity     string         `gorm:"type:varchar(20);default:'medium'"`
	CategoriesOfInterest datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt            time.Time      `gorm:"autoCreateTime"`
	UpdatedAt            time.Time      `gorm:"autoUpdateTime"`
}

func (UserPreference) TableName() string {
	return "user_preferences"
}
