package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserPreference struct {
	Id                   uuid.UUID
	UserId               string
	PreferredBrands      []string
	PriceSensitivity     string
	CategoriesOfInterest []string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
