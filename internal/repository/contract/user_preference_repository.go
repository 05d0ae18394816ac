package contract

import (
	"context"

	"intent-search-be/internal/entity"
)

type UserPreferenceRepository interface {
	FindByUserId(ctx context.Context, userId string) (*entity.UserPreference, error)
	Upsert(ctx context.Context, preference *entity.UserPreference) error
}
