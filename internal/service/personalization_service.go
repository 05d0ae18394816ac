package service

import (
	"context"
	"time"

	"intent-search-be/internal/dto"
	"intent-search-be/internal/entity"
	"intent-search-be/internal/mapper"
	"intent-search-be/internal/repository/unitofwork"
	"intent-search-be/pkg/store"

	"github.com/google/uuid"
)

type IPersonalizationService interface {
	GetPreferences(ctx context.Context, userId string) (store.Preferences, error)
	UpdatePreferences(ctx context.Context, userId string, req *dto.UpdatePreferencesRequest) (store.Preferences, error)
}

type personalizationService struct {
	uowFactory unitofwork.RepositoryFactory
	mapper     *mapper.UserPreferenceMapper
}

func NewPersonalizationService(uowFactory unitofwork.RepositoryFactory) IPersonalizationService {
	return &personalizationService{
		uowFactory: uowFactory,
		mapper:     mapper.NewUserPreferenceMapper(),
	}
}

func (s *personalizationService) GetPreferences(ctx context.Context, userId string) (store.Preferences, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	stored, err := uow.UserPreferenceRepository().FindByUserId(ctx, userId)
	if err != nil {
		return store.DefaultPreferences(), err
	}
	return s.mapper.ToPreferences(stored), nil
}

// UpdatePreferences merges the request into the stored profile. Only fields
// present in the request change; a missing field keeps its stored value.
func (s *personalizationService) UpdatePreferences(ctx context.Context, userId string, req *dto.UpdatePreferencesRequest) (store.Preferences, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.UserPreferenceRepository()

	stored, err := repo.FindByUserId(ctx, userId)
	if err != nil {
		return store.DefaultPreferences(), err
	}
	if stored == nil {
		defaults := store.DefaultPreferences()
		stored = &entity.UserPreference{
			Id:                   uuid.New(),
			UserId:               userId,
			PreferredBrands:      defaults.PreferredBrands,
			PriceSensitivity:     defaults.PriceSensitivity,
			CategoriesOfInterest: defaults.CategoriesOfInterest,
			CreatedAt:            time.Now(),
		}
	}

	if req.PreferredBrands != nil {
		stored.PreferredBrands = req.PreferredBrands
	}
	if req.PriceSensitivity != "" {
		stored.PriceSensitivity = req.PriceSensitivity
	}
	if req.CategoriesOfInterest != nil {
		stored.CategoriesOfInterest = req.CategoriesOfInterest
	}
	stored.UpdatedAt = time.Now()

	if err := repo.Upsert(ctx, stored); err != nil {
		return store.DefaultPreferences(), err
	}
	return s.mapper.ToPreferences(stored), nil
}
