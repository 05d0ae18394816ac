package mapper

import (
	"encoding/json"

	"intent-search-be/internal/entity"
	"intent-search-be/internal/model"
	"intent-search-be/pkg/store"

	"gorm.io/datatypes"
)

type UserPreferenceMapper struct{}

func NewUserPreferenceMapper() *UserPreferenceMapper {
	return &UserPreferenceMapper{}
}

func (m *UserPreferenceMapper) ToEntity(p *model.UserPreference) *entity.UserPreference {
	if p == nil {
		return nil
	}

	return &entity.UserPreference{
		Id:                   p.Id,
		UserId:               p.UserId,
		PreferredBrands:      unmarshalStringList(p.PreferredBrands),
		PriceSensitivity:     p.PriceSensitivity,
		CategoriesOfInterest: unmarshalStringList(p.CategoriesOfInterest),
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}

func (m *UserPreferenceMapper) ToModel(e *entity.UserPreference) *model.UserPreference {
	if e == nil {
		return nil
	}

	return &model.UserPreference{
		Id:                   e.Id,
		UserId:               e.UserId,
		PreferredBrands:      marshalStringList(e.PreferredBrands),
		PriceSensitivity:     e.PriceSensitivity,
		CategoriesOfInterest: marshalStringList(e.CategoriesOfInterest),
		CreatedAt:            e.CreatedAt,
		UpdatedAt:            e.UpdatedAt,
	}
}

// ToPreferences converts a stored profile into the pipeline's view of it.
func (m *UserPreferenceMapper) ToPreferences(e *entity.UserPreference) store.Preferences {
	if e == nil {
		return store.DefaultPreferences()
	}

	prefs := store.Preferences{
		PreferredBrands:      e.PreferredBrands,
		PriceSensitivity:     e.PriceSensitivity,
		CategoriesOfInterest: e.CategoriesOfInterest,
	}
	if prefs.PreferredBrands == nil {
		prefs.PreferredBrands = []string{}
	}
	if prefs.PriceSensitivity == "" {
		prefs.PriceSensitivity = store.PriceSensitivityMedium
	}
	if prefs.CategoriesOfInterest == nil {
		prefs.CategoriesOfInterest = []string{}
	}
	return prefs
}

func marshalStringList(values []string) datatypes.JSON {
	if values == nil {
		values = []string{}
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(raw)
}

func unmarshalStringList(raw datatypes.JSON) []string {
	values := []string{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &values)
	}
	return values
}
