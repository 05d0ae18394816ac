package mapper

import (
	"encoding/json"
	"time"

	"intent-search-be/internal/entity"
	"intent-search-be/internal/model"
	"intent-search-be/pkg/store"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProductMapper struct{}

func NewProductMapper() *ProductMapper {
	return &ProductMapper{}
}

func (m *ProductMapper) ToEntity(p *model.Product) *entity.Product {
	if p == nil {
		return nil
	}

	var deletedAt *time.Time
	if p.DeletedAt.Valid {
		t := p.DeletedAt.Time
		deletedAt = &t
	}

	var attributes map[string]interface{}
	if len(p.Attributes) > 0 {
		_ = json.Unmarshal(p.Attributes, &attributes)
	}

	return &entity.Product{
		Id:          p.Id,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		Brand:       p.Brand,
		Attributes:  attributes,
		InStock:     p.InStock,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		DeletedAt:   deletedAt,
	}
}

func (m *ProductMapper) ToModel(e *entity.Product) *model.Product {
	if e == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if e.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *e.DeletedAt, Valid: true}
	}

	var attributes datatypes.JSON
	if e.Attributes != nil {
		raw, err := json.Marshal(e.Attributes)
		if err == nil {
			attributes = datatypes.JSON(raw)
		}
	}

	return &model.Product{
		Id:          e.Id,
		Name:        e.Name,
		Description: e.Description,
		Price:       e.Price,
		Category:    e.Category,
		Brand:       e.Brand,
		Attributes:  attributes,
		InStock:     e.InStock,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
		DeletedAt:   deletedAt,
	}
}

func (m *ProductMapper) ToEntities(products []*model.Product) []*entity.Product {
	entities := make([]*entity.Product, len(products))
	for i, p := range products {
		entities[i] = m.ToEntity(p)
	}
	return entities
}

func (m *ProductMapper) ToModels(products []*entity.Product) []*model.Product {
	models := make([]*model.Product, len(products))
	for i, p := range products {
		models[i] = m.ToModel(p)
	}
	return models
}

// ToStoreProduct converts a catalog entity into the read-only snapshot the
// search pipeline carries.
func (m *ProductMapper) ToStoreProduct(e *entity.Product, relevanceScore float64) store.Product {
	if e == nil {
		return store.Product{}
	}
	return store.Product{
		ID:             e.Id.String(),
		Name:           e.Name,
		Description:    e.Description,
		Price:          e.Price,
		Category:       e.Category,
		Brand:          e.Brand,
		Attributes:     e.Attributes,
		InStock:        e.InStock,
		RelevanceScore: relevanceScore,
	}
}
