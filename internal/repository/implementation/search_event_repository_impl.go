package implementation

import (
	"context"

	"intent-search-be/internal/entity"
	"intent-search-be/internal/mapper"
	"intent-search-be/internal/model"
	"intent-search-be/internal/repository/contract"
	"intent-search-be/internal/repository/specification"

	"gorm.io/gorm"
)

type SearchEventRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SearchEventMapper
}

func NewSearchEventRepository(db *gorm.DB) contract.SearchEventRepository {
	return &SearchEventRepositoryImpl{
		db:     db,
		mapper: mapper.NewSearchEventMapper(),
	}
}

func (r *SearchEventRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *SearchEventRepositoryImpl) Create(ctx context.Context, event *entity.SearchEvent) error {
	m := r.mapper.ToModel(event)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*event = *r.mapper.ToEntity(m)
	return nil
}

func (r *SearchEventRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SearchEvent, error) {
	var models []*model.SearchEvent
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *SearchEventRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.SearchEvent{}).Count(&count).Error
	return count, err
}
