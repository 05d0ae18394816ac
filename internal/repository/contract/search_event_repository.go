package contract

import (
	"context"

	"intent-search-be/internal/entity"
	"intent-search-be/internal/repository/specification"
)

type SearchEventRepository interface {
	Create(ctx context.Context, event *entity.SearchEvent) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SearchEvent, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
