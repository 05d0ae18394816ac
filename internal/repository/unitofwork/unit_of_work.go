package unitofwork

import (
	"context"

	"intent-search-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ProductRepository() contract.ProductRepository
	ProductEmbeddingRepository() contract.ProductEmbeddingRepository
	UserPreferenceRepository() contract.UserPreferenceRepository
	SearchEventRepository() contract.SearchEventRepository
}
