package pipeline

import (
	"context"

	"intent-search-be/pkg/store"
)

// Retriever is the vector-search collaborator the pipeline depends on.
// Implementations return the k most similar products with relevance scores
// already populated.
type Retriever interface {
	Search(ctx context.Context, query string, k int) ([]store.Product, error)
}
