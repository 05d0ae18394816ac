package retrieval

import (
	"context"
	"fmt"
	"log"

	"intent-search-be/internal/mapper"
	"intent-search-be/internal/repository/specification"
	"intent-search-be/internal/repository/unitofwork"
	"intent-search-be/pkg/embedding"
	"intent-search-be/pkg/store"

	"github.com/google/uuid"
)

// VectorRetriever answers pipeline search requests from the pgvector index.
// It embeds the query, fetches the nearest product embeddings above the
// similarity threshold, then loads the parent products in score order.
type VectorRetriever struct {
	embeddingProvider embedding.EmbeddingProvider
	uowFactory        unitofwork.RepositoryFactory
	threshold         float64
	mapper            *mapper.ProductMapper
}

func NewVectorRetriever(embeddingProvider embedding.EmbeddingProvider, uowFactory unitofwork.RepositoryFactory, threshold float64) *VectorRetriever {
	return &VectorRetriever{
		embeddingProvider: embeddingProvider,
		uowFactory:        uowFactory,
		threshold:         threshold,
		mapper:            mapper.NewProductMapper(),
	}
}

func (r *VectorRetriever) Search(ctx context.Context, query string, k int) ([]store.Product, error) {
	embeddingResult, err := r.embeddingProvider.Generate(query, embedding.TaskTypeRetrievalQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to generate query embedding: %w", err)
	}

	uow := r.uowFactory.NewUnitOfWork(ctx)
	scored, err := uow.ProductEmbeddingRepository().SearchSimilarWithScore(
		ctx, embeddingResult.Embedding.Values, k, r.threshold)
	if err != nil {
		return nil, fmt.Errorf("similarity search failed: %w", err)
	}
	if len(scored) == 0 {
		return []store.Product{}, nil
	}

	// A product can match through several chunks; keep its best score only.
	productIds := make([]uuid.UUID, 0, len(scored))
	bestScore := make(map[uuid.UUID]float64, len(scored))
	for _, s := range scored {
		id := s.Embedding.ProductId
		if _, seen := bestScore[id]; !seen {
			productIds = append(productIds, id)
			bestScore[id] = s.Similarity
		}
	}

	products, err := uow.ProductRepository().FindAll(ctx, specification.ByIDs{IDs: productIds})
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	byId := make(map[uuid.UUID]int, len(products))
	for i, p := range products {
		byId[p.Id] = i
	}

	// Results follow similarity order, not the order FindAll returned.
	results := make([]store.Product, 0, len(productIds))
	for _, id := range productIds {
		idx, ok := byId[id]
		if !ok {
			log.Printf("[WARN] embedding references missing product %s", id)
			continue
		}
		results = append(results, r.mapper.ToStoreProduct(products[idx], bestScore[id]))
	}
	return results, nil
}
