package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"intent-search-be/internal/dto"
	"intent-search-be/internal/entity"
	"intent-search-be/internal/repository/specification"
	"intent-search-be/internal/repository/unitofwork"
	"intent-search-be/pkg/events"
	pktNats "intent-search-be/pkg/nats"

	"github.com/google/uuid"
)

type IProductService interface {
	Create(ctx context.Context, req *dto.CreateProductRequest) (*dto.CreateProductResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.ShowProductResponse, error)
	Update(ctx context.Context, req *dto.UpdateProductRequest) (*dto.UpdateProductResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type productService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
}

func NewProductService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
) IProductService {
	return &productService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
	}
}

func (s *productService) Create(ctx context.Context, req *dto.CreateProductRequest) (*dto.CreateProductResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	inStock := true
	if req.InStock != nil {
		inStock = *req.InStock
	}

	product := entity.Product{
		Id:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Brand:       req.Brand,
		Attributes:  req.Attributes,
		InStock:     inStock,
		CreatedAt:   time.Now(),
	}

	if err := uow.ProductRepository().Create(ctx, &product); err != nil {
		return nil, err
	}

	if err := s.publishEmbedJob(ctx, product.Id); err != nil {
		return nil, err
	}

	s.publishIndexedEvent(ctx, &product)

	return &dto.CreateProductResponse{Id: product.Id}, nil
}

func (s *productService) Show(ctx context.Context, id uuid.UUID) (*dto.ShowProductResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	product, err := uow.ProductRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil // Not found
	}

	return &dto.ShowProductResponse{
		Id:          product.Id,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Category:    product.Category,
		Brand:       product.Brand,
		Attributes:  product.Attributes,
		InStock:     product.InStock,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}, nil
}

func (s *productService) Update(ctx context.Context, req *dto.UpdateProductRequest) (*dto.UpdateProductResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	product, err := uow.ProductRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Price = req.Price
	product.Category = req.Category
	product.Brand = req.Brand
	product.Attributes = req.Attributes
	if req.InStock != nil {
		product.InStock = *req.InStock
	}
	product.UpdatedAt = time.Now()

	if err := uow.ProductRepository().Update(ctx, product); err != nil {
		return nil, err
	}

	if err := s.publishEmbedJob(ctx, product.Id); err != nil {
		return nil, err
	}

	s.publishIndexedEvent(ctx, product)

	return &dto.UpdateProductResponse{Id: product.Id}, nil
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	product, err := uow.ProductRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if product == nil {
		return nil
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ProductRepository().Delete(ctx, id); err != nil {
		return err
	}

	if err := uow.ProductEmbeddingRepository().DeleteByProductId(ctx, id); err != nil {
		return err
	}

	return uow.Commit()
}

func (s *productService) publishEmbedJob(ctx context.Context, productId uuid.UUID) error {
	payload := dto.PublishEmbedProductMessage{ProductId: productId}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return s.publisherService.Publish(ctx, payloadJson)
}

func (s *productService) publishIndexedEvent(ctx context.Context, product *entity.Product) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.BaseEvent{
		Type: events.EventProductIndexed,
		Data: map[string]interface{}{
			"product_id": product.Id,
			"name":       product.Name,
		},
		OccurredAt: time.Now(),
	}
	// Log error but don't fail the request, eventing is auxiliary
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		fmt.Printf("[WARN] Failed to publish PRODUCT_INDEXED event: %v\n", err)
	}
}
