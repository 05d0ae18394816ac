package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateProductRequest struct {
	Name        string                 `json:"name" validate:"required"`
	Description string                 `json:"description"`
	Price       float64                `json:"price" validate:"gte=0"`
	Category    string                 `json:"category"`
	Brand       string                 `json:"brand"`
	Attributes  map[string]interface{} `json:"attributes"`
	InStock     *bool                  `json:"in_stock"`
}

type CreateProductResponse struct {
	Id uuid.UUID `json:"id"`
}

type UpdateProductRequest struct {
	Id          uuid.UUID
	Name        string                 `json:"name" validate:"required"`
	Description string                 `json:"description"`
	Price       float64                `json:"price" validate:"gte=0"`
	Category    string                 `json:"category"`
	Brand       string                 `json:"brand"`
	Attributes  map[string]interface{} `json:"attributes"`
	InStock     *bool                  `json:"in_stock"`
}

type UpdateProductResponse struct {
	Id uuid.UUID `json:"id"`
}

type ShowProductResponse struct {
	Id          uuid.UUID              `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Price       float64                `json:"price"`
	Category    string                 `json:"category"`
	Brand       string                 `json:"brand"`
	Attributes  map[string]interface{} `json:"attributes"`
	InStock     bool                   `json:"in_stock"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// PublishEmbedProductMessage is the payload sent to the embedding worker when
// a product is created or updated.
type PublishEmbedProductMessage struct {
	ProductId uuid.UUID `json:"product_id"`
}
