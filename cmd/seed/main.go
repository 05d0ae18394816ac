package main

import (
	"context"
	"log"
	"os"
	"time"

	"intent-search-be/internal/config"
	"intent-search-be/internal/entity"
	"intent-search-be/internal/repository/unitofwork"
	"intent-search-be/pkg/database"
	"intent-search-be/pkg/embedding"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

// Seeds a small demo catalog and generates embeddings inline so the search
// path works immediately, without waiting for the worker.
func main() {
	cfg := config.Load()

	dsn := cfg.Database.Connection
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
	}

	uowFactory := unitofwork.NewRepositoryFactory(db)
	ctx := context.Background()
	uow := uowFactory.NewUnitOfWork(ctx)

	color.Cyan("Seeding product catalog...")

	products := sampleProducts()
	seeded := 0
	for i := range products {
		product := &products[i]

		existing, err := uow.ProductRepository().FindAll(ctx)
		if err != nil {
			color.Red("Failed to check existing products: %v", err)
			os.Exit(1)
		}
		if containsName(existing, product.Name) {
			color.Yellow("Product %q already exists, skipping", product.Name)
			continue
		}

		if err := uow.ProductRepository().Create(ctx, product); err != nil {
			color.Red("Failed to create product %q: %v", product.Name, err)
			continue
		}

		document := product.Name + "\n" + product.Description
		res, err := embeddingProvider.Generate(document, embedding.TaskTypeRetrievalDocument)
		if err != nil {
			color.Yellow("Embedding failed for %q (worker can backfill later): %v", product.Name, err)
			seeded++
			continue
		}

		emb := &entity.ProductEmbedding{
			Id:             uuid.New(),
			Document:       document,
			EmbeddingValue: res.Embedding.Values,
			ProductId:      product.Id,
			CreatedAt:      time.Now(),
		}
		if err := uow.ProductEmbeddingRepository().Create(ctx, emb); err != nil {
			color.Red("Failed to store embedding for %q: %v", product.Name, err)
			continue
		}

		color.Green("Seeded %q", product.Name)
		seeded++
	}

	color.Cyan("Done: %d products seeded.", seeded)
}

func containsName(products []*entity.Product, name string) bool {
	for _, p := range products {
		if p.Name == name {
			return true
		}
	}
	return false
}

func sampleProducts() []entity.Product {
	now := time.Now()
	return []entity.Product{
		{
			Id:          uuid.New(),
			Name:        "Sony WH-1000XM5 Wireless Headphones",
			Description: "Industry-leading noise canceling over-ear headphones with 30 hour battery life and multipoint Bluetooth.",
			Price:       399.99,
			Category:    "audio",
			Brand:       "Sony",
			Attributes: map[string]interface{}{
				"color":          []string{"black", "silver"},
				"connectivity":   "bluetooth",
				"noise_canceling": true,
			},
			InStock:   true,
			CreatedAt: now,
		},
		{
			Id:          uuid.New(),
			Name:        "Anker PowerCore 20000 Power Bank",
			Description: "20000mAh portable charger with fast USB-C Power Delivery, charges two devices at once.",
			Price:       49.99,
			Category:    "accessories",
			Brand:       "Anker",
			Attributes: map[string]interface{}{
				"capacity_mah": 20000,
				"ports":        []string{"usb-c", "usb-a"},
			},
			InStock:   true,
			CreatedAt: now,
		},
		{
			Id:          uuid.New(),
			Name:        "Logitech MX Master 3S Mouse",
			Description: "Ergonomic wireless mouse with quiet clicks, 8K DPI tracking and cross-device flow.",
			Price:       99.99,
			Category:    "peripherals",
			Brand:       "Logitech",
			Attributes: map[string]interface{}{
				"color":        []string{"graphite", "pale gray"},
				"connectivity": []string{"bluetooth", "usb receiver"},
			},
			InStock:   true,
			CreatedAt: now,
		},
		{
			Id:          uuid.New(),
			Name:        "Samsung Galaxy Tab S9",
			Description: "11-inch AMOLED tablet with S Pen included, water resistant, great for notes and media.",
			Price:       799.99,
			Category:    "tablets",
			Brand:       "Samsung",
			Attributes: map[string]interface{}{
				"screen_size": "11 inch",
				"storage":     []string{"128GB", "256GB"},
			},
			InStock:   false,
			CreatedAt: now,
		},
		{
			Id:          uuid.New(),
			Name:        "Kindle Paperwhite",
			Description: "Glare-free 6.8-inch e-reader with adjustable warm light and weeks of battery.",
			Price:       149.99,
			Category:    "e-readers",
			Brand:       "Amazon",
			Attributes: map[string]interface{}{
				"screen_size": "6.8 inch",
				"waterproof":  true,
			},
			InStock:   true,
			CreatedAt: now,
		},
	}
}
