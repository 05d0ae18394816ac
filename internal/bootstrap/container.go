package bootstrap

import (
	"context"
	"log"
	"time"

	"intent-search-be/internal/config"
	"intent-search-be/internal/constant"
	"intent-search-be/internal/controller"
	"intent-search-be/internal/pkg/logger"
	"intent-search-be/internal/repository/memory"
	"intent-search-be/internal/repository/unitofwork"
	"intent-search-be/internal/service"
	"intent-search-be/pkg/embedding"
	"intent-search-be/pkg/llm/factory"
	"intent-search-be/pkg/pipeline"
	"intent-search-be/pkg/retrieval"

	pktNats "intent-search-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	SearchController  controller.ISearchController
	ProductController controller.IProductController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.GoogleGemini,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// In-Memory Conversation Storage
	conversationRepo := memory.NewConversationRepository(constant.ConversationHistoryLimit)

	// 4. Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// 5. Embedding worker wiring
	publisherService := service.NewPublisherService(cfg.Keys.EmbedProductTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.EmbedProductTopic,
		uowFactory,
		embeddingProvider,
	)

	// 6. Search pipeline
	retriever := retrieval.NewVectorRetriever(embeddingProvider, uowFactory, cfg.Search.SimilarityThreshold)

	pipelineCfg := pipeline.DefaultConfig()
	pipelineCfg.MaxQueryLength = cfg.Search.MaxQueryLength
	pipelineCfg.RetrievalK = cfg.Search.RetrievalK

	engine := pipeline.NewEngine(llmProvider, retriever, pipelineCfg, nil)

	// 7. Services
	conversationService := service.NewConversationService(conversationRepo, constant.ConversationHistoryLimit)
	personalizationService := service.NewPersonalizationService(uowFactory)
	cacheService := service.NewCacheService(rdb, time.Duration(cfg.Search.CacheTTLSeconds)*time.Second)
	telemetryService := service.NewTelemetryService(uowFactory, natsPub)
	productService := service.NewProductService(uowFactory, publisherService, natsPub)

	searchService := service.NewSearchService(
		engine,
		conversationService,
		personalizationService,
		cacheService,
		telemetryService,
		sysLogger,
	)

	// 8. Controllers
	return &Container{
		SearchController: controller.NewSearchController(
			searchService,
			personalizationService,
			conversationService,
			telemetryService,
		),
		ProductController: controller.NewProductController(productService),

		ConsumerService: consumerService,
	}
}
