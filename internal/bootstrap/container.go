package bootstrap

import (
	"context"
	"log"

	"fashion-chatbot-be/internal/config"
	"fashion-chatbot-be/internal/controller"
	"fashion-chatbot-be/internal/pkg/logger"
	"fashion-chatbot-be/internal/repository/implementation"
	"fashion-chatbot-be/internal/service"
	"fashion-chatbot-be/pkg/cache/langcache"
	"fashion-chatbot-be/pkg/embedding/tei"
	"fashion-chatbot-be/pkg/llm/factory"
	"fashion-chatbot-be/pkg/rag/expand"
	"fashion-chatbot-be/pkg/rag/intent"
	"fashion-chatbot-be/pkg/rag/pipeline"
	"fashion-chatbot-be/pkg/rag/reflector"
	"fashion-chatbot-be/pkg/rag/retrieve"
	"fashion-chatbot-be/pkg/rerank/jina"
	"fashion-chatbot-be/pkg/vectorstore/qdrant"

	pktNats "fashion-chatbot-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController controller.IChatController
	SyncController controller.ISyncController

	// Background Services (Exposed for main.go to run)
	SyncWorkerService service.ISyncWorkerService
	SyncService       service.ISyncService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	// Sync jobs are chatty during a full reindex; they get their own file.
	syncLogger := logger.NewIsolatedLogger(cfg.App.SyncLogFilePath)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

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

	// 3. Providers
	embeddingProvider := tei.NewTeiProvider(cfg.Embedding.DenseURL, cfg.Embedding.SparseURL)
	log.Printf("[INFO] Using Embedding Provider: TEI (%s / %s)", cfg.Embedding.DenseModelName, cfg.Embedding.SparseModelName)

	llmBaseURL := cfg.Ai.GroqBaseURL
	if cfg.Ai.LLMProvider == "ollama" {
		llmBaseURL = cfg.Ai.OllamaBaseURL
	}
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.GroqAPIKey,
		llmBaseURL,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	vectorStore := qdrant.NewStorage(qdrant.Config{
		URL:        cfg.Qdrant.URL,
		APIKey:     cfg.Qdrant.APIKey,
		Collection: cfg.Qdrant.CollectionName,
	})

	reranker := jina.NewJinaReranker(cfg.Ai.JinaAPIKey, cfg.Ai.RerankModelName)

	semanticCache := langcache.NewClient(langcache.Config{
		ServerURL: cfg.LangCache.ServerURL,
		CacheID:   cfg.LangCache.CacheID,
		APIKey:    cfg.LangCache.APIKey,
	})

	// 4. Repositories
	productRepo := implementation.NewProductRepository(db)
	conversationRepo := implementation.NewConversationRepository(rdb)

	// 5. Chat Pipeline
	chatPipeline := pipeline.NewPipeline(
		reflector.NewReflector(llmProvider, conversationRepo, sysLogger),
		intent.NewRouter(embeddingProvider, intent.DefaultRoutes(), sysLogger),
		expand.NewExpander(llmProvider, sysLogger),
		retrieve.NewRetriever(embeddingProvider, vectorStore, reranker, sysLogger),
		llmProvider,
		semanticCache,
		conversationRepo,
		sysLogger,
	)

	// 6. Services
	chatService := service.NewChatService(chatPipeline, conversationRepo)
	syncService := service.NewSyncService(
		productRepo,
		embeddingProvider,
		vectorStore,
		cfg.Embedding.DenseVectorSize,
		syncLogger,
	)
	syncQueue := service.NewSyncQueueService(cfg.App.SyncTopic, pubSub)
	syncWorker := service.NewSyncWorkerService(
		pubSub,
		cfg.App.SyncTopic,
		syncService,
		natsPub,
		syncLogger,
	)

	// 7. Controllers
	return &Container{
		ChatController: controller.NewChatController(chatService, sysLogger),
		SyncController: controller.NewSyncController(syncQueue, sysLogger),

		SyncWorkerService: syncWorker,
		SyncService:       syncService,

		Logger: sysLogger,
	}
}
