package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"

	"cooking-assistant-be/internal/config"
	"cooking-assistant-be/internal/controller"
	"cooking-assistant-be/internal/pkg/logger"
	"cooking-assistant-be/internal/pkg/serverutils"
	"cooking-assistant-be/internal/repository/contract"
	"cooking-assistant-be/internal/repository/implementation"
	"cooking-assistant-be/internal/repository/memory"
	sessionRedis "cooking-assistant-be/internal/repository/redis"
	"cooking-assistant-be/internal/service"
	"cooking-assistant-be/pkg/assistant"
	"cooking-assistant-be/pkg/catalog"
	"cooking-assistant-be/pkg/database"
	"cooking-assistant-be/pkg/embedding"
	"cooking-assistant-be/pkg/embedding/jina"
	"cooking-assistant-be/pkg/llm"
	"cooking-assistant-be/pkg/llm/factory"
	pktNats "cooking-assistant-be/pkg/nats"
	"cooking-assistant-be/pkg/rag/session"
	"cooking-assistant-be/pkg/recipe"
	"cooking-assistant-be/pkg/search"
	"cooking-assistant-be/pkg/vectorindex"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

type Container struct {
	// Controllers
	AssistantController controller.IAssistantController
	StatsController     controller.IStatsController

	// Middleware
	SessionCookie serverutils.SessionCookieConfig

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger

	closers []func()
}

// Close releases connections opened by NewContainer.
func (c *Container) Close() {
	for _, closeFn := range c.closers {
		closeFn()
	}
	_ = c.Logger.Sync()
}

func NewContainer(cfg *config.Config) (*Container, error) {
	c := &Container{}

	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	llmLogger := logger.NewIsolatedLogger(cfg.App.LLMLogFilePath)
	c.Logger = sysLogger

	// 2. Event Bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 256},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	// 3. Providers
	embeddingProvider := embedding.NewCachedProvider(NewEmbeddingProvider(cfg, sysLogger), cfg.Ai.EmbeddingCacheTTL)

	llmBaseURL := cfg.Ai.LLMBaseURL
	if llmBaseURL == "" && cfg.Ai.LLMProvider == "ollama" {
		llmBaseURL = cfg.Ai.OllamaBaseURL
	}
	llmProvider, err := factory.NewLLMProvider(factory.Config{
		Provider:    cfg.Ai.LLMProvider,
		Model:       cfg.Ai.LLMModel,
		BaseURL:     llmBaseURL,
		APIKey:      cfg.Keys.OpenRouter,
		Referer:     cfg.App.BaseURL,
		Temperature: cfg.Ai.LLMTemperature,
		MaxTokens:   cfg.Ai.LLMMaxTokens,
		Timeout:     cfg.Ai.LLMTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("init LLM provider: %w", err)
	}
	tracedLLM := llm.NewTracedProvider(llmProvider, llmLogger)
	sysLogger.Info("BOOTSTRAP", "LLM provider ready", map[string]interface{}{
		"provider": cfg.Ai.LLMProvider,
		"model":    cfg.Ai.LLMModel,
	})

	// 4. Recipe data
	recipes, err := catalog.Load(cfg.Data.MetadataPath)
	if err != nil {
		return nil, err
	}

	index, err := newVectorIndex(cfg, c)
	if err != nil {
		return nil, err
	}
	sysLogger.Info("BOOTSTRAP", "Recipe data loaded", map[string]interface{}{
		"recipes":   recipes.Len(),
		"backend":   cfg.Data.VectorBackend,
		"dimension": index.Dimension(),
	})

	// 5. Session storage
	sessionRepo, err := newSessionRepository(cfg, sysLogger, c)
	if err != nil {
		return nil, err
	}

	// 6. Domain
	formatter := recipe.NewFormatter(tracedLLM, sysLogger)
	modifier := recipe.NewModifier(tracedLLM, sysLogger)
	searcher := search.NewSearcher(embeddingProvider, index, recipes, formatter, sysLogger, search.Config{TopK: cfg.Data.TopK})
	dispatcher := assistant.NewDispatcher(searcher, formatter, modifier, sysLogger)

	// 7. Activity
	var forwarder service.EventForwarder
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL, sysLogger)
		if err != nil {
			sysLogger.Warn("BOOTSTRAP", "NATS unavailable, activity stays local", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			forwarder = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}
	}

	statsService := service.NewStatsService()
	publisherService := service.NewPublisherService(cfg.Keys.ActivityTopic, pubSub)
	c.ConsumerService = service.NewConsumerService(pubSub, cfg.Keys.ActivityTopic, statsService, forwarder, sysLogger)

	assistantService := service.NewAssistantService(session.NewManager(sessionRepo), dispatcher, publisherService, sysLogger)

	// 8. Controllers
	c.AssistantController = controller.NewAssistantController(assistantService, filepath.Join(cfg.App.WebDir, "index.html"))
	c.StatsController = controller.NewStatsController(statsService)
	c.SessionCookie = serverutils.SessionCookieConfig{
		Secret:     cfg.Session.Secret,
		CookieName: cfg.Session.CookieName,
		TTL:        cfg.Session.TTL,
		Secure:     cfg.Session.CookieSecure,
	}

	return c, nil
}

// NewEmbeddingProvider selects the encoder named by EMBEDDING_PROVIDER.
func NewEmbeddingProvider(cfg *config.Config, log logger.ILogger) embedding.EmbeddingProvider {
	var provider embedding.EmbeddingProvider
	switch cfg.Ai.EmbeddingProvider {
	case "gemini":
		provider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini, cfg.Ai.EmbeddingDimension)
	case "jina":
		provider = jina.NewJinaProvider(cfg.Keys.Jina, "", cfg.Ai.EmbeddingDimension)
	default:
		provider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
	}
	log.Info("BOOTSTRAP", "Embedding provider ready", map[string]interface{}{
		"provider": cfg.Ai.EmbeddingProvider,
	})
	return provider
}

func newVectorIndex(cfg *config.Config, c *Container) (vectorindex.Index, error) {
	if cfg.Data.VectorBackend != "pgvector" {
		return vectorindex.LoadFlatIndex(cfg.Data.IndexPath)
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		return nil, fmt.Errorf("connect to vector database: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		c.closers = append(c.closers, func() { _ = sqlDB.Close() })
	}
	return implementation.NewRecipeEmbeddingRepository(db, cfg.Ai.EmbeddingDimension), nil
}

func newSessionRepository(cfg *config.Config, log logger.ILogger, c *Container) (contract.SessionRepository, error) {
	if cfg.Session.Backend != "redis" {
		return memory.NewSessionRepository(cfg.Session.TTL), nil
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Warn("BOOTSTRAP", "Failed to parse Redis URL, using direct Addr", map[string]interface{}{
			"error": err.Error(),
		})
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	c.closers = append(c.closers, func() { _ = rdb.Close() })

	return sessionRedis.NewSessionRepository(rdb, cfg.Session.TTL), nil
}
