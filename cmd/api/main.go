package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/korlebu/facilitypulse/internal/adapters/cache"
	"github.com/korlebu/facilitypulse/internal/adapters/search"
	"github.com/korlebu/facilitypulse/internal/adapters/source"
	"github.com/korlebu/facilitypulse/internal/api/handlers"
	"github.com/korlebu/facilitypulse/internal/api/routes"
	"github.com/korlebu/facilitypulse/internal/application/services"
	"github.com/korlebu/facilitypulse/internal/domain/providers"
	"github.com/korlebu/facilitypulse/internal/domain/repositories"
	"github.com/korlebu/facilitypulse/internal/infrastructure/clients/openai"
	"github.com/korlebu/facilitypulse/internal/infrastructure/clients/redis"
	"github.com/korlebu/facilitypulse/internal/infrastructure/clients/typesense"
	"github.com/korlebu/facilitypulse/internal/infrastructure/observability"
	"github.com/korlebu/facilitypulse/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.InitLogger("facility-pulse-api", cfg.Env)
	logger := *observability.GetLogger()

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					logger.Error().Err(err).Msg("Error shutting down OpenTelemetry")
				}
			}()
			logger.Info().Msg("OpenTelemetry initialized")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize metrics")
	}

	// Initialize Redis client; the application works without caching
	var cacheProvider providers.CacheProvider
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		logger.Warn().Err(err).Msg("Redis unavailable, using in-memory cache")
		cacheProvider = cache.NewMemoryAdapter(
			time.Duration(cfg.Dataset.CacheTTLSecs)*time.Second,
			10*time.Minute,
		)
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
		logger.Info().Msg("Redis client initialized")
	}

	// Initialize Typesense client; search endpoints degrade without it
	var searchRepo repositories.FacilitySearchRepository
	typesenseClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		logger.Warn().Err(err).Msg("Typesense unavailable, facility search disabled")
	} else {
		adapter := search.NewTypesenseAdapter(typesenseClient)
		if err := adapter.InitSchema(ctx); err != nil {
			logger.Warn().Err(err).Msg("Failed to init Typesense schema")
		}
		searchRepo = adapter
		logger.Info().Msg("Typesense client initialized")
	}

	// Choose the dataset source; URL takes priority over the local file
	var dataset repositories.FacilityDataset
	if cfg.Dataset.URL != "" {
		dataset = source.NewHTTPSource(cfg.Dataset.URL, logger)
	} else {
		dataset = source.NewFileSource(cfg.Dataset.Path)
	}

	// Initialize services
	dashboardService := services.NewDashboardService(dataset, logger)
	dashboardService.SetCache(cacheProvider, cfg.Dataset.CacheTTLSecs)
	dashboardService.SetMetrics(metrics)

	if err := dashboardService.Reload(ctx); err != nil {
		logger.Fatal().Err(err).Str("source", dataset.Source()).Msg("Failed to load facility dataset")
	}

	assistantService := services.NewAssistantService(dashboardService, logger)
	if cfg.OpenAI.APIKey != "" {
		chatClient, err := openai.NewClient(&cfg.OpenAI)
		if err != nil {
			logger.Warn().Err(err).Msg("OpenAI unavailable, assistant uses template replies")
		} else {
			assistantService.SetChatProvider(chatClient)
			logger.Info().Msg("OpenAI client initialized")
		}
	}

	// Initialize handlers and routes
	router := routes.NewRouter(
		handlers.NewDashboardHandler(dashboardService, logger),
		handlers.NewFacilityHandler(dashboardService, searchRepo, logger),
		handlers.NewAssistantHandler(assistantService, logger),
		metrics,
		logger,
	)

	server := &http.Server{
		Addr:         cfg.Server.ListenAddr(),
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server exited")
}
