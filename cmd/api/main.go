package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/medigate/clinic-navigator/internal/adapters/cache"
	"github.com/medigate/clinic-navigator/internal/adapters/dataset"
	"github.com/medigate/clinic-navigator/internal/adapters/providers/geolocation"
	"github.com/medigate/clinic-navigator/internal/adapters/providers/llm"
	"github.com/medigate/clinic-navigator/internal/api/handlers"
	"github.com/medigate/clinic-navigator/internal/api/routes"
	"github.com/medigate/clinic-navigator/internal/application/services"
	"github.com/medigate/clinic-navigator/internal/domain/providers"
	redisclient "github.com/medigate/clinic-navigator/internal/infrastructure/clients/redis"
	"github.com/medigate/clinic-navigator/internal/infrastructure/observability"
	"github.com/medigate/clinic-navigator/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Env, cfg.Server.LogLevel)

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
			log.Warn().Err(err).Msg("Failed to set up OpenTelemetry")
		} else {
			defer func() {
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer shutdownCancel()
				if err := shutdown(shutdownCtx); err != nil {
					log.Error().Err(err).Msg("Error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize metrics")
	}

	// Redis is optional; geocode results are simply not cached without it
	var cacheProvider providers.CacheProvider
	if cfg.Redis.Enabled {
		redisClient, err := redisclient.NewClient(&cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to initialize Redis client, continuing without cache")
		} else {
			defer redisClient.Close()
			cacheProvider = cache.NewRedisAdapter(redisClient)
			log.Info().Msg("Redis client initialized")
		}
	}

	// Dataset repository
	facilityRepo := dataset.NewRepository(cfg.Dataset.Path)

	// Services
	receptionService := services.NewReceptionService()
	rankingService := services.NewSearchRankingService()
	searchService := services.NewClinicSearchService(facilityRepo, receptionService, rankingService)

	// LLM provider
	var llmProvider providers.LLMProvider
	if cfg.Gemini.APIKey != "" {
		geminiProvider, err := llm.NewGeminiProvider(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize Gemini provider")
		}
		llmProvider = geminiProvider
		log.Info().Str("model", cfg.Gemini.Model).Msg("Gemini provider initialized")
	} else {
		llmProvider = llm.NewMockProvider()
	}

	triageService := services.NewTriageService(llmProvider)
	specialistService := services.NewSpecialistService(llmProvider)

	// Geolocation provider
	var geoProvider providers.GeolocationProvider
	if cfg.Geolocation.APIKey != "" {
		geoProvider = geolocation.NewGoogleGeolocationProvider(cfg.Geolocation.APIKey, cacheProvider)
		log.Info().Msg("Google geolocation provider initialized")
	} else {
		geoProvider = geolocation.NewMockGeolocationProvider()
		log.Warn().Msg("Using mock geolocation provider; set GEOLOCATION_API_KEY for real lookups")
	}

	// Handlers
	clinicSearchHandler := handlers.NewClinicSearchHandler(searchService, geoProvider, cfg.Search)
	triageHandler := handlers.NewTriageHandler(triageService)
	specialistHandler := handlers.NewSpecialistHandler(specialistService)
	geolocationHandler := handlers.NewGeolocationHandler(geoProvider)

	router := routes.NewRouter(
		clinicSearchHandler,
		triageHandler,
		specialistHandler,
		geolocationHandler,
		metrics,
	)
	handler := router.SetupRoutes()

	serverAddr := cfg.Server.ServerAddr()
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", serverAddr).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	log.Info().Msg("Server stopped")
}
