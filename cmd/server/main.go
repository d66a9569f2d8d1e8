package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/agrica/voice-gateway-go/internal/ai"
	"github.com/agrica/voice-gateway-go/internal/config"
	"github.com/agrica/voice-gateway-go/internal/database"
	"github.com/agrica/voice-gateway-go/internal/dialogue"
	"github.com/agrica/voice-gateway-go/internal/handler"
	"github.com/agrica/voice-gateway-go/internal/intent"
	"github.com/agrica/voice-gateway-go/internal/jobs"
	"github.com/agrica/voice-gateway-go/internal/middleware"
	"github.com/agrica/voice-gateway-go/internal/redis"
	"github.com/agrica/voice-gateway-go/internal/repository"
	"github.com/agrica/voice-gateway-go/internal/service"
	"github.com/agrica/voice-gateway-go/internal/speech"
	"github.com/agrica/voice-gateway-go/internal/telephony"
)

const recordingCallbackPath = "/api/ivr/recording"

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	setLogLevel(cfg.LogLevel)

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), config.DBPingTimeout)
	if err := db.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ping database")
	}
	cancel()
	log.Info().Msg("database connected")

	redisClient, err := redis.NewClient(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected")

	sessionRepo := repository.NewSessionRepository(db.DB)
	farmerRepo := repository.NewFarmerRepository(db.DB)
	listingRepo := repository.NewListingRepository(db.DB)

	aiClient := ai.NewOpenAIClient(cfg.AIAPIKey, cfg.AIBaseURL, cfg.AIModel, cfg.AITimeout())
	advisor := ai.NewAdvisor(aiClient)
	classifier := intent.NewClassifier(advisor)

	hasab := speech.NewHasabClient(cfg.HasabBaseURL, cfg.HasabAPIKey, cfg.STTTimeout(), cfg.TTSTimeout())
	bridge := speech.NewCachedBridge(hasab, redisClient, cfg.TTSCacheTTL())

	sessionService := service.NewSessionService(sessionRepo)
	marketService := service.NewMarketplaceService(farmerRepo, listingRepo, advisor)
	authService := service.NewAuthService(farmerRepo)

	voice := speech.VoiceOptions{Language: cfg.VoiceLanguage, Speaker: cfg.VoiceSpeaker}
	engine := dialogue.NewEngine(sessionService, classifier, advisor, bridge, marketService, voice)

	ivrHandler := handler.NewIVRHandler(engine, sessionService, bridge, cfg.SayLanguage, telephony.RecordWindow{
		MaxLength:   cfg.RecordMaxSeconds,
		FinishOnKey: config.RecordFinishKey,
		CallbackURL: recordingCallbackPath,
	})
	marketHandler := handler.NewMarketHandler(marketService)
	authHandler := handler.NewAuthHandler(authService)

	rateLimitMiddleware := middleware.NewIPRateLimitMiddleware(redisClient.Client, cfg.RateLimitPerMin)
	bodyLimitMiddleware := middleware.NewBodyLimitMiddleware(0)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(config.ServerRequestTimeout))
	r.Use(bodyLimitMiddleware.Handler)

	r.Get("/health", handler.Health)

	r.Route("/api/ivr", func(r chi.Router) {
		r.Mount("/", ivrHandler.Routes())
	})

	r.Route("/api/market", func(r chi.Router) {
		r.Use(rateLimitMiddleware.Handler)
		r.Mount("/", marketHandler.Routes())
	})

	r.Route("/api/auth", func(r chi.Router) {
		r.Use(rateLimitMiddleware.Handler)
		r.Mount("/", authHandler.Routes())
	})

	cleanupJob := jobs.NewCleanupJob(sessionRepo, cfg.SessionIdleTTL(), config.CleanupJobInterval)
	cleanupJob.Start()
	defer cleanupJob.Stop()

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: 0,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), config.ServerShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

func setLogLevel(level string) {
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
