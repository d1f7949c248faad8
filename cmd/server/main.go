package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/feedbackhq/scoring-service/internal/config"
	"github.com/feedbackhq/scoring-service/internal/db"
	"github.com/feedbackhq/scoring-service/internal/feedback"
	httpapi "github.com/feedbackhq/scoring-service/internal/http"
	"github.com/feedbackhq/scoring-service/internal/insight"
	"github.com/feedbackhq/scoring-service/internal/scoring"
	"github.com/feedbackhq/scoring-service/internal/sentiment"
	"github.com/feedbackhq/scoring-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	logger := log.Level(level).With().Str("service", "scoring-service").Logger()

	ctx := context.Background()
	store, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect db")
	}
	defer store.Close()
	if err := store.EnsureSchema(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to ensure schema")
	}

	var cache sentiment.Cache
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("invalid REDIS_URL")
		}
		cache = sentiment.NewRedisCache(redis.NewClient(opts), logger)
		logger.Info().Msg("using redis sentiment cache")
	} else {
		cache = sentiment.NewMemoryCache()
	}

	var classifier sentiment.Classifier
	if cfg.ClassifierURL == "" {
		classifier = sentiment.MockClassifier{ModelVersion: "mock-v1"}
		logger.Info().Msg("using mock sentiment classifier")
	} else {
		classifier = &sentiment.HTTPClassifier{
			BaseURL: cfg.ClassifierURL,
			Client:  &http.Client{Timeout: cfg.ClassifierTimeout},
		}
	}

	gateway := sentiment.NewGateway(classifier, cache, logger)
	extractor := insight.NewExtractor(nil)
	analyzer := service.NewAnalyzerService(scoring.NewQuestionScorer(gateway), gateway, extractor, store, logger)

	var source feedback.Source
	if cfg.FeedbackServiceURL != "" {
		source = &feedback.HTTPSource{BaseURL: cfg.FeedbackServiceURL, APIKey: cfg.AdminKey}
	} else {
		source = feedback.StaticSource{}
		logger.Info().Msg("no feedback service configured, batch runs will be empty")
	}
	processor := service.NewBatchProcessor(analyzer, source, cfg.ScoreWorkers, logger)

	router := httpapi.Router(cfg, store, analyzer, processor, gateway, extractor, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShutdown)
	logger.Info().Msg("server stopped")
}
