package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/noah-isme/qanda/internal/answers"
	"github.com/noah-isme/qanda/internal/app"
	"github.com/noah-isme/qanda/internal/auth"
	"github.com/noah-isme/qanda/internal/observability"
	"github.com/noah-isme/qanda/internal/platform/cache"
	"github.com/noah-isme/qanda/internal/platform/db"
	"github.com/noah-isme/qanda/internal/profanity"
	"github.com/noah-isme/qanda/internal/questions"
	"github.com/noah-isme/qanda/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	key, err := auth.ParseKey(cfg.PasetoKey)
	if err != nil {
		logger.Error("parse token key", slog.Any("error", err))
		os.Exit(1)
	}
	codec, err := auth.NewTokenCodec(key, cfg.TokenTTL)
	if err != nil {
		logger.Error("init token codec", slog.Any("error", err))
		os.Exit(1)
	}
	hasher, err := auth.NewHasher(auth.DefaultHashParams)
	if err != nil {
		logger.Error("init hasher", slog.Any("error", err))
		os.Exit(1)
	}

	dbpool, err := db.New(ctx, cfg.DSN(), cfg.PGMaxConns)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cfg.Redis())
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	metrics := observability.NewMetrics()

	redisOpts := asynq.RedisClientOpt{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB}
	jobClient := jobs.NewClient(redisOpts, metrics)
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()
	inspector := asynq.NewInspector(redisOpts)
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()

	censor := profanity.NewCachedCensor(
		profanity.NewClient(profanity.Config{
			BaseURL:    cfg.APILayerURL,
			APIKey:     cfg.BadWordsAPIKey,
			Timeout:    cfg.ProfanityTimeout,
			MaxRetries: cfg.ProfanityMaxRetries,
		}, logger),
		redisClient, cfg.ProfanityCacheTTL, logger)

	authService := auth.NewService(auth.NewRepository(dbpool), hasher, codec)
	questionService := questions.NewService(questions.NewRepository(dbpool), censor)
	answerService := answers.NewService(answers.NewRepository(dbpool), censor)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		Authenticator:    auth.NewAuthenticator(codec, logger, metrics),
		AuthHandler:      auth.NewHandler(logger, authService, jobClient, metrics),
		QuestionsHandler: questions.NewHandler(logger, questionService),
		AnswersHandler:   answers.NewHandler(logger, answerService),
		JobHandler:       jobs.NewHandler(inspector, logger),
		Metrics:          metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
