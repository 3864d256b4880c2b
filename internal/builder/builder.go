package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/futig/ragchat-backend/internal/api"
	chatapi "github.com/futig/ragchat-backend/internal/api/chat"
	"github.com/futig/ragchat-backend/internal/api/middleware"
	"github.com/futig/ragchat-backend/internal/api/web"
	"github.com/futig/ragchat-backend/internal/config"
	"github.com/futig/ragchat-backend/internal/integration/openai"
	"github.com/futig/ragchat-backend/internal/pkg/logger"
	"github.com/futig/ragchat-backend/internal/pkg/validator"
	"github.com/futig/ragchat-backend/internal/repository"
	"github.com/futig/ragchat-backend/internal/usecase/chat"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func Build() (*App, error) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	log.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	// Exchange journal is optional
	var (
		db      *pgxpool.Pool
		journal chat.ExchangeJournal
	)
	if cfg.DatabaseURL != "" {
		db, err = setupDatabase(ctx, cfg, log)
		if err != nil {
			return nil, fmt.Errorf("setup database: %w", err)
		}

		log.Info("Running database migrations")
		if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
			db.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		log.Info("Database migrations completed successfully")

		journal = repository.NewExchangePostgres(db)
	} else {
		log.Info("DATABASE_URL is empty, exchange journal disabled")
	}

	var connector chat.CompletionConnector
	if cfg.EnableMocks {
		log.Info("Using mock connector for chat completions")
		connector = openai.NewMockConnector(log)
	} else {
		log.Info("Using Azure OpenAI connector for chat completions")
		connector, err = openai.NewConnector(cfg.OpenAICfg, log)
		if err != nil {
			closeDB(db)
			return nil, fmt.Errorf("create openai connector: %w", err)
		}
	}

	chatUC, err := chat.NewUsecase(chat.NewSettings(cfg), connector, journal, log)
	if err != nil {
		closeDB(db)
		return nil, fmt.Errorf("create chat usecase: %w", err)
	}

	// Setup API handlers
	chatHandler := chatapi.NewHandler(chatUC, validator.NewValidator())
	webHandler, err := web.NewHandler(cfg.AppTitle)
	if err != nil {
		closeDB(db)
		return nil, fmt.Errorf("create web handler: %w", err)
	}

	trustedProxies, err := cfg.RateLimitCfg.TrustedProxyPrefixes()
	if err != nil {
		closeDB(db)
		return nil, fmt.Errorf("parse trusted proxies: %w", err)
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimitCfg.PerMinute, cfg.RateLimitCfg.Burst, trustedProxies...)
	if limiter != nil {
		log.Info("Chat rate limiting enabled",
			zap.Int("per_minute", cfg.RateLimitCfg.PerMinute),
			zap.Int("burst", cfg.RateLimitCfg.Burst),
			zap.Int("trusted_proxies", len(trustedProxies)),
		)
	}

	router := api.SetupRouter(chatHandler, webHandler, limiter, log)
	log.Info("HTTP router configured")

	// WriteTimeout leaves room for a slow provider call
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.OpenAICfg.RequestTimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		db:     db,
		logger: log,
	}, nil
}

func closeDB(db *pgxpool.Pool) {
	if db != nil {
		db.Close()
	}
}
