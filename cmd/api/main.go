package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"geniemetrics/internal/account"
	"geniemetrics/internal/adapter/repo"
	"geniemetrics/internal/http/handlers"
	httpapi "geniemetrics/internal/http/httpapi"
	"geniemetrics/internal/infra"
	"geniemetrics/internal/infra/credentials"
	"geniemetrics/internal/infra/geoip"
	"geniemetrics/internal/invoke"
	"geniemetrics/internal/middleware"
	"geniemetrics/internal/providers/genai"
	"geniemetrics/internal/tools"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)
	ctx := context.Background()

	// Sessions and the per-tool busy slots live in Redis when configured so
	// that several API replicas share them; otherwise in process memory.
	var store account.Store = account.NewMemoryStore()
	var guard invoke.Guard = invoke.NewLocalGuard()
	if cfg.RedisURL != "" {
		client, err := infra.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect redis")
		}
		defer client.Close()
		store = account.NewRedisStore(client)
		guard = invoke.NewRedisGuard(client, cfg.GeminiTimeout+30*time.Second)
		logger.Info().Msg("session store: redis")
	}

	app := &handlers.App{
		Config:    cfg,
		Logger:    logger,
		JWTSecret: cfg.JWTSecret,
	}

	// The database is optional: it adds usage statistics and a stored
	// Gemini key.
	geminiKey := cfg.GeminiAPIKey
	var usage invoke.UsageRecorder
	if cfg.DatabaseURL != "" {
		pool, err := infra.NewDBPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect database")
		}
		defer pool.Close()
		runner := infra.NewSQLRunner(pool, logger)

		usageRepo := repo.NewUsageRepository(runner)
		if err := usageRepo.EnsureSchema(ctx); err != nil {
			logger.Fatal().Err(err).Msg("failed to prepare usage schema")
		}
		usage = usageRepo
		app.Usage = usageRepo

		if geminiKey == "" {
			geminiKey = storedGeminiKey(ctx, credentials.NewStore(runner), logger)
		}
	}

	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	}
	if resolver != nil {
		defer resolver.Close()
		app.Countries = resolver.CountryCode
	}

	gemini := genai.NewClient(genai.Options{
		APIKey:       geminiKey,
		BaseURL:      cfg.GeminiBaseURL,
		DefaultModel: cfg.Models.Flash,
		Timeout:      cfg.GeminiTimeout,
		Logger:       logger,
	})
	if !gemini.Configured() {
		logger.Warn().Msg("GEMINI_API_KEY not set; every tool call will return its empty result")
	}

	accounts := account.NewService(store, account.Options{
		AuthDelay:    cfg.AuthDelay,
		PaymentDelay: cfg.PaymentDelay,
		SessionTTL:   cfg.SessionTTL,
		Logger:       logger,
	})
	catalog := tools.NewCatalog(tools.Models{
		Flash: cfg.Models.Flash,
		Lite:  cfg.Models.Lite,
		Pro:   cfg.Models.Pro,
		TTS:   cfg.Models.TTS,
		Image: cfg.Models.Image,
	})
	app.Accounts = accounts
	app.Catalog = catalog
	app.Gemini = gemini
	app.Runner = invoke.NewRunner(accounts, catalog, gemini, invoke.Options{
		Usage:     usage,
		Guard:     guard,
		Logger:    logger,
		RequestID: middleware.RequestIDFromContext,
	})

	server := infra.NewHTTPServer(cfg, httpapi.NewRouter(app))

	go func() {
		logger.Info().Msgf("API listening on %s", server.Addr())
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}

func storedGeminiKey(ctx context.Context, store *credentials.Store, logger zerolog.Logger) string {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	key, err := store.GeminiAPIKey(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to read stored gemini key")
		return ""
	}
	return key
}
