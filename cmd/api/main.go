package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"draftflow/internal/adapter/repo"
	"draftflow/internal/http/handlers"
	"draftflow/internal/http/httpapi"
	"draftflow/internal/infra"
	copyprovider "draftflow/internal/providers/copy"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv, "api")

	ctx := context.Background()
	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("api: db connection failed")
	}
	defer pool.Close()

	enhancer := buildEnhancer(cfg, logger)

	app := handlers.NewApp(
		logger,
		repo.NewProductRepository(pool),
		repo.NewDraftRepository(pool),
		repo.NewTemplateRepository(pool),
		repo.NewDraftJobRepository(pool),
		enhancer,
	)

	router := httpapi.NewRouter(app, httpapi.RouterOptions{
		Logger:          logger,
		DefaultLocale:   cfg.DefaultLocale,
		AllowedOrigins:  cfg.AllowedOrigins,
		RateLimitPerMin: cfg.RateLimitPerMin,
	})
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on %s", server.Addr())
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("api: http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("api: shutdown failed")
	}
	logger.Info().Msg("api: stopped")
}

// buildEnhancer wires the copy provider: DeepSeek with a static fallback when
// a key is configured, the static generator alone otherwise.
func buildEnhancer(cfg *infra.Config, logger infra.Logger) copyprovider.Enhancer {
	static := copyprovider.NewStaticEnhancer()
	if cfg.DeepSeekAPIKey == "" {
		logger.Warn().Msg("api: no DEEPSEEK_API_KEY, copy enhancement uses static generation")
		return static
	}
	enhancer, err := copyprovider.NewDeepSeekEnhancer(copyprovider.DeepSeekOptions{
		APIKey:   cfg.DeepSeekAPIKey,
		Model:    cfg.DeepSeekModel,
		BaseURL:  cfg.DeepSeekBaseURL,
		Fallback: static,
		OnFallback: func(reason string, err error) {
			logger.Warn().Err(err).Str("reason", reason).Msg("api: copy provider fell back")
		},
	})
	if err != nil {
		logger.Warn().Err(err).Msg("api: deepseek misconfigured, copy enhancement uses static generation")
		return static
	}
	return enhancer
}
