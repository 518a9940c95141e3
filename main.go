package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"reprint/internal/application"
	"reprint/internal/domain/repository"
	"reprint/internal/infrastructure/rss"
	"reprint/internal/infrastructure/storage"
	"reprint/internal/infrastructure/typography"
	"reprint/internal/interfaces/config"
	"reprint/internal/interfaces/httpapi"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", "err", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	template, err := os.ReadFile(cfg.TemplatePath)
	if err != nil {
		logger.Error("failed to read template", "path", cfg.TemplatePath, "err", err)
		os.Exit(1)
	}

	cache, closeCache, err := buildCache(cfg)
	if err != nil {
		logger.Error("failed to open cache", "backend", cfg.CacheBackend, "err", err)
		os.Exit(1)
	}
	defer closeCache()

	service := application.NewFeedService(
		rss.NewPostSource(cfg.FeedURL),
		cache,
		typography.New(cfg.Typography),
		cfg.CacheTTL(),
		logger,
	)

	if cfg.ListenAddr == "" {
		logger.Info("rendering feed", "feed_url", cfg.FeedURL, "output_dir", cfg.OutputDir)
		if err := service.RenderFeed(ctx, cfg.OutputDir, string(template), false, cfg.RenderedFilename); err != nil {
			logger.Error("render failed", "err", err)
			os.Exit(1)
		}
		logger.Info("feed rendered")
		return
	}

	serve(ctx, cfg, service, string(template), logger)
}

// buildCache opens the configured blob-cache backend, namespaced to the
// feed so several feeds can share a cache directory or database.
func buildCache(cfg *config.Config) (repository.BlobCache, func(), error) {
	switch cfg.CacheBackend {
	case config.BackendSQLite:
		cache, err := storage.NewSQLiteCache(cfg.SQLitePath, cfg.FeedURL)
		if err != nil {
			return nil, nil, err
		}
		return cache, func() { cache.Close() }, nil
	default:
		dir := filepath.Join(cfg.CacheDir, "feed-"+storage.Digest(cfg.FeedURL))
		cache, err := storage.NewFileCache(dir)
		if err != nil {
			return nil, nil, err
		}
		return cache, func() {}, nil
	}
}

func serve(ctx context.Context, cfg *config.Config, service *application.FeedService, template string, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/rebuild", httpapi.NewRebuildHandler(
		service,
		cfg.RebuildSecret,
		cfg.OutputDir,
		template,
		cfg.RenderedFilename,
		logger,
	))

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		logger.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", "err", err)
		}
	}()

	logger.Info("serving rebuild webhook", "addr", cfg.ListenAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}
