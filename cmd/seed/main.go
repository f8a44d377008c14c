package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"cryptofolio/internal/app/di"
	"cryptofolio/internal/feature/seed/usecase"
	"cryptofolio/internal/platform/config"
	"cryptofolio/internal/platform/logging"
	"cryptofolio/internal/shared/ratelimiter"
)

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logging.Setup(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	client := di.NewPortfolioClient(cfg.APIURL, cfg.HTTPTimeout)
	uc := usecase.NewSeedUsecase(client, ratelimiter.NewRateLimiter(cfg.SeedRate, 1))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	holdings, sentiments, err := uc.SeedAll(ctx)
	if err != nil {
		slog.Error("seed aborted", "error", err)
		os.Exit(1)
	}
	slog.Info("seed ok",
		"holdings_added", holdings.Added, "holdings_skipped", holdings.Skipped, "holdings_failed", holdings.Failed,
		"sentiment_added", sentiments.Added, "sentiment_skipped", sentiments.Skipped, "sentiment_failed", sentiments.Failed,
	)
}
