package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"cryptofolio/internal/app/di"
	"cryptofolio/internal/app/router"
	portfoliohandler "cryptofolio/internal/feature/portfolio/transport/handler"
	portfoliousecase "cryptofolio/internal/feature/portfolio/usecase"
	sentimenthandler "cryptofolio/internal/feature/sentiment/transport/handler"
	sentimentusecase "cryptofolio/internal/feature/sentiment/usecase"
	transactionadapters "cryptofolio/internal/feature/transactions/adapters"
	transactionhandler "cryptofolio/internal/feature/transactions/transport/handler"
	transactionusecase "cryptofolio/internal/feature/transactions/usecase"
	"cryptofolio/internal/platform/config"
	"cryptofolio/internal/platform/db"
	"cryptofolio/internal/platform/logging"
	infraredis "cryptofolio/internal/platform/redis"
)

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logging.Setup(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// db
	gdb, err := db.Open(cfg.Database(), di.Models()...)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	// Redis（任意）
	var rdb *redisv9.Client
	if cfg.RedisEnabled() {
		tmp, err := infraredis.NewRedisClient(ctx, infraredis.Options{Addr: cfg.RedisAddr(), Password: cfg.RedisPassword})
		if err != nil {
			slog.Warn("Redis unavailable. Running without cache.")
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
		}
	}

	// Repository
	holdingRepo := di.NewHoldingRepository(gdb, rdb, cfg.CacheTTL)
	sentimentRepo := di.NewSentimentRepository(gdb, rdb, cfg.CacheTTL)
	transactionRepo := transactionadapters.NewTransactionRepository(gdb)

	// Usecase
	portfolioUC := portfoliousecase.NewPortfolioUsecase(holdingRepo)
	sentimentUC := sentimentusecase.NewSentimentUsecase(sentimentRepo)
	transactionUC := transactionusecase.NewTransactionUsecase(transactionRepo)

	// Handler
	portfolioH := portfoliohandler.NewPortfolioHandler(portfolioUC)
	sentimentH := sentimenthandler.NewSentimentHandler(sentimentUC)
	transactionH := transactionhandler.NewTransactionHandler(transactionUC)

	// ルータ生成
	r := router.NewRouter(portfolioH, sentimentH, transactionH)

	srv := &http.Server{Addr: cfg.ServerAddr, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		slog.Info("resource API listening", "addr", cfg.ServerAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}
