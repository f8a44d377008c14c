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

	"cryptofolio/internal/app/di"
	"cryptofolio/internal/app/router"
	dashboardhandler "cryptofolio/internal/feature/dashboard/transport/handler"
	dashboardusecase "cryptofolio/internal/feature/dashboard/usecase"
	"cryptofolio/internal/platform/config"
	"cryptofolio/internal/platform/logging"
	"cryptofolio/internal/platform/scheduler"
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

	client := di.NewPortfolioClient(cfg.APIURL, cfg.HTTPTimeout)
	loop := dashboardusecase.NewLoop(client)

	tick := func() {
		tickCtx, cancel := context.WithTimeout(ctx, cfg.HTTPTimeout*2)
		defer cancel()
		// 失敗は Loop 側でログ出力済み
		_ = loop.Tick(tickCtx)
	}
	// 起動直後に1回描画する
	tick()

	task, err := scheduler.Every(cfg.RefreshInterval, tick)
	if err != nil {
		slog.Error("failed to schedule refresh", "error", err)
		os.Exit(1)
	}

	r := router.NewDashboardRouter(dashboardhandler.NewDashboardHandler(loop, cfg.RefreshInterval))
	srv := &http.Server{Addr: cfg.DashboardAddr, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		slog.Info("dashboard listening", "addr", cfg.DashboardAddr, "api", cfg.APIURL, "refresh", cfg.RefreshInterval)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	task.Cancel(shutdownCtx)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}
