// Package usecase はリソースAPI経由でサンプルデータを投入します。
package usecase

import (
	"context"
	"errors"
	"log/slog"

	"cryptofolio/internal/api"
	portfolio "cryptofolio/internal/feature/portfolio/domain/entity"
	sentiment "cryptofolio/internal/feature/sentiment/domain/entity"
	"cryptofolio/internal/shared/ratelimiter"
)

// ResourceClient はシードに必要なリソースAPI操作です。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type ResourceClient interface {
	GetHolding(ctx context.Context, token string) (*portfolio.Holding, error)
	CreateHolding(ctx context.Context, h portfolio.Holding) (*portfolio.Holding, error)
	ListSentiment(ctx context.Context) ([]sentiment.Sample, error)
	CreateSentiment(ctx context.Context, s sentiment.Sample) error
}

// Report は投入結果の件数です。
type Report struct {
	Added   int
	Skipped int
	Failed  int
}

// SeedUsecase はサンプルの保有資産とセンチメントを投入します。
type SeedUsecase struct {
	client      ResourceClient
	rateLimiter ratelimiter.RateLimiterInterface
}

// NewSeedUsecase は新しい SeedUsecase を作成します。
func NewSeedUsecase(client ResourceClient, rateLimiter ratelimiter.RateLimiterInterface) *SeedUsecase {
	return &SeedUsecase{client: client, rateLimiter: rateLimiter}
}

// SeedHoldings は holdings を順に登録します。既に存在するシンボルはスキップします。
// 1件の失敗で処理は止めず、ログに出力して次へ進みます。ctx のキャンセルのみエラーを返します。
func (s *SeedUsecase) SeedHoldings(ctx context.Context, holdings []portfolio.Holding) (Report, error) {
	var rep Report
	for _, h := range holdings {
		if err := s.rateLimiter.WaitIfNeeded(ctx); err != nil {
			return rep, err
		}

		_, err := s.client.GetHolding(ctx, h.Symbol)
		switch {
		case err == nil:
			slog.Info("holding already present", "symbol", h.Symbol)
			rep.Skipped++
			continue
		case !errors.Is(err, api.ErrNotFound):
			slog.Error("failed to look up holding", "symbol", h.Symbol, "error", err)
			rep.Failed++
			continue
		}

		if err := s.rateLimiter.WaitIfNeeded(ctx); err != nil {
			return rep, err
		}
		if _, err := s.client.CreateHolding(ctx, h); err != nil {
			if errors.Is(err, api.ErrConflict) {
				rep.Skipped++
				continue
			}
			slog.Error("failed to add holding", "symbol", h.Symbol, "error", err)
			rep.Failed++
			continue
		}
		slog.Info("added holding", "symbol", h.Symbol, "name", h.Name)
		rep.Added++
	}
	return rep, nil
}

// SeedSentiments は samples を登録します。同じシンボルとソースの組が既にあればスキップします。
func (s *SeedUsecase) SeedSentiments(ctx context.Context, samples []sentiment.Sample) (Report, error) {
	var rep Report

	if err := s.rateLimiter.WaitIfNeeded(ctx); err != nil {
		return rep, err
	}
	existing, err := s.client.ListSentiment(ctx)
	if err != nil {
		// 一覧が取れなくても投入は試みる
		slog.Warn("failed to list sentiment; seeding without duplicate check", "error", err)
	}
	seen := make(map[string]struct{}, len(existing))
	for _, e := range existing {
		seen[e.Label()] = struct{}{}
	}

	for _, sample := range samples {
		if _, ok := seen[sample.Label()]; ok {
			rep.Skipped++
			continue
		}
		if err := s.rateLimiter.WaitIfNeeded(ctx); err != nil {
			return rep, err
		}
		if err := s.client.CreateSentiment(ctx, sample); err != nil {
			slog.Error("failed to add sentiment", "symbol", sample.Symbol, "source", sample.Source, "error", err)
			rep.Failed++
			continue
		}
		slog.Info("added sentiment", "symbol", sample.Symbol, "source", sample.Source)
		rep.Added++
	}
	return rep, nil
}

// SeedAll は SampleHoldings と SampleSentiments を投入します。
func (s *SeedUsecase) SeedAll(ctx context.Context) (holdings, sentiments Report, err error) {
	if holdings, err = s.SeedHoldings(ctx, SampleHoldings); err != nil {
		return holdings, sentiments, err
	}
	sentiments, err = s.SeedSentiments(ctx, SampleSentiments)
	return holdings, sentiments, err
}
