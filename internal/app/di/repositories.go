// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	portfolioadapters "cryptofolio/internal/feature/portfolio/adapters"
	portfoliousecase "cryptofolio/internal/feature/portfolio/usecase"
	sentimentadapters "cryptofolio/internal/feature/sentiment/adapters"
	sentimentusecase "cryptofolio/internal/feature/sentiment/usecase"
	transactionadapters "cryptofolio/internal/feature/transactions/adapters"
	"cryptofolio/internal/platform/cache"
)

// Models returns every gorm model the resource service migrates.
func Models() []any {
	return []any{
		&portfolioadapters.HoldingModel{},
		&sentimentadapters.SampleModel{},
		&transactionadapters.TransactionModel{},
	}
}

// NewHoldingRepository creates a HoldingRepository implementation.
// If Redis is available, the gorm repository is wrapped in a read cache.
func NewHoldingRepository(db *gorm.DB, rdb *redis.Client, ttl time.Duration) portfoliousecase.HoldingRepository {
	repo := portfolioadapters.NewHoldingRepository(db)
	if rdb != nil {
		return cache.NewCachingHoldingRepository(rdb, ttl, repo, "holdings")
	}
	return repo
}

// NewSentimentRepository creates a SentimentRepository implementation, cached when Redis is available.
func NewSentimentRepository(db *gorm.DB, rdb *redis.Client, ttl time.Duration) sentimentusecase.SentimentRepository {
	repo := sentimentadapters.NewSentimentRepository(db)
	if rdb != nil {
		return cache.NewCachingSentimentRepository(rdb, ttl, repo, "sentiment")
	}
	return repo
}
