package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"cryptofolio/internal/feature/sentiment/domain/entity"
	"cryptofolio/internal/feature/sentiment/usecase"
)

var _ usecase.SentimentRepository = (*CachingSentimentRepository)(nil)

// CachingSentimentRepository はセンチメント一覧をRedisにキャッシュするデコレータです。
type CachingSentimentRepository struct {
	inner usecase.SentimentRepository
	rdb   *redis.Client
	ttl   time.Duration
	key   string
}

// NewCachingSentimentRepository は SentimentRepository をキャッシュでラップします。
// namespace が空の場合は "sentiment" を使用します。
func NewCachingSentimentRepository(rdb *redis.Client, ttl time.Duration, inner usecase.SentimentRepository, namespace string) *CachingSentimentRepository {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if namespace == "" {
		namespace = "sentiment"
	}
	return &CachingSentimentRepository{inner: inner, rdb: rdb, ttl: ttl, key: namespace + ":list"}
}

// List はキャッシュを優先して全サンプルを返します。
func (c *CachingSentimentRepository) List(ctx context.Context) ([]entity.Sample, error) {
	if c.rdb == nil {
		return c.inner.List(ctx)
	}

	var out []entity.Sample
	if readThrough(ctx, c.rdb, c.key, &out) {
		return out, nil
	}

	out, err := c.inner.List(ctx)
	if err != nil {
		return nil, err
	}
	store(ctx, c.rdb, c.key, out, c.ttl)
	return out, nil
}

// Create はサンプルを保存し、一覧キャッシュを破棄します。
func (c *CachingSentimentRepository) Create(ctx context.Context, s *entity.Sample) error {
	if err := c.inner.Create(ctx, s); err != nil {
		return err
	}
	if c.rdb != nil {
		_ = c.rdb.Del(ctx, c.key).Err()
	}
	return nil
}
