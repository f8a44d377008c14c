// Package usecase はsentimentフィーチャーのビジネスロジックを提供します。
package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cryptofolio/internal/feature/sentiment/domain/entity"
)

// SentimentRepository はセンチメントデータの永続化を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type SentimentRepository interface {
	List(ctx context.Context) ([]entity.Sample, error)
	Create(ctx context.Context, s *entity.Sample) error
}

// RecordInput はセンチメント記録の入力値です。
type RecordInput struct {
	Symbol             string
	Score              float64
	MentionCount       int64
	PositivePercentage float64
	Source             string
}

// SentimentUsecase はセンチメントの一覧取得と記録を行います。
type SentimentUsecase struct {
	repo SentimentRepository
	now  func() time.Time
}

// NewSentimentUsecase は SentimentUsecase を生成します。
func NewSentimentUsecase(repo SentimentRepository) *SentimentUsecase {
	return &SentimentUsecase{repo: repo, now: time.Now}
}

// List は記録済みのサンプルをすべて返します。
func (u *SentimentUsecase) List(ctx context.Context) ([]entity.Sample, error) {
	return u.repo.List(ctx)
}

// Record は入力を検証し、サーバー時刻を付与して保存します。
func (u *SentimentUsecase) Record(ctx context.Context, in RecordInput) (*entity.Sample, error) {
	symbol := strings.ToUpper(strings.TrimSpace(in.Symbol))
	source := strings.TrimSpace(in.Source)
	switch {
	case symbol == "" || len(symbol) > 10:
		return nil, fmt.Errorf("%w: symbol must be 1-10 characters", ErrInvalidSentiment)
	case source == "" || len(source) > 20:
		return nil, fmt.Errorf("%w: source must be 1-20 characters", ErrInvalidSentiment)
	case in.Score < -1 || in.Score > 1:
		return nil, fmt.Errorf("%w: score %v outside [-1, 1]", ErrInvalidSentiment, in.Score)
	case in.MentionCount < 0:
		return nil, fmt.Errorf("%w: mention count must not be negative", ErrInvalidSentiment)
	case in.PositivePercentage < 0 || in.PositivePercentage > 100:
		return nil, fmt.Errorf("%w: positive percentage %v outside [0, 100]", ErrInvalidSentiment, in.PositivePercentage)
	}

	s := &entity.Sample{
		Symbol:             symbol,
		Score:              in.Score,
		MentionCount:       in.MentionCount,
		PositivePercentage: in.PositivePercentage,
		Source:             source,
		ObservedAt:         u.now(),
	}
	if err := u.repo.Create(ctx, s); err != nil {
		return nil, fmt.Errorf("record sentiment %s: %w", symbol, err)
	}
	return s, nil
}
