// Package adapters はsentimentフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"

	"cryptofolio/internal/feature/sentiment/domain/entity"
	"cryptofolio/internal/feature/sentiment/usecase"
)

// SampleModel is the GORM model for the market_sentiment table.
type SampleModel struct {
	ID                 int64     `gorm:"primaryKey;autoIncrement"`
	Symbol             string    `gorm:"size:10;not null;index"`
	Score              float64   `gorm:"column:sentiment_score;not null"`
	MentionCount       int64     `gorm:"not null"`
	PositivePercentage float64   `gorm:"not null"`
	Source             string    `gorm:"size:20;not null"`
	ObservedAt         time.Time `gorm:"column:date;not null"`
}

// TableName returns the table name for GORM.
func (SampleModel) TableName() string {
	return "market_sentiment"
}

// ToEntity converts the GORM model to a domain entity.
func (m *SampleModel) ToEntity() entity.Sample {
	return entity.Sample{
		ID:                 m.ID,
		Symbol:             m.Symbol,
		Score:              m.Score,
		MentionCount:       m.MentionCount,
		PositivePercentage: m.PositivePercentage,
		Source:             m.Source,
		ObservedAt:         m.ObservedAt,
	}
}

// sentimentGorm はSentimentRepositoryのGORM実装です。
type sentimentGorm struct {
	db *gorm.DB
}

var _ usecase.SentimentRepository = (*sentimentGorm)(nil)

// NewSentimentRepository は新しいsentimentGormを生成します。
func NewSentimentRepository(db *gorm.DB) *sentimentGorm {
	return &sentimentGorm{db: db}
}

// List は記録順にすべてのサンプルを返します。
func (r *sentimentGorm) List(ctx context.Context) ([]entity.Sample, error) {
	var rows []SampleModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Sample, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToEntity())
	}
	return out, nil
}

// Create はサンプルを保存し、採番されたIDを書き戻します。
func (r *sentimentGorm) Create(ctx context.Context, s *entity.Sample) error {
	m := SampleModel{
		Symbol:             s.Symbol,
		Score:              s.Score,
		MentionCount:       s.MentionCount,
		PositivePercentage: s.PositivePercentage,
		Source:             s.Source,
		ObservedAt:         s.ObservedAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	s.ID = m.ID
	return nil
}
