// Package adapters はportfolioフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"cryptofolio/internal/feature/portfolio/domain/entity"
	"cryptofolio/internal/feature/portfolio/usecase"
	"cryptofolio/internal/platform/db"
)

// HoldingModel is the GORM model for the portfolio table.
type HoldingModel struct {
	ID            int64   `gorm:"primaryKey;autoIncrement"`
	Symbol        string  `gorm:"size:10;not null;uniqueIndex"`
	Name          string  `gorm:"size:50;not null"`
	Quantity      float64 `gorm:"not null"`
	PurchasePrice float64 `gorm:"not null"`
	CurrentPrice  float64 `gorm:"not null"`
	Category      string  `gorm:"size:20;not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName returns the table name for GORM.
func (HoldingModel) TableName() string {
	return "portfolio"
}

// ToEntity converts the GORM model to a domain entity.
func (m *HoldingModel) ToEntity() *entity.Holding {
	return &entity.Holding{
		ID:            m.ID,
		Symbol:        m.Symbol,
		Name:          m.Name,
		Quantity:      m.Quantity,
		PurchasePrice: m.PurchasePrice,
		CurrentPrice:  m.CurrentPrice,
		Category:      m.Category,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// HoldingModelFromEntity converts a domain entity to a GORM model.
func HoldingModelFromEntity(h *entity.Holding) *HoldingModel {
	return &HoldingModel{
		ID:            h.ID,
		Symbol:        h.Symbol,
		Name:          h.Name,
		Quantity:      h.Quantity,
		PurchasePrice: h.PurchasePrice,
		CurrentPrice:  h.CurrentPrice,
		Category:      h.Category,
		CreatedAt:     h.CreatedAt,
		UpdatedAt:     h.UpdatedAt,
	}
}

// holdingGorm はHoldingRepositoryインターフェースのGORM実装です。
// SQLite・MySQL・PostgreSQLのいずれでも動作します。
type holdingGorm struct {
	db *gorm.DB
}

// holdingGormがHoldingRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.HoldingRepository = (*holdingGorm)(nil)

// NewHoldingRepository は指定されたgorm.DB接続でholdingGormの新しいインスタンスを生成します。
func NewHoldingRepository(db *gorm.DB) *holdingGorm {
	return &holdingGorm{db: db}
}

// List はID順にすべての保有銘柄を返します。
func (r *holdingGorm) List(ctx context.Context) ([]entity.Holding, error) {
	var rows []HoldingModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Holding, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToEntity())
	}
	return out, nil
}

// FindByID はIDで保有銘柄を取得します。
// 存在しない場合、usecase.ErrHoldingNotFoundを返します。
func (r *holdingGorm) FindByID(ctx context.Context, id int64) (*entity.Holding, error) {
	return r.first(ctx, "id = ?", id)
}

// FindBySymbol はシンボルで保有銘柄を取得します。
// 存在しない場合、usecase.ErrHoldingNotFoundを返します。
func (r *holdingGorm) FindBySymbol(ctx context.Context, symbol string) (*entity.Holding, error) {
	return r.first(ctx, "symbol = ?", symbol)
}

func (r *holdingGorm) first(ctx context.Context, query string, arg any) (*entity.Holding, error) {
	var m HoldingModel
	if err := r.db.WithContext(ctx).Where(query, arg).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrHoldingNotFound
		}
		return nil, err
	}
	return m.ToEntity(), nil
}

// Create は保有銘柄をデータベースに追加し、採番されたIDを h に反映します。
// 同じシンボルが既に存在する場合、usecase.ErrHoldingAlreadyExistsを返します。
func (r *holdingGorm) Create(ctx context.Context, h *entity.Holding) error {
	m := HoldingModelFromEntity(h)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if db.IsDuplicateKey(err) {
			return usecase.ErrHoldingAlreadyExists
		}
		return err
	}
	h.ID = m.ID
	h.CreatedAt = m.CreatedAt
	h.UpdatedAt = m.UpdatedAt
	return nil
}

// Update は patch で指定されたフィールドだけを上書きし、updated_at を at に更新します。
// MySQLは値が変わらない行をRowsAffectedに数えないため、存在確認は再取得で行います。
func (r *holdingGorm) Update(ctx context.Context, id int64, patch entity.HoldingPatch, at time.Time) (*entity.Holding, error) {
	values := map[string]any{"updated_at": at}
	if patch.Quantity != nil {
		values["quantity"] = *patch.Quantity
	}
	if patch.CurrentPrice != nil {
		values["current_price"] = *patch.CurrentPrice
	}
	if patch.Category != nil {
		values["category"] = *patch.Category
	}

	if err := r.db.WithContext(ctx).
		Model(&HoldingModel{}).
		Where("id = ?", id).
		Updates(values).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

// Delete は保有銘柄を物理削除します。
// 削除対象がない場合、usecase.ErrHoldingNotFoundを返します。
func (r *holdingGorm) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&HoldingModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrHoldingNotFound
	}
	return nil
}
