// Package adapters はtransactionsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"

	"cryptofolio/internal/feature/transactions/domain/entity"
	"cryptofolio/internal/feature/transactions/usecase"
)

// TransactionModel is the GORM model for the transactions table.
type TransactionModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Symbol    string    `gorm:"size:10;not null;index"`
	Side      string    `gorm:"column:transaction_type;size:4;not null"`
	Amount    float64   `gorm:"not null"`
	Price     float64   `gorm:"not null"`
	Notes     *string   `gorm:"type:text"`
	Timestamp time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts the GORM model to a domain entity.
func (m *TransactionModel) ToEntity() entity.Transaction {
	return entity.Transaction{
		ID:        m.ID,
		Symbol:    m.Symbol,
		Side:      entity.Side(m.Side),
		Amount:    m.Amount,
		Price:     m.Price,
		Notes:     m.Notes,
		Timestamp: m.Timestamp,
	}
}

type transactionGorm struct {
	db *gorm.DB
}

var _ usecase.TransactionRepository = (*transactionGorm)(nil)

// NewTransactionRepository は新しいtransactionGormを生成します。
func NewTransactionRepository(db *gorm.DB) *transactionGorm {
	return &transactionGorm{db: db}
}

// Create は取引を追記します。
func (r *transactionGorm) Create(ctx context.Context, tx *entity.Transaction) error {
	m := TransactionModel{
		Symbol:    tx.Symbol,
		Side:      string(tx.Side),
		Amount:    tx.Amount,
		Price:     tx.Price,
		Notes:     tx.Notes,
		Timestamp: tx.Timestamp,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	tx.ID = m.ID
	return nil
}

// List は記録順に取引を返します。symbol が空でなければ一致するものだけに絞り込みます。
func (r *transactionGorm) List(ctx context.Context, symbol string) ([]entity.Transaction, error) {
	q := r.db.WithContext(ctx).Order("id ASC")
	if symbol != "" {
		q = q.Where("symbol = ?", symbol)
	}
	var rows []TransactionModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Transaction, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToEntity())
	}
	return out, nil
}
