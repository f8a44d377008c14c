// Package usecase はtransactionsフィーチャーのビジネスロジックを提供します。
package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cryptofolio/internal/feature/transactions/domain/entity"
)

// TransactionRepository は取引履歴の永続化を抽象化します。
type TransactionRepository interface {
	Create(ctx context.Context, tx *entity.Transaction) error
	// List は symbol の取引を返します。symbol が空の場合は全件を返します。
	List(ctx context.Context, symbol string) ([]entity.Transaction, error)
}

// RecordInput は取引記録の入力値です。
type RecordInput struct {
	Symbol string
	Side   string
	Amount float64
	Price  float64
	Notes  *string
}

// TransactionUsecase は取引履歴の記録と検索を行います。
type TransactionUsecase struct {
	repo TransactionRepository
	now  func() time.Time
}

// NewTransactionUsecase は TransactionUsecase を生成します。
func NewTransactionUsecase(repo TransactionRepository) *TransactionUsecase {
	return &TransactionUsecase{repo: repo, now: time.Now}
}

// Record は取引を正規化・検証して保存します。
func (u *TransactionUsecase) Record(ctx context.Context, in RecordInput) (*entity.Transaction, error) {
	symbol := strings.ToUpper(strings.TrimSpace(in.Symbol))
	side := entity.Side(strings.ToUpper(strings.TrimSpace(in.Side)))
	switch {
	case symbol == "" || len(symbol) > 10:
		return nil, fmt.Errorf("%w: symbol must be 1-10 characters", ErrInvalidTransaction)
	case !side.Valid():
		return nil, fmt.Errorf("%w: transaction type must be BUY or SELL, got %q", ErrInvalidTransaction, in.Side)
	case in.Amount <= 0:
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidTransaction)
	case in.Price < 0:
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidTransaction)
	}

	tx := &entity.Transaction{
		Symbol:    symbol,
		Side:      side,
		Amount:    in.Amount,
		Price:     in.Price,
		Notes:     in.Notes,
		Timestamp: u.now(),
	}
	if err := u.repo.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("record transaction %s: %w", symbol, err)
	}
	return tx, nil
}

// List は指定シンボル（大文字化）の取引を返します。空文字の場合は全件を返します。
func (u *TransactionUsecase) List(ctx context.Context, symbol string) ([]entity.Transaction, error) {
	return u.repo.List(ctx, strings.ToUpper(strings.TrimSpace(symbol)))
}
