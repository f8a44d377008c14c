package usecase

import (
	"context"

	"cryptofolio/internal/feature/portfolio/domain/entity"
)

// HoldingFinder は Resolver が利用する HoldingRepository の検索部分です。
type HoldingFinder interface {
	FindByID(ctx context.Context, id int64) (*entity.Holding, error)
	FindBySymbol(ctx context.Context, symbol string) (*entity.Holding, error)
}

// Resolver は呼び出し元のトークンを保存済みの保有銘柄に解決します。
type Resolver struct {
	finder HoldingFinder
}

// NewResolver はResolverの新しいインスタンスを生成します。
func NewResolver(finder HoldingFinder) *Resolver {
	return &Resolver{finder: finder}
}

// Resolve はIDトークンを FindByID に、シンボルトークンを FindBySymbol に振り分けます。
// 両者の間にフォールバックはなく、数字のみのシンボルを持つ保有銘柄があっても
// 該当IDがなければ ErrHoldingNotFound になります。
func (r *Resolver) Resolve(ctx context.Context, tok entity.Token) (*entity.Holding, error) {
	if id, ok := tok.ID(); ok {
		return r.finder.FindByID(ctx, id)
	}
	symbol, _ := tok.Symbol()
	return r.finder.FindBySymbol(ctx, symbol)
}
