package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cryptofolio/internal/feature/portfolio/domain/entity"
)

const (
	// maxSymbolLength はシンボルの最大文字数です。
	maxSymbolLength = 10
	// maxCategoryLength は category カラムの幅に合わせた最大文字数です。
	maxCategoryLength = 20
)

// HoldingRepository は保有銘柄の永続化レイヤーを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type HoldingRepository interface {
	HoldingFinder

	// List は全ての保有銘柄を格納順に返します。
	List(ctx context.Context) ([]entity.Holding, error)

	// Create は保有銘柄を登録し、採番されたIDを設定します。
	// シンボルが既に使われている場合は ErrHoldingAlreadyExists を返します。
	Create(ctx context.Context, h *entity.Holding) error

	// Update は patch の非nilフィールドを反映して updated_at を更新し、保存後の行を返します。
	Update(ctx context.Context, id int64, patch entity.HoldingPatch, at time.Time) (*entity.Holding, error)

	// Delete は保有銘柄を物理削除します。
	// 削除対象がない場合は ErrHoldingNotFound を返します。
	Delete(ctx context.Context, id int64) error
}

// CreateHoldingInput は保有銘柄の新規作成に必要な項目です。
type CreateHoldingInput struct {
	Symbol        string
	Name          string
	Quantity      float64
	PurchasePrice float64
	CurrentPrice  float64
	Category      string
}

// PortfolioUsecase は portfolio リソースの操作を実装します。
type PortfolioUsecase struct {
	repo     HoldingRepository
	resolver *Resolver
	now      func() time.Time
}

// NewPortfolioUsecase はPortfolioUsecaseの新しいインスタンスを生成します。
func NewPortfolioUsecase(repo HoldingRepository) *PortfolioUsecase {
	return &PortfolioUsecase{
		repo:     repo,
		resolver: NewResolver(repo),
		now:      time.Now,
	}
}

// List は全ての保有銘柄を返します。
func (u *PortfolioUsecase) List(ctx context.Context) ([]entity.Holding, error) {
	return u.repo.List(ctx)
}

// Get はトークンを解決して保有銘柄を返します。
func (u *PortfolioUsecase) Get(ctx context.Context, token string) (*entity.Holding, error) {
	return u.resolver.Resolve(ctx, entity.ParseToken(token))
}

// Create は入力を検証し、シンボルの重複がなければ保有銘柄を登録します。
func (u *PortfolioUsecase) Create(ctx context.Context, in CreateHoldingInput) (*entity.Holding, error) {
	h, err := newHolding(in)
	if err != nil {
		return nil, err
	}

	existing, err := u.repo.FindBySymbol(ctx, h.Symbol)
	switch {
	case err == nil && existing != nil:
		return nil, fmt.Errorf("%w: %s", ErrHoldingAlreadyExists, h.Symbol)
	case err != nil && !errors.Is(err, ErrHoldingNotFound):
		return nil, err
	}

	now := u.now()
	h.CreatedAt = now
	h.UpdatedAt = now
	// 並行作成はユニークインデックス側で弾かれ、ErrHoldingAlreadyExists になる
	if err := u.repo.Create(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

// Update はトークンを解決して部分更新を行います。
// patch が空でも書き込みを行い、updated_at は必ず更新されます。
func (u *PortfolioUsecase) Update(ctx context.Context, token string, patch entity.HoldingPatch) (*entity.Holding, error) {
	if err := validatePatch(patch); err != nil {
		return nil, err
	}
	h, err := u.resolver.Resolve(ctx, entity.ParseToken(token))
	if err != nil {
		return nil, err
	}
	return u.repo.Update(ctx, h.ID, patch, u.now())
}

// Delete はトークンを解決して保有銘柄を削除します。
// 2回目の削除は ErrHoldingNotFound になります。
func (u *PortfolioUsecase) Delete(ctx context.Context, token string) error {
	h, err := u.resolver.Resolve(ctx, entity.ParseToken(token))
	if err != nil {
		return err
	}
	return u.repo.Delete(ctx, h.ID)
}

// newHolding は作成リクエストを正規化・検証します。
func newHolding(in CreateHoldingInput) (*entity.Holding, error) {
	symbol := strings.ToUpper(strings.TrimSpace(in.Symbol))
	name := strings.TrimSpace(in.Name)
	category := strings.TrimSpace(in.Category)

	switch {
	case symbol == "" || len(symbol) > maxSymbolLength:
		return nil, fmt.Errorf("%w: symbol must be 1-%d characters", ErrInvalidHolding, maxSymbolLength)
	case name == "":
		return nil, fmt.Errorf("%w: name is required", ErrInvalidHolding)
	case category == "" || len(category) > maxCategoryLength:
		return nil, fmt.Errorf("%w: category must be 1-%d characters", ErrInvalidHolding, maxCategoryLength)
	case in.Quantity < 0:
		return nil, fmt.Errorf("%w: quantity must not be negative", ErrInvalidHolding)
	case in.PurchasePrice < 0 || in.CurrentPrice < 0:
		return nil, fmt.Errorf("%w: prices must not be negative", ErrInvalidHolding)
	}

	return &entity.Holding{
		Symbol:        symbol,
		Name:          name,
		Quantity:      in.Quantity,
		PurchasePrice: in.PurchasePrice,
		CurrentPrice:  in.CurrentPrice,
		Category:      category,
	}, nil
}

func validatePatch(p entity.HoldingPatch) error {
	if p.Quantity != nil && *p.Quantity < 0 {
		return fmt.Errorf("%w: quantity must not be negative", ErrInvalidHolding)
	}
	if p.CurrentPrice != nil && *p.CurrentPrice < 0 {
		return fmt.Errorf("%w: current price must not be negative", ErrInvalidHolding)
	}
	if p.Category != nil && len(*p.Category) > maxCategoryLength {
		return fmt.Errorf("%w: category must be at most %d characters", ErrInvalidHolding, maxCategoryLength)
	}
	return nil
}
