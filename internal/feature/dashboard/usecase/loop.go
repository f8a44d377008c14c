// Package usecase はダッシュボードの定期リフレッシュ、行選択、更新/削除アクションを提供します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	analytics "cryptofolio/internal/feature/analytics/usecase"
	"cryptofolio/internal/feature/dashboard/domain/entity"
	portfolio "cryptofolio/internal/feature/portfolio/domain/entity"
	sentiment "cryptofolio/internal/feature/sentiment/domain/entity"
)

// PortfolioAPI はリソースサービスへのクライアントです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type PortfolioAPI interface {
	ListHoldings(ctx context.Context) ([]portfolio.Holding, error)
	CreateHolding(ctx context.Context, h portfolio.Holding) (*portfolio.Holding, error)
	UpdateHolding(ctx context.Context, token string, patch portfolio.HoldingPatch) (*portfolio.Holding, error)
	DeleteHolding(ctx context.Context, token string) error
	ListSentiment(ctx context.Context) ([]sentiment.Sample, error)
}

// Loop は Idle → Refreshing → Rendered の状態を持つリコンシリエーションループです。
// 描画済みビューは1回のプルから丸ごと作られ、アトミックに差し替えられます。
type Loop struct {
	client PortfolioAPI
	now func() time.Time

	// tick はリフレッシュ1回分の間保持される。TryLock に失敗したティックは pending に畳み込まれる
	tick    sync.Mutex
	pending atomic.Bool
	// beforeUnlock はテストでロック解放直前の割り込みを再現するためのフック
	beforeUnlock func()

	mu        sync.RWMutex
	state     entity.State
	view      *entity.View
	selection *entity.Selection
	form      entity.EditForm
	status    entity.Status
}

// NewLoop は Idle 状態の Loop を生成します。
func NewLoop(client PortfolioAPI) *Loop {
	return &Loop{client: client, now: time.Now, state: entity.StateIdle}
}

// Tick は保有銘柄とセンチメントを並行取得し、全ビューを再計算して差し替えます。
// 実行中のティックがある場合は pending を立てて ErrTickCoalesced を返します。
// ロックを持つティックはロック解放後に pending を確認し、立っていれば取り直してもう一度リフレッシュします。
func (l *Loop) Tick(ctx context.Context) error {
	l.pending.Store(true)

	var (
		err error
		ran bool
	)
	for ctx.Err() == nil && l.pending.Load() {
		if !l.tick.TryLock() {
			// ロック保持者が解放後に pending を拾う
			break
		}
		for ctx.Err() == nil && l.pending.Swap(false) {
			err = l.refresh(ctx)
			ran = true
		}
		if l.beforeUnlock != nil {
			l.beforeUnlock()
		}
		l.tick.Unlock()
	}

	switch {
	case ran:
		return err
	case ctx.Err() != nil:
		return ctx.Err()
	default:
		return ErrTickCoalesced
	}
}

func (l *Loop) refresh(ctx context.Context) error {
	l.setState(entity.StateRefreshing)

	var (
		holdings []portfolio.Holding
		samples  []sentiment.Sample
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		holdings, err = l.client.ListHoldings(gctx)
		if err != nil {
			return fmt.Errorf("pull holdings: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		samples, err = l.client.ListSentiment(gctx)
		if err != nil {
			return fmt.Errorf("pull sentiment: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		slog.Warn("dashboard refresh failed, keeping previous view", "error", err)
		l.mu.Lock()
		l.state = entity.StateIdle
		if l.view != nil {
			l.state = entity.StateRendered
		}
		l.mu.Unlock()
		return err
	}

	metrics := analytics.ComputeMetrics(holdings)
	view := &entity.View{
		Holdings:    holdings,
		Samples:     samples,
		Metrics:     metrics,
		Cards:       analytics.Cards(metrics),
		Charts:      analytics.Shape(holdings, samples),
		RefreshedAt: l.now(),
	}

	l.mu.Lock()
	l.view = view
	l.state = entity.StateRendered
	l.mu.Unlock()

	slog.Debug("dashboard refreshed", "holdings", len(holdings), "sentiment", len(samples))
	return nil
}

// View は公開中のビューを返します。初回のティックが成功するまでは nil です。
func (l *Loop) View() *entity.View {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.view
}

// State は現在のループ状態を返します。
func (l *Loop) State() entity.State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

func (l *Loop) setState(s entity.State) {
	l.mu.Lock()
	l.state = s
	l.mu.Unlock()
}

// afterWrite は書き込み成功後のリフレッシュです。失敗は次の定期ティックで回復するためログのみ残します。
func (l *Loop) afterWrite(ctx context.Context) {
	if err := l.Tick(ctx); err != nil && !errors.Is(err, ErrTickCoalesced) {
		slog.Warn("refresh after write failed", "error", err)
	}
}
