package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"cryptofolio/internal/api"
	"cryptofolio/internal/feature/dashboard/domain/entity"
	portfolio "cryptofolio/internal/feature/portfolio/domain/entity"
)

// Trigger はアクションを発火したボタンを表します。
type Trigger int

const (
	// TriggerNone はクリックなしで送信された場合のゼロ値です。
	TriggerNone Trigger = iota
	TriggerUpdate
	TriggerDelete
)

// ParseTrigger は "update" と "delete" を Trigger に変換します。それ以外は TriggerNone です。
func ParseTrigger(s string) Trigger {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "update":
		return TriggerUpdate
	case "delete":
		return TriggerDelete
	}
	return TriggerNone
}

// ActionRequest は編集フォームから送信された更新/削除です。
type ActionRequest struct {
	Trigger      Trigger
	Symbol       string
	Quantity     *float64
	CurrentPrice *float64
	Category     string
}

// AddRequest は追加フォームの送信内容です。
type AddRequest struct {
	Symbol        string
	Quantity      *float64
	PurchasePrice *float64
	CurrentPrice  *float64
}

const addedCategory = "user_added"

// Act は更新または削除を実行し、結果のステータスを返します。
// トリガーがない場合は何もせず ErrNoTrigger を返します。
func (l *Loop) Act(ctx context.Context, req ActionRequest) (entity.Status, error) {
	if req.Trigger == TriggerNone {
		return entity.Status{}, ErrNoTrigger
	}

	target := l.EffectiveTarget(req.Symbol)
	if target == "" {
		return l.report(entity.Status{Text: "Select a holding first."}), nil
	}

	switch req.Trigger {
	case TriggerDelete:
		return l.delete(ctx, target), nil
	case TriggerUpdate:
		return l.update(ctx, target, req), nil
	}
	return entity.Status{}, fmt.Errorf("%w: unknown trigger %d", ErrNoTrigger, req.Trigger)
}

func (l *Loop) delete(ctx context.Context, target string) entity.Status {
	if err := l.client.DeleteHolding(ctx, target); err != nil {
		slog.Warn("delete action failed", "symbol", target, "error", err)
		return l.report(failure("Delete", err))
	}

	l.mu.Lock()
	if l.selection != nil && strings.EqualFold(l.selection.Holding.Symbol, target) {
		l.selection = nil
		l.form = entity.EditForm{}
	}
	l.mu.Unlock()

	st := l.report(entity.Status{Text: fmt.Sprintf("Deleted %s.", target), OK: true})
	l.afterWrite(ctx)
	return st
}

func (l *Loop) update(ctx context.Context, target string, req ActionRequest) entity.Status {
	patch := portfolio.HoldingPatch{
		Quantity:     req.Quantity,
		CurrentPrice: req.CurrentPrice,
	}
	if c := strings.TrimSpace(req.Category); c != "" {
		patch.Category = &c
	}
	if patch.IsEmpty() {
		return l.report(entity.Status{Text: "Nothing to update."})
	}

	if _, err := l.client.UpdateHolding(ctx, target, patch); err != nil {
		slog.Warn("update action failed", "symbol", target, "error", err)
		return l.report(failure("Update", err))
	}

	st := l.report(entity.Status{Text: fmt.Sprintf("Updated %s.", target), OK: true})
	l.afterWrite(ctx)
	return st
}

// AddHolding は追加フォームの内容で保有銘柄を作成します。
// シンボル・数量・取得価格は必須（0も未入力扱い）で、現在価格の既定値は取得価格です。
func (l *Loop) AddHolding(ctx context.Context, req AddRequest) entity.Status {
	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))
	if symbol == "" || isBlank(req.Quantity) || isBlank(req.PurchasePrice) {
		return l.report(entity.Status{Text: "Please fill symbol, quantity, and purchase price"})
	}

	current := *req.PurchasePrice
	if req.CurrentPrice != nil {
		current = *req.CurrentPrice
	}
	_, err := l.client.CreateHolding(ctx, portfolio.Holding{
		Symbol:        symbol,
		Name:          symbol,
		Quantity:      *req.Quantity,
		PurchasePrice: *req.PurchasePrice,
		CurrentPrice:  current,
		Category:      addedCategory,
	})
	if err != nil {
		slog.Warn("add holding failed", "symbol", symbol, "error", err)
		return l.report(entity.Status{Text: "Error: " + detail(err)})
	}

	st := l.report(entity.Status{Text: fmt.Sprintf("Added %s.", symbol), OK: true})
	l.afterWrite(ctx)
	return st
}

func (l *Loop) report(st entity.Status) entity.Status {
	l.mu.Lock()
	l.status = st
	l.mu.Unlock()
	return st
}

// failure は "<Op> failed: <detail>"（サービスが応答した場合）か
// "<Op> error: <err>"（通信失敗）を返します。
func failure(op string, err error) entity.Status {
	var apiErr *api.StatusError
	if errors.As(err, &apiErr) {
		return entity.Status{Text: fmt.Sprintf("%s failed: %s", op, apiErr.Detail)}
	}
	return entity.Status{Text: fmt.Sprintf("%s error: %s", op, err)}
}

func detail(err error) string {
	var apiErr *api.StatusError
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	return err.Error()
}

func isBlank(v *float64) bool {
	return v == nil || *v == 0
}
