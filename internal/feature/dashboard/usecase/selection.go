package usecase

import (
	"strings"

	"cryptofolio/internal/feature/dashboard/domain/entity"
)

const staleRowMessage = "The table changed, please select again."

// Select は描画済みテーブルの row 行目を選択し、その時点の値を編集フォームに写します。
// id は画面に表示されていた行の保有銘柄IDで、現在のビューの row 行目と一致しない場合は
// テーブルが更新されたとみなし ErrStaleRow を返します（選択は変更しません）。
// row が負の場合は選択を解除します。
func (l *Loop) Select(row int, id int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if row < 0 {
		l.selection = nil
		l.form = entity.EditForm{}
		return nil
	}
	if l.view == nil || row >= len(l.view.Holdings) {
		return ErrNoSuchRow
	}
	h := l.view.Holdings[row]
	if h.ID != id {
		l.status = entity.Status{Text: staleRowMessage}
		return ErrStaleRow
	}
	l.selection = &entity.Selection{Row: row, Holding: h}
	l.form = entity.FormFromHolding(h)
	return nil
}

// ClearSelection は選択を解除します。
func (l *Loop) ClearSelection() {
	_ = l.Select(-1, 0)
}

// Selection は選択行スナップショットのコピーを返します。未選択なら nil です。
func (l *Loop) Selection() *entity.Selection {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.selection == nil {
		return nil
	}
	s := *l.selection
	return &s
}

// Form は直近の Select で設定された編集フォームを返します。
func (l *Loop) Form() entity.EditForm {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.form
}

// Status は直近のアクションの結果を返します。
func (l *Loop) Status() entity.Status {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.status
}

// EffectiveTarget は更新/削除の対象シンボルを返します。
// 選択がある場合は常に選択行のシンボルを使い、手入力のシンボルには戻りません。
func (l *Loop) EffectiveTarget(typed string) string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return effectiveTarget(l.selection, typed)
}

func effectiveTarget(sel *entity.Selection, typed string) string {
	if sel != nil && sel.Holding.Symbol != "" {
		return strings.ToUpper(sel.Holding.Symbol)
	}
	return strings.ToUpper(strings.TrimSpace(typed))
}
