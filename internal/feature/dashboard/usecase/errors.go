package usecase

import "errors"

var (
	// ErrNoTrigger はボタンが押されていない Act で返されます。
	ErrNoTrigger = errors.New("no action triggered")
	// ErrTickCoalesced は別のティックが実行中で、その実行に合流した場合に Tick が返します。
	ErrTickCoalesced = errors.New("tick coalesced into the in-flight refresh")
	// ErrNoSuchRow は描画済みテーブルの範囲外の行を Select した場合に返されます。
	ErrNoSuchRow = errors.New("no such row")
	// ErrStaleRow は描画後にテーブルが入れ替わり、行のIDが一致しない場合に Select が返します。
	ErrStaleRow = errors.New("table changed since it was rendered")
)
