// Package usecase はportfolioフィーチャーのビジネスロジックを実装します。
package usecase

import "errors"

var (
	// ErrHoldingNotFound はトークンに該当する保有銘柄がない場合に返されます。
	ErrHoldingNotFound = errors.New("holding not found")

	// ErrHoldingAlreadyExists は既に登録済みのシンボルで作成しようとした場合に返されます。
	ErrHoldingAlreadyExists = errors.New("holding already exists")

	// ErrInvalidHolding は作成・更新リクエストの検証に失敗した場合に返されます。
	ErrInvalidHolding = errors.New("invalid holding")
)
