package usecase

import "errors"

// ErrInvalidTransaction は取引の検証に失敗した場合に返されます。
var ErrInvalidTransaction = errors.New("invalid transaction")
