package usecase

import "errors"

// ErrInvalidSentiment はサンプルが許容範囲外の場合に返されます。
var ErrInvalidSentiment = errors.New("invalid sentiment sample")
