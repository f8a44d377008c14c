// Package entity defines the domain models for the transactions feature.
package entity

import "time"

// Side is the direction of a transaction.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// Valid reports whether s is a known side.
func (s Side) Valid() bool {
	return s == SideBuy || s == SideSell
}

// Transaction is an append-only audit record of a buy or sell.
// Recording one does not change any holding.
type Transaction struct {
	ID        int64
	Symbol    string
	Side      Side
	Amount    float64
	Price     float64
	Notes     *string
	Timestamp time.Time
}
