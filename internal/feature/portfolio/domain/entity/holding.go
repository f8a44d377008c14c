// Package entity defines the domain models for the portfolio feature.
package entity

import "time"

// Holding represents one tracked crypto asset position.
// Symbol, Name and PurchasePrice are fixed at creation; Quantity, CurrentPrice
// and Category change through partial updates.
type Holding struct {
	ID            int64     // System-assigned, never reused
	Symbol        string    // Upper-case ticker, unique across holdings (e.g., "BTC")
	Name          string    // Display name (e.g., "Bitcoin")
	Quantity      float64   // Units held, non-negative
	PurchasePrice float64   // Cost basis per unit in USD
	CurrentPrice  float64   // Latest known market price per unit in USD
	Category      string    // Free-text tag (e.g., "major", "stablecoin")
	CreatedAt     time.Time // Creation time
	UpdatedAt     time.Time // Refreshed on every mutation
}

// MarketValue returns quantity * current price.
func (h Holding) MarketValue() float64 {
	return h.Quantity * h.CurrentPrice
}

// CostBasis returns quantity * purchase price.
func (h Holding) CostBasis() float64 {
	return h.Quantity * h.PurchasePrice
}

// GainLoss returns the unrealised gain (positive) or loss (negative).
func (h Holding) GainLoss() float64 {
	return h.MarketValue() - h.CostBasis()
}

// Label returns the display name, falling back to the symbol.
func (h Holding) Label() string {
	if h.Name != "" {
		return h.Name
	}
	return h.Symbol
}

// HoldingPatch carries the mutable fields of a partial update.
// A nil field is left unchanged.
type HoldingPatch struct {
	Quantity     *float64
	CurrentPrice *float64
	Category     *string
}

// IsEmpty reports whether the patch touches no field.
func (p HoldingPatch) IsEmpty() bool {
	return p.Quantity == nil && p.CurrentPrice == nil && p.Category == nil
}
