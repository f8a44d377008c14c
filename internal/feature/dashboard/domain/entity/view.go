// Package entity defines the state owned by the dashboard reconciliation loop.
package entity

import (
	"time"

	analytics "cryptofolio/internal/feature/analytics/domain/entity"
	portfolio "cryptofolio/internal/feature/portfolio/domain/entity"
	sentiment "cryptofolio/internal/feature/sentiment/domain/entity"
)

// State is the reconciliation loop state.
type State string

const (
	StateIdle       State = "idle"
	StateRefreshing State = "refreshing"
	StateRendered   State = "rendered"
)

// View is everything rendered from one pulled snapshot.
// A View is never mutated after it is published.
type View struct {
	Holdings    []portfolio.Holding
	Samples     []sentiment.Sample
	Metrics     analytics.Metrics
	Cards       []analytics.Card
	Charts      analytics.Charts
	RefreshedAt time.Time
}

// Selection is a snapshot of the row the user selected.
type Selection struct {
	Row     int
	Holding portfolio.Holding
}

// EditForm holds the editable fields populated from a selection.
// A nil number means the field is blank.
type EditForm struct {
	Symbol        string   `json:"symbol"`
	Quantity      *float64 `json:"quantity"`
	PurchasePrice *float64 `json:"purchase_price"`
	CurrentPrice  *float64 `json:"current_price"`
	Category      string   `json:"category"`
}

// FormFromHolding snapshots h into an EditForm.
func FormFromHolding(h portfolio.Holding) EditForm {
	qty, purchase, current := h.Quantity, h.PurchasePrice, h.CurrentPrice
	return EditForm{
		Symbol:        h.Symbol,
		Quantity:      &qty,
		PurchasePrice: &purchase,
		CurrentPrice:  &current,
		Category:      h.Category,
	}
}

// Status is the inline result of the last user action.
type Status struct {
	Text string `json:"text"`
	OK   bool   `json:"ok"`
}
