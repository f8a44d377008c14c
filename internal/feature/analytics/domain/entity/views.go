// Package entity defines the derived views rendered by the dashboard.
package entity

// Metrics is the portfolio-level valuation summary.
type Metrics struct {
	TotalValue         float64 `json:"total_value"`
	TotalInvested      float64 `json:"total_invested"`
	TotalGainLoss      float64 `json:"total_gain_loss"`
	GainLossPercentage float64 `json:"gain_loss_percentage"`
}

// Direction is the sign-derived category of a gain/loss bar.
type Direction string

const (
	DirectionGain Direction = "gain"
	DirectionLoss Direction = "loss"
)

// Marker is embedded in every chart. When Empty is true the series are nil
// and Message explains why.
type Marker struct {
	Empty   bool   `json:"empty"`
	Message string `json:"message,omitempty"`
}

// Slice is one allocation wedge.
type Slice struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// AllocationChart holds market value per holding.
type AllocationChart struct {
	Marker
	Slices []Slice `json:"slices,omitempty"`
}

// Bar is one per-holding gain/loss bar.
type Bar struct {
	Label     string    `json:"label"`
	Value     float64   `json:"value"`
	Direction Direction `json:"direction"`
	Color     string    `json:"color"`
}

// GainLossChart holds per-holding unrealised gain/loss.
type GainLossChart struct {
	Marker
	Bars []Bar `json:"bars,omitempty"`
}

// PriceComparisonChart holds two parallel series keyed by Labels.
type PriceComparisonChart struct {
	Marker
	Labels   []string  `json:"labels,omitempty"`
	Current  []float64 `json:"current,omitempty"`
	Purchase []float64 `json:"purchase,omitempty"`
}

// Bubble is one sentiment scatter point.
type Bubble struct {
	Label     string  `json:"label"`
	Score     float64 `json:"x"`
	Mentions  int64   `json:"y"`
	Intensity float64 `json:"intensity"`
	Size      int     `json:"size"`
}

// SentimentChart holds the sentiment scatter.
type SentimentChart struct {
	Marker
	Points []Bubble `json:"points,omitempty"`
}

// Charts bundles every chart derived from one snapshot.
type Charts struct {
	Allocation AllocationChart      `json:"allocation"`
	GainLoss   GainLossChart        `json:"gain_loss"`
	Prices     PriceComparisonChart `json:"prices"`
	Sentiment  SentimentChart       `json:"sentiment"`
}

// Card is a formatted metric tile.
type Card struct {
	Title   string `json:"title"`
	Value   string `json:"value"`
	Variant string `json:"variant"`
}
