// Package api defines the JSON wire types shared by the resource API and its clients.
package api

import "time"

// Holding is the canonical representation of a portfolio holding.
type Holding struct {
	ID            int64     `json:"id"`
	Symbol        string    `json:"crypto_symbol"`
	Name          string    `json:"crypto_name"`
	Quantity      float64   `json:"quantity"`
	PurchasePrice float64   `json:"purchase_price"`
	CurrentPrice  float64   `json:"current_price"`
	Category      string    `json:"category"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CreateHoldingRequest is the body of POST /portfolio.
// Numeric fields are pointers so that an explicit zero is distinguishable from a missing field.
type CreateHoldingRequest struct {
	Symbol        string   `json:"crypto_symbol" binding:"required,max=10"`
	Name          string   `json:"crypto_name" binding:"required,max=50"`
	Quantity      *float64 `json:"quantity" binding:"required,gte=0"`
	PurchasePrice *float64 `json:"purchase_price" binding:"required,gte=0"`
	CurrentPrice  *float64 `json:"current_price" binding:"required,gte=0"`
	Category      string   `json:"category" binding:"required,max=20"`
}

// UpdateHoldingRequest is the body of PUT /portfolio/{token}. Absent fields are left untouched.
type UpdateHoldingRequest struct {
	Quantity     *float64 `json:"quantity,omitempty" binding:"omitempty,gte=0"`
	CurrentPrice *float64 `json:"current_price,omitempty" binding:"omitempty,gte=0"`
	Category     *string  `json:"category,omitempty" binding:"omitempty,max=20"`
}

// SentimentSample is a stored market sentiment observation.
type SentimentSample struct {
	ID                 int64     `json:"id"`
	Symbol             string    `json:"crypto_symbol"`
	Score              float64   `json:"sentiment_score"`
	MentionCount       int64     `json:"mention_count"`
	PositivePercentage float64   `json:"positive_percentage"`
	Source             string    `json:"source"`
	Date               time.Time `json:"date"`
}

// CreateSentimentRequest is the body of POST /sentiment.
type CreateSentimentRequest struct {
	Symbol             string   `json:"crypto_symbol" binding:"required,max=10"`
	Score              *float64 `json:"sentiment_score" binding:"required,gte=-1,lte=1"`
	MentionCount       *int64   `json:"mention_count" binding:"required,gte=0"`
	PositivePercentage *float64 `json:"positive_percentage" binding:"required,gte=0,lte=100"`
	Source             string   `json:"source" binding:"required,max=20"`
}

// Transaction is a stored buy/sell audit record.
type Transaction struct {
	ID        int64     `json:"id"`
	Symbol    string    `json:"crypto_symbol"`
	Type      string    `json:"transaction_type"`
	Amount    float64   `json:"amount"`
	Price     float64   `json:"price"`
	Notes     *string   `json:"notes"`
	Timestamp time.Time `json:"timestamp"`
}

// CreateTransactionRequest is the body of POST /transactions.
type CreateTransactionRequest struct {
	Symbol string   `json:"crypto_symbol" binding:"required,max=10"`
	Type   string   `json:"transaction_type" binding:"required"`
	Amount *float64 `json:"amount" binding:"required"`
	Price  *float64 `json:"price" binding:"required"`
	Notes  *string  `json:"notes"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}
