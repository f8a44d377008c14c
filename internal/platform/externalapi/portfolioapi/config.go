// Package portfolioapi provides a client for the portfolio resource API.
package portfolioapi

import "time"

// Config holds configuration for the resource API client.
type Config struct {
	BaseURL string        // Base URL including the /api prefix (e.g., "http://127.0.0.1:8000/api")
	Timeout time.Duration // HTTP request timeout
}
