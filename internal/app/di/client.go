package di

import (
	"time"

	"cryptofolio/internal/platform/externalapi/portfolioapi"
	platformhttp "cryptofolio/internal/platform/http"
)

// NewPortfolioClient creates a resource API client with a configured HTTP client.
func NewPortfolioClient(baseURL string, timeout time.Duration) *portfolioapi.Client {
	cfg := portfolioapi.Config{BaseURL: baseURL, Timeout: timeout}
	return portfolioapi.NewClient(cfg, platformhttp.NewHTTPClient(timeout))
}
