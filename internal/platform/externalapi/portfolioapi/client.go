package portfolioapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"cryptofolio/internal/api"
	portfolio "cryptofolio/internal/feature/portfolio/domain/entity"
	sentiment "cryptofolio/internal/feature/sentiment/domain/entity"
)

// maxErrorBody は非2xx応答から読み取る本文の上限です。
const maxErrorBody = 4 << 10

// Client はリソースAPIを呼び出すHTTPクライアントです。
// 非2xx応答は *api.StatusError、通信失敗は api.ErrTransport でラップして返します。
type Client struct {
	cfg    Config
	client *http.Client
}

// NewClient は指定された設定とHTTPクライアントでClientを生成します。
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client}
}

// ListHoldings は GET /portfolio を呼び出します。
func (c *Client) ListHoldings(ctx context.Context) ([]portfolio.Holding, error) {
	var body []api.Holding
	if err := c.do(ctx, http.MethodGet, "/portfolio", nil, http.StatusOK, &body); err != nil {
		return nil, err
	}
	out := make([]portfolio.Holding, 0, len(body))
	for _, h := range body {
		out = append(out, toHolding(h))
	}
	return out, nil
}

// GetHolding は GET /portfolio/{token} を呼び出します。
func (c *Client) GetHolding(ctx context.Context, token string) (*portfolio.Holding, error) {
	var body api.Holding
	if err := c.do(ctx, http.MethodGet, "/portfolio/"+url.PathEscape(token), nil, http.StatusOK, &body); err != nil {
		return nil, err
	}
	h := toHolding(body)
	return &h, nil
}

// CreateHolding は POST /portfolio を呼び出します。
func (c *Client) CreateHolding(ctx context.Context, h portfolio.Holding) (*portfolio.Holding, error) {
	req := api.CreateHoldingRequest{
		Symbol:        h.Symbol,
		Name:          h.Name,
		Quantity:      &h.Quantity,
		PurchasePrice: &h.PurchasePrice,
		CurrentPrice:  &h.CurrentPrice,
		Category:      h.Category,
	}
	var body api.Holding
	if err := c.do(ctx, http.MethodPost, "/portfolio", req, http.StatusCreated, &body); err != nil {
		return nil, err
	}
	created := toHolding(body)
	return &created, nil
}

// UpdateHolding は PUT /portfolio/{token} を呼び出します。nilのフィールドは送信しません。
func (c *Client) UpdateHolding(ctx context.Context, token string, patch portfolio.HoldingPatch) (*portfolio.Holding, error) {
	req := api.UpdateHoldingRequest{
		Quantity:     patch.Quantity,
		CurrentPrice: patch.CurrentPrice,
		Category:     patch.Category,
	}
	var body api.Holding
	if err := c.do(ctx, http.MethodPut, "/portfolio/"+url.PathEscape(token), req, http.StatusOK, &body); err != nil {
		return nil, err
	}
	updated := toHolding(body)
	return &updated, nil
}

// DeleteHolding は DELETE /portfolio/{token} を呼び出します。
func (c *Client) DeleteHolding(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodDelete, "/portfolio/"+url.PathEscape(token), nil, http.StatusNoContent, nil)
}

// ListSentiment は GET /sentiment を呼び出します。
func (c *Client) ListSentiment(ctx context.Context) ([]sentiment.Sample, error) {
	var body []api.SentimentSample
	if err := c.do(ctx, http.MethodGet, "/sentiment", nil, http.StatusOK, &body); err != nil {
		return nil, err
	}
	out := make([]sentiment.Sample, 0, len(body))
	for _, s := range body {
		out = append(out, sentiment.Sample{
			ID:                 s.ID,
			Symbol:             s.Symbol,
			Score:              s.Score,
			MentionCount:       s.MentionCount,
			PositivePercentage: s.PositivePercentage,
			Source:             s.Source,
			ObservedAt:         s.Date,
		})
	}
	return out, nil
}

// CreateSentiment は POST /sentiment を呼び出します。
func (c *Client) CreateSentiment(ctx context.Context, s sentiment.Sample) error {
	req := api.CreateSentimentRequest{
		Symbol:             s.Symbol,
		Score:              &s.Score,
		MentionCount:       &s.MentionCount,
		PositivePercentage: &s.PositivePercentage,
		Source:             s.Source,
	}
	return c.do(ctx, http.MethodPost, "/sentiment", req, http.StatusCreated, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in any, want int, out any) error {
	var reqBody io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reqBody = bytes.NewReader(b)
	}

	u := strings.TrimRight(c.cfg.BaseURL, "/") + path
	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.client.Do(req)
	if err != nil {
		// タイムアウトも通信失敗と同じ扱い
		return fmt.Errorf("%w: %w", api.ErrTransport, err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode != want {
		return statusError(res)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func statusError(res *http.Response) error {
	raw, err := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %w", api.ErrTransport, err)
	}
	detail := strings.TrimSpace(string(raw))
	var body api.ErrorResponse
	if json.Unmarshal(raw, &body) == nil && body.Error != "" {
		detail = body.Error
	}
	if detail == "" {
		detail = http.StatusText(res.StatusCode)
	}
	return &api.StatusError{Status: res.StatusCode, Detail: detail}
}

func toHolding(h api.Holding) portfolio.Holding {
	return portfolio.Holding{
		ID:            h.ID,
		Symbol:        h.Symbol,
		Name:          h.Name,
		Quantity:      h.Quantity,
		PurchasePrice: h.PurchasePrice,
		CurrentPrice:  h.CurrentPrice,
		Category:      h.Category,
		CreatedAt:     h.CreatedAt,
		UpdatedAt:     h.UpdatedAt,
	}
}
