package portfolioapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cryptofolio/internal/api"
	portfolio "cryptofolio/internal/feature/portfolio/domain/entity"
	sentiment "cryptofolio/internal/feature/sentiment/domain/entity"
	platformhttp "cryptofolio/internal/platform/http"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL + "/api/"}, platformhttp.NewHTTPClient(2*time.Second))
}

func TestClient_ListHoldings(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/portfolio", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{"id":1,"crypto_symbol":"BTC","crypto_name":"Bitcoin","quantity":0.5,"purchase_price":45000,"current_price":52000,"category":"major","created_at":"2026-10-17T09:00:00Z","updated_at":"2026-10-17T09:00:00Z"}]`)
	})

	got, err := c.ListHoldings(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "BTC", got[0].Symbol)
	assert.Equal(t, 26000.0, got[0].MarketValue())
}

func TestClient_UpdateHolding_SendsOnlyPresentFields(t *testing.T) {
	t.Parallel()

	var body map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/portfolio/BTC", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = io.WriteString(w, `{"id":1,"crypto_symbol":"BTC","quantity":2}`)
	})

	qty := 2.0
	got, err := c.UpdateHolding(context.Background(), "BTC", portfolio.HoldingPatch{Quantity: &qty})

	require.NoError(t, err)
	assert.Equal(t, 2.0, got.Quantity)
	assert.Equal(t, map[string]any{"quantity": 2.0}, body)
}

func TestClient_StatusErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		status     int
		body       string
		wantErr    error
		wantDetail string
	}{
		{"not found with error body", http.StatusNotFound, `{"error":"Holding not found"}`, api.ErrNotFound, "Holding not found"},
		{"duplicate", http.StatusBadRequest, `{"error":"Crypto already exists in portfolio"}`, api.ErrRejected, "Crypto already exists in portfolio"},
		{"plain text body", http.StatusConflict, `busy`, api.ErrConflict, "busy"},
		{"empty body", http.StatusBadGateway, ``, nil, "Bad Gateway"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			err := c.DeleteHolding(context.Background(), "BTC")

			var se *api.StatusError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.status, se.Status)
			assert.Equal(t, tt.wantDetail, se.Detail)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestClient_DeleteHolding_NoContent(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/portfolio/3", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	assert.NoError(t, c.DeleteHolding(context.Background(), "3"))
}

func TestClient_TransportError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	c := NewClient(Config{BaseURL: srv.URL}, platformhttp.NewHTTPClient(time.Second))

	_, err := c.ListSentiment(context.Background())

	assert.ErrorIs(t, err, api.ErrTransport)
}

func TestClient_Timeout(t *testing.T) {
	t.Parallel()

	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	t.Cleanup(func() {
		close(block)
		srv.Close()
	})
	c := NewClient(Config{BaseURL: srv.URL}, platformhttp.NewHTTPClient(50*time.Millisecond))

	_, err := c.ListHoldings(context.Background())

	assert.ErrorIs(t, err, api.ErrTransport)
}

func TestClient_CreateHoldingAndSentiment(t *testing.T) {
	t.Parallel()

	var paths []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusCreated)
		switch r.URL.Path {
		case "/api/portfolio":
			assert.Equal(t, "DOGE", body["crypto_symbol"])
			assert.Equal(t, 0.0, body["quantity"])
			_, _ = io.WriteString(w, `{"id":11,"crypto_symbol":"DOGE"}`)
		case "/api/sentiment":
			assert.Equal(t, 0.75, body["sentiment_score"])
			_, _ = io.WriteString(w, `{"id":1}`)
		}
	})

	h, err := c.CreateHolding(context.Background(), portfolio.Holding{Symbol: "DOGE", Name: "DOGE", Category: "user_added"})
	require.NoError(t, err)
	assert.Equal(t, int64(11), h.ID)

	require.NoError(t, c.CreateSentiment(context.Background(), sentiment.Sample{Symbol: "BTC", Score: 0.75, Source: "twitter"}))
	assert.Equal(t, []string{"/api/portfolio", "/api/sentiment"}, paths)
}
