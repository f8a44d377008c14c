package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cryptofolio/internal/feature/dashboard/domain/entity"
	"cryptofolio/internal/feature/dashboard/usecase"
	portfolio "cryptofolio/internal/feature/portfolio/domain/entity"
	sentiment "cryptofolio/internal/feature/sentiment/domain/entity"
)

// fakeAPI はメモリ上の保有銘柄を返すPortfolioAPIです。
type fakeAPI struct {
	holdings []portfolio.Holding
	samples  []sentiment.Sample
	updated  []string
	deleted  []string
}

func (f *fakeAPI) ListHoldings(ctx context.Context) ([]portfolio.Holding, error) {
	return append([]portfolio.Holding(nil), f.holdings...), nil
}

func (f *fakeAPI) CreateHolding(ctx context.Context, h portfolio.Holding) (*portfolio.Holding, error) {
	h.ID = int64(len(f.holdings) + 1)
	f.holdings = append(f.holdings, h)
	return &h, nil
}

func (f *fakeAPI) UpdateHolding(ctx context.Context, token string, patch portfolio.HoldingPatch) (*portfolio.Holding, error) {
	f.updated = append(f.updated, token)
	return &portfolio.Holding{Symbol: token}, nil
}

func (f *fakeAPI) DeleteHolding(ctx context.Context, token string) error {
	f.deleted = append(f.deleted, token)
	return nil
}

func (f *fakeAPI) ListSentiment(ctx context.Context) ([]sentiment.Sample, error) {
	return f.samples, nil
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{holdings: []portfolio.Holding{
		{ID: 1, Symbol: "BTC", Name: "Bitcoin", Quantity: 0.5, PurchasePrice: 45000, CurrentPrice: 52000, Category: "major"},
		{ID: 2, Symbol: "ETH", Name: "Ethereum", Quantity: 3, PurchasePrice: 2500, CurrentPrice: 3100, Category: "major"},
	}}
}

func setup(t *testing.T, api *fakeAPI, tick bool) (*gin.Engine, *usecase.Loop) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	loop := usecase.NewLoop(api)
	if tick {
		require.NoError(t, loop.Tick(context.Background()))
	}
	h := NewDashboardHandler(loop, 5*time.Second)
	r := gin.New()
	r.SetHTMLTemplate(Template())
	r.GET("/", h.Page)
	r.GET("/api/view", h.View)
	r.GET("/charts/:file", h.Chart)
	r.POST("/select", h.Select)
	r.POST("/actions", h.Act)
	r.POST("/holdings", h.Add)
	return r, loop
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req, _ = http.NewRequest(method, path, nil)
	} else {
		req, _ = http.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

func TestDashboardHandler_Page(t *testing.T) {
	t.Parallel()

	r, _ := setup(t, newFakeAPI(), true)

	w := do(r, http.MethodGet, "/", "")

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Total Portfolio Value")
	assert.Contains(t, body, "$35,300.00")
	assert.Contains(t, body, "/charts/allocation.png")
	assert.Contains(t, body, "No sentiment data available")
	assert.Contains(t, body, "Bitcoin")
}

func TestDashboardHandler_View_BeforeFirstTick(t *testing.T) {
	t.Parallel()

	r, _ := setup(t, newFakeAPI(), false)

	w := do(r, http.MethodGet, "/api/view", "")

	require.Equal(t, http.StatusOK, w.Code)
	var got ViewResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, entity.StateIdle, got.State)
	assert.Empty(t, got.Table)
	assert.Nil(t, got.RefreshedAt)
	assert.Nil(t, got.Charts)
}

func TestDashboardHandler_Chart(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		tick           bool
		path           string
		expectedStatus int
	}{
		{"not rendered yet", false, "/charts/allocation.png", http.StatusServiceUnavailable},
		{"gain/loss png", true, "/charts/gainloss.png", http.StatusOK},
		{"empty sentiment", true, "/charts/sentiment.png", http.StatusNoContent},
		{"unknown chart", true, "/charts/candles.png", http.StatusNotFound},
		{"missing extension", true, "/charts/prices", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r, _ := setup(t, newFakeAPI(), tt.tick)

			w := do(r, http.MethodGet, tt.path, "")

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
			}
		})
	}
}

func TestDashboardHandler_Select(t *testing.T) {
	t.Parallel()

	r, loop := setup(t, newFakeAPI(), true)

	w := do(r, http.MethodPost, "/select", `{"row":1,"id":2}`)
	require.Equal(t, http.StatusOK, w.Code)
	var got ViewResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.NotNil(t, got.Selection)
	assert.Equal(t, 1, *got.Selection)
	assert.True(t, got.Table[1].Selected)
	assert.Equal(t, "ETH", got.Form.Symbol)

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/select", `{"row":9,"id":2}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/select", `{"row":1}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/select", `{}`).Code)

	w = do(r, http.MethodPost, "/select", `{"row":-1}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, loop.Selection())
}

func TestDashboardHandler_Select_TableChanged(t *testing.T) {
	t.Parallel()

	api := newFakeAPI()
	r, loop := setup(t, api, true)
	// 描画後に BTC が消え、[ETH, SOL] に変わる
	api.holdings = []portfolio.Holding{
		api.holdings[1],
		{ID: 3, Symbol: "SOL", Name: "Solana", Quantity: 50, PurchasePrice: 80, CurrentPrice: 120, Category: "altcoin"},
	}
	require.NoError(t, loop.Tick(context.Background()))

	w := do(r, http.MethodPost, "/select", `{"row":1,"id":2}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Nil(t, loop.Selection())

	w = do(r, http.MethodPost, "/actions", `{"trigger":"delete"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, api.deleted)
	assert.Contains(t, w.Body.String(), "Select a holding first.")
}

func TestDashboardHandler_Act(t *testing.T) {
	t.Parallel()

	api := newFakeAPI()
	r, loop := setup(t, api, true)
	require.NoError(t, loop.Select(0, 1))

	// 画面読み込み時のようにトリガーなしで送られても何もしない
	w := do(r, http.MethodPost, "/actions", `{"symbol":"ETH","quantity":1}`)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, api.updated)

	w = do(r, http.MethodPost, "/actions", `{"trigger":"update","symbol":"ETH","quantity":1}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"text":"Updated BTC.","ok":true}`, w.Body.String())
	assert.Equal(t, []string{"BTC"}, api.updated)
}

func TestDashboardHandler_Add(t *testing.T) {
	t.Parallel()

	api := newFakeAPI()
	r, loop := setup(t, api, true)

	w := do(r, http.MethodPost, "/holdings", `{"symbol":"doge"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"text":"Please fill symbol, quantity, and purchase price","ok":false}`, w.Body.String())

	w = do(r, http.MethodPost, "/holdings", `{"symbol":"doge","quantity":100,"purchase_price":0.1}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"text":"Added DOGE.","ok":true}`, w.Body.String())
	assert.Len(t, loop.View().Holdings, 3)
}
