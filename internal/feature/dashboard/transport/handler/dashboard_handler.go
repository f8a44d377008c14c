// Package handler はダッシュボードのWeb UIとJSONエンドポイントを提供します。
package handler

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"cryptofolio/internal/api"
	analytics "cryptofolio/internal/feature/analytics/domain/entity"
	"cryptofolio/internal/feature/dashboard/adapters/chartpng"
	"cryptofolio/internal/feature/dashboard/domain/entity"
	"cryptofolio/internal/feature/dashboard/usecase"
)

//go:embed templates/*.html
var templates embed.FS

// Loop はハンドラーが利用するリコンシリエーションループの操作です。
type Loop interface {
	View() *entity.View
	State() entity.State
	Selection() *entity.Selection
	Form() entity.EditForm
	Status() entity.Status
	Select(row int, id int64) error
	Act(ctx context.Context, req usecase.ActionRequest) (entity.Status, error)
	AddHolding(ctx context.Context, req usecase.AddRequest) entity.Status
}

// DashboardHandler はダッシュボードのHTTPリクエストを処理します。
type DashboardHandler struct {
	loop    Loop
	refresh time.Duration
}

// NewDashboardHandler は新しい DashboardHandler を作成します。refresh はブラウザの再読み込み間隔です。
func NewDashboardHandler(loop Loop, refresh time.Duration) *DashboardHandler {
	return &DashboardHandler{loop: loop, refresh: refresh}
}

// Template parses the embedded page template for gin's HTML renderer.
func Template() *template.Template {
	return template.Must(template.New("").ParseFS(templates, "templates/*.html"))
}

// Row is one holdings table row.
type Row struct {
	ID            int64   `json:"id"`
	Symbol        string  `json:"crypto_symbol"`
	Name          string  `json:"crypto_name"`
	Quantity      float64 `json:"quantity"`
	PurchasePrice float64 `json:"purchase_price"`
	CurrentPrice  float64 `json:"current_price"`
	MarketValue   float64 `json:"market_value"`
	GainLoss      float64 `json:"gain_loss"`
	Category      string  `json:"category"`
	Selected      bool    `json:"selected"`
}

// ViewResponse is the JSON form of the rendered snapshot.
type ViewResponse struct {
	State       entity.State      `json:"state"`
	RefreshedAt *time.Time        `json:"refreshed_at"`
	Metrics     analytics.Metrics `json:"metrics"`
	Cards       []analytics.Card  `json:"cards"`
	Charts      *analytics.Charts `json:"charts"`
	Table       []Row             `json:"table"`
	Selection   *int              `json:"selection"`
	Form        entity.EditForm   `json:"form"`
	Status      entity.Status     `json:"status"`
}

type namedChart struct {
	Name string
	analytics.Marker
}

type page struct {
	ViewResponse
	Rows          []Row
	Charts        []namedChart
	Stamp         int64
	RefreshMillis int64
}

type selectRequest struct {
	Row *int   `json:"row" binding:"required"`
	ID  *int64 `json:"id"`
}

type actionRequest struct {
	Trigger      string   `json:"trigger"`
	Symbol       string   `json:"symbol"`
	Quantity     *float64 `json:"quantity"`
	CurrentPrice *float64 `json:"current_price"`
	Category     string   `json:"category"`
}

type addRequest struct {
	Symbol        string   `json:"symbol"`
	Quantity      *float64 `json:"quantity"`
	PurchasePrice *float64 `json:"purchase_price"`
	CurrentPrice  *float64 `json:"current_price"`
}

// Page はダッシュボードのHTMLを返します。
func (h *DashboardHandler) Page(c *gin.Context) {
	v := h.snapshot()
	p := page{
		ViewResponse:  v,
		Rows:          v.Table,
		Stamp:         time.Now().UnixNano(),
		RefreshMillis: h.refresh.Milliseconds(),
	}
	if v.Charts != nil {
		p.Charts = []namedChart{
			{Name: "allocation", Marker: v.Charts.Allocation.Marker},
			{Name: "gainloss", Marker: v.Charts.GainLoss.Marker},
			{Name: "prices", Marker: v.Charts.Prices.Marker},
			{Name: "sentiment", Marker: v.Charts.Sentiment.Marker},
		}
	}
	c.Header("Cache-Control", "no-store")
	c.HTML(http.StatusOK, "dashboard", p)
}

// View は描画済みスナップショットをJSONで返します。
func (h *DashboardHandler) View(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, h.snapshot())
}

// Chart は /charts/{name}.png を描画します。データがない場合は204を返します。
func (h *DashboardHandler) Chart(c *gin.Context) {
	name, ok := strings.CutSuffix(c.Param("file"), ".png")
	if !ok {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "unknown chart"})
		return
	}
	v := h.loop.View()
	if v == nil {
		c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Error: "dashboard has not rendered yet"})
		return
	}
	png, err := chartpng.Render(name, v.Charts)
	switch {
	case errors.Is(err, chartpng.ErrNothingToDraw):
		c.Status(http.StatusNoContent)
		return
	case errors.Is(err, chartpng.ErrUnknownChart):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
		return
	case err != nil:
		slog.Error("chart render failed", "chart", name, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", png)
}

// Select は {"row": n, "id": holdingID} の行を選択します。n が負なら選択を解除します。
// 描画後に表が入れ替わり n 行目の ID が一致しない場合は409を返します。
func (h *DashboardHandler) Select(c *gin.Context) {
	var req selectRequest
	if err := c.ShouldBindWith(&req, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	var id int64
	if *req.Row >= 0 {
		if req.ID == nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "id is required"})
			return
		}
		id = *req.ID
	}
	err := h.loop.Select(*req.Row, id)
	switch {
	case errors.Is(err, usecase.ErrStaleRow):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.snapshot())
}

// Act は更新/削除ボタンの操作を処理します。トリガーがない場合は何もせず204を返します。
func (h *DashboardHandler) Act(c *gin.Context) {
	var req actionRequest
	if err := c.ShouldBindWith(&req, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	st, err := h.loop.Act(c.Request.Context(), usecase.ActionRequest{
		Trigger:      usecase.ParseTrigger(req.Trigger),
		Symbol:       req.Symbol,
		Quantity:     req.Quantity,
		CurrentPrice: req.CurrentPrice,
		Category:     req.Category,
	})
	if errors.Is(err, usecase.ErrNoTrigger) {
		c.Status(http.StatusNoContent)
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, st)
}

// Add は追加フォームを処理します。
func (h *DashboardHandler) Add(c *gin.Context) {
	var req addRequest
	if err := c.ShouldBindWith(&req, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	st := h.loop.AddHolding(c.Request.Context(), usecase.AddRequest{
		Symbol:        req.Symbol,
		Quantity:      req.Quantity,
		PurchasePrice: req.PurchasePrice,
		CurrentPrice:  req.CurrentPrice,
	})
	c.JSON(http.StatusOK, st)
}

func (h *DashboardHandler) snapshot() ViewResponse {
	out := ViewResponse{
		State:  h.loop.State(),
		Form:   h.loop.Form(),
		Status: h.loop.Status(),
		Cards:  []analytics.Card{},
		Table:  []Row{},
	}
	sel := h.loop.Selection()
	if sel != nil {
		row := sel.Row
		out.Selection = &row
	}
	v := h.loop.View()
	if v == nil {
		return out
	}
	at := v.RefreshedAt
	out.RefreshedAt = &at
	out.Metrics = v.Metrics
	out.Cards = v.Cards
	charts := v.Charts
	out.Charts = &charts
	for i, x := range v.Holdings {
		out.Table = append(out.Table, Row{
			ID:            x.ID,
			Symbol:        x.Symbol,
			Name:          x.Name,
			Quantity:      x.Quantity,
			PurchasePrice: x.PurchasePrice,
			CurrentPrice:  x.CurrentPrice,
			MarketValue:   x.MarketValue(),
			GainLoss:      x.GainLoss(),
			Category:      x.Category,
			Selected:      sel != nil && sel.Row == i && sel.Holding.Symbol == x.Symbol,
		})
	}
	return out
}
