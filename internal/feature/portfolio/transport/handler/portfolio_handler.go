// Package handler はportfolioフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	"cryptofolio/internal/api"
	"cryptofolio/internal/feature/portfolio/domain/entity"
	"cryptofolio/internal/feature/portfolio/usecase"
)

// PortfolioUsecase は保有銘柄操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type PortfolioUsecase interface {
	List(ctx context.Context) ([]entity.Holding, error)
	Get(ctx context.Context, token string) (*entity.Holding, error)
	Create(ctx context.Context, in usecase.CreateHoldingInput) (*entity.Holding, error)
	Update(ctx context.Context, token string, patch entity.HoldingPatch) (*entity.Holding, error)
	Delete(ctx context.Context, token string) error
}

// PortfolioHandler は /portfolio 配下のHTTPリクエストを処理します。
type PortfolioHandler struct {
	uc PortfolioUsecase
}

// NewPortfolioHandler は指定されたusecaseでPortfolioHandlerの新しいインスタンスを生成します。
func NewPortfolioHandler(uc PortfolioUsecase) *PortfolioHandler {
	return &PortfolioHandler{uc: uc}
}

// List は全保有銘柄を返します。
//
// エンドポイント例:
// GET /api/portfolio
func (h *PortfolioHandler) List(c *gin.Context) {
	holdings, err := h.uc.List(c.Request.Context())
	if err != nil {
		slog.Error("list holdings failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}
	out := make([]api.Holding, 0, len(holdings))
	for _, x := range holdings {
		out = append(out, toResponse(x))
	}
	c.JSON(http.StatusOK, out)
}

// Get はIDまたはシンボルで指定された保有銘柄を返します。
//
// エンドポイント例:
// GET /api/portfolio/BTC, GET /api/portfolio/3
func (h *PortfolioHandler) Get(c *gin.Context) {
	token, ok := bindToken(c)
	if !ok {
		return
	}
	holding, err := h.uc.Get(c.Request.Context(), token)
	if err != nil {
		writeError(c, "get holding failed", token, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(*holding))
}

// Create は新しい保有銘柄を登録します。
// - バリデーションエラー時は400を返却
// - シンボル重複時は400を返却
// - 成功時は201を返却
func (h *PortfolioHandler) Create(c *gin.Context) {
	var req api.CreateHoldingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("create holding validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	holding, err := h.uc.Create(c.Request.Context(), usecase.CreateHoldingInput{
		Symbol:        req.Symbol,
		Name:          req.Name,
		Quantity:      *req.Quantity,
		PurchasePrice: *req.PurchasePrice,
		CurrentPrice:  *req.CurrentPrice,
		Category:      req.Category,
	})
	if err != nil {
		writeError(c, "create holding failed", req.Symbol, err)
		return
	}
	slog.Info("holding created", "symbol", holding.Symbol, "id", holding.ID)
	c.JSON(http.StatusCreated, toResponse(*holding))
}

// Update は指定フィールドのみを更新します。省略されたフィールドは変更されません。
func (h *PortfolioHandler) Update(c *gin.Context) {
	token, ok := bindToken(c)
	if !ok {
		return
	}
	var req api.UpdateHoldingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("update holding validation failed", "error", err, "token", token, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	holding, err := h.uc.Update(c.Request.Context(), token, entity.HoldingPatch{
		Quantity:     req.Quantity,
		CurrentPrice: req.CurrentPrice,
		Category:     req.Category,
	})
	if err != nil {
		writeError(c, "update holding failed", token, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(*holding))
}

// Delete は保有銘柄を削除し、204を返します。
func (h *PortfolioHandler) Delete(c *gin.Context) {
	token, ok := bindToken(c)
	if !ok {
		return
	}
	if err := h.uc.Delete(c.Request.Context(), token); err != nil {
		writeError(c, "delete holding failed", token, err)
		return
	}
	slog.Info("holding deleted", "token", token)
	c.Status(http.StatusNoContent)
}

// bindToken はパスパラメータ token を取り出します。
// gin の c.Param はデコード済みのため、runtime 側のデコードで "%" が二重に解釈されないよう再エスケープして渡します。
func bindToken(c *gin.Context) (string, bool) {
	var token string
	err := runtime.BindStyledParameterWithOptions("simple", "token", url.PathEscape(c.Param("token")), &token,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil || token == "" {
		slog.Warn("invalid token parameter", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid token"})
		return "", false
	}
	return token, true
}

// writeError はユースケースのエラーをHTTPステータスに変換して書き込みます。
func writeError(c *gin.Context, msg, target string, err error) {
	switch {
	case errors.Is(err, usecase.ErrHoldingNotFound):
		slog.Warn(msg, "error", err, "target", target, "remote_addr", c.ClientIP())
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Holding not found"})
	case errors.Is(err, usecase.ErrHoldingAlreadyExists):
		slog.Warn(msg, "error", err, "target", target, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Crypto already exists in portfolio"})
	case errors.Is(err, usecase.ErrInvalidHolding):
		slog.Warn(msg, "error", err, "target", target, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	default:
		slog.Error(msg, "error", err, "target", target)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
	}
}

func toResponse(h entity.Holding) api.Holding {
	return api.Holding{
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
