// Package handler はtransactionsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	"cryptofolio/internal/api"
	"cryptofolio/internal/feature/transactions/domain/entity"
	"cryptofolio/internal/feature/transactions/usecase"
)

// TransactionUsecase は取引履歴のユースケースインターフェースです。
type TransactionUsecase interface {
	Record(ctx context.Context, in usecase.RecordInput) (*entity.Transaction, error)
	List(ctx context.Context, symbol string) ([]entity.Transaction, error)
}

// TransactionHandler は /transactions のHTTPリクエストを処理します。
type TransactionHandler struct {
	uc TransactionUsecase
}

// NewTransactionHandler は新しい TransactionHandler を作成します。
func NewTransactionHandler(uc TransactionUsecase) *TransactionHandler {
	return &TransactionHandler{uc: uc}
}

// Create は取引を記録し、201を返します。
func (h *TransactionHandler) Create(c *gin.Context) {
	var req api.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("create transaction validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	tx, err := h.uc.Record(c.Request.Context(), usecase.RecordInput{
		Symbol: req.Symbol,
		Side:   req.Type,
		Amount: *req.Amount,
		Price:  *req.Price,
		Notes:  req.Notes,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidTransaction) {
			slog.Warn("create transaction rejected", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		slog.Error("create transaction failed", "error", err, "symbol", req.Symbol)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, toResponse(*tx))
}

// List は取引履歴を返します。
//
// エンドポイント例:
// GET /api/transactions?symbol=btc
func (h *TransactionHandler) List(c *gin.Context) {
	var symbol string
	if err := runtime.BindQueryParameter("form", true, false, "symbol", c.Request.URL.Query(), &symbol); err != nil {
		slog.Warn("invalid symbol query", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid symbol"})
		return
	}
	txs, err := h.uc.List(c.Request.Context(), symbol)
	if err != nil {
		slog.Error("list transactions failed", "error", err, "symbol", symbol)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}
	out := make([]api.Transaction, 0, len(txs))
	for _, tx := range txs {
		out = append(out, toResponse(tx))
	}
	c.JSON(http.StatusOK, out)
}

func toResponse(tx entity.Transaction) api.Transaction {
	return api.Transaction{
		ID:        tx.ID,
		Symbol:    tx.Symbol,
		Type:      string(tx.Side),
		Amount:    tx.Amount,
		Price:     tx.Price,
		Notes:     tx.Notes,
		Timestamp: tx.Timestamp,
	}
}
