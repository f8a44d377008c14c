// Package handler はsentimentフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"cryptofolio/internal/api"
	"cryptofolio/internal/feature/sentiment/domain/entity"
	"cryptofolio/internal/feature/sentiment/usecase"
)

// SentimentUsecase はセンチメント操作のユースケースインターフェースです。
type SentimentUsecase interface {
	List(ctx context.Context) ([]entity.Sample, error)
	Record(ctx context.Context, in usecase.RecordInput) (*entity.Sample, error)
}

// SentimentHandler は /sentiment のHTTPリクエストを処理します。
type SentimentHandler struct {
	uc SentimentUsecase
}

// NewSentimentHandler は新しい SentimentHandler を作成します。
func NewSentimentHandler(uc SentimentUsecase) *SentimentHandler {
	return &SentimentHandler{uc: uc}
}

// List は記録済みのセンチメントをすべて返します。
func (h *SentimentHandler) List(c *gin.Context) {
	samples, err := h.uc.List(c.Request.Context())
	if err != nil {
		slog.Error("list sentiment failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}
	out := make([]api.SentimentSample, 0, len(samples))
	for _, s := range samples {
		out = append(out, toResponse(s))
	}
	c.JSON(http.StatusOK, out)
}

// Create はセンチメントを記録し、201を返します。
func (h *SentimentHandler) Create(c *gin.Context) {
	var req api.CreateSentimentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("create sentiment validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	sample, err := h.uc.Record(c.Request.Context(), usecase.RecordInput{
		Symbol:             req.Symbol,
		Score:              *req.Score,
		MentionCount:       *req.MentionCount,
		PositivePercentage: *req.PositivePercentage,
		Source:             req.Source,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidSentiment) {
			slog.Warn("create sentiment rejected", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		slog.Error("create sentiment failed", "error", err, "symbol", req.Symbol)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, toResponse(*sample))
}

func toResponse(s entity.Sample) api.SentimentSample {
	return api.SentimentSample{
		ID:                 s.ID,
		Symbol:             s.Symbol,
		Score:              s.Score,
		MentionCount:       s.MentionCount,
		PositivePercentage: s.PositivePercentage,
		Source:             s.Source,
		Date:               s.ObservedAt,
	}
}
