// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cryptofolio/internal/api"
)

// サービス識別子。ヘルスチェックの応答に含めます。
const (
	ServiceName    = "Crypto Portfolio API"
	ServiceVersion = "1.0.0"
)

// Health はサービスヘルスチェックを処理します。キャッシュは常に無効です。
func Health(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
	case http.MethodOptions:
		c.Header("Allow", "GET, HEAD, OPTIONS")
		c.Status(http.StatusNoContent)
	default:
		c.JSON(http.StatusOK, api.HealthResponse{
			Status:  "healthy",
			Service: ServiceName,
			Version: ServiceVersion,
		})
	}
}

// RegisterHealth は GET/HEAD/OPTIONS の3メソッドで Health を登録します。
func RegisterHealth(r gin.IRoutes, path string) {
	r.GET(path, Health)
	r.HEAD(path, Health)
	r.OPTIONS(path, Health)
}
