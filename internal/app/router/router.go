package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	dashboardhandler "cryptofolio/internal/feature/dashboard/transport/handler"
	portfoliohandler "cryptofolio/internal/feature/portfolio/transport/handler"
	sentimenthandler "cryptofolio/internal/feature/sentiment/transport/handler"
	transactionhandler "cryptofolio/internal/feature/transactions/transport/handler"
	"cryptofolio/internal/platform/http/handler"
	"cryptofolio/internal/platform/http/middleware"
)

// NewRouter はリソースAPIのルーティングを構築します。全ルートは /api 配下です。
func NewRouter(portfolio *portfoliohandler.PortfolioHandler, sentiment *sentimenthandler.SentimentHandler,
	transactions *transactionhandler.TransactionHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog())

	// どのオリジンからも呼び出せる
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders:   []string{middleware.RequestIDHeader},
	}))

	api := r.Group("/api")
	{
		// 導通確認用
		handler.RegisterHealth(api, "/health")

		api.GET("/portfolio", portfolio.List)
		api.POST("/portfolio", portfolio.Create)
		api.GET("/portfolio/:token", portfolio.Get)
		api.PUT("/portfolio/:token", portfolio.Update)
		api.DELETE("/portfolio/:token", portfolio.Delete)

		api.GET("/sentiment", sentiment.List)
		api.POST("/sentiment", sentiment.Create)

		api.GET("/transactions", transactions.List)
		api.POST("/transactions", transactions.Create)
	}

	return r
}

// NewDashboardRouter はダッシュボードのルーティングを構築します。
func NewDashboardRouter(dash *dashboardhandler.DashboardHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog())
	r.SetHTMLTemplate(dashboardhandler.Template())

	r.GET("/", dash.Page)
	r.GET("/api/view", dash.View)
	r.GET("/charts/:file", dash.Chart)
	r.POST("/select", dash.Select)
	r.POST("/actions", dash.Act)
	r.POST("/holdings", dash.Add)
	handler.RegisterHealth(r, "/health")

	return r
}
