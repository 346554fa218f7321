package router

import (
	"sunumarche/internal/adapter/api/handler"
	"sunumarche/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupTrendRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	trendHandler := handler.GetTrendHandler()

	// Market trends are readable without an account
	e.GET("/v1/trends", trendHandler.GetTrends)

	submissions := e.Group("/v1/trends/submissions")
	submissions.Use(authMiddleware.Authenticate)
	submissions.POST("", trendHandler.SubmitPrice)
}
