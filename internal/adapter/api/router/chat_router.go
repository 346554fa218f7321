package router

import (
	"sunumarche/internal/adapter/api/handler"
	"sunumarche/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupChatRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	chatHandler := handler.GetChatHandler()

	chats := e.Group("/v1/chats")
	chats.Use(authMiddleware.Authenticate)

	chats.POST("", chatHandler.CreateChat)
	chats.GET("", chatHandler.GetUserChats)
	chats.PUT("/:id/read", chatHandler.MarkChatAsRead)

	chats.GET("/:id/messages", chatHandler.GetChatMessages)
	chats.POST("/:id/messages", chatHandler.SendMessage)
}
