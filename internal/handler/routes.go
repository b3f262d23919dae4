package handler

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, rewardHandler *RewardHandler, transactionHandler *TransactionHandler, wsHandler *WebSocketHandler) {
	// API version 1
	api := e.Group("/api/v1")

	// Reward report routes
	rewards := api.Group("/rewards")
	rewards.GET("", rewardHandler.GetRewardsReport)
	rewards.POST("/calculate", rewardHandler.CalculateRewards)
	rewards.GET("/recent", rewardHandler.GetRecentRewards)

	// Transaction routes
	transactions := api.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)

	// Live event feed
	e.GET("/ws", wsHandler.HandleWS)
}
