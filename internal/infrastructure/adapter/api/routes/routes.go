package routes

import (
	coreport "gift-economy/internal/domain/port/core"
	"gift-economy/internal/infrastructure/adapter/api/handler"
	"gift-economy/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all the routes for the API
func SetupRoutes(
	router *gin.Engine,
	authHandler *handler.AuthHandler,
	giftHandler *handler.GiftHandler,
	rewardHandler *handler.RewardHandler,
	adminHandler *handler.AdminHandler,
) {
	// Auth routes
	authRoutes := router.Group("/auth")
	{
		// POST /auth/register
		authRoutes.POST("/register", authHandler.Register)

		// POST /auth/login
		authRoutes.POST("/login", authHandler.Login)
	}

	// Gift routes
	giftRoutes := router.Group("/gifts")
	{
		// GET /gifts
		giftRoutes.GET("", giftHandler.List)

		// POST /gifts/:giftId/purchase
		giftRoutes.POST("/:giftId/purchase", giftHandler.Purchase)
	}

	// Reward routes
	rewardRoutes := router.Group("/rewards")
	{
		// GET /rewards/status
		rewardRoutes.GET("/status", rewardHandler.Status)

		// POST /rewards/claim
		rewardRoutes.POST("/claim", rewardHandler.Claim)
	}

	// Admin routes, gated per-request by the use case layer
	adminRoutes := router.Group("/admin")
	{
		// GET /admin/users
		adminRoutes.GET("/users", adminHandler.ListUsers)

		// POST /admin/gifts
		adminRoutes.POST("/gifts", adminHandler.AddGift)

		// POST /admin/users/:username/balance
		adminRoutes.POST("/users/:username/balance", adminHandler.AdjustBalance)

		// POST /admin/users/:username/ban
		adminRoutes.POST("/users/:username/ban", adminHandler.SetBan)

		// POST /admin/users/:username/admin
		adminRoutes.POST("/users/:username/admin", adminHandler.SetAdmin)
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger, allowedOrigins []string) {
	// Apply middlewares in the correct order
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS(allowedOrigins))
}
