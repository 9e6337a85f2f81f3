package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sortmyai/sortmyai-backend/internal/handler"
	"github.com/sortmyai/sortmyai-backend/internal/middleware"
	"github.com/sortmyai/sortmyai-backend/pkg/jwt"
)

// Setup configures all API routes
func Setup(
	router *gin.Engine,
	authHandler *handler.AuthHandler,
	creatorHandler *handler.CreatorHandler,
	followHandler *handler.FollowHandler,
	conversationHandler *handler.ConversationHandler,
	notificationHandler *handler.NotificationHandler,
	toolHandler *handler.ToolHandler,
	portfolioHandler *handler.PortfolioHandler,
	gamificationHandler *handler.GamificationHandler,
	wsHandler *handler.WSHandler,
	jwtManager *jwt.Manager,
) {
	api := router.Group("/api/v1")

	// Authentication endpoints (no auth required)
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Current account
	me := api.Group("/me", middleware.JWTAuth(jwtManager))
	me.GET("", authHandler.GetMe)
	me.PATCH("", authHandler.UpdateProfile)
	me.GET("/xp", gamificationHandler.GetSummary)
	me.GET("/xp/history", gamificationHandler.GetHistory)
	me.GET("/badges", gamificationHandler.GetBadges)

	// Public creator profiles; viewer identity is optional and only
	// personalizes is_following
	creators := api.Group("/creators")
	creators.GET("/:handle", middleware.OptionalJWTAuth(jwtManager), creatorHandler.GetProfile)
	creators.GET("/:handle/followers", creatorHandler.GetFollowers)
	creators.GET("/:handle/following", creatorHandler.GetFollowing)
	creators.GET("/:handle/portfolio", portfolioHandler.ListByCreator)
	creators.POST("/:handle/recount", middleware.JWTAuth(jwtManager), creatorHandler.Recount)

	// Follow graph
	follows := api.Group("/follows", middleware.JWTAuth(jwtManager))
	follows.POST("/:uid", followHandler.Follow)
	follows.DELETE("/:uid", followHandler.Unfollow)
	follows.GET("/:uid/status", followHandler.GetStatus)

	// Messaging
	api.POST("/messages", middleware.JWTAuth(jwtManager), conversationHandler.SendMessage)
	conversations := api.Group("/conversations", middleware.JWTAuth(jwtManager))
	conversations.GET("", conversationHandler.GetPreviews)
	conversations.GET("/:id/messages", conversationHandler.GetMessages)
	conversations.POST("/:id/respond", conversationHandler.Respond)
	conversations.POST("/:id/read", conversationHandler.MarkRead)

	// Notifications
	api.GET("/notifications/summary", middleware.JWTAuth(jwtManager), notificationHandler.GetSummary)

	// AI tool catalog
	tools := api.Group("/tools")
	tools.GET("", toolHandler.List)
	tools.GET("/search", toolHandler.Search)
	tools.GET("/:slug", middleware.OptionalJWTAuth(jwtManager), toolHandler.Get)
	tools.POST("", middleware.JWTAuth(jwtManager), toolHandler.Submit)
	tools.POST("/:slug/upvote", middleware.JWTAuth(jwtManager), toolHandler.Upvote)
	tools.DELETE("/:slug/upvote", middleware.JWTAuth(jwtManager), toolHandler.RemoveUpvote)

	// Portfolio management
	portfolio := api.Group("/portfolio", middleware.JWTAuth(jwtManager))
	portfolio.POST("", portfolioHandler.Create)
	portfolio.POST("/upload-url", portfolioHandler.PrepareUpload)
	portfolio.PATCH("/:id", portfolioHandler.Update)
	portfolio.DELETE("/:id", portfolioHandler.Delete)

	// Real-time notifications
	router.GET("/ws/notifications", middleware.JWTAuth(jwtManager), wsHandler.Connect)
}
