package api

import (
	"github.com/VaishnaviMunugala/AI-Copyright-Detection/internal/config"
	"github.com/VaishnaviMunugala/AI-Copyright-Detection/internal/metrics"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(cfg *config.Config, handler *Handler) *gin.Engine {
	router := gin.New()

	rateLimiter := NewRateLimiter(cfg.RateLimitRPS, int(cfg.RateLimitRPS*2))

	router.Use(gin.Recovery())
	router.Use(RequestLogger())
	router.Use(metrics.Middleware())
	router.Use(ErrorHandlerMiddleware())

	// Health endpoint (no auth)
	router.GET("/health", handler.Health)
	router.GET("/api/v1/categories", RateLimitMiddleware(rateLimiter), handler.ListCategories)

	api := router.Group("/api/v1")
	api.Use(JWTAuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))
	api.Use(RateLimitMiddleware(rateLimiter))
	{
		api.POST("/detect", handler.DetectText)
		api.POST("/detect/video", handler.DetectVideo)
		api.GET("/detections", handler.History)
		api.GET("/detections/:id", handler.GetDetection)

		api.POST("/content", handler.RegisterContent)
		api.GET("/content/user", handler.ListContent)
		api.GET("/content/:id", handler.GetContent)
		api.DELETE("/content/:id", handler.DeleteContent)
		api.POST("/content/submit", handler.SubmitContent)
		api.GET("/content/submissions/:id", handler.SubmissionStatus)
		api.POST("/content/verify", handler.VerifyOwnership)
	}

	admin := api.Group("/admin")
	admin.Use(AdminOnly())
	{
		admin.GET("/thresholds", handler.GetThresholds)
		admin.PUT("/thresholds/:tier", handler.UpdateThreshold)
		admin.GET("/analytics", handler.Analytics)
		admin.GET("/detections", handler.ListDetections)

		admin.GET("/categories", handler.ListCategories)
		admin.POST("/categories", handler.CreateCategory)
		admin.PUT("/categories/:id", handler.UpdateCategory)
		admin.DELETE("/categories/:id", handler.DeleteCategory)
	}

	return router
}
