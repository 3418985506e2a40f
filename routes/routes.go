package routes

import (
	"net/http"

	"github.com/civic-lens/api-go/controllers"
	"github.com/civic-lens/api-go/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// Initialize controllers
	authController := controllers.NewAuthController(db)
	issueController := controllers.NewIssueController(db)
	notificationController := controllers.NewNotificationController(db)
	leaderboardController := controllers.NewLeaderboardController(db)

	// Public routes
	public := r.Group("/api")
	{
		public.POST("/auth/register", authController.Register)
		public.POST("/auth/login", authController.Login)

		public.GET("/", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"message": "CivicLens API",
				"version": "1.0.0",
				"status":  "operational",
			})
		})
		public.GET("/health", func(c *gin.Context) {
			sqlDB, err := db.DB()
			if err != nil || sqlDB.Ping() != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service unavailable"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"status": "healthy", "database": "connected"})
		})
	}

	// Protected routes
	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("/auth/logout", authController.Logout)
		protected.GET("/auth/me", authController.Me)

		// Setup other routes within the protected group
		SetupIssueRoutes(protected, issueController)
		SetupNotificationRoutes(protected, notificationController)
		SetupLeaderboardRoutes(protected, leaderboardController)
	}
}
