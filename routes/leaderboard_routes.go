package routes

import (
	"github.com/civic-lens/api-go/controllers"
	"github.com/gin-gonic/gin"
)

func SetupLeaderboardRoutes(rg *gin.RouterGroup, leaderboardController *controllers.LeaderboardController) {
	rg.GET("/leaderboard", leaderboardController.GetLeaderboard)
}
