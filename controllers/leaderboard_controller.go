package controllers

import (
	"net/http"
	"strconv"

	"github.com/civic-lens/api-go/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type LeaderboardController struct {
	DB          *gorm.DB
	Leaderboard *services.LeaderboardService
}

func NewLeaderboardController(db *gorm.DB) *LeaderboardController {
	return &LeaderboardController{DB: db, Leaderboard: services.NewLeaderboardService(db)}
}

// GetLeaderboard godoc
// @Summary Rank contributors by total upvotes, then issue count
// @Tags leaderboard
// @Produce json
// @Param limit query integer false "Maximum entries (default: 10)"
// @Success 200 {array} services.LeaderboardEntry
// @Router /leaderboard [get]
func (lc *LeaderboardController) GetLeaderboard(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	entries, err := lc.Leaderboard.Rank(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching leaderboard"})
		return
	}

	c.JSON(http.StatusOK, entries)
}
