package routes

import (
	"github.com/civic-lens/api-go/controllers"
	"github.com/gin-gonic/gin"
)

func SetupIssueRoutes(rg *gin.RouterGroup, issueController *controllers.IssueController) {
	rg.POST("/issues", issueController.CreateIssue)
	rg.GET("/issues", issueController.ListIssues)
	rg.GET("/issues/:id", issueController.GetIssue)
	rg.PATCH("/issues/:id/status", issueController.UpdateIssueStatus)
	rg.POST("/issues/:id/vote", issueController.VoteIssue)
	rg.POST("/issues/:id/comments", issueController.CreateComment)
	rg.GET("/issues/:id/comments", issueController.GetComments)
}
