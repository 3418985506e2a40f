package routes

import (
	"github.com/civic-lens/api-go/controllers"
	"github.com/gin-gonic/gin"
)

func SetupNotificationRoutes(rg *gin.RouterGroup, notificationController *controllers.NotificationController) {
	rg.GET("/notifications", notificationController.GetNotifications)
	rg.PATCH("/notifications/:id/read", notificationController.MarkNotificationRead)
	rg.DELETE("/notifications/clear", notificationController.ClearNotifications)
}
