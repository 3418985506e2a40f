package controllers

import (
	"net/http"
	"strconv"

	"github.com/civic-lens/api-go/services"
	"github.com/civic-lens/api-go/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type NotificationController struct {
	DB            *gorm.DB
	Notifications *services.NotificationService
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db, Notifications: services.NewNotificationService(db)}
}

// GetNotifications godoc
// @Summary List the current user's notifications, newest first
// @Tags notifications
// @Produce json
// @Success 200 {array} models.Notification
// @Router /notifications [get]
func (nc *NotificationController) GetNotifications(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	notifications, err := nc.Notifications.List(user.UserID, skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching notifications"})
		return
	}

	c.JSON(http.StatusOK, notifications)
}

// MarkNotificationRead godoc
// @Summary Mark one of the current user's notifications as read
// @Tags notifications
// @Produce json
// @Param id path integer true "Notification ID"
// @Success 200 {object} models.Notification
// @Router /notifications/{id}/read [patch]
func (nc *NotificationController) MarkNotificationRead(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification id"})
		return
	}

	notification, err := nc.Notifications.MarkRead(id, user.UserID)
	if err != nil {
		c.JSON(serviceErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, notification)
}

// ClearNotifications godoc
// @Summary Delete all of the current user's notifications
// @Tags notifications
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /notifications/clear [delete]
func (nc *NotificationController) ClearNotifications(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	if err := nc.Notifications.ClearAll(user.UserID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error clearing notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All notifications cleared"})
}
