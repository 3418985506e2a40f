package services

import (
	"errors"

	"github.com/civic-lens/api-go/models"
	"gorm.io/gorm"
)

const defaultNotificationLimit = 50

type NotificationService struct {
	DB *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{DB: db}
}

// Emit appends one unread notification to the user's feed.
func (s *NotificationService) Emit(userID uint, notificationType models.NotificationType, title, message string) error {
	notification := models.Notification{
		UserID:  userID,
		Type:    notificationType,
		Title:   title,
		Message: message,
	}
	return s.DB.Create(&notification).Error
}

// List returns the user's notifications newest first.
func (s *NotificationService) List(userID uint, skip, limit int) ([]models.Notification, error) {
	if limit <= 0 {
		limit = defaultNotificationLimit
	}

	var notifications []models.Notification
	err := s.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(skip).Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

// MarkRead flags a notification as read. The ownership check means a
// user cannot mark another user's notification.
func (s *NotificationService) MarkRead(notificationID, userID uint) (*models.Notification, error) {
	var notification models.Notification
	err := s.DB.Where("id = ? AND user_id = ?", notificationID, userID).First(&notification).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}

	if err := s.DB.Model(&notification).Update("is_read", true).Error; err != nil {
		return nil, err
	}
	notification.IsRead = true
	return &notification, nil
}

// ClearAll deletes every notification owned by the user. Clearing an
// empty feed is a no-op, not an error.
func (s *NotificationService) ClearAll(userID uint) error {
	return s.DB.Where("user_id = ?", userID).Delete(&models.Notification{}).Error
}
