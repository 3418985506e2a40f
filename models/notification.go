package models

import (
	"time"
)

type NotificationType string

const (
	NotificationStatusUpdate NotificationType = "Status Updates"
	NotificationReaction     NotificationType = "Reactions"
	NotificationBadge        NotificationType = "Badges"
	NotificationMilestone    NotificationType = "Milestones"
)

// Notification is an append-only feed entry. Producers write it, only
// the owning user may mark it read or clear it.
type Notification struct {
	ID        uint             `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint             `gorm:"not null;index" json:"user_id"`
	Type      NotificationType `gorm:"type:varchar(32);not null" json:"notification_type"`
	Title     string           `gorm:"not null" json:"title"`
	Message   string           `gorm:"type:text;not null" json:"message"`
	IsRead    bool             `gorm:"not null;default:false" json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}
