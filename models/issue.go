package models

import (
	"time"
)

type IssueStatus string

const (
	StatusReported       IssueStatus = "Reported"
	StatusUnderReview    IssueStatus = "Under Review"
	StatusWorkInProgress IssueStatus = "Work in Progress"
	StatusResolved       IssueStatus = "Resolved"
)

// ParseIssueStatus maps a raw string onto a known lifecycle status.
func ParseIssueStatus(s string) (IssueStatus, bool) {
	switch IssueStatus(s) {
	case StatusReported, StatusUnderReview, StatusWorkInProgress, StatusResolved:
		return IssueStatus(s), true
	}
	return "", false
}

type Issue struct {
	ID          uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string      `gorm:"not null" json:"title"`
	Description string      `gorm:"type:text;not null" json:"description"`
	Category    string      `gorm:"not null;index" json:"category"`
	Subcategory string      `json:"subcategory"`
	Latitude    float64     `gorm:"not null;type:decimal(10,8)" json:"latitude"`
	Longitude   float64     `gorm:"not null;type:decimal(11,8)" json:"longitude"`
	AreaName    string      `json:"area_name"`
	ImageURL    string      `json:"image_url"`
	ReporterID  uint        `gorm:"not null;index" json:"reporter_id"`
	Reporter    User        `gorm:"foreignKey:ReporterID" json:"reporter"`
	Status      IssueStatus `gorm:"type:varchar(32);not null;default:'Reported';index" json:"status"`
	Upvotes     int         `gorm:"not null;default:0" json:"upvotes"`
	Downvotes   int         `gorm:"not null;default:0" json:"downvotes"`
	Comments    []Comment   `gorm:"foreignKey:IssueID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
	Votes       []Vote      `gorm:"foreignKey:IssueID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
