package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type User struct {
	ID         uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"deleted_at"`
	Username   string         `gorm:"unique;not null" json:"username"`
	Email      string         `gorm:"unique;not null" json:"email"`
	Password   string         `gorm:"not null" json:"-"` // Don't expose password in JSON
	Avatar     string         `json:"avatar"`
	TrustScore int            `gorm:"not null;default:0" json:"trust_score"`
	// Badges is stored as an array literal in a plain text column so the
	// same model works on Postgres and the SQLite test driver.
	Badges     pq.StringArray `gorm:"type:text" json:"badges"`
	Issues     []Issue        `gorm:"foreignKey:ReporterID" json:"issues,omitempty"`
	Comments   []Comment      `gorm:"foreignKey:UserID" json:"comments,omitempty"`
	Votes      []Vote         `gorm:"foreignKey:UserID" json:"votes,omitempty"`
}
