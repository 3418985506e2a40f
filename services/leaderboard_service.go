package services

import (
	"github.com/civic-lens/api-go/models"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const defaultLeaderboardLimit = 10

type LeaderboardService struct {
	DB *gorm.DB
}

func NewLeaderboardService(db *gorm.DB) *LeaderboardService {
	return &LeaderboardService{DB: db}
}

type LeaderboardEntry struct {
	UserID       uint           `gorm:"column:user_id" json:"user_id"`
	Username     string         `gorm:"column:username" json:"username"`
	Avatar       string         `gorm:"column:avatar" json:"avatar"`
	TrustScore   int            `gorm:"column:trust_score" json:"trust_score"`
	Badges       pq.StringArray `gorm:"column:badges" json:"badges"`
	TotalIssues  int64          `gorm:"column:total_issues" json:"total_issues"`
	TotalUpvotes int64          `gorm:"column:total_upvotes" json:"total_upvotes"`
}

// Rank returns contributors ordered by the summed upvotes across their
// issues, ties broken by issue count. Users without issues appear with
// zero totals.
func (s *LeaderboardService) Rank(limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = defaultLeaderboardLimit
	}

	var entries []LeaderboardEntry
	err := s.DB.Model(&models.User{}).
		Select("users.id as user_id, users.username, users.avatar, users.trust_score, users.badges, " +
			"COUNT(issues.id) as total_issues, COALESCE(SUM(issues.upvotes), 0) as total_upvotes").
		Joins("LEFT JOIN issues ON issues.reporter_id = users.id").
		Group("users.id, users.username, users.avatar, users.trust_score, users.badges").
		Order("total_upvotes DESC, total_issues DESC").
		Limit(limit).
		Scan(&entries).Error
	return entries, err
}
