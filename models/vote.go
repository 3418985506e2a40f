package models

import (
	"time"
)

type VoteType string

const (
	VoteUpvote   VoteType = "upvote"
	VoteDownvote VoteType = "downvote"
)

// Vote records a single user's choice on a single issue. The composite
// unique index guarantees at most one row per (issue, user) pair even
// under concurrent inserts.
type Vote struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	IssueID   uint      `gorm:"not null;uniqueIndex:idx_votes_issue_user" json:"issue_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_votes_issue_user" json:"user_id"`
	VoteType  VoteType  `gorm:"type:varchar(10);not null" json:"vote_type"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	User  User  `gorm:"foreignKey:UserID" json:"-"`
	Issue Issue `gorm:"foreignKey:IssueID" json:"-"`
}
