package services

import (
	"errors"
	"fmt"

	"github.com/civic-lens/api-go/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VoteResult carries the post-operation counters for immediate display.
type VoteResult struct {
	Upvotes   int `json:"upvotes"`
	Downvotes int `json:"downvotes"`
}

// CastVote applies one user's vote to an issue as a single atomic unit:
// a fresh vote inserts and bumps the matching counter, repeating the
// same vote toggles it off, and a different vote switches type, moving
// exactly one unit between counters. Counters never go below zero.
//
// Two concurrent first votes from the same user can both observe "no
// existing vote"; the unique (issue_id, user_id) index rejects the
// loser, which retries once and lands on the toggle/switch path
// instead of surfacing the conflict.
func (s *IssueService) CastVote(issueID, userID uint, voteType models.VoteType) (*VoteResult, error) {
	result, err := s.castVote(issueID, userID, voteType)
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		result, err = s.castVote(issueID, userID, voteType)
	}
	return result, err
}

func (s *IssueService) castVote(issueID, userID uint, voteType models.VoteType) (*VoteResult, error) {
	var result VoteResult

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var issue models.Issue
		if err := tx.First(&issue, issueID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrIssueNotFound
			}
			return err
		}

		var existing models.Vote
		err := tx.Where("issue_id = ? AND user_id = ?", issueID, userID).First(&existing).Error

		var updates map[string]interface{}

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			vote := models.Vote{IssueID: issueID, UserID: userID, VoteType: voteType}
			if err := tx.Create(&vote).Error; err != nil {
				return err
			}
			updates = voteCounterUpdates("", voteType)

			// Only a fresh upvote by someone other than the reporter earns
			// a reaction notification.
			if voteType == models.VoteUpvote && issue.ReporterID != userID {
				var voter models.User
				if err := tx.First(&voter, userID).Error; err != nil {
					return err
				}
				notification := models.Notification{
					UserID:  issue.ReporterID,
					Type:    models.NotificationReaction,
					Title:   "New Upvote",
					Message: fmt.Sprintf("%s upvoted your issue '%s'", voter.Username, issue.Title),
				}
				if err := tx.Create(&notification).Error; err != nil {
					return err
				}
			}

		case err != nil:
			return err

		case existing.VoteType == voteType:
			// Toggle off.
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			updates = voteCounterUpdates(existing.VoteType, voteType)

		default:
			// Switch type in place.
			if err := tx.Model(&existing).Update("vote_type", voteType).Error; err != nil {
				return err
			}
			updates = voteCounterUpdates(existing.VoteType, voteType)
		}

		if err := tx.Model(&issue).Updates(updates).Error; err != nil {
			return err
		}

		// Reload for the post-operation counters the caller displays;
		// the relative update above never wrote our stale read back.
		if err := tx.First(&issue, issueID).Error; err != nil {
			return err
		}
		result = VoteResult{Upvotes: issue.Upvotes, Downvotes: issue.Downvotes}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// voteCounterUpdates builds the counter adjustments for a vote action.
// The adjustments are relative SQL expressions, never absolute values
// from an earlier read: under concurrent voters an absolute write would
// silently drop the other transaction's increment. An empty previous
// type means a fresh vote; previous == next is a toggle-off; anything
// else is a switch. Decrements floor at zero in SQL.
func voteCounterUpdates(previous, next models.VoteType) map[string]interface{} {
	switch previous {
	case "":
		col := counterColumn(next)
		return map[string]interface{}{col: gorm.Expr(col + " + 1")}
	case next:
		col := counterColumn(next)
		return map[string]interface{}{col: flooredDecrement(col)}
	default:
		oldCol := counterColumn(previous)
		newCol := counterColumn(next)
		return map[string]interface{}{
			oldCol: flooredDecrement(oldCol),
			newCol: gorm.Expr(newCol + " + 1"),
		}
	}
}

func counterColumn(voteType models.VoteType) string {
	if voteType == models.VoteUpvote {
		return "upvotes"
	}
	return "downvotes"
}

func flooredDecrement(col string) clause.Expr {
	return gorm.Expr("CASE WHEN " + col + " > 0 THEN " + col + " - 1 ELSE 0 END")
}
