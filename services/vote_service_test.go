package services

import (
	"testing"

	"github.com/civic-lens/api-go/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/clause"
)

// assertCountersMatch checks the core ledger invariant: the issue's
// counters always equal the number of live vote rows of each type.
func assertCountersMatch(t *testing.T, svc *IssueService, issueID uint) {
	t.Helper()

	var issue models.Issue
	require.NoError(t, svc.DB.First(&issue, issueID).Error)

	var upvotes, downvotes int64
	require.NoError(t, svc.DB.Model(&models.Vote{}).
		Where("issue_id = ? AND vote_type = ?", issueID, models.VoteUpvote).Count(&upvotes).Error)
	require.NoError(t, svc.DB.Model(&models.Vote{}).
		Where("issue_id = ? AND vote_type = ?", issueID, models.VoteDownvote).Count(&downvotes).Error)

	assert.EqualValues(t, upvotes, issue.Upvotes)
	assert.EqualValues(t, downvotes, issue.Downvotes)
}

func TestCastVoteInsert(t *testing.T) {
	db := openTestDB(t)
	svc := NewIssueService(db)
	reporter := createTestUser(t, db, "asha")
	voter := createTestUser(t, db, "ravi")
	issue := reportIssue(t, svc, reporter.ID, "Pothole near the market", 12.971, 77.594)

	result, err := svc.CastVote(issue.ID, voter.ID, models.VoteUpvote)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Upvotes)
	assert.Equal(t, 0, result.Downvotes)
	assertCountersMatch(t, svc, issue.ID)

	var notification models.Notification
	require.NoError(t, db.Where("user_id = ?", reporter.ID).First(&notification).Error)
	assert.Equal(t, models.NotificationReaction, notification.Type)
	assert.Equal(t, "New Upvote", notification.Title)
	assert.Contains(t, notification.Message, "ravi")
}

func TestCastVoteSelfUpvoteSkipsNotification(t *testing.T) {
	db := openTestDB(t)
	svc := NewIssueService(db)
	reporter := createTestUser(t, db, "asha")
	issue := reportIssue(t, svc, reporter.ID, "Pothole near the market", 12.971, 77.594)

	_, err := svc.CastVote(issue.ID, reporter.ID, models.VoteUpvote)
	require.NoError(t, err)
	assert.Zero(t, countNotifications(t, db, reporter.ID))
}

func TestCastVoteDownvoteSkipsNotification(t *testing.T) {
	db := openTestDB(t)
	svc := NewIssueService(db)
	reporter := createTestUser(t, db, "asha")
	voter := createTestUser(t, db, "ravi")
	issue := reportIssue(t, svc, reporter.ID, "Pothole near the market", 12.971, 77.594)

	result, err := svc.CastVote(issue.ID, voter.ID, models.VoteDownvote)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Upvotes)
	assert.Equal(t, 1, result.Downvotes)
	assert.Zero(t, countNotifications(t, db, reporter.ID))
}

func TestCastVoteToggleOff(t *testing.T) {
	db := openTestDB(t)
	svc := NewIssueService(db)
	reporter := createTestUser(t, db, "asha")
	voter := createTestUser(t, db, "ravi")
	issue := reportIssue(t, svc, reporter.ID, "Pothole near the market", 12.971, 77.594)

	_, err := svc.CastVote(issue.ID, voter.ID, models.VoteUpvote)
	require.NoError(t, err)

	// Same vote again removes it: two calls are a net no-op.
	result, err := svc.CastVote(issue.ID, voter.ID, models.VoteUpvote)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Upvotes)
	assert.Equal(t, 0, result.Downvotes)

	var votes int64
	require.NoError(t, db.Model(&models.Vote{}).Where("issue_id = ?", issue.ID).Count(&votes).Error)
	assert.Zero(t, votes)
	assertCountersMatch(t, svc, issue.ID)
}

func TestCastVoteSwitchMovesOneUnit(t *testing.T) {
	db := openTestDB(t)
	svc := NewIssueService(db)
	reporter := createTestUser(t, db, "asha")
	voter := createTestUser(t, db, "ravi")
	issue := reportIssue(t, svc, reporter.ID, "Pothole near the market", 12.971, 77.594)

	_, err := svc.CastVote(issue.ID, voter.ID, models.VoteUpvote)
	require.NoError(t, err)

	result, err := svc.CastVote(issue.ID, voter.ID, models.VoteDownvote)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Upvotes)
	assert.Equal(t, 1, result.Downvotes)

	var votes int64
	require.NoError(t, db.Model(&models.Vote{}).Where("issue_id = ?", issue.ID).Count(&votes).Error)
	assert.EqualValues(t, 1, votes)
	assertCountersMatch(t, svc, issue.ID)

	// Only the original fresh upvote notified the reporter.
	assert.EqualValues(t, 1, countNotifications(t, db, reporter.ID))
}

func TestCastVoteTwoVotersBothCount(t *testing.T) {
	db := openTestDB(t)
	svc := NewIssueService(db)
	reporter := createTestUser(t, db, "asha")
	first := createTestUser(t, db, "ravi")
	second := createTestUser(t, db, "meera")
	issue := reportIssue(t, svc, reporter.ID, "Pothole near the market", 12.971, 77.594)

	_, err := svc.CastVote(issue.ID, first.ID, models.VoteUpvote)
	require.NoError(t, err)
	result, err := svc.CastVote(issue.ID, second.ID, models.VoteUpvote)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Upvotes)
	assertCountersMatch(t, svc, issue.ID)
}

// The counter writes must be relative SQL expressions, not absolute
// values from an earlier read: on Postgres two distinct voters in
// overlapping transactions would each read the same starting counter
// and an absolute write would lose one increment.
func TestVoteCounterUpdatesAreRelative(t *testing.T) {
	asExpr := func(t *testing.T, v interface{}) clause.Expr {
		t.Helper()
		expr, ok := v.(clause.Expr)
		require.True(t, ok, "counter update must be a SQL expression, got %T", v)
		return expr
	}

	fresh := voteCounterUpdates("", models.VoteUpvote)
	require.Len(t, fresh, 1)
	assert.Equal(t, "upvotes + 1", asExpr(t, fresh["upvotes"]).SQL)

	toggle := voteCounterUpdates(models.VoteDownvote, models.VoteDownvote)
	require.Len(t, toggle, 1)
	assert.Equal(t, "CASE WHEN downvotes > 0 THEN downvotes - 1 ELSE 0 END",
		asExpr(t, toggle["downvotes"]).SQL)

	switched := voteCounterUpdates(models.VoteUpvote, models.VoteDownvote)
	require.Len(t, switched, 2)
	assert.Equal(t, "CASE WHEN upvotes > 0 THEN upvotes - 1 ELSE 0 END",
		asExpr(t, switched["upvotes"]).SQL)
	assert.Equal(t, "downvotes + 1", asExpr(t, switched["downvotes"]).SQL)
}

func TestCastVoteUnknownIssue(t *testing.T) {
	db := openTestDB(t)
	svc := NewIssueService(db)
	voter := createTestUser(t, db, "ravi")

	_, err := svc.CastVote(999, voter.ID, models.VoteUpvote)
	assert.ErrorIs(t, err, ErrIssueNotFound)
}

func TestCastVoteManyVotersKeepsInvariant(t *testing.T) {
	db := openTestDB(t)
	svc := NewIssueService(db)
	reporter := createTestUser(t, db, "asha")
	issue := reportIssue(t, svc, reporter.ID, "Pothole near the market", 12.971, 77.594)

	voters := []*models.User{
		createTestUser(t, db, "ravi"),
		createTestUser(t, db, "meera"),
		createTestUser(t, db, "john"),
	}

	// ravi upvotes then toggles off, meera upvotes then switches down,
	// john downvotes. Expect upvotes=0, downvotes=2.
	_, err := svc.CastVote(issue.ID, voters[0].ID, models.VoteUpvote)
	require.NoError(t, err)
	_, err = svc.CastVote(issue.ID, voters[0].ID, models.VoteUpvote)
	require.NoError(t, err)
	_, err = svc.CastVote(issue.ID, voters[1].ID, models.VoteUpvote)
	require.NoError(t, err)
	_, err = svc.CastVote(issue.ID, voters[1].ID, models.VoteDownvote)
	require.NoError(t, err)
	result, err := svc.CastVote(issue.ID, voters[2].ID, models.VoteDownvote)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Upvotes)
	assert.Equal(t, 2, result.Downvotes)
	assertCountersMatch(t, svc, issue.ID)
}

func TestCastVoteCounterNeverGoesNegative(t *testing.T) {
	db := openTestDB(t)
	svc := NewIssueService(db)
	reporter := createTestUser(t, db, "asha")
	voter := createTestUser(t, db, "ravi")
	issue := reportIssue(t, svc, reporter.ID, "Pothole near the market", 12.971, 77.594)

	// Seed prior drift: a live vote row with a counter stuck at zero.
	require.NoError(t, db.Create(&models.Vote{
		IssueID: issue.ID, UserID: voter.ID, VoteType: models.VoteUpvote,
	}).Error)

	result, err := svc.CastVote(issue.ID, voter.ID, models.VoteUpvote)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Upvotes)
	assert.Equal(t, 0, result.Downvotes)
}
