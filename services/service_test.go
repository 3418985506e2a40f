package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/civic-lens/api-go/models"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB opens a private in-memory database per test so the real
// transactional paths run without a Postgres instance.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Issue{}, &models.Vote{}, &models.Comment{}, &models.Notification{},
	))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "not-a-real-hash",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func reportIssue(t *testing.T, svc *IssueService, reporterID uint, title string, lat, lon float64) *models.Issue {
	t.Helper()

	issue, err := svc.Create(reporterID, CreateIssueInput{
		Title:       title,
		Description: "reported during testing",
		Category:    "Roads",
		Latitude:    lat,
		Longitude:   lon,
		AreaName:    "Indiranagar",
	})
	require.NoError(t, err)
	return issue
}

func countNotifications(t *testing.T, db *gorm.DB, userID uint) int64 {
	t.Helper()

	var n int64
	require.NoError(t, db.Model(&models.Notification{}).Where("user_id = ?", userID).Count(&n).Error)
	return n
}
